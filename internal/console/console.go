// Package console is the terminal front end: it reads menu choices and
// amounts from an input stream and renders balances, tables and round
// results to an output stream.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/poobet/roulette/internal/service"
	"github.com/shopspring/decimal"
)

// Console drives one player's session.
type Console struct {
	in     *bufio.Scanner
	out    io.Writer
	player *service.Player
	now    func() time.Time
}

// New creates a Console reading from in and writing to out.
func New(in io.Reader, out io.Writer, player *service.Player) *Console {
	return &Console{in: bufio.NewScanner(in), out: out, player: player, now: time.Now}
}

type action struct {
	key   string
	label string
	run   func(c *Console, ctx context.Context) error
}

var menu = []action{
	{"1", "Deposit credit", (*Console).deposit},
	{"2", "Show credit", (*Console).showCredit},
	{"3", "Withdraw credit", (*Console).withdraw},
	{"4", "Convert credit to chips", (*Console).creditToChips},
	{"5", "Show chips", (*Console).showChips},
	{"6", "Convert chips to credit", (*Console).chipsToCredit},
	{"7", "New round", (*Console).playRound},
	{"8", "Round history", (*Console).showHistory},
	{"9", "Statement", (*Console).showStatement},
	{"0", "Quit", nil},
}

// Run shows the menu until the player quits, the input ends or ctx is
// cancelled. End of input is a normal exit.
func (c *Console) Run(ctx context.Context) error {
	c.printf("Welcome, %s!\n", c.player.Identity().Nickname)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.printMenu()
		choice, err := c.readLine("> ")
		if err != nil {
			return endOfInput(err)
		}

		act, ok := lookup(choice)
		if !ok {
			c.printf("Unknown option %q.\n", choice)
			continue
		}
		if act.run == nil {
			c.printf("Goodbye, %s.\n", c.player.Identity().Nickname)
			return nil
		}
		if err := act.run(c, ctx); err != nil {
			return endOfInput(err)
		}
	}
}

func lookup(choice string) (action, bool) {
	for _, a := range menu {
		if a.key == choice {
			return a, true
		}
	}
	return action{}, false
}

func (c *Console) printMenu() {
	c.printf("\n")
	for _, a := range menu {
		c.printf("  %s) %s\n", a.key, a.label)
	}
}

// --- Credit & chips ---

func (c *Console) deposit(context.Context) error {
	amount, err := c.readAmount("Amount to deposit: ")
	if err != nil {
		return err
	}
	bal, err := c.player.Deposit(amount)
	if err != nil {
		c.notice(err)
		return nil
	}
	c.printf("Deposited. Credit: %s, valid until %s.\n", bal, bal.ExpiresAt.Format(time.DateOnly))
	return nil
}

func (c *Console) showCredit(context.Context) error {
	bal := c.player.Credit()
	if bal.ExpiresAt.IsZero() {
		c.printf("Credit: %s.\n", bal)
		return nil
	}
	if c.player.CreditExpired(c.now()) {
		c.printf("Credit: %s, expired on %s.\n", bal, bal.ExpiresAt.Format(time.DateOnly))
		return nil
	}
	c.printf("Credit: %s, valid until %s.\n", bal, bal.ExpiresAt.Format(time.DateOnly))
	return nil
}

func (c *Console) withdraw(context.Context) error {
	amount, err := c.readAmount("Amount to withdraw: ")
	if err != nil {
		return err
	}
	bal, err := c.player.Withdraw(amount)
	if err != nil {
		c.notice(err)
		return nil
	}
	c.printf("Withdrawn. Credit: %s.\n", bal)
	return nil
}

func (c *Console) creditToChips(context.Context) error {
	c.printf("One chip costs %s.\n", c.player.ChipPrice().StringFixed(2))
	amount, err := c.readAmount("Credit to convert: ")
	if err != nil {
		return err
	}
	chips, err := c.player.ConvertCreditToChips(amount)
	if err != nil {
		c.notice(err)
		return nil
	}
	c.printf("Bought %d chips. Chips: %d, credit: %s.\n", chips, c.player.Chips(), c.player.Credit())
	return nil
}

func (c *Console) showChips(context.Context) error {
	c.printf("Chips: %d.\n", c.player.Chips())
	return nil
}

func (c *Console) chipsToCredit(context.Context) error {
	n, err := c.readInt("Chips to convert: ")
	if err != nil {
		return err
	}
	value, err := c.player.ConvertChipsToCredit(n)
	if err != nil {
		c.notice(err)
		return nil
	}
	c.printf("Received %s. Chips: %d, credit: %s.\n", value.StringFixed(2), c.player.Chips(), c.player.Credit())
	return nil
}

// --- Input ---

// readLine prompts and returns the next trimmed line. It returns io.EOF once
// the input is exhausted.
func (c *Console) readLine(prompt string) (string, error) {
	c.printf("%s", prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// readAmount re-prompts until it reads a decimal. A comma is accepted as the
// decimal separator.
func (c *Console) readAmount(prompt string) (decimal.Decimal, error) {
	for {
		line, err := c.readLine(prompt)
		if err != nil {
			return decimal.Zero, err
		}
		amount, err := decimal.NewFromString(strings.ReplaceAll(line, ",", "."))
		if err == nil {
			return amount, nil
		}
		c.printf("%q is not an amount.\n", line)
	}
}

// readInt re-prompts until it reads a whole number.
func (c *Console) readInt(prompt string) (int64, error) {
	for {
		line, err := c.readLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.ParseInt(line, 10, 64)
		if err == nil {
			return n, nil
		}
		c.printf("%q is not a whole number.\n", line)
	}
}

// readYesNo re-prompts until it reads y/n (or s/n).
func (c *Console) readYesNo(prompt string) (bool, error) {
	for {
		line, err := c.readLine(prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes", "s", "sim":
			return true, nil
		case "n", "no", "nao", "não":
			return false, nil
		}
		c.printf("Please answer y or n.\n")
	}
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
