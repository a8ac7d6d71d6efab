package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/poobet/roulette/internal/betting"
	"github.com/poobet/roulette/internal/domain"
)

var (
	winText    = color.New(color.FgGreen, color.Bold)
	lossText   = color.New(color.FgRed)
	noticeText = color.New(color.FgYellow)
)

// friendly maps error codes to the text shown to the player.
var friendly = map[string]string{
	domain.CodeInvalidStake:        "The stake must be at least one chip.",
	domain.CodeDuplicateColor:      "You already bet on that color this round.",
	domain.CodeInsufficientChips:   "You do not have enough chips.",
	domain.CodeInsufficientCredit:  "You do not have enough credit.",
	domain.CodeConversionThreshold: "You need enough credit for at least one chip.",
	domain.CodeRoundSealed:         "That round is already over.",
	domain.CodeRoundInProgress:     "Finish the current round first.",
	domain.CodeNoOpenRound:         "There is no open round.",
	domain.CodeNotFound:            "Not found.",
	domain.CodeValidation:          "Invalid input.",
}

// describe renders an error for the player.
func describe(err error) string {
	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		return "Something went wrong: " + err.Error()
	}
	text, ok := friendly[appErr.Code]
	if !ok {
		return "Something went wrong: " + appErr.Message
	}
	return fmt.Sprintf("%s (%s)", text, appErr.Message)
}

func (c *Console) notice(err error) {
	noticeText.Fprintln(c.out, describe(err))
}

// announce prints the drawn pocket and what the player won or lost.
func (c *Console) announce(out *betting.Outcome) {
	c.printf("The ball lands on %d %s.\n", out.Pocket.Number, out.DrawnColor())
	if out.Won() {
		winText.Fprintf(c.out, "You won %d chips on %s!", out.TotalPayout, out.Winner.Color)
	} else {
		lossText.Fprintf(c.out, "No wager on %s. You lost %d chips.", out.DrawnColor(), out.Staked())
	}
	c.printf("\nChips: %d.\n", c.player.Chips())
}

func (c *Console) showHistory(context.Context) error {
	history := c.player.History()
	if len(history) == 0 {
		c.printf("No rounds played yet.\n")
		return nil
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("Round", "Drawn", "Wagers", "Payout")
	for _, s := range history {
		if err := table.Append([]string{
			strconv.FormatInt(s.RoundID, 10),
			string(s.DrawnColor),
			strconv.Itoa(s.WagerCount),
			strconv.FormatInt(s.TotalPayout, 10),
		}); err != nil {
			return fmt.Errorf("history row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render history: %w", err)
	}
	return nil
}

func (c *Console) showStatement(context.Context) error {
	entries := c.player.Statement()
	if len(entries) == 0 {
		c.printf("No account activity yet.\n")
		return nil
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("When", "Type", "Chips", "Credit", "Chips After", "Credit After")
	for _, tx := range entries {
		if err := table.Append([]string{
			tx.CreatedAt.Format(time.DateTime),
			string(tx.Type),
			strconv.FormatInt(tx.Chips, 10),
			tx.Credit.StringFixed(2),
			strconv.FormatInt(tx.ChipsAfter, 10),
			tx.CreditAfter.StringFixed(2),
		}); err != nil {
			return fmt.Errorf("statement row: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("render statement: %w", err)
	}

	report := c.player.Audit()
	if report.AllPassed {
		c.printf("Audit: %d entries, all %d checks passed.\n", report.EntryCount, len(report.Invariants))
		return nil
	}
	for _, inv := range report.Invariants {
		if !inv.Passed {
			lossText.Fprintf(c.out, "Audit failed: %s (%s)\n", inv.Name, inv.Detail)
		}
	}
	return nil
}
