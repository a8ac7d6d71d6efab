package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/poobet/roulette/internal/betting"
	"github.com/poobet/roulette/internal/domain"
	"github.com/poobet/roulette/internal/ledger"
	"github.com/poobet/roulette/internal/sequence"
	"github.com/shopspring/decimal"
)

// Player is one registered player's session: their account, the round they
// are betting on and every round they have sealed.
type Player struct {
	mu       sync.Mutex
	id       int64
	identity domain.Identity
	account  *ledger.Account
	drawer   betting.Drawer
	roundIDs sequence.Generator
	wagerIDs sequence.Generator
	current  *betting.Round
	history  map[int64]*betting.Round
	logger   *slog.Logger
}

// ID returns the player id.
func (p *Player) ID() int64 { return p.id }

// Identity returns the registration details.
func (p *Player) Identity() domain.Identity { return p.identity }

// --- Rounds ---

// OpenRound starts a new betting round. The player needs at least one chip
// and no round still collecting.
func (p *Player) OpenRound() (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current != nil {
		return 0, p.reject("open round", domain.ErrRoundInProgress(p.current.ID()))
	}
	if !p.account.HasChips(1) {
		return 0, p.reject("open round", domain.ErrInsufficientChips(p.account.Chips(), 1))
	}

	id := p.roundIDs.Next()
	p.current = betting.NewRound(id, p.account, p.drawer, p.wagerIDs)

	p.logger.Info("round opened", "round_id", id, "chips", p.account.Chips())
	return id, nil
}

// CurrentRound returns the round still collecting wagers, if any.
func (p *Player) CurrentRound() (*betting.Round, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current, p.current != nil
}

// PlaceWager adds a wager to the open round. The stake leaves the chip
// balance immediately.
func (p *Player) PlaceWager(color domain.Color, stake int64) (*betting.Wager, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return nil, p.reject("place wager", domain.ErrNoOpenRound())
	}

	w, err := p.current.AddWager(color, stake)
	if err != nil {
		return nil, p.reject("place wager", err)
	}

	p.logger.Info("wager placed",
		"round_id", p.current.ID(), "wager_id", w.ID, "color", w.Color, "stake", w.Stake,
		"chips", p.account.Chips())
	return w, nil
}

// SealRound draws the wheel, pays the winning wager and files the round in
// history. If the draw fails the round stays open and can be sealed again.
func (p *Player) SealRound(ctx context.Context) (*betting.Outcome, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == nil {
		return nil, p.reject("seal round", domain.ErrNoOpenRound())
	}

	out, err := p.current.Seal(ctx)
	if err != nil {
		p.logger.Error("seal round", "round_id", p.current.ID(), "error", err)
		return nil, fmt.Errorf("seal round %d: %w", p.current.ID(), err)
	}

	p.history[out.RoundID] = p.current
	p.current = nil

	p.logger.Info("round sealed",
		"round_id", out.RoundID, "number", out.Pocket.Number, "drawn", out.DrawnColor(),
		"won", out.Won(), "payout", out.TotalPayout, "chips", p.account.Chips())
	return out, nil
}

// History returns a summary of every sealed round, ordered by round id.
func (p *Player) History() []betting.Summary {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]betting.Summary, 0, len(p.history))
	for _, r := range p.history {
		out = append(out, r.Summary())
	}
	slices.SortFunc(out, func(a, b betting.Summary) int {
		switch {
		case a.RoundID < b.RoundID:
			return -1
		case a.RoundID > b.RoundID:
			return 1
		}
		return 0
	})
	return out
}

// Round returns a sealed round by id.
func (p *Player) Round(id int64) (*betting.Round, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	r, ok := p.history[id]
	if !ok {
		return nil, domain.ErrNotFound("round", fmt.Sprintf("%d", id))
	}
	return r, nil
}

// --- Account ---

// Deposit adds credit.
func (p *Player) Deposit(amount decimal.Decimal) (ledger.CreditBalance, error) {
	if _, err := p.account.Deposit(amount); err != nil {
		return ledger.CreditBalance{}, p.reject("deposit", err)
	}
	bal := p.account.Credit()
	p.logger.Info("credit deposited", "amount", amount.StringFixed(2), "balance", bal.Amount.StringFixed(2),
		"expires_at", bal.ExpiresAt.Format(time.DateOnly))
	return bal, nil
}

// Withdraw removes credit.
func (p *Player) Withdraw(amount decimal.Decimal) (ledger.CreditBalance, error) {
	if _, err := p.account.Withdraw(amount); err != nil {
		return ledger.CreditBalance{}, p.reject("withdraw", err)
	}
	bal := p.account.Credit()
	p.logger.Info("credit withdrawn", "amount", amount.StringFixed(2), "balance", bal.Amount.StringFixed(2))
	return bal, nil
}

// ConvertCreditToChips buys whole chips with up to amount of credit and
// returns how many were bought.
func (p *Player) ConvertCreditToChips(amount decimal.Decimal) (int64, error) {
	tx, err := p.account.ConvertCreditToChips(amount)
	if err != nil {
		return 0, p.reject("convert credit to chips", err)
	}
	p.logger.Info("credit converted to chips", "chips", tx.Chips, "cost", tx.Credit.Neg().StringFixed(2),
		"chips_after", tx.ChipsAfter, "credit_after", tx.CreditAfter.StringFixed(2))
	return tx.Chips, nil
}

// ConvertChipsToCredit cashes out n chips and returns the credit received.
func (p *Player) ConvertChipsToCredit(n int64) (decimal.Decimal, error) {
	tx, err := p.account.ConvertChipsToCredit(n)
	if err != nil {
		return decimal.Zero, p.reject("convert chips to credit", err)
	}
	p.logger.Info("chips converted to credit", "chips", n, "value", tx.Credit.StringFixed(2),
		"chips_after", tx.ChipsAfter, "credit_after", tx.CreditAfter.StringFixed(2))
	return tx.Credit, nil
}

// Chips returns the chip balance.
func (p *Player) Chips() int64 { return p.account.Chips() }

// HasChips reports whether at least n chips are available.
func (p *Player) HasChips(n int64) bool { return p.account.HasChips(n) }

// ChipPrice returns the credit value of one chip.
func (p *Player) ChipPrice() decimal.Decimal { return p.account.ChipPrice() }

// Credit returns the credit balance and expiry.
func (p *Player) Credit() ledger.CreditBalance { return p.account.Credit() }

// CreditExpired reports whether the credit validity window has passed at now.
func (p *Player) CreditExpired(now time.Time) bool { return p.account.Expired(now) }

// Statement returns every journal entry, oldest first.
func (p *Player) Statement() []domain.Transaction { return p.account.Journal() }

// Audit replays the journal and checks the balance invariants.
func (p *Player) Audit() ledger.AuditReport {
	report := ledger.Audit(p.account)
	if !report.AllPassed {
		p.logger.Error("account audit failed", "entries", report.EntryCount)
	}
	return report
}

// reject logs a refused operation and wraps its error.
func (p *Player) reject(op string, err error) error {
	p.logger.Warn(op+" rejected", "code", domain.CodeOf(err), "error", err)
	return fmt.Errorf("%s: %w", op, err)
}
