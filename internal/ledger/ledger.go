// Package ledger keeps a player's balances: integer chips for betting and a
// decimal credit balance with a rolling expiry. Every movement is appended to
// a journal that snapshots both balances after it is applied.
package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/poobet/roulette/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultChipPrice is the credit value of one chip.
var DefaultChipPrice = decimal.NewFromInt(50)

// DefaultCreditValidity is how long credit stays valid after the last inflow.
const DefaultCreditValidity = 90 * 24 * time.Hour

// Options configures an Account.
type Options struct {
	Currency       string
	ChipPrice      decimal.Decimal
	CreditValidity time.Duration
	Clock          func() time.Time
}

// DefaultOptions returns BRL credit, 50 per chip, 90-day validity.
func DefaultOptions() Options {
	return Options{
		Currency:       "BRL",
		ChipPrice:      DefaultChipPrice,
		CreditValidity: DefaultCreditValidity,
		Clock:          time.Now,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Currency == "" {
		o.Currency = d.Currency
	}
	if !o.ChipPrice.IsPositive() {
		o.ChipPrice = d.ChipPrice
	}
	if o.CreditValidity <= 0 {
		o.CreditValidity = d.CreditValidity
	}
	if o.Clock == nil {
		o.Clock = d.Clock
	}
	return o
}

// CreditBalance is a point-in-time view of the credit side.
type CreditBalance struct {
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// String renders the balance as e.g. "BRL 1234.50".
func (c CreditBalance) String() string {
	return fmt.Sprintf("%s %s", c.Currency, c.Amount.StringFixed(2))
}

// Account is a player's chip and credit balances plus their journal.
type Account struct {
	mu        sync.Mutex
	playerID  int64
	opts      Options
	chips     int64
	credit    decimal.Decimal
	expiresAt time.Time
	journal   []domain.Transaction
}

// NewAccount creates an empty account. Zero-valued options fall back to defaults.
func NewAccount(playerID int64, opts Options) *Account {
	return &Account{
		playerID: playerID,
		opts:     opts.withDefaults(),
		credit:   decimal.Zero,
	}
}

// PlayerID returns the owning player's id.
func (a *Account) PlayerID() int64 { return a.playerID }

// ChipPrice returns the credit value of one chip.
func (a *Account) ChipPrice() decimal.Decimal { return a.opts.ChipPrice }

// Chips returns the chip balance.
func (a *Account) Chips() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.chips
}

// HasChips reports whether at least n chips are available.
func (a *Account) HasChips(n int64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.chips >= n
}

// Credit returns the credit balance and its expiry.
func (a *Account) Credit() CreditBalance {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.creditLocked()
}

func (a *Account) creditLocked() CreditBalance {
	return CreditBalance{Amount: a.credit, Currency: a.opts.Currency, ExpiresAt: a.expiresAt}
}

// Expired reports whether the credit validity window has passed at now.
// An account that never received credit does not expire.
func (a *Account) Expired(now time.Time) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return !a.expiresAt.IsZero() && now.After(a.expiresAt)
}

// Journal returns a copy of every posted entry, oldest first.
func (a *Account) Journal() []domain.Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.Transaction(nil), a.journal...)
}

// entry is the input to postLocked.
type entry struct {
	typ    domain.TransactionType
	chips  int64
	credit decimal.Decimal
}

// postLocked applies the deltas and appends the journal entry. It is the only
// place balances change. Caller holds a.mu and has validated the amounts; a
// delta that would drive a balance negative is refused untouched.
func (a *Account) postLocked(e entry) (domain.Transaction, error) {
	chips := a.chips + e.chips
	credit := a.credit.Add(e.credit)
	if chips < 0 || credit.IsNegative() {
		return domain.Transaction{}, domain.ErrInternal("post ledger entry",
			fmt.Errorf("%s would leave chips=%d credit=%s", e.typ, chips, credit))
	}

	a.chips = chips
	a.credit = credit

	tx := domain.Transaction{
		ID:          uuid.New(),
		PlayerID:    a.playerID,
		Type:        e.typ,
		Chips:       e.chips,
		Credit:      e.credit,
		ChipsAfter:  a.chips,
		CreditAfter: a.credit,
		CreatedAt:   a.opts.Clock(),
	}
	a.journal = append(a.journal, tx)
	return tx, nil
}

// refreshExpiryLocked restarts the validity window from now, truncated to midnight.
func (a *Account) refreshExpiryLocked() {
	t := a.opts.Clock().Add(a.opts.CreditValidity)
	y, m, d := t.Date()
	a.expiresAt = time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
