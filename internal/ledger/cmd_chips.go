package ledger

import (
	"fmt"
	"math"

	"github.com/poobet/roulette/internal/domain"
)

// DeductChips removes a stake from the chip balance.
func (a *Account) DeductChips(n int64) error {
	if err := domain.ValidateStake(n); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.chips < n {
		return domain.ErrInsufficientChips(a.chips, n)
	}

	if _, err := a.postLocked(entry{typ: domain.TxBet, chips: -n}); err != nil {
		return fmt.Errorf("deduct chips: %w", err)
	}
	return nil
}

// CreditChips adds a payout to the chip balance. A zero payout records a
// settlement_loss entry so every settled round leaves a trace.
func (a *Account) CreditChips(n int64) error {
	if n < 0 {
		return domain.ErrValidation(fmt.Sprintf("chip credit must not be negative, got %d", n))
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if n > math.MaxInt64-a.chips {
		return domain.ErrValidation(fmt.Sprintf("chip credit %d would overflow a balance of %d", n, a.chips))
	}

	typ := domain.TxWin
	if n == 0 {
		typ = domain.TxSettlementLoss
	}
	if _, err := a.postLocked(entry{typ: typ, chips: n}); err != nil {
		return fmt.Errorf("credit chips: %w", err)
	}
	return nil
}
