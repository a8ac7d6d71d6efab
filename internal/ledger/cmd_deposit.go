package ledger

import (
	"fmt"

	"github.com/poobet/roulette/internal/domain"
	"github.com/shopspring/decimal"
)

// Deposit credits money to the account and restarts the validity window.
func (a *Account) Deposit(amount decimal.Decimal) (domain.Transaction, error) {
	if err := domain.ValidatePositiveCredit(amount); err != nil {
		return domain.Transaction{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	tx, err := a.postLocked(entry{typ: domain.TxDeposit, credit: amount})
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("deposit: %w", err)
	}
	a.refreshExpiryLocked()
	return tx, nil
}
