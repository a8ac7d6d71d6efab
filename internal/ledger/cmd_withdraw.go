package ledger

import (
	"fmt"

	"github.com/poobet/roulette/internal/domain"
	"github.com/shopspring/decimal"
)

// Withdraw takes money out of the credit balance. The expiry is left as is.
func (a *Account) Withdraw(amount decimal.Decimal) (domain.Transaction, error) {
	if err := domain.ValidatePositiveCredit(amount); err != nil {
		return domain.Transaction{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.credit.LessThan(amount) {
		return domain.Transaction{}, domain.ErrInsufficientCredit(a.credit.StringFixed(2), amount.StringFixed(2))
	}

	tx, err := a.postLocked(entry{typ: domain.TxWithdrawal, credit: amount.Neg()})
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("withdraw: %w", err)
	}
	return tx, nil
}
