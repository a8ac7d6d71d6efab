package ledger

import (
	"fmt"
	"math"

	"github.com/poobet/roulette/internal/domain"
	"github.com/shopspring/decimal"
)

// ConvertCreditToChips buys as many whole chips as amount covers. Only the
// cost of those chips leaves the credit balance; the remainder stays.
func (a *Account) ConvertCreditToChips(amount decimal.Decimal) (domain.Transaction, error) {
	if err := domain.ValidatePositiveCredit(amount); err != nil {
		return domain.Transaction{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	price := a.opts.ChipPrice
	if a.credit.LessThan(price) {
		return domain.Transaction{}, domain.ErrConversionThreshold(price.String())
	}
	if a.credit.LessThan(amount) {
		return domain.Transaction{}, domain.ErrInsufficientCredit(a.credit.StringFixed(2), amount.StringFixed(2))
	}

	whole := amount.Div(price).Floor()
	if whole.GreaterThan(decimal.NewFromInt(math.MaxInt64 - a.chips)) {
		return domain.Transaction{}, domain.ErrValidation(fmt.Sprintf(
			"converting %s would exceed the chip limit of %d", amount.StringFixed(2), int64(math.MaxInt64)))
	}
	chips := whole.IntPart()
	if chips <= 0 {
		return domain.Transaction{}, domain.ErrConversionThreshold(price.String())
	}
	cost := price.Mul(decimal.NewFromInt(chips))

	tx, err := a.postLocked(entry{typ: domain.TxCreditToChips, chips: chips, credit: cost.Neg()})
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("convert credit to chips: %w", err)
	}
	return tx, nil
}

// ConvertChipsToCredit cashes chips out at the chip price. The credit inflow
// restarts the validity window like a deposit.
func (a *Account) ConvertChipsToCredit(n int64) (domain.Transaction, error) {
	if n <= 0 {
		return domain.Transaction{}, domain.ErrValidation(fmt.Sprintf("chips to convert must be positive, got %d", n))
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.chips < n {
		return domain.Transaction{}, domain.ErrInsufficientChips(a.chips, n)
	}

	value := a.opts.ChipPrice.Mul(decimal.NewFromInt(n))
	tx, err := a.postLocked(entry{typ: domain.TxChipsToCredit, chips: -n, credit: value})
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("convert chips to credit: %w", err)
	}
	a.refreshExpiryLocked()
	return tx, nil
}
