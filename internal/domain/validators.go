package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	cpfRegex      = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
	currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return cpfRegex.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register cpf validation: %v", err))
	}
	return v
}

// ValidateIdentity checks the registration fields of a player.
func ValidateIdentity(id Identity) error {
	if err := validate.Struct(id); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
			}
			return ErrValidation(strings.Join(msgs, "; "))
		}
		return ErrValidation(err.Error())
	}
	if id.BirthDate.IsZero() {
		return ErrValidation("BirthDate is required")
	}
	if id.BirthDate.After(time.Now()) {
		return ErrValidation("BirthDate must be in the past")
	}
	return nil
}

// ValidateCurrency checks if a currency code is ISO 4217.
func ValidateCurrency(currency string) error {
	if !currencyRegex.MatchString(currency) {
		return fmt.Errorf("invalid currency code: %s", currency)
	}
	return nil
}

// ValidateStake checks that a chip stake is positive.
func ValidateStake(stake int64) error {
	if stake <= 0 {
		return ErrInvalidStake(stake)
	}
	return nil
}

// ValidateWagerStake checks that a stake on c is positive and that its payout
// fits in an int64.
func ValidateWagerStake(c Color, stake int64) error {
	if err := ValidateStake(stake); err != nil {
		return err
	}
	if limit := MaxStake(c); stake > limit {
		return ErrStakeTooLarge(stake, limit)
	}
	return nil
}

// ValidatePositiveCredit checks that a credit amount is positive.
func ValidatePositiveCredit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrValidation(fmt.Sprintf("amount must be positive, got %s", amount.String()))
	}
	return nil
}
