package domain

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validIdentity() Identity {
	return Identity{
		FirstName:   "Fulano",
		LastName:    "de Tal",
		Nickname:    "Fulano",
		TaxID:       "111.111.111-11",
		Nationality: "Brasileiro",
		BirthDate:   time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC),
	}
}

// --- Color Tests ---

func TestParseColor(t *testing.T) {
	tests := []struct {
		input   string
		want    Color
		wantErr bool
	}{
		{"Red", Red, false},
		{"red", Red, false},
		{" R ", Red, false},
		{"Vermelho", Red, false},
		{"black", Black, false},
		{"b", Black, false},
		{"Preto", Black, false},
		{"GREEN", Green, false},
		{"g", Green, false},
		{"verde", Green, false},
		{"", "", true},
		{"blue", "", true},
		{"0", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsCode(err, CodeValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColor_Valid(t *testing.T) {
	for _, c := range Colors {
		assert.True(t, c.Valid(), c)
	}
	assert.False(t, Color("").Valid())
	assert.False(t, Color("Blue").Valid())
}

func TestPayoutMultiplier(t *testing.T) {
	assert.Equal(t, int64(14), PayoutMultiplier(Green))
	assert.Equal(t, int64(2), PayoutMultiplier(Red))
	assert.Equal(t, int64(2), PayoutMultiplier(Black))
}

// --- Validator Tests ---

func TestValidateIdentity(t *testing.T) {
	t.Run("valid identity", func(t *testing.T) {
		require.NoError(t, ValidateIdentity(validIdentity()))
	})

	tests := []struct {
		name   string
		mutate func(*Identity)
		errMsg string
	}{
		{"missing first name", func(i *Identity) { i.FirstName = "" }, "FirstName"},
		{"missing last name", func(i *Identity) { i.LastName = "" }, "LastName"},
		{"missing nickname", func(i *Identity) { i.Nickname = "" }, "Nickname"},
		{"nickname too long", func(i *Identity) { i.Nickname = "abcdefghijklmnopqrstuvwxyz0123456789" }, "Nickname"},
		{"cpf without punctuation", func(i *Identity) { i.TaxID = "11111111111" }, "cpf"},
		{"cpf too short", func(i *Identity) { i.TaxID = "111.111.111-1" }, "cpf"},
		{"missing nationality", func(i *Identity) { i.Nationality = "" }, "Nationality"},
		{"missing birth date", func(i *Identity) { i.BirthDate = time.Time{} }, "BirthDate is required"},
		{"birth date in future", func(i *Identity) { i.BirthDate = time.Now().Add(48 * time.Hour) }, "must be in the past"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := validIdentity()
			tt.mutate(&id)
			err := ValidateIdentity(id)
			require.Error(t, err)
			assert.True(t, IsCode(err, CodeValidation))
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidateCurrency(t *testing.T) {
	tests := []struct {
		currency string
		wantErr  bool
	}{
		{"BRL", false},
		{"EUR", false},
		{"brl", true},
		{"BR", true},
		{"BRLX", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.currency, func(t *testing.T) {
			err := ValidateCurrency(tt.currency)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid currency code")
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateStake(t *testing.T) {
	require.NoError(t, ValidateStake(1))
	require.NoError(t, ValidateStake(1_000_000))

	for _, stake := range []int64{0, -1, -9223372036854775808} {
		err := ValidateStake(stake)
		require.Error(t, err)
		assert.True(t, IsCode(err, CodeInvalidStake))
	}
}

func TestValidateWagerStake(t *testing.T) {
	tests := []struct {
		name    string
		color   Color
		stake   int64
		wantErr bool
	}{
		{"green at max", Green, math.MaxInt64 / 14, false},
		{"green above max", Green, math.MaxInt64/14 + 1, true},
		{"red at max", Red, math.MaxInt64 / 2, false},
		{"black above max", Black, math.MaxInt64/2 + 1, true},
		{"green max int", Green, math.MaxInt64, true},
		{"zero", Red, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWagerStake(tt.color, tt.stake)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Positive(t, tt.stake*PayoutMultiplier(tt.color))
				return
			}
			require.Error(t, err)
			assert.True(t, IsCode(err, CodeInvalidStake))
		})
	}
}

func TestValidatePositiveCredit(t *testing.T) {
	require.NoError(t, ValidatePositiveCredit(decimal.RequireFromString("0.01")))

	for _, s := range []string{"0", "-0.01", "-50"} {
		err := ValidatePositiveCredit(decimal.RequireFromString(s))
		require.Error(t, err, s)
		assert.Contains(t, err.Error(), "amount must be positive")
	}
}

// --- AppError Tests ---

func TestAppError_Error(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := ErrNotFound("round", "7")
		assert.Equal(t, "NOT_FOUND: round 7 not found", err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("entropy exhausted")
		err := ErrInternal("draw failed", cause)
		assert.Contains(t, err.Error(), "INTERNAL_ERROR")
		assert.Contains(t, err.Error(), "entropy exhausted")
	})
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := ErrInternal("wrapped", cause)
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestIsCode_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("place wager: %w", ErrDuplicateColor(Red))
	assert.True(t, IsCode(err, CodeDuplicateColor))
	assert.False(t, IsCode(err, CodeInsufficientChips))
	assert.False(t, IsCode(errors.New("plain"), CodeDuplicateColor))
	assert.Equal(t, CodeDuplicateColor, CodeOf(err))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}

func TestErrorFactories(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantCode string
	}{
		{"ErrInvalidStake", ErrInvalidStake(0), "INVALID_STAKE"},
		{"ErrStakeTooLarge", ErrStakeTooLarge(10, 5), "INVALID_STAKE"},
		{"ErrDuplicateColor", ErrDuplicateColor(Green), "DUPLICATE_COLOR"},
		{"ErrInsufficientChips", ErrInsufficientChips(1, 2), "INSUFFICIENT_CHIPS"},
		{"ErrInsufficientCredit", ErrInsufficientCredit("1.00", "2.00"), "INSUFFICIENT_CREDIT"},
		{"ErrConversionThreshold", ErrConversionThreshold("50"), "CONVERSION_THRESHOLD_NOT_MET"},
		{"ErrRoundSealed", ErrRoundSealed(3), "ROUND_SEALED"},
		{"ErrRoundInProgress", ErrRoundInProgress(3), "ROUND_IN_PROGRESS"},
		{"ErrNoOpenRound", ErrNoOpenRound(), "NO_OPEN_ROUND"},
		{"ErrNotFound", ErrNotFound("player", "1"), "NOT_FOUND"},
		{"ErrValidation", ErrValidation("bad input"), "VALIDATION_ERROR"},
		{"ErrInternal", ErrInternal("oops", nil), "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}
