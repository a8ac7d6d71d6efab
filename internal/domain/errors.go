package domain

import (
	"errors"
	"fmt"
)

// Error codes surfaced to callers. The console maps each one to a message.
const (
	CodeInvalidStake        = "INVALID_STAKE"
	CodeDuplicateColor      = "DUPLICATE_COLOR"
	CodeInsufficientChips   = "INSUFFICIENT_CHIPS"
	CodeInsufficientCredit  = "INSUFFICIENT_CREDIT"
	CodeConversionThreshold = "CONVERSION_THRESHOLD_NOT_MET"
	CodeRoundSealed         = "ROUND_SEALED"
	CodeRoundInProgress     = "ROUND_IN_PROGRESS"
	CodeNoOpenRound         = "NO_OPEN_ROUND"
	CodeNotFound            = "NOT_FOUND"
	CodeValidation          = "VALIDATION_ERROR"
	CodeInternal            = "INTERNAL_ERROR"
)

// AppError is the base domain error type.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// IsCode reports whether err, or anything it wraps, is an AppError with code.
func IsCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// CodeOf returns the AppError code carried by err, or CodeInternal.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// Standard domain error constructors.

func ErrInvalidStake(stake int64) *AppError {
	return &AppError{Code: CodeInvalidStake, Message: fmt.Sprintf("stake must be positive, got %d", stake)}
}

func ErrStakeTooLarge(stake, limit int64) *AppError {
	return &AppError{Code: CodeInvalidStake, Message: fmt.Sprintf("stake %d exceeds the maximum of %d", stake, limit)}
}

func ErrDuplicateColor(c Color) *AppError {
	return &AppError{Code: CodeDuplicateColor, Message: fmt.Sprintf("a wager on %s already exists in this round", c)}
}

func ErrInsufficientChips(have, want int64) *AppError {
	return &AppError{Code: CodeInsufficientChips, Message: fmt.Sprintf("insufficient chips: have %d, need %d", have, want)}
}

func ErrInsufficientCredit(have, want string) *AppError {
	return &AppError{Code: CodeInsufficientCredit, Message: fmt.Sprintf("insufficient credit: have %s, need %s", have, want)}
}

func ErrConversionThreshold(minimum string) *AppError {
	return &AppError{Code: CodeConversionThreshold, Message: fmt.Sprintf("at least %s of credit is required to buy chips", minimum)}
}

func ErrRoundSealed(roundID int64) *AppError {
	return &AppError{Code: CodeRoundSealed, Message: fmt.Sprintf("round %d is already sealed", roundID)}
}

func ErrRoundInProgress(roundID int64) *AppError {
	return &AppError{Code: CodeRoundInProgress, Message: fmt.Sprintf("round %d is still collecting wagers", roundID)}
}

func ErrNoOpenRound() *AppError {
	return &AppError{Code: CodeNoOpenRound, Message: "no round is collecting wagers"}
}

func ErrNotFound(entity, id string) *AppError {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

func ErrValidation(msg string) *AppError {
	return &AppError{Code: CodeValidation, Message: msg}
}

func ErrInternal(msg string, cause error) *AppError {
	return &AppError{Code: CodeInternal, Message: msg, Cause: cause}
}
