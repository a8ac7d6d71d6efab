package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType enumerates all account journal entry types.
type TransactionType string

const (
	// Credit
	TxDeposit    TransactionType = "credit_deposit"
	TxWithdrawal TransactionType = "credit_withdrawal"

	// Conversion
	TxCreditToChips TransactionType = "credit_to_chips"
	TxChipsToCredit TransactionType = "chips_to_credit"

	// Betting
	TxBet            TransactionType = "bet"
	TxWin            TransactionType = "win"
	TxSettlementLoss TransactionType = "settlement_loss"
)

// Transaction is an append-only account journal entry. Chips and Credit are
// signed deltas; the *After fields snapshot the balances once it is applied.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	PlayerID    int64           `json:"player_id"`
	Type        TransactionType `json:"type"`
	Chips       int64           `json:"chips"`
	Credit      decimal.Decimal `json:"credit"`
	ChipsAfter  int64           `json:"chips_after"`
	CreditAfter decimal.Decimal `json:"credit_after"`
	CreatedAt   time.Time       `json:"created_at"`
}
