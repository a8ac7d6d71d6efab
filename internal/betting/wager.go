package betting

import (
	"fmt"

	"github.com/poobet/roulette/internal/domain"
)

// Wager is one colour pick with a chip stake inside a round.
type Wager struct {
	ID    int64        `json:"id"`
	Color domain.Color `json:"color"`
	Stake int64        `json:"stake"`
}

// NewWager validates and creates a wager. It does not look at any balance.
func NewWager(id int64, color domain.Color, stake int64) (*Wager, error) {
	if !color.Valid() {
		return nil, domain.ErrValidation(fmt.Sprintf("unknown color %q", color))
	}
	if err := domain.ValidateWagerStake(color, stake); err != nil {
		return nil, err
	}
	return &Wager{ID: id, Color: color, Stake: stake}, nil
}

// Payout returns the chips paid if this wager wins.
func (w Wager) Payout() int64 {
	return w.Stake * domain.PayoutMultiplier(w.Color)
}
