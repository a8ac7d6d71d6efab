// Package betting holds the roulette betting core: wagers, the round state
// machine and payout settlement. It never logs; every failure is returned.
package betting

import (
	"context"
	"fmt"

	"github.com/poobet/roulette/internal/domain"
	"github.com/poobet/roulette/internal/sequence"
	"github.com/poobet/roulette/internal/wheel"
)

// Account is the chip side of a player account as seen by a round.
type Account interface {
	DeductChips(n int64) error
	CreditChips(n int64) error
}

// Drawer produces the pocket a round settles against.
type Drawer interface {
	Draw(ctx context.Context) (wheel.Pocket, error)
}

// State is the lifecycle stage of a round.
type State int

const (
	Collecting State = iota
	Sealed
)

func (s State) String() string {
	switch s {
	case Collecting:
		return "collecting"
	case Sealed:
		return "sealed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Outcome is the settled result of a round.
type Outcome struct {
	RoundID     int64        `json:"round_id"`
	Pocket      wheel.Pocket `json:"pocket"`
	Winner      *Wager       `json:"winner,omitempty"`
	TotalPayout int64        `json:"total_payout"`
	Wagers      []Wager      `json:"wagers"`
}

// Won reports whether one of the wagers matched the drawn colour.
func (o Outcome) Won() bool { return o.Winner != nil }

// DrawnColor is the colour of the drawn pocket.
func (o Outcome) DrawnColor() domain.Color { return o.Pocket.Color }

// Staked sums the stakes of every wager in the round.
func (o Outcome) Staked() int64 {
	var total int64
	for _, w := range o.Wagers {
		total += w.Stake
	}
	return total
}

// Net is the chip delta of the round: payout minus everything staked.
func (o Outcome) Net() int64 { return o.TotalPayout - o.Staked() }

// Summary is one row of a player's round history.
type Summary struct {
	RoundID     int64        `json:"round_id"`
	DrawnColor  domain.Color `json:"drawn_color"`
	WagerCount  int          `json:"wager_count"`
	TotalPayout int64        `json:"total_payout"`
}

// Round collects at most one wager per colour, then seals exactly once.
type Round struct {
	id       int64
	account  Account
	drawer   Drawer
	wagerIDs sequence.Generator

	wagers  map[domain.Color]*Wager
	order   []domain.Color
	state   State
	drawn   *wheel.Pocket
	outcome *Outcome
}

// NewRound opens a round in the Collecting state.
func NewRound(id int64, account Account, drawer Drawer, wagerIDs sequence.Generator) *Round {
	return &Round{
		id:       id,
		account:  account,
		drawer:   drawer,
		wagerIDs: wagerIDs,
		wagers:   make(map[domain.Color]*Wager, len(domain.Colors)),
		state:    Collecting,
	}
}

// ID returns the round id.
func (r *Round) ID() int64 { return r.id }

// State returns the lifecycle stage.
func (r *Round) State() State { return r.state }

// Sealed reports whether the draw has happened.
func (r *Round) Sealed() bool { return r.state == Sealed }

// AddWager stakes chips on a colour. The chips leave the account immediately.
// A failed call changes neither the round nor the account.
func (r *Round) AddWager(color domain.Color, stake int64) (*Wager, error) {
	if r.state != Collecting || r.drawn != nil {
		return nil, domain.ErrRoundSealed(r.id)
	}
	if !color.Valid() {
		return nil, domain.ErrValidation(fmt.Sprintf("unknown color %q", color))
	}
	if err := domain.ValidateWagerStake(color, stake); err != nil {
		return nil, err
	}
	if _, taken := r.wagers[color]; taken {
		return nil, domain.ErrDuplicateColor(color)
	}

	if err := r.account.DeductChips(stake); err != nil {
		return nil, fmt.Errorf("round %d wager: %w", r.id, err)
	}

	w := &Wager{ID: r.wagerIDs.Next(), Color: color, Stake: stake}
	r.wagers[color] = w
	r.order = append(r.order, color)

	cp := *w
	return &cp, nil
}

// Seal draws the wheel, pays the winning wager if any, and closes the round.
// If the draw fails the round stays Collecting and can be sealed again. If the
// payout fails the drawn pocket is kept, no more wagers are accepted, and the
// next Seal settles against the same pocket.
func (r *Round) Seal(ctx context.Context) (*Outcome, error) {
	if r.state != Collecting {
		return nil, domain.ErrRoundSealed(r.id)
	}

	if r.drawn == nil {
		pocket, err := r.drawer.Draw(ctx)
		if err != nil {
			return nil, fmt.Errorf("round %d draw: %w", r.id, err)
		}
		r.drawn = &pocket
	}
	pocket := *r.drawn

	out := &Outcome{
		RoundID: r.id,
		Pocket:  pocket,
		Wagers:  r.Wagers(),
	}
	if w, ok := r.wagers[pocket.Color]; ok {
		winner := *w
		out.Winner = &winner
		out.TotalPayout = winner.Payout()
	}

	if err := r.account.CreditChips(out.TotalPayout); err != nil {
		return nil, fmt.Errorf("round %d payout: %w", r.id, err)
	}

	r.state = Sealed
	r.outcome = out

	res := *out
	return &res, nil
}

// Wagers returns the wagers in placement order.
func (r *Round) Wagers() []Wager {
	out := make([]Wager, 0, len(r.order))
	for _, c := range r.order {
		out = append(out, *r.wagers[c])
	}
	return out
}

// Wager returns the wager on color, if one was placed.
func (r *Round) Wager(color domain.Color) (Wager, bool) {
	w, ok := r.wagers[color]
	if !ok {
		return Wager{}, false
	}
	return *w, true
}

// Staked sums the chips committed to this round so far.
func (r *Round) Staked() int64 {
	var total int64
	for _, w := range r.wagers {
		total += w.Stake
	}
	return total
}

// Outcome returns the settled result, or nil while collecting.
func (r *Round) Outcome() *Outcome {
	if r.outcome == nil {
		return nil
	}
	out := *r.outcome
	return &out
}

// Summary returns the history row for a sealed round. A round that is still
// collecting reports an empty drawn colour and zero payout.
func (r *Round) Summary() Summary {
	s := Summary{RoundID: r.id, WagerCount: len(r.wagers)}
	if r.outcome != nil {
		s.DrawnColor = r.outcome.Pocket.Color
		s.TotalPayout = r.outcome.TotalPayout
	}
	return s
}
