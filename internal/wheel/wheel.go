// Package wheel models the single-zero roulette wheel: its physical pocket
// order, the colour of every number, and the draw.
package wheel

import (
	"context"
	"fmt"

	"github.com/poobet/roulette/internal/domain"
)

// Pockets is the number of slots on the wheel.
const Pockets = 37

// Layout is the physical order of the numbers around the wheel, starting at 0.
var Layout = [Pockets]int{
	0, 32, 15, 19, 4, 21, 2, 25, 17, 34, 6, 27, 13, 36, 11, 30, 8, 23, 10,
	5, 24, 16, 33, 1, 20, 14, 31, 9, 22, 18, 29, 7, 28, 12, 35, 3, 26,
}

var (
	redNumbers   = []int{1, 3, 5, 7, 9, 12, 14, 16, 18, 19, 21, 23, 25, 27, 30, 32, 34, 36}
	blackNumbers = []int{2, 4, 6, 8, 10, 11, 13, 15, 17, 20, 22, 24, 26, 28, 29, 31, 33, 35}

	redSet   = toSet(redNumbers)
	blackSet = toSet(blackNumbers)
)

func toSet(nums []int) map[int]struct{} {
	s := make(map[int]struct{}, len(nums))
	for _, n := range nums {
		s[n] = struct{}{}
	}
	return s
}

// Classify returns the colour of a wheel number. Anything outside the Red and
// Black sets is Green, which on a valid wheel is only 0.
func Classify(number int) domain.Color {
	if _, ok := redSet[number]; ok {
		return domain.Red
	}
	if _, ok := blackSet[number]; ok {
		return domain.Black
	}
	return domain.Green
}

// RedNumbers returns a copy of the red numbers in ascending order.
func RedNumbers() []int { return append([]int(nil), redNumbers...) }

// BlackNumbers returns a copy of the black numbers in ascending order.
func BlackNumbers() []int { return append([]int(nil), blackNumbers...) }

// IndexOf returns the layout index holding number, or -1.
func IndexOf(number int) int {
	for i, n := range Layout {
		if n == number {
			return i
		}
	}
	return -1
}

// Pocket is the result of one draw.
type Pocket struct {
	Index  int          `json:"index"`
	Number int          `json:"number"`
	Color  domain.Color `json:"color"`
}

// Source supplies uniformly distributed integers in [0, n).
type Source interface {
	Intn(ctx context.Context, n int) (int, error)
}

// Wheel draws pockets from a Source.
type Wheel struct {
	src Source
}

// New creates a wheel backed by src.
func New(src Source) *Wheel {
	return &Wheel{src: src}
}

// Draw spins the wheel once.
func (w *Wheel) Draw(ctx context.Context) (Pocket, error) {
	idx, err := w.src.Intn(ctx, Pockets)
	if err != nil {
		return Pocket{}, domain.ErrInternal("draw wheel position", err)
	}
	if idx < 0 || idx >= Pockets {
		return Pocket{}, domain.ErrInternal("draw wheel position", fmt.Errorf("index %d outside [0,%d)", idx, Pockets))
	}
	number := Layout[idx]
	return Pocket{Index: idx, Number: number, Color: Classify(number)}, nil
}
