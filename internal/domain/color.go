package domain

import (
	"fmt"
	"math"
	"strings"
)

// Color is a bettable roulette colour.
type Color string

const (
	Red   Color = "Red"
	Black Color = "Black"
	Green Color = "Green"
)

// Colors lists every colour in menu order.
var Colors = []Color{Red, Black, Green}

// Flat-odds multipliers. Green pays 14x, Red and Black pay 2x.
const (
	GreenMultiplier int64 = 14
	EvenMultiplier  int64 = 2
)

// Valid reports whether c is one of Red, Black or Green.
func (c Color) Valid() bool {
	switch c {
	case Red, Black, Green:
		return true
	}
	return false
}

// MaxStake is the largest stake on c whose payout fits in an int64.
func MaxStake(c Color) int64 {
	return math.MaxInt64 / PayoutMultiplier(c)
}

// PayoutMultiplier returns the chips paid per staked chip on a win.
func PayoutMultiplier(c Color) int64 {
	if c == Green {
		return GreenMultiplier
	}
	return EvenMultiplier
}

var colorAliases = map[string]Color{
	"red":      Red,
	"r":        Red,
	"vermelho": Red,
	"black":    Black,
	"b":        Black,
	"preto":    Black,
	"green":    Green,
	"g":        Green,
	"verde":    Green,
}

// ParseColor resolves user input to a Color.
func ParseColor(s string) (Color, error) {
	c, ok := colorAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", ErrValidation(fmt.Sprintf("unknown color %q", s))
	}
	return c, nil
}
