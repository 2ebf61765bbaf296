package wheel

import (
	"math"
	"strconv"

	"github.com/lox/partytable/internal/engine"
)

// Family is a bet family. Each family has a fixed win probability and a
// fixed payout in drink units; the two rarest families force a full drink
// instead.
type Family string

const (
	// FamilyChance covers red/black/even/odd.
	FamilyChance Family = "chance"
	// FamilyDozen covers 1-12, 13-24 or 25-36.
	FamilyDozen Family = "dozen"
	// FamilySixain covers one of six fixed 6-number bands.
	FamilySixain Family = "sixain"
	// FamilyStraight is a single exact number.
	FamilyStraight Family = "straight"
	// FamilyZero is the implicit bet on pocket 0.
	FamilyZero Family = "zero"
)

// Chance choices.
const (
	PickRed   = "red"
	PickBlack = "black"
	PickEven  = "even"
	PickOdd   = "odd"
)

// Bet is one player's wager for the current round.
type Bet struct {
	Family Family `json:"family"`
	Value  string `json:"value"`
	Player string `json:"playerName"`
}

// probability returns the family's fixed win probability. Scores are derived
// from these constants, never measured empirically.
func (f Family) probability() float64 {
	switch f {
	case FamilyChance:
		return 18.0 / 37.0
	case FamilyDozen:
		return 12.0 / 37.0
	case FamilySixain:
		return 6.0 / 37.0
	default: // straight, zero
		return 1.0 / 37.0
	}
}

// LuckScore is the reward for a winning bet: round((1/p) * 10).
func (f Family) LuckScore() int {
	return int(math.Round(1.0 / f.probability() * 10.0))
}

// DrinkUnits is the losing payout. Zero means the loss forces a full drink.
func (f Family) DrinkUnits() int {
	switch f {
	case FamilyChance:
		return 2
	case FamilyDozen:
		return 4
	case FamilySixain:
		return 6
	default:
		return 0
	}
}

// ForcesFullDrink reports whether a loss on this family is paid with a full
// drink rather than counted units.
func (f Family) ForcesFullDrink() bool {
	return f == FamilyStraight || f == FamilyZero
}

// validate rejects malformed bets before they can join the round.
func (b Bet) validate() error {
	switch b.Family {
	case FamilyChance:
		switch b.Value {
		case PickRed, PickBlack, PickEven, PickOdd:
			return nil
		}
		return engine.Invalidf("unknown chance pick %q", b.Value)
	case FamilyDozen:
		if d, err := strconv.Atoi(b.Value); err != nil || d < 1 || d > 3 {
			return engine.Invalidf("dozen must be 1, 2 or 3, got %q", b.Value)
		}
		return nil
	case FamilySixain:
		if s, err := strconv.Atoi(b.Value); err != nil || s < 1 || s > 6 {
			return engine.Invalidf("sixain must be between 1 and 6, got %q", b.Value)
		}
		return nil
	case FamilyStraight:
		if n, err := strconv.Atoi(b.Value); err != nil || n < 0 || n > 36 {
			return engine.Invalidf("straight number must be between 0 and 36, got %q", b.Value)
		}
		return nil
	case FamilyZero:
		return nil
	}
	return engine.Invalidf("unknown bet family %q", b.Family)
}

// Wins checks the bet against a drawn pocket. Bets never interact; each is
// checked independently against the single draw.
func (b Bet) Wins(pocket int) bool {
	switch b.Family {
	case FamilyChance:
		switch b.Value {
		case PickRed:
			return ColorOf(pocket) == Red
		case PickBlack:
			return ColorOf(pocket) == Black
		case PickEven:
			return pocket != 0 && pocket%2 == 0
		case PickOdd:
			return pocket%2 == 1
		}
		return false
	case FamilyDozen:
		d, _ := strconv.Atoi(b.Value)
		return pocket >= (d-1)*12+1 && pocket <= d*12
	case FamilySixain:
		s, _ := strconv.Atoi(b.Value)
		return pocket >= (s-1)*6+1 && pocket <= s*6
	case FamilyStraight:
		n, _ := strconv.Atoi(b.Value)
		return pocket == n
	case FamilyZero:
		return pocket == 0
	}
	return false
}
