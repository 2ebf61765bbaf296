package wheel

import (
	"github.com/lox/partytable/internal/engine"
	"github.com/lox/partytable/internal/random"
)

const (
	// MinPlayers and MaxPlayers bound the roster; the caller enforces them
	// when the session is created.
	MinPlayers = 2
	MaxPlayers = 8
)

// PlayerStat is one player's cumulative record. Only payout resolution
// mutates it, and it persists across rounds within a session.
type PlayerStat struct {
	Name             string `json:"name"`
	DrinkUnits       int    `json:"drinkUnits"`
	ForcedFullDrinks int    `json:"forcedFullDrinks"`
	Wins             int    `json:"wins"`
	Losses           int    `json:"losses"`
	LuckScore        int    `json:"luckScore"`
}

// Game is one running wheel session.
type Game struct {
	rng random.Source

	Players []*PlayerStat
	// Current is the rotation pointer: whose turn it is to bet.
	Current int
	Bets    []Bet
	// History is the append-only record of drawn pockets.
	History []int
}

// New starts a session for the given roster. Roster bounds (2-8) are the
// caller's contract.
func New(rng random.Source, names []string) *Game {
	g := &Game{rng: rng}
	for _, name := range names {
		g.Players = append(g.Players, &PlayerStat{Name: name})
	}
	return g
}

// BetsOpen reports whether the round is still collecting bets.
func (g *Game) BetsOpen() bool {
	return len(g.Bets) < len(g.Players)
}

// Turn returns the player whose bet is due.
func (g *Game) Turn() *PlayerStat {
	return g.Players[g.Current]
}

// PlaceBet submits the current player's bet and advances the rotation.
// Malformed bets are rejected before joining the round and the turn does
// not advance; a player holds at most one bet per round.
func (g *Game) PlaceBet(family Family, value string) error {
	if !g.BetsOpen() {
		return engine.Invalidf("all bets are in; spin the wheel")
	}

	bet := Bet{Family: family, Value: value, Player: g.Turn().Name}
	if err := bet.validate(); err != nil {
		return err
	}

	g.Bets = append(g.Bets, bet)
	g.Current = (g.Current + 1) % len(g.Players)
	return nil
}

// BetResult is the resolution of a single bet against the draw.
type BetResult struct {
	Bet       Bet  `json:"bet"`
	Won       bool `json:"won"`
	Luck      int  `json:"luck,omitempty"`
	Units     int  `json:"units,omitempty"`
	FullDrink bool `json:"fullDrink,omitempty"`
}

// SpinResult describes one resolved draw.
type SpinResult struct {
	Pocket int         `json:"pocket"`
	Color  Color       `json:"color"`
	Bets   []BetResult `json:"bets"`
}

// Spin draws a pocket and resolves the round. It is one logical step: the
// draw, every bet's resolution and the round reset happen together, so no
// mid-spin state is ever observable. Refused while bets are outstanding,
// leaving the bet list untouched.
func (g *Game) Spin() (SpinResult, error) {
	if g.BetsOpen() {
		return SpinResult{}, engine.Invalidf("waiting on %d more bet(s)", len(g.Players)-len(g.Bets))
	}

	pocket := int(g.rng.Float64() * Pockets)
	return g.resolve(pocket), nil
}

// resolve applies the draw to every submitted bet, updates the cumulative
// stats and resets the round.
func (g *Game) resolve(pocket int) SpinResult {
	result := SpinResult{
		Pocket: pocket,
		Color:  ColorOf(pocket),
		Bets:   make([]BetResult, 0, len(g.Bets)),
	}

	for _, bet := range g.Bets {
		stat := g.stat(bet.Player)
		br := BetResult{Bet: bet, Won: bet.Wins(pocket)}

		if br.Won {
			br.Luck = bet.Family.LuckScore()
			stat.Wins++
			stat.LuckScore += br.Luck
		} else {
			stat.Losses++
			if bet.Family.ForcesFullDrink() {
				br.FullDrink = true
				stat.ForcedFullDrinks++
			} else {
				br.Units = bet.Family.DrinkUnits()
				stat.DrinkUnits += br.Units
			}
		}
		result.Bets = append(result.Bets, br)
	}

	g.Bets = nil
	g.Current = 0
	g.History = append(g.History, pocket)
	return result
}

func (g *Game) stat(name string) *PlayerStat {
	for _, p := range g.Players {
		if p.Name == name {
			return p
		}
	}
	// Bets only enter the round through PlaceBet, which stamps a roster name.
	panic("wheel: bet from unknown player " + name)
}
