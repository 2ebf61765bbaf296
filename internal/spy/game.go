// Package spy implements the social-deduction elimination game: hidden role
// assignment, a phase-gated reveal sequence, vote-driven eliminations and a
// majority win check.
package spy

import (
	"strings"

	"github.com/lox/partytable/internal/engine"
	"github.com/lox/partytable/internal/random"
)

const (
	// MinPlayers and MaxPlayers bound the roster at the setup gate.
	MinPlayers = 4
	MaxPlayers = 10
)

// Game is one running deduction session. Mutating methods validate their
// phase guard first and mutate nothing on rejection.
type Game struct {
	rng random.Source

	Word    string
	Players []*Player
	Phase   Phase

	// Current is the reveal cursor while in PhaseReveal.
	Current int
	Round   int
}

// New returns a fresh session in the setup phase.
func New(rng random.Source) *Game {
	return &Game{rng: rng, Phase: PhaseSetup}
}

// StartNaming moves setup to name entry for count players.
func (g *Game) StartNaming(count int) error {
	if g.Phase != PhaseSetup {
		return engine.Invalidf("cannot pick player count during %s", g.Phase)
	}
	if count < MinPlayers || count > MaxPlayers {
		return engine.Invalidf("player count must be between %d and %d, got %d", MinPlayers, MaxPlayers, count)
	}
	g.Players = make([]*Player, count)
	for i := range g.Players {
		g.Players[i] = &Player{}
	}
	g.Phase = PhaseNames
	return nil
}

// SetName records the name for one player slot.
func (g *Game) SetName(i int, name string) error {
	if g.Phase != PhaseNames {
		return engine.Invalidf("cannot set names during %s", g.Phase)
	}
	if i < 0 || i >= len(g.Players) {
		return engine.Invalidf("no player slot %d", i)
	}
	g.Players[i].Name = strings.TrimSpace(name)
	return nil
}

// ConfirmNames assigns roles and the secret word once every slot is named,
// then opens the reveal sequence at player 0.
func (g *Game) ConfirmNames() error {
	if g.Phase != PhaseNames {
		return engine.Invalidf("cannot confirm names during %s", g.Phase)
	}
	names := make([]string, len(g.Players))
	for i, p := range g.Players {
		if p.Name == "" {
			return engine.Invalidf("player %d has no name", i+1)
		}
		names[i] = p.Name
	}

	g.Players = AssignRoles(g.rng, names)
	g.Word = SecretWord(g.rng)
	g.Phase = PhaseReveal
	g.Current = 0
	return nil
}

// RevealCard is what the current player is shown when they reveal.
type RevealCard struct {
	Player string
	Role   Role
	// Word is empty for spies.
	Word string
}

// Reveal flips the card for the current player and advances the gate. Each
// player must reveal before the next card is shown; the last reveal starts
// play at round 1.
func (g *Game) Reveal() (RevealCard, error) {
	if g.Phase != PhaseReveal {
		return RevealCard{}, engine.Invalidf("cannot reveal during %s", g.Phase)
	}

	p := g.Players[g.Current]
	p.HasRevealed = true

	card := RevealCard{Player: p.Name, Role: p.Role}
	if p.Role == RoleWord {
		card.Word = g.Word
	}

	if g.Current == len(g.Players)-1 {
		g.Phase = PhasePlaying
		g.Round = 1
	} else {
		g.Current++
	}
	return card, nil
}

// StartVote opens an elimination vote.
func (g *Game) StartVote() error {
	if g.Phase != PhasePlaying {
		return engine.Invalidf("cannot start a vote during %s", g.Phase)
	}
	g.Phase = PhaseElimination
	return nil
}

// Eliminate removes one living player and evaluates the win condition.
// On Continue the game returns to play and the round advances; terminal
// outcomes leave the round untouched.
func (g *Game) Eliminate(i int) (Outcome, error) {
	if g.Phase != PhaseElimination {
		return Continue, engine.Invalidf("cannot eliminate during %s", g.Phase)
	}
	if i < 0 || i >= len(g.Players) {
		return Continue, engine.Invalidf("no player %d", i)
	}
	if g.Players[i].Eliminated {
		return Continue, engine.Invalidf("%s is already eliminated", g.Players[i].Name)
	}

	g.Players[i].Eliminated = true

	outcome := Evaluate(g.Players)
	switch outcome {
	case CivilVictory:
		g.Phase = PhaseCivilVictory
	case SpyVictory:
		g.Phase = PhaseSpyVictory
	default:
		g.Phase = PhasePlaying
		g.Round++
	}
	return outcome, nil
}

// SpyGuessed ends the game in a spy victory: a spy named the secret word.
func (g *Game) SpyGuessed() error {
	if g.Phase != PhasePlaying {
		return engine.Invalidf("the spy can only guess during %s", PhasePlaying)
	}
	g.Phase = PhaseSpyVictory
	return nil
}
