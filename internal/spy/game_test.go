package spy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/partytable/internal/engine"
	"github.com/lox/partytable/internal/random"
)

func newNamedGame(t *testing.T, n int) *Game {
	t.Helper()
	g := New(random.New(1))
	require.NoError(t, g.StartNaming(n))
	for i, name := range roster(n) {
		require.NoError(t, g.SetName(i, name))
	}
	require.NoError(t, g.ConfirmNames())
	return g
}

func revealAll(t *testing.T, g *Game) {
	t.Helper()
	for range g.Players {
		_, err := g.Reveal()
		require.NoError(t, err)
	}
}

func TestStartNamingBounds(t *testing.T) {
	for _, n := range []int{0, 1, 3, 11} {
		g := New(random.New(1))
		err := g.StartNaming(n)
		assert.True(t, engine.IsValidation(err), "n=%d", n)
		assert.Equal(t, PhaseSetup, g.Phase, "rejected transition must not mutate")
		assert.Empty(t, g.Players)
	}

	g := New(random.New(1))
	require.NoError(t, g.StartNaming(4))
	assert.Equal(t, PhaseNames, g.Phase)
	assert.Len(t, g.Players, 4)
}

func TestConfirmNamesRequiresEveryName(t *testing.T) {
	g := New(random.New(1))
	require.NoError(t, g.StartNaming(4))
	require.NoError(t, g.SetName(0, "ana"))
	require.NoError(t, g.SetName(1, "bo"))
	require.NoError(t, g.SetName(2, "   ")) // whitespace is not a name
	require.NoError(t, g.SetName(3, "dee"))

	err := g.ConfirmNames()
	assert.True(t, engine.IsValidation(err))
	assert.Equal(t, PhaseNames, g.Phase)
	assert.Empty(t, g.Word, "no word drawn on rejection")
}

func TestRevealGateIsSequential(t *testing.T) {
	g := newNamedGame(t, 5)
	assert.Equal(t, PhaseReveal, g.Phase)
	assert.Equal(t, 0, g.Current)

	for i := 0; i < 4; i++ {
		card, err := g.Reveal()
		require.NoError(t, err)
		assert.Equal(t, g.Players[i].Name, card.Player)
		assert.True(t, g.Players[i].HasRevealed)
		assert.Equal(t, i+1, g.Current, "gate advances one player at a time")
		assert.Equal(t, PhaseReveal, g.Phase)
	}

	// Last reveal starts play.
	_, err := g.Reveal()
	require.NoError(t, err)
	assert.Equal(t, PhasePlaying, g.Phase)
	assert.Equal(t, 1, g.Round)
}

func TestRevealCardHidesWordFromSpies(t *testing.T) {
	g := newNamedGame(t, 6)
	for range g.Players {
		card, err := g.Reveal()
		require.NoError(t, err)
		if card.Role == RoleSpy {
			assert.Empty(t, card.Word)
		} else {
			assert.Equal(t, g.Word, card.Word)
		}
	}
}

func TestEliminationContinuesAndAdvancesRound(t *testing.T) {
	g := newNamedGame(t, 9) // 3 spies, 6 word-holders
	revealAll(t, g)

	require.NoError(t, g.StartVote())
	assert.Equal(t, PhaseElimination, g.Phase)

	// Eliminate a word-holder: 3 spies vs 5 civils, game continues.
	idx := indexOfRole(g, RoleWord)
	outcome, err := g.Eliminate(idx)
	require.NoError(t, err)
	assert.Equal(t, Continue, outcome)
	assert.Equal(t, PhasePlaying, g.Phase)
	assert.Equal(t, 2, g.Round)
}

func TestEliminationTerminalDoesNotAdvanceRound(t *testing.T) {
	g := newNamedGame(t, 4) // 1 spy, 3 word-holders
	revealAll(t, g)

	require.NoError(t, g.StartVote())
	outcome, err := g.Eliminate(indexOfRole(g, RoleSpy))
	require.NoError(t, err)
	assert.Equal(t, CivilVictory, outcome)
	assert.Equal(t, PhaseCivilVictory, g.Phase)
	assert.Equal(t, 1, g.Round, "terminal outcome leaves the round untouched")
}

func TestEliminationToSpyParity(t *testing.T) {
	g := newNamedGame(t, 6) // 2 spies, 4 word-holders
	revealAll(t, g)

	// Eliminate two word-holders: 2 spies vs 2 civils is a spy victory.
	require.NoError(t, g.StartVote())
	_, err := g.Eliminate(indexOfRole(g, RoleWord))
	require.NoError(t, err)

	require.NoError(t, g.StartVote())
	outcome, err := g.Eliminate(indexOfRole(g, RoleWord))
	require.NoError(t, err)
	assert.Equal(t, SpyVictory, outcome)
	assert.Equal(t, PhaseSpyVictory, g.Phase)
}

func TestEliminateGuards(t *testing.T) {
	g := newNamedGame(t, 4)
	revealAll(t, g)

	// Not in the elimination phase.
	_, err := g.Eliminate(0)
	assert.True(t, engine.IsValidation(err))

	require.NoError(t, g.StartVote())

	_, err = g.Eliminate(-1)
	assert.True(t, engine.IsValidation(err))
	_, err = g.Eliminate(4)
	assert.True(t, engine.IsValidation(err))

	idx := indexOfRole(g, RoleWord)
	_, err = g.Eliminate(idx)
	require.NoError(t, err)

	// Already eliminated.
	require.NoError(t, g.StartVote())
	_, err = g.Eliminate(idx)
	assert.True(t, engine.IsValidation(err))
	assert.Equal(t, PhaseElimination, g.Phase, "rejected action must not mutate")
}

func TestSpyGuessedEndsGame(t *testing.T) {
	g := newNamedGame(t, 5)
	revealAll(t, g)

	require.NoError(t, g.SpyGuessed())
	assert.Equal(t, PhaseSpyVictory, g.Phase)

	// Terminal phases reject further actions.
	assert.True(t, engine.IsValidation(g.StartVote()))
	assert.True(t, engine.IsValidation(g.SpyGuessed()))
}

func TestSnapshotRoundTrip(t *testing.T) {
	g := newNamedGame(t, 6)
	revealAll(t, g)
	require.NoError(t, g.StartVote())
	_, err := g.Eliminate(indexOfRole(g, RoleWord))
	require.NoError(t, err)

	snap := g.Snapshot()
	restored, err := Restore(random.New(2), snap)
	require.NoError(t, err)

	assert.Equal(t, snap, restored.Snapshot())
}

func TestRestoreRejectsBadSnapshot(t *testing.T) {
	_, err := Restore(random.New(1), Snapshot{Phase: "lunch"})
	assert.Error(t, err)

	_, err = Restore(random.New(1), Snapshot{
		Phase:   "playing",
		Players: []PlayerSnapshot{{Name: "x", Role: "wizard"}},
	})
	assert.Error(t, err)

	// A reveal cursor past the roster would panic the next Reveal.
	_, err = Restore(random.New(1), Snapshot{
		Phase: "reveal",
		Players: []PlayerSnapshot{
			{Name: "ana", Role: "word"},
			{Name: "bo", Role: "spy"},
		},
		CurrentPlayerIndex: 5,
	})
	assert.Error(t, err)

	// An empty roster only makes sense before setup finishes.
	_, err = Restore(random.New(1), Snapshot{Phase: "playing"})
	assert.Error(t, err)
}

func indexOfRole(g *Game, role Role) int {
	for i, p := range g.Players {
		if p.Role == role && p.Alive() {
			return i
		}
	}
	return -1
}
