package spy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func board(aliveSpies, aliveCivils, deadSpies, deadCivils int) []*Player {
	var players []*Player
	add := func(role Role, count int, dead bool) {
		for i := 0; i < count; i++ {
			players = append(players, &Player{Role: role, Eliminated: dead})
		}
	}
	add(RoleSpy, aliveSpies, false)
	add(RoleWord, aliveCivils, false)
	add(RoleSpy, deadSpies, true)
	add(RoleWord, deadCivils, true)
	return players
}

func TestEvaluatePrecedence(t *testing.T) {
	assert.Equal(t, CivilVictory, Evaluate(board(0, 3, 1, 0)))
	assert.Equal(t, SpyVictory, Evaluate(board(2, 1, 0, 2)))
	assert.Equal(t, Continue, Evaluate(board(1, 2, 0, 1)))
}

func TestEvaluateZeroSpiesWinsBeforeParity(t *testing.T) {
	// With no living players of either role, the zero-spies rule still
	// fires first.
	assert.Equal(t, CivilVictory, Evaluate(board(0, 0, 2, 2)))
}

func TestEvaluateExactParityIsSpyVictory(t *testing.T) {
	assert.Equal(t, SpyVictory, Evaluate(board(1, 1, 0, 2)))
}

func TestEvaluateIgnoresEliminatedPlayers(t *testing.T) {
	// Dead spies don't count toward parity.
	assert.Equal(t, Continue, Evaluate(board(1, 3, 2, 0)))
}
