package spy

import (
	"github.com/lox/partytable/internal/random"
)

// Role is a player's hidden allegiance.
type Role int

const (
	// RoleWord holds the secret word.
	RoleWord Role = iota
	// RoleSpy does not know the word and must avoid detection.
	RoleSpy
)

func (r Role) String() string {
	return [...]string{"word", "spy"}[r]
}

// Player is one participant in a deduction game.
type Player struct {
	Name        string
	Role        Role
	HasRevealed bool
	Eliminated  bool
}

// Alive reports whether the player is still in the game.
func (p *Player) Alive() bool { return !p.Eliminated }

// SpyCount returns the number of spies for a roster of n players:
// max(1, n/3). For n < 3 this still yields one spy, which leaves a
// one-player roster with a spy and no word-holders; rosters that small are
// rejected upstream by StartNaming.
func SpyCount(n int) int {
	c := n / 3
	if c < 1 {
		c = 1
	}
	return c
}

// AssignRoles partitions names into spies and word-holders. A role multiset
// of SpyCount(n) spy tags and n-SpyCount(n) word tags is shuffled and zipped
// to the names in input order; shuffling the roles rather than the players is
// what randomizes the assignment. AssignRoles performs no roster bound check;
// callers own the 4-10 player contract.
func AssignRoles(rng random.Source, names []string) []*Player {
	n := len(names)
	roles := make([]Role, 0, n)
	for i := 0; i < SpyCount(n); i++ {
		roles = append(roles, RoleSpy)
	}
	for len(roles) < n {
		roles = append(roles, RoleWord)
	}
	random.Shuffle(rng, roles)

	players := make([]*Player, n)
	for i, name := range names {
		players[i] = &Player{Name: name, Role: roles[i]}
	}
	return players
}
