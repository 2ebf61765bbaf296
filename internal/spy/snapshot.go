package spy

import (
	"fmt"

	"github.com/lox/partytable/internal/random"
)

// Snapshot is the serializable state of a deduction session.
type Snapshot struct {
	SecretWord         string           `json:"secretWord"`
	Players            []PlayerSnapshot `json:"players"`
	CurrentPlayerIndex int              `json:"currentPlayerIndex"`
	Phase              string           `json:"phase"`
	CurrentRound       int              `json:"currentRound"`
}

// PlayerSnapshot is one player's persisted fields.
type PlayerSnapshot struct {
	Name         string `json:"name"`
	Role         string `json:"role"`
	HasRevealed  bool   `json:"hasRevealed"`
	IsEliminated bool   `json:"isEliminated"`
}

// Snapshot captures the session for persistence and rendering.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		SecretWord:         g.Word,
		Players:            make([]PlayerSnapshot, len(g.Players)),
		CurrentPlayerIndex: g.Current,
		Phase:              g.Phase.String(),
		CurrentRound:       g.Round,
	}
	for i, p := range g.Players {
		snap.Players[i] = PlayerSnapshot{
			Name:         p.Name,
			Role:         p.Role.String(),
			HasRevealed:  p.HasRevealed,
			IsEliminated: p.Eliminated,
		}
	}
	return snap
}

// Restore rebuilds a session from a snapshot. A snapshot that fails to parse
// is reported as an error so callers can treat the stored session as absent.
func Restore(rng random.Source, snap Snapshot) (*Game, error) {
	phase, err := ParsePhase(snap.Phase)
	if err != nil {
		return nil, err
	}
	if len(snap.Players) == 0 {
		if phase != PhaseSetup {
			return nil, fmt.Errorf("phase %s with no players", phase)
		}
		if snap.CurrentPlayerIndex != 0 {
			return nil, fmt.Errorf("reveal cursor %d with no players", snap.CurrentPlayerIndex)
		}
	} else if snap.CurrentPlayerIndex < 0 || snap.CurrentPlayerIndex >= len(snap.Players) {
		return nil, fmt.Errorf("reveal cursor %d out of range", snap.CurrentPlayerIndex)
	}

	g := &Game{
		rng:     rng,
		Word:    snap.SecretWord,
		Phase:   phase,
		Current: snap.CurrentPlayerIndex,
		Round:   snap.CurrentRound,
	}
	g.Players = make([]*Player, len(snap.Players))
	for i, ps := range snap.Players {
		role, err := parseRole(ps.Role)
		if err != nil {
			return nil, err
		}
		g.Players[i] = &Player{
			Name:        ps.Name,
			Role:        role,
			HasRevealed: ps.HasRevealed,
			Eliminated:  ps.IsEliminated,
		}
	}
	return g, nil
}

func parseRole(s string) (Role, error) {
	switch s {
	case "word":
		return RoleWord, nil
	case "spy":
		return RoleSpy, nil
	}
	return 0, fmt.Errorf("unknown role %q", s)
}
