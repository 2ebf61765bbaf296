package spy

import "fmt"

// Phase is a lifecycle stage of a deduction game.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseNames
	PhaseReveal
	PhasePlaying
	PhaseElimination
	PhaseCivilVictory
	PhaseSpyVictory
)

var phaseNames = [...]string{
	"setup", "names", "reveal", "playing", "elimination",
	"civil_victory", "spy_victory",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Terminal reports whether the game is over in this phase.
func (p Phase) Terminal() bool {
	return p == PhaseCivilVictory || p == PhaseSpyVictory
}

// ParsePhase maps a stored phase name back to its Phase.
func ParsePhase(s string) (Phase, error) {
	for i, name := range phaseNames {
		if name == s {
			return Phase(i), nil
		}
	}
	return 0, fmt.Errorf("unknown phase %q", s)
}
