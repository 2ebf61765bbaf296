package spy

// Outcome is the terminal check after an elimination.
type Outcome int

const (
	// Continue means neither side has won yet.
	Continue Outcome = iota
	// CivilVictory means every spy has been eliminated.
	CivilVictory
	// SpyVictory means the spies reached parity or guessed the word.
	SpyVictory
)

func (o Outcome) String() string {
	return [...]string{"continue", "civil_victory", "spy_victory"}[o]
}

// Evaluate decides the board outcome. Precedence matters: the zero-spies
// check runs before the parity check, so a board can never resolve as a spy
// victory once the last spy is gone.
func Evaluate(players []*Player) Outcome {
	var aliveSpies, aliveCivils int
	for _, p := range players {
		if !p.Alive() {
			continue
		}
		if p.Role == RoleSpy {
			aliveSpies++
		} else {
			aliveCivils++
		}
	}

	switch {
	case aliveSpies == 0:
		return CivilVictory
	case aliveSpies >= aliveCivils:
		return SpyVictory
	default:
		return Continue
	}
}
