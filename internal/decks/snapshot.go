package decks

import (
	"fmt"

	"github.com/lox/partytable/internal/random"
)

// Snapshot is the serializable state of a deck session.
type Snapshot struct {
	Players          []string `json:"players"`
	DeckOrder        []CardID `json:"deckOrder"`
	CurrentCardIndex int      `json:"currentCardIndex"`
	RoundsPlayed     int      `json:"roundsPlayed"`
}

// Snapshot captures the session for persistence and rendering.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Players:          append([]string(nil), g.Players...),
		DeckOrder:        append([]CardID(nil), g.Order...),
		CurrentCardIndex: g.Index,
		RoundsPlayed:     g.Rounds,
	}
}

// Restore rebuilds a session from a snapshot against the given catalog.
func Restore(rng random.Source, catalog Catalog, snap Snapshot) (*Game, error) {
	if snap.CurrentCardIndex < 0 || snap.CurrentCardIndex > len(snap.DeckOrder) {
		return nil, fmt.Errorf("card index %d out of range", snap.CurrentCardIndex)
	}
	seen := make(map[CardID]bool, len(snap.DeckOrder))
	for _, id := range snap.DeckOrder {
		if _, ok := catalog.byID(id); !ok {
			return nil, fmt.Errorf("stored order references unknown card %s", id)
		}
		if seen[id] {
			return nil, fmt.Errorf("stored order repeats card %s", id)
		}
		seen[id] = true
	}
	return &Game{
		rng:     rng,
		catalog: catalog,
		Players: append([]string(nil), snap.Players...),
		Order:   append([]CardID(nil), snap.DeckOrder...),
		Index:   snap.CurrentCardIndex,
		Rounds:  snap.RoundsPlayed,
	}, nil
}
