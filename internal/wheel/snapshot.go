package wheel

import (
	"fmt"

	"github.com/lox/partytable/internal/random"
)

// Snapshot is the serializable state of a wheel session.
type Snapshot struct {
	Players            []PlayerStat `json:"players"`
	CurrentPlayerIndex int          `json:"currentPlayerIndex"`
	CurrentBets        []Bet        `json:"currentBets"`
	History            []int        `json:"history"`
	BettingPhase       bool         `json:"bettingPhase"`
}

// Snapshot captures the session for persistence and rendering.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Players:            make([]PlayerStat, len(g.Players)),
		CurrentPlayerIndex: g.Current,
		CurrentBets:        append([]Bet(nil), g.Bets...),
		History:            append([]int(nil), g.History...),
		BettingPhase:       g.BetsOpen(),
	}
	for i, p := range g.Players {
		snap.Players[i] = *p
	}
	return snap
}

// Restore rebuilds a session from a snapshot.
func Restore(rng random.Source, snap Snapshot) (*Game, error) {
	if len(snap.Players) == 0 {
		return nil, fmt.Errorf("snapshot has no players")
	}
	if snap.CurrentPlayerIndex < 0 || snap.CurrentPlayerIndex >= len(snap.Players) {
		return nil, fmt.Errorf("rotation pointer %d out of range", snap.CurrentPlayerIndex)
	}

	g := &Game{
		rng:     rng,
		Current: snap.CurrentPlayerIndex,
		Bets:    append([]Bet(nil), snap.CurrentBets...),
		History: append([]int(nil), snap.History...),
	}
	for i := range snap.Players {
		p := snap.Players[i]
		g.Players = append(g.Players, &p)
	}
	if len(snap.CurrentBets) > len(snap.Players) {
		return nil, fmt.Errorf("%d bets for %d players", len(snap.CurrentBets), len(snap.Players))
	}
	roster := make(map[string]bool, len(snap.Players))
	for _, p := range snap.Players {
		roster[p.Name] = true
	}
	owners := make(map[string]bool, len(snap.CurrentBets))
	for _, b := range snap.CurrentBets {
		if err := b.validate(); err != nil {
			return nil, fmt.Errorf("stored bet: %w", err)
		}
		if !roster[b.Player] {
			return nil, fmt.Errorf("stored bet from unknown player %q", b.Player)
		}
		if owners[b.Player] {
			return nil, fmt.Errorf("duplicate stored bet from %q", b.Player)
		}
		owners[b.Player] = true
	}
	return g, nil
}
