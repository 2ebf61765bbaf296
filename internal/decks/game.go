// Package decks implements the shuffled-deck game: a fixed card catalog
// shuffled once per pass, with per-card player placeholders bound at draw
// time.
package decks

import (
	"regexp"
	"strings"

	"github.com/lox/partytable/internal/engine"
	"github.com/lox/partytable/internal/random"
)

const (
	// MinPlayers and MaxPlayers bound the roster; the caller enforces them.
	MinPlayers = 3
	MaxPlayers = 10
)

var placeholderPattern = regexp.MustCompile(`\{p\d+\}`)

// Game is one running deck session. It holds a shuffled order over the
// catalog and a cursor; 0 <= Index <= len(Order), with Index == len meaning
// the pass is exhausted.
type Game struct {
	rng     random.Source
	catalog Catalog

	Players []string
	Order   []CardID
	Index   int
	Rounds  int
}

// New starts a session: one Fisher-Yates shuffle of the catalog order,
// persisted as the round order.
func New(rng random.Source, catalog Catalog, players []string) *Game {
	g := &Game{rng: rng, catalog: catalog, Players: players}
	g.Order = shuffledOrder(rng, catalog)
	return g
}

func shuffledOrder(rng random.Source, catalog Catalog) []CardID {
	order := make([]CardID, len(catalog))
	for i, card := range catalog {
		order[i] = card.ID
	}
	random.Shuffle(rng, order)
	return order
}

// Draw renders the next card. Exhausting the order reshuffles for a new
// pass and counts a completed round.
func (g *Game) Draw() (Card, string, error) {
	if len(g.Order) == 0 {
		return Card{}, "", engine.Invalidf("the deck is empty")
	}
	if g.Index == len(g.Order) {
		g.Order = shuffledOrder(g.rng, g.catalog)
		g.Index = 0
		g.Rounds++
	}

	card, ok := g.catalog.byID(g.Order[g.Index])
	if !ok {
		return Card{}, "", engine.Invalidf("card %s is not in the catalog", g.Order[g.Index])
	}
	g.Index++
	return card, g.Render(card), nil
}

// Render substitutes the card's placeholders with randomly chosen players.
// Distinct placeholders are collected in first-appearance order and filled
// from a random permutation of the roster, so a card never repeats a player
// while enough players exist. When a card names more slots than there are
// players, the extra slots sample uniformly from the pool, repeats allowed.
func (g *Game) Render(card Card) string {
	tokens := distinctPlaceholders(card.Text)
	if len(tokens) == 0 {
		return card.Text
	}

	perm := g.rng.Perm(len(g.Players))
	poolSize := min(len(tokens), len(g.Players))
	pool := make([]string, poolSize)
	for i := range pool {
		pool[i] = g.Players[perm[i]]
	}

	text := card.Text
	for i, token := range tokens {
		var name string
		if i < len(pool) {
			name = pool[i]
		} else {
			name = pool[g.rng.IntN(len(pool))]
		}
		text = strings.ReplaceAll(text, token, name)
	}
	return text
}

func distinctPlaceholders(text string) []string {
	var tokens []string
	seen := make(map[string]bool)
	for _, token := range placeholderPattern.FindAllString(text, -1) {
		if !seen[token] {
			seen[token] = true
			tokens = append(tokens, token)
		}
	}
	return tokens
}
