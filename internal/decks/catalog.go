package decks

// CardID identifies a catalog card.
type CardID string

// Card is one deck entry: a category tag and a text template with zero or
// more positional placeholders ({p1}, {p2}, ...) bound to players at draw
// time. The catalog is immutable; sessions hold a shuffled order over it,
// never a copy.
type Card struct {
	ID       CardID `json:"id"`
	Category string `json:"category"`
	Text     string `json:"text"`
}

// Catalog is the static card set a deck game plays through.
type Catalog []Card

// byID returns the card with the given id.
func (c Catalog) byID(id CardID) (Card, bool) {
	for _, card := range c {
		if card.ID == id {
			return card, true
		}
	}
	return Card{}, false
}

// Default is the built-in party deck.
var Default = Catalog{
	{ID: "dare-01", Category: "dare", Text: "{p1} swaps seats with {p2}."},
	{ID: "dare-02", Category: "dare", Text: "{p1} speaks in an accent until their next turn."},
	{ID: "dare-03", Category: "dare", Text: "{p1} lets {p2} post anything on their story."},
	{ID: "drink-01", Category: "drink", Text: "Everyone wearing black drinks 2."},
	{ID: "drink-02", Category: "drink", Text: "{p1} hands out 3 sips."},
	{ID: "drink-03", Category: "drink", Text: "{p1} and {p2} finish their drinks together."},
	{ID: "drink-04", Category: "drink", Text: "Last person to raise a hand drinks 4."},
	{ID: "vote-01", Category: "vote", Text: "Vote: who would survive longest on a desert island? Loser drinks 3."},
	{ID: "vote-02", Category: "vote", Text: "Vote: {p1} or {p2} - who tells better stories? The other drinks 2."},
	{ID: "never-01", Category: "never", Text: "Never have I ever missed a flight. Drink if you have."},
	{ID: "never-02", Category: "never", Text: "Never have I ever ghosted someone. Drink if you have."},
	{ID: "game-01", Category: "game", Text: "{p1} starts a word chain. First to hesitate drinks 3."},
	{ID: "game-02", Category: "game", Text: "Categories: {p1} picks a topic. First to repeat or blank drinks 2."},
	{ID: "game-03", Category: "game", Text: "{p1}, {p2} and {p3} hold a thumb war tournament. Loser drinks 2."},
	{ID: "rule-01", Category: "rule", Text: "{p1} invents a rule that lasts until the deck runs out."},
	{ID: "rule-02", Category: "rule", Text: "No first names until {p1}'s next turn. Offenders drink 1."},
}
