package server

import (
	"time"

	"github.com/google/uuid"

	"github.com/lox/partytable/internal/decks"
	"github.com/lox/partytable/internal/engine"
	"github.com/lox/partytable/internal/session"
	"github.com/lox/partytable/internal/spy"
	"github.com/lox/partytable/internal/wheel"
)

// rejected reports the error to the client. Validation errors are the
// user's problem; anything else is ours.
func (c *Connection) rejected(err error) {
	if engine.IsValidation(err) {
		c.sendError(ErrorCodeValidation, err.Error())
		return
	}
	c.logger.Error("Action failed", "error", err)
	c.sendError(ErrorCodeInternal, "something went wrong")
}

// persist writes the session snapshot. Writes are best-effort and
// last-writer-wins: a failure is logged, not surfaced, because a reload
// simply resumes from the last completed write.
func (c *Connection) persist(game string, payload any) {
	key := session.Key{User: c.UserID(), Game: game}
	if err := c.srv.store.Save(key, payload); err != nil {
		c.logger.Error("Failed to persist session", "key", key, "error", err)
	}
}

func (c *Connection) handleHello(data HelloData) {
	userID := data.UserID
	if userID == "" {
		userID = uuid.NewString()
	}
	c.setUserID(userID)

	// One-time cold resume of any stored sessions for this user.
	resumed := c.resumeSessions(userID)

	c.reply(MessageTypeHelloOK, HelloOKData{UserID: userID, Resumed: resumed})
	if c.games.spy != nil {
		c.sendState(GameSpy, c.games.spy.Snapshot())
	}
	if c.games.wheel != nil {
		c.sendState(GameWheel, c.games.wheel.Snapshot())
	}
	if c.games.deck != nil {
		c.sendState(GameDeck, c.games.deck.Snapshot())
	}
}

// resumeSessions restores whatever the store still has for this user. A
// session that fails to restore is indistinguishable from no session at all.
func (c *Connection) resumeSessions(userID string) []string {
	var resumed []string

	var spySnap spy.Snapshot
	if found, err := c.srv.store.Load(session.Key{User: userID, Game: GameSpy}, &spySnap); err != nil {
		c.logger.Error("Failed to read stored session", "game", GameSpy, "error", err)
	} else if found {
		if g, err := spy.Restore(c.srv.newSource(), spySnap); err == nil {
			c.games.spy = g
			resumed = append(resumed, GameSpy)
		}
	}

	var wheelSnap wheel.Snapshot
	if found, err := c.srv.store.Load(session.Key{User: userID, Game: GameWheel}, &wheelSnap); err != nil {
		c.logger.Error("Failed to read stored session", "game", GameWheel, "error", err)
	} else if found {
		if g, err := wheel.Restore(c.srv.newSource(), wheelSnap); err == nil {
			c.games.wheel = g
			resumed = append(resumed, GameWheel)
		}
	}

	var deckSnap decks.Snapshot
	if found, err := c.srv.store.Load(session.Key{User: userID, Game: GameDeck}, &deckSnap); err != nil {
		c.logger.Error("Failed to read stored session", "game", GameDeck, "error", err)
	} else if found {
		if g, err := decks.Restore(c.srv.newSource(), decks.Default, deckSnap); err == nil {
			c.games.deck = g
			resumed = append(resumed, GameDeck)
		}
	}

	return resumed
}

// Social-deduction game.

func (c *Connection) handleSpyStart(data SpyStartData) {
	if c.games.spy == nil || c.games.spy.Phase.Terminal() {
		c.games.spy = spy.New(c.srv.newSource())
	}
	if err := c.games.spy.StartNaming(data.PlayerCount); err != nil {
		c.rejected(err)
		return
	}
	c.persist(GameSpy, c.games.spy.Snapshot())
	c.sendState(GameSpy, c.games.spy.Snapshot())
}

func (c *Connection) spyGame() *spy.Game {
	if c.games.spy == nil {
		c.sendError(ErrorCodeNoSession, "no deduction game in progress")
		return nil
	}
	return c.games.spy
}

func (c *Connection) handleSpyName(data SpyNameData) {
	g := c.spyGame()
	if g == nil {
		return
	}
	if err := g.SetName(data.Index, data.Name); err != nil {
		c.rejected(err)
		return
	}
	c.persist(GameSpy, g.Snapshot())
	c.sendState(GameSpy, g.Snapshot())
}

func (c *Connection) handleSpyConfirm() {
	g := c.spyGame()
	if g == nil {
		return
	}
	if err := g.ConfirmNames(); err != nil {
		c.rejected(err)
		return
	}
	c.persist(GameSpy, g.Snapshot())
	c.sendState(GameSpy, g.Snapshot())
}

func (c *Connection) handleSpyReveal() {
	g := c.spyGame()
	if g == nil {
		return
	}
	card, err := g.Reveal()
	if err != nil {
		c.rejected(err)
		return
	}
	c.persist(GameSpy, g.Snapshot())
	c.reply(MessageTypeRevealCard, RevealCardData{
		Player: card.Player,
		Role:   card.Role.String(),
		Word:   card.Word,
	})
	c.sendState(GameSpy, g.Snapshot())
}

func (c *Connection) handleSpyVote() {
	g := c.spyGame()
	if g == nil {
		return
	}
	if err := g.StartVote(); err != nil {
		c.rejected(err)
		return
	}
	c.persist(GameSpy, g.Snapshot())
	c.sendState(GameSpy, g.Snapshot())
}

func (c *Connection) handleSpyEliminate(data SpyEliminateData) {
	g := c.spyGame()
	if g == nil {
		return
	}
	outcome, err := g.Eliminate(data.Index)
	if err != nil {
		c.rejected(err)
		return
	}
	c.persist(GameSpy, g.Snapshot())
	c.reply(MessageTypeVoteOutcome, VoteOutcomeData{
		Eliminated: g.Players[data.Index].Name,
		Outcome:    outcome.String(),
	})
	c.sendState(GameSpy, g.Snapshot())
}

func (c *Connection) handleSpyGuessed() {
	g := c.spyGame()
	if g == nil {
		return
	}
	if err := g.SpyGuessed(); err != nil {
		c.rejected(err)
		return
	}
	c.persist(GameSpy, g.Snapshot())
	c.sendState(GameSpy, g.Snapshot())
}

// Wheel game.

func (c *Connection) handleWheelStart(data WheelStartData) {
	if len(data.Players) < wheel.MinPlayers || len(data.Players) > wheel.MaxPlayers {
		c.sendError(ErrorCodeValidation, "the wheel takes 2 to 8 players")
		return
	}
	for _, name := range data.Players {
		if name == "" {
			c.sendError(ErrorCodeValidation, "every player needs a name")
			return
		}
	}

	c.games.wheel = wheel.New(c.srv.newSource(), data.Players)
	c.persist(GameWheel, c.games.wheel.Snapshot())
	c.sendState(GameWheel, c.games.wheel.Snapshot())
}

func (c *Connection) wheelGame() *wheel.Game {
	if c.games.wheel == nil {
		c.sendError(ErrorCodeNoSession, "no wheel game in progress")
		return nil
	}
	return c.games.wheel
}

func (c *Connection) handleWheelBet(data WheelBetData) {
	g := c.wheelGame()
	if g == nil {
		return
	}
	if err := g.PlaceBet(wheel.Family(data.Family), data.Value); err != nil {
		c.rejected(err)
		return
	}
	c.persist(GameWheel, g.Snapshot())
	c.sendState(GameWheel, g.Snapshot())
}

// handleWheelSpin computes and persists the outcome immediately, then holds
// the reply back for the configured spin delay so the client can animate.
// Nothing mid-spin is observable or persisted.
func (c *Connection) handleWheelSpin() {
	g := c.wheelGame()
	if g == nil {
		return
	}
	result, err := g.Spin()
	if err != nil {
		c.rejected(err)
		return
	}
	c.persist(GameWheel, g.Snapshot())

	snapshot := g.Snapshot()
	delay := time.Duration(c.srv.spinDelayMs) * time.Millisecond
	c.srv.clock.AfterFunc(delay, func() {
		c.reply(MessageTypeSpinResult, result)
		c.sendState(GameWheel, snapshot)
	})
}

// Deck game.

func (c *Connection) handleDeckStart(data DeckStartData) {
	if len(data.Players) < decks.MinPlayers || len(data.Players) > decks.MaxPlayers {
		c.sendError(ErrorCodeValidation, "the deck takes 3 to 10 players")
		return
	}
	for _, name := range data.Players {
		if name == "" {
			c.sendError(ErrorCodeValidation, "every player needs a name")
			return
		}
	}

	c.games.deck = decks.New(c.srv.newSource(), decks.Default, data.Players)
	c.persist(GameDeck, c.games.deck.Snapshot())
	c.sendState(GameDeck, c.games.deck.Snapshot())
}

func (c *Connection) handleDeckDraw() {
	if c.games.deck == nil {
		c.sendError(ErrorCodeNoSession, "no deck game in progress")
		return
	}
	g := c.games.deck
	card, text, err := g.Draw()
	if err != nil {
		c.rejected(err)
		return
	}
	c.persist(GameDeck, g.Snapshot())
	c.reply(MessageTypeCard, CardData{
		ID:       string(card.ID),
		Category: card.Category,
		Text:     text,
	})
	c.sendState(GameDeck, g.Snapshot())
}

// handleQuit abandons a session wholesale; in-flight actions cannot be
// individually cancelled.
func (c *Connection) handleQuit(data QuitData) {
	switch data.Game {
	case GameSpy:
		c.games.spy = nil
	case GameWheel:
		c.games.wheel = nil
	case GameDeck:
		c.games.deck = nil
	default:
		c.sendError(ErrorCodeBadMessage, "unknown game: "+data.Game)
		return
	}

	key := session.Key{User: c.UserID(), Game: data.Game}
	if err := c.srv.store.Delete(key); err != nil {
		c.logger.Error("Failed to delete session", "key", key, "error", err)
	}
	c.sendState(data.Game, nil)
}
