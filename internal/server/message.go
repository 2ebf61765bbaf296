package server

import (
	"encoding/json"
	"time"
)

// MessageType discriminates websocket messages.
type MessageType string

// Client → server message types.
const (
	MessageTypeHello MessageType = "hello"

	MessageTypeSpyStart     MessageType = "spy_start"
	MessageTypeSpyName      MessageType = "spy_name"
	MessageTypeSpyConfirm   MessageType = "spy_confirm_names"
	MessageTypeSpyReveal    MessageType = "spy_reveal"
	MessageTypeSpyVote      MessageType = "spy_start_vote"
	MessageTypeSpyEliminate MessageType = "spy_eliminate"
	MessageTypeSpyGuessed   MessageType = "spy_guessed"

	MessageTypeWheelStart MessageType = "wheel_start"
	MessageTypeWheelBet   MessageType = "wheel_bet"
	MessageTypeWheelSpin  MessageType = "wheel_spin"

	MessageTypeDeckStart MessageType = "deck_start"
	MessageTypeDeckDraw  MessageType = "deck_draw"

	MessageTypeQuit MessageType = "quit"
)

// Server → client message types.
const (
	MessageTypeHelloOK     MessageType = "hello_ok"
	MessageTypeState       MessageType = "state"
	MessageTypeRevealCard  MessageType = "reveal_card"
	MessageTypeVoteOutcome MessageType = "vote_outcome"
	MessageTypeSpinResult  MessageType = "spin_result"
	MessageTypeCard        MessageType = "card"
	MessageTypeError       MessageType = "error"
)

// Game names used for session keys and state messages.
const (
	GameSpy   = "spy"
	GameWheel = "wheel"
	GameDeck  = "deck"
)

// Message is the websocket envelope.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a message with the current timestamp.
func NewMessage(messageType MessageType, data any) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → server payloads.

type HelloData struct {
	// UserID identifies a returning user; empty means mint a new one.
	UserID string `json:"userId,omitempty"`
}

type SpyStartData struct {
	PlayerCount int `json:"playerCount"`
}

type SpyNameData struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

type SpyEliminateData struct {
	Index int `json:"index"`
}

type WheelStartData struct {
	Players []string `json:"players"`
}

type WheelBetData struct {
	Family string `json:"family"`
	Value  string `json:"value"`
}

type DeckStartData struct {
	Players []string `json:"players"`
}

type QuitData struct {
	Game string `json:"game"`
}

// Server → client payloads.

type HelloOKData struct {
	UserID string `json:"userId"`
	// Resumed lists the games restored from the session store.
	Resumed []string `json:"resumed,omitempty"`
}

type StateData struct {
	Game  string          `json:"game"`
	State json.RawMessage `json:"state"`
}

type RevealCardData struct {
	Player string `json:"player"`
	Role   string `json:"role"`
	Word   string `json:"word,omitempty"`
}

type VoteOutcomeData struct {
	Eliminated string `json:"eliminated"`
	Outcome    string `json:"outcome"`
}

type CardData struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Text     string `json:"text"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes.
const (
	ErrorCodeValidation = "validation"
	ErrorCodeBadMessage = "bad_message"
	ErrorCodeNoSession  = "no_session"
	ErrorCodeInternal   = "internal"
)
