// Package session persists game sessions so a cold start resumes the last
// fully-completed action. Stored payloads are wrapped in a versioned
// envelope; anything that fails to decode or match the expected schema is
// reported as absent rather than an error, so gameplay falls back to a
// fresh setup instead of a partial recovery.
package session

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Schema is the current envelope schema version. Bump it when a snapshot
// shape changes incompatibly; older stored sessions then load as absent.
const Schema = 1

// Key namespaces one session per user per game.
type Key struct {
	User string
	Game string
}

func (k Key) String() string {
	return k.User + "/" + k.Game
}

func (k Key) validate() error {
	for _, part := range []string{k.User, k.Game} {
		if part == "" || strings.ContainsAny(part, "/\\") || strings.Contains(part, "..") {
			return fmt.Errorf("invalid session key %q", k)
		}
	}
	return nil
}

// Store is durable per-user, per-game session storage. Writes are
// last-writer-wins and idempotent.
type Store interface {
	// Save persists the payload for key, replacing any previous session.
	Save(key Key, payload any) error

	// Load decodes the stored payload into `into`. A missing, corrupted or
	// schema-mismatched session reports found=false with a nil error.
	Load(key Key, into any) (found bool, err error)

	// Delete removes the stored session, if any.
	Delete(key Key) error

	Close() error
}

type envelope struct {
	Schema  int             `json:"schema"`
	Game    string          `json:"game"`
	SavedAt time.Time       `json:"savedAt"`
	Payload json.RawMessage `json:"payload"`
}

func seal(key Key, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal session payload: %w", err)
	}
	return json.Marshal(envelope{
		Schema:  Schema,
		Game:    key.Game,
		SavedAt: time.Now().UTC(),
		Payload: raw,
	})
}

// open validates and decodes an envelope. Any mismatch means absent.
func open(key Key, data []byte, into any) bool {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return false
	}
	if env.Schema != Schema || env.Game != key.Game {
		return false
	}
	return json.Unmarshal(env.Payload, into) == nil
}
