// internal/session/codec.go
//
// Versioned serialization for saved sessions.
//
// Earlier clients stored bare state blobs under several ad hoc key
// formats with fallback probing. That is collapsed here into one scheme:
// an explicit {version, payload} envelope under a single key layout, so
// future Attempt fields can be added without breaking old saves. Bare
// legacy payloads (no version field) still decode and are re-encoded as
// the current version on the next save.

package session

import (
	"encoding/json"
	"fmt"
)

// CodecVersion is the current envelope version.
const CodecVersion = 1

// keyPrefix namespaces saved sessions.
const keyPrefix = "pokedleplus"

// StorageKey returns the canonical persistence key for a session:
// pokedleplus:v1:<dayKey>:<mode>.
func StorageKey(dayKey, mode string) string {
	return fmt.Sprintf("%s:v%d:%s:%s", keyPrefix, CodecVersion, dayKey, mode)
}

// envelope wraps a serialized State with its schema version.
type envelope struct {
	Version int             `json:"version"`
	Payload json.RawMessage `json:"payload"`
}

// Encode serializes a session as a versioned envelope.
func Encode(s *State) ([]byte, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Version: CodecVersion, Payload: payload})
}

// Decode parses a saved session, accepting both the current envelope and
// bare legacy payloads. Attempt order is preserved exactly as stored.
func Decode(data []byte) (*State, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err == nil && env.Version > 0 {
		if env.Version > CodecVersion {
			return nil, fmt.Errorf("session: unsupported envelope version %d", env.Version)
		}
		return decodeState(env.Payload)
	}
	// Legacy: the whole document is the state.
	return decodeState(data)
}

func decodeState(data []byte) (*State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("session: decode state: %w", err)
	}
	if s.Attempts == nil {
		s.Attempts = []Attempt{}
	}
	return &s, nil
}
