// internal/session/codec_test.go

package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	s := NewState("2026-08-29", "gen3")
	require.NoError(t, s.Record(attempt(252, false), 15))
	require.NoError(t, s.Record(attempt(255, false), 15))
	require.NoError(t, s.Record(attempt(258, true), 15))

	blob, err := Encode(s)
	require.NoError(t, err)

	got, err := Decode(blob)
	require.NoError(t, err)
	assert.Equal(t, s, got)

	// Attempt order survives exactly (newest first).
	assert.Equal(t, 258, got.Attempts[0].EntityID)
	assert.Equal(t, 252, got.Attempts[2].EntityID)
}

func TestEncodeWritesCurrentVersion(t *testing.T) {
	blob, err := Encode(NewState("2026-08-29", "classic"))
	require.NoError(t, err)

	var env struct {
		Version int `json:"version"`
	}
	require.NoError(t, json.Unmarshal(blob, &env))
	assert.Equal(t, CodecVersion, env.Version)
}

func TestDecodeLegacyBarePayload(t *testing.T) {
	// Old clients stored the state directly, with no envelope.
	legacy := []byte(`{"dayKey":"2026-08-28","mode":"classic","attempts":[{"entityId":25,"isCorrect":false}],"finished":false,"won":false}`)

	got, err := Decode(legacy)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-28", got.DayKey)
	require.Len(t, got.Attempts, 1)
	assert.Equal(t, 25, got.Attempts[0].EntityID)
}

func TestDecodeRejectsFutureVersion(t *testing.T) {
	_, err := Decode([]byte(`{"version":99,"payload":{}}`))
	assert.Error(t, err)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestDecodeNormalizesNilAttempts(t *testing.T) {
	got, err := Decode([]byte(`{"version":1,"payload":{"dayKey":"2026-08-29","mode":"classic"}}`))
	require.NoError(t, err)
	assert.NotNil(t, got.Attempts)
	assert.Empty(t, got.Attempts)
}

func TestStorageKey(t *testing.T) {
	assert.Equal(t, "pokedleplus:v1:2026-08-29:gen1", StorageKey("2026-08-29", "gen1"))
}
