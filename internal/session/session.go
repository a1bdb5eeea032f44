// internal/session/session.go
//
// Game session lifecycle for one (dayKey, mode) pair.
// States: empty → in_progress → finished(won) | finished(lost).
//
// Transition guards:
//   - A guess already present in the attempt list (by entity id) is
//     rejected without mutating state.
//   - Any guess while finished is rejected without mutating state.
//
// A session is superseded, never deleted, when the day key rolls over:
// the store keeps old (day, mode) keys so the mode dashboard can show
// "already played" badges for past days.

package session

import (
	"errors"

	"github.com/pokedleplus/go-server/internal/catalog"
	"github.com/pokedleplus/go-server/internal/game"
)

// DefaultMaxAttempts is the attempt ceiling used when none is configured.
const DefaultMaxAttempts = 15

var (
	// ErrAlreadyTried rejects a duplicate guess for this session.
	ErrAlreadyTried = errors.New("session: entity already tried")
	// ErrFinished rejects guesses on a finished session.
	ErrFinished = errors.New("session: game finished")
)

// Attempt is one scored guess. Immutable once recorded.
// Snapshot carries the guessed entity's attributes so a saved session can
// be rendered without re-fetching the catalog.
type Attempt struct {
	EntityID  int            `json:"entityId"`
	Name      string         `json:"name"`
	Sprite    string         `json:"sprite"`
	Snapshot  catalog.Entity `json:"snapshot"`
	Columns   game.Columns   `json:"columns"`
	IsCorrect bool           `json:"isCorrect"`
}

// State is the session for one (dayKey, mode) pair.
// Attempts are ordered newest first.
type State struct {
	DayKey   string    `json:"dayKey"`
	Mode     string    `json:"mode"`
	Attempts []Attempt `json:"attempts"`
	Finished bool      `json:"finished"`
	Won      bool      `json:"won"`
}

// NewState returns an empty session for a (dayKey, mode) pair.
func NewState(dayKey, mode string) *State {
	return &State{DayKey: dayKey, Mode: mode, Attempts: []Attempt{}}
}

// Tried reports whether entityID already appears in the attempt list.
func (s *State) Tried(entityID int) bool {
	for _, a := range s.Attempts {
		if a.EntityID == entityID {
			return true
		}
	}
	return false
}

// CanGuess checks the transition guards for a prospective guess without
// mutating state. Returns nil when the guess may proceed.
func (s *State) CanGuess(entityID int) error {
	if s.Finished {
		return ErrFinished
	}
	if s.Tried(entityID) {
		return ErrAlreadyTried
	}
	return nil
}

// Record appends a fully-built attempt to the front of the list and
// updates the finished/won flags. maxAttempts <= 0 falls back to
// DefaultMaxAttempts.
//
// The attempt must be complete before Record is called: a partial failure
// upstream (e.g. enrichment lookup) must not reach this point, so a
// session never holds a corrupt attempt.
func (s *State) Record(a Attempt, maxAttempts int) error {
	if err := s.CanGuess(a.EntityID); err != nil {
		return err
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	s.Attempts = append([]Attempt{a}, s.Attempts...)
	if a.IsCorrect {
		s.Finished, s.Won = true, true
	} else if len(s.Attempts) >= maxAttempts {
		s.Finished = true
	}
	return nil
}

// Status reports a coarse string representation of the session state.
func (s *State) Status() string {
	switch {
	case s.Finished && s.Won:
		return "won"
	case s.Finished:
		return "lost"
	case len(s.Attempts) > 0:
		return "in_progress"
	default:
		return "empty"
	}
}
