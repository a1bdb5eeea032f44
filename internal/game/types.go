// internal/game/types.go
//
// Core type definitions for the comparison engine.
// Defines:
//   - Verdict: per-column result of a guess.
//   - Columns/Comparison: the full scored result for one guess.

package game

// Verdict is the evaluation result for a single attribute column.
//
// For ordinal columns the convention is fixed: VerdictHigher means the
// guessed value is ABOVE the target, so the UI must render a "go lower"
// cue (and vice versa for VerdictLower).
type Verdict string

const (
	VerdictCorrect Verdict = "correct"
	VerdictPresent Verdict = "present" // right type, wrong slot
	VerdictAbsent  Verdict = "absent"
	VerdictHigher  Verdict = "higher" // guess above target
	VerdictLower   Verdict = "lower"  // guess below target
)

// Columns holds one verdict per displayed attribute.
type Columns struct {
	Type1     Verdict `json:"type1"`
	Type2     Verdict `json:"type2"`
	Gen       Verdict `json:"gen"`
	Habitat   Verdict `json:"habitat"`
	Color     Verdict `json:"color"`
	Evolution Verdict `json:"evolution"`
	Height    Verdict `json:"height"`
	Weight    Verdict `json:"weight"`
}

// Comparison is the scored result of one guess against the daily target.
// IsCorrect is the win condition and is decided by id equality alone,
// never by aggregating column verdicts.
type Comparison struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Sprite    string  `json:"sprite"`
	IsCorrect bool    `json:"isCorrect"`
	Columns   Columns `json:"columns"`
}
