// internal/session/results.go
//
// SQL persistence for finished sessions. The in-memory store (store.go)
// owns live play; a row lands here once a session finishes, which is what
// the mode-selection dashboard reads to show "already played" badges per
// mode per day.

package session

import (
	"context"
	"database/sql"
)

// Result is one finished session, as persisted.
type Result struct {
	ClientID string `json:"-"`
	DayKey   string `json:"dayKey"`
	Mode     string `json:"mode"`
	Attempts int    `json:"attempts"`
	Won      bool   `json:"won"`
}

// Results persists finished sessions to the daily_results table.
type Results struct{ db *sql.DB }

// NewResults constructs a Results store over an opened database handle.
func NewResults(db *sql.DB) *Results { return &Results{db: db} }

// AlreadyPlayed reports whether the client finished (won or lost) the
// given mode on the given day.
func (r *Results) AlreadyPlayed(ctx context.Context, clientID, dayKey, mode string) (bool, error) {
	var cnt int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE client_id=? AND day_key=? AND mode=?`,
		clientID, dayKey, mode,
	).Scan(&cnt)
	return cnt > 0, err
}

// Save records a finished session. A second finish for the same
// (client, day, mode) is ignored, matching the one-game-per-day rule.
func (r *Results) Save(ctx context.Context, res Result) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO daily_results(client_id, day_key, mode, attempts, won)
		 VALUES(?,?,?,?,?)`,
		res.ClientID, res.DayKey, res.Mode, res.Attempts, res.Won,
	)
	return err
}

// Summary returns the client's finished results for one day, keyed by
// mode id. Modes with no row are simply absent.
func (r *Results) Summary(ctx context.Context, clientID, dayKey string) (map[string]Result, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT mode, attempts, won FROM daily_results WHERE client_id=? AND day_key=?`,
		clientID, dayKey,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]Result)
	for rows.Next() {
		res := Result{ClientID: clientID, DayKey: dayKey}
		if err := rows.Scan(&res.Mode, &res.Attempts, &res.Won); err != nil {
			return nil, err
		}
		out[res.Mode] = res
	}
	return out, rows.Err()
}
