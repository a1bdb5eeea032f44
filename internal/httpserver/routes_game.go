// internal/httpserver/routes_game.go
//
// Game endpoints:
//   - GET  /meta              → day key + mode config for the client.
//   - GET  /search            → paged name-prefix autocomplete.
//   - POST /guess             → score a guess against the daily target.
//   - GET  /pokemon/{id}      → full entity attributes (display row).
//   - GET  /session           → the caller's session for today's game.
//   - GET  /sessions/summary  → per-mode "already played" badges for today.
//
// The daily target is re-derived on every guess from (secret, dayKey,
// mode, pool); it is never stored and never appears in a response.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/pokedleplus/go-server/internal/catalog"
	"github.com/pokedleplus/go-server/internal/daily"
	"github.com/pokedleplus/go-server/internal/game"
	"github.com/pokedleplus/go-server/internal/modes"
	"github.com/pokedleplus/go-server/internal/session"
)

// mountGame registers all game routes.
func (s *Server) mountGame() {
	s.r.Get("/meta", s.handleMeta)
	s.r.With(s.withRateLimit).Get("/search", s.handleSearch)
	s.r.With(s.withRateLimit).Post("/guess", s.handleGuess)
	s.r.Get("/pokemon/{id}", s.handlePokemon)
	s.r.Get("/session", s.handleSession)
	s.r.Get("/sessions/summary", s.handleSummary)
}

// -----------------------------------------------------------------------------
// /meta

// metaRes is returned by GET /meta.
type metaRes struct {
	DayKey      string `json:"dayKey"`
	Mode        string `json:"mode"`
	Gens        []int  `json:"gens"`
	TZ          string `json:"tz"`
	MaxAttempts int    `json:"maxAttempts"`
}

func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	m := modes.Resolve(r.URL.Query().Get("mode"))
	_ = json.NewEncoder(w).Encode(metaRes{
		DayKey:      s.dayKeyNow(),
		Mode:        m.ID,
		Gens:        m.Gens,
		TZ:          s.cfg.Timezone,
		MaxAttempts: s.cfg.MaxAttempts,
	})
}

// -----------------------------------------------------------------------------
// /search

// searchItem is one autocomplete suggestion.
type searchItem struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Sprite string `json:"sprite"`
}

// searchRes is returned by GET /search.
type searchRes struct {
	Items      []searchItem `json:"items"`
	HasMore    bool         `json:"hasMore"`
	NextOffset int          `json:"nextOffset"`
}

// handleSearch serves paged case-insensitive prefix matches on name.
// An empty query is an empty page, not an error.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		_ = json.NewEncoder(w).Encode(searchRes{Items: []searchItem{}})
		return
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}
	m := modes.Resolve(r.URL.Query().Get("mode"))

	rows, err := s.catalog.Search(r.Context(), q, m.Gens, offset, catalog.DefaultPageSize)
	if err != nil {
		log.Error().Err(err).Str("q", q).Msg("search catalog")
		writeErr(w, http.StatusInternalServerError, "SEARCH_FAILED", "")
		return
	}

	items := make([]searchItem, 0, len(rows))
	for _, e := range rows {
		items = append(items, searchItem{ID: e.ID, Name: e.Name, Sprite: catalog.SpriteURL(e.ID)})
	}
	_ = json.NewEncoder(w).Encode(searchRes{
		Items:      items,
		HasMore:    len(items) == catalog.DefaultPageSize,
		NextOffset: offset + len(items),
	})
}

// -----------------------------------------------------------------------------
// /guess

// guessReq is the request payload for POST /guess.
type guessReq struct {
	GuessID int    `json:"guessId"`
	DayKey  string `json:"dayKey"`
	Mode    string `json:"mode"`
}

// guessRes is the response payload for POST /guess.
type guessRes struct {
	DayKey     string          `json:"dayKey"`
	Mode       string          `json:"mode"`
	Comparison game.Comparison `json:"comparison"`
}

// handleGuess scores one guess against the daily target.
//
// Order matters: input validation before any lookup, catalog resolution
// before comparison, session guards before recording, and the attempt is
// recorded only once every field of it is available — a partial failure
// can reject the request but never store a corrupt attempt.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "INVALID_INPUT", "malformed JSON body")
		return
	}
	if req.GuessID <= 0 || req.DayKey == "" {
		writeErr(w, http.StatusBadRequest, "INVALID_INPUT", "guessId and dayKey are required")
		return
	}
	m := modes.Resolve(req.Mode)
	clientID := s.ensureClientID(w, r)

	pool, err := s.catalog.PoolIDs(r.Context(), m.Gens)
	if err != nil {
		log.Error().Err(err).Str("mode", m.ID).Msg("load pool")
		writeErr(w, http.StatusInternalServerError, "GUESS_FAILED", "")
		return
	}

	targetID, err := daily.SelectTarget(s.cfg.Secret, req.DayKey, m.ID, pool)
	if err != nil {
		if errors.Is(err, daily.ErrEmptyPool) {
			writeErr(w, http.StatusBadRequest, "EMPTY_POOL", "mode filter matches no entities")
			return
		}
		log.Error().Err(err).Str("mode", m.ID).Msg("select target")
		writeErr(w, http.StatusInternalServerError, "GUESS_FAILED", "")
		return
	}

	guess, err := s.catalog.ByID(r.Context(), req.GuessID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeErr(w, http.StatusNotFound, "POKEMON_NOT_FOUND", "")
			return
		}
		log.Error().Err(err).Int("id", req.GuessID).Msg("load guess")
		writeErr(w, http.StatusInternalServerError, "GUESS_FAILED", "")
		return
	}
	target, err := s.catalog.ByID(r.Context(), targetID)
	if err != nil {
		// The pool said this id exists; treat disappearance as internal.
		log.Error().Err(err).Int("id", targetID).Msg("load target")
		writeErr(w, http.StatusInternalServerError, "GUESS_FAILED", "")
		return
	}

	cmp := game.Compare(target, guess)

	// Build the attempt fully before touching the session.
	attempt := session.Attempt{
		EntityID:  guess.ID,
		Name:      guess.Name,
		Sprite:    catalog.SpriteURL(guess.ID),
		Snapshot:  *guess,
		Columns:   cmp.Columns,
		IsCorrect: cmp.IsCorrect,
	}

	var finished session.Result
	var justFinished bool
	err = s.sessions.Mutate(r.Context(), clientID, req.DayKey, m.ID, func(st *session.State) error {
		if err := st.Record(attempt, s.cfg.MaxAttempts); err != nil {
			return err
		}
		if st.Finished {
			justFinished = true
			finished = session.Result{
				ClientID: clientID,
				DayKey:   st.DayKey,
				Mode:     st.Mode,
				Attempts: len(st.Attempts),
				Won:      st.Won,
			}
		}
		return nil
	})
	switch {
	case errors.Is(err, session.ErrAlreadyTried):
		writeErr(w, http.StatusConflict, "ALREADY_TRIED", "entity already guessed today")
		return
	case errors.Is(err, session.ErrFinished):
		writeErr(w, http.StatusConflict, "GAME_FINISHED", "no more guesses for this day")
		return
	case err != nil:
		log.Error().Err(err).Msg("record attempt")
		writeErr(w, http.StatusInternalServerError, "GUESS_FAILED", "")
		return
	}

	// Persist the finished result (best effort, non-fatal).
	if justFinished && s.results != nil {
		if err := s.results.Save(r.Context(), finished); err != nil {
			log.Warn().Err(err).Str("client", clientID).Msg("save daily result")
		}
	}

	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(guessRes{DayKey: req.DayKey, Mode: m.ID, Comparison: cmp})
}

// -----------------------------------------------------------------------------
// /pokemon/{id}

// handlePokemon returns the full attribute set for one entity, used to
// enrich a successful guess into a display row. Catalog rows are
// immutable, so the response carries a long public cache header.
func (s *Server) handlePokemon(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeErr(w, http.StatusBadRequest, "INVALID_INPUT", "id must be a positive integer")
		return
	}
	e, err := s.catalog.ByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeErr(w, http.StatusNotFound, "POKEMON_NOT_FOUND", "")
			return
		}
		log.Error().Err(err).Int("id", id).Msg("load pokemon")
		writeErr(w, http.StatusInternalServerError, "POKEMON_FAILED", "")
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_ = json.NewEncoder(w).Encode(e)
}

// -----------------------------------------------------------------------------
// /session

// sessionRes wraps the caller's state in the versioned storage envelope
// so a client can persist the body verbatim under the returned key.
type sessionRes struct {
	Key   string          `json:"key"`
	State json.RawMessage `json:"state"`
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	m := modes.Resolve(r.URL.Query().Get("mode"))
	clientID := s.ensureClientID(w, r)
	dayKey := s.dayKeyNow()

	st := s.sessions.Get(r.Context(), clientID, dayKey, m.ID)
	if st == nil {
		st = session.NewState(dayKey, m.ID)
	}
	blob, err := session.Encode(st)
	if err != nil {
		log.Error().Err(err).Msg("encode session")
		writeErr(w, http.StatusInternalServerError, "SESSION_FAILED", "")
		return
	}
	_ = json.NewEncoder(w).Encode(sessionRes{
		Key:   session.StorageKey(dayKey, m.ID),
		State: blob,
	})
}

// -----------------------------------------------------------------------------
// /sessions/summary

// summaryRow is one mode's badge on the mode-selection dashboard.
type summaryRow struct {
	Mode     string `json:"mode"`
	Gens     []int  `json:"gens"`
	Status   string `json:"status"` // empty | in_progress | won | lost
	Attempts int    `json:"attempts"`
}

// handleSummary reports, for every mode, whether the caller has played
// today. Live sessions take precedence; persisted results fill in play
// that predates this process.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	clientID := s.ensureClientID(w, r)
	dayKey := s.dayKeyNow()

	var persisted map[string]session.Result
	if s.results != nil {
		var err error
		persisted, err = s.results.Summary(r.Context(), clientID, dayKey)
		if err != nil {
			log.Error().Err(err).Msg("load summary")
			writeErr(w, http.StatusInternalServerError, "SUMMARY_FAILED", "")
			return
		}
	}

	out := make([]summaryRow, 0, len(modes.All()))
	for _, m := range modes.All() {
		row := summaryRow{Mode: m.ID, Gens: m.Gens, Status: "empty"}
		if st := s.sessions.Get(r.Context(), clientID, dayKey, m.ID); st != nil {
			row.Status = st.Status()
			row.Attempts = len(st.Attempts)
		} else if res, ok := persisted[m.ID]; ok {
			row.Attempts = res.Attempts
			if res.Won {
				row.Status = "won"
			} else {
				row.Status = "lost"
			}
		}
		out = append(out, row)
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"dayKey": dayKey, "modes": out})
}
