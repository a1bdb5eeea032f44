// internal/httpserver/server.go
//
// HTTP server wiring for the Pokedle+ backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/catalog".
//   - Game endpoints mounted in routes_game.go.
//   - Rate limiting of the guess/search entry points.
//   - Anonymous client cookie (stable identity for sessions + limits).
//   - Error taxonomy → HTTP status mapping.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so the cookie works).
//   - Internal failures surface as opaque 5xx kinds; raw error text (and
//     in particular anything configuration-related) is never echoed.

package httpserver

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/pokedleplus/go-server/internal/catalog"
	"github.com/pokedleplus/go-server/internal/config"
	"github.com/pokedleplus/go-server/internal/modes"
	"github.com/pokedleplus/go-server/internal/ratelimit"
	"github.com/pokedleplus/go-server/internal/session"
)

// Server bundles router, catalog, session stores, and the rate limiter.
type Server struct {
	r        *chi.Mux
	catalog  catalog.Store
	sessions *session.Store
	results  *session.Results // nil when running without a database
	limiter  *ratelimit.Limiter
	cfg      config.Config
	loc      *time.Location
	now      func() time.Time // injectable clock for tests
}

// New constructs a Server, installs middleware, and registers routes.
// counter may be nil (in-process rate limiting only).
func New(cfg config.Config, cat catalog.Store, results *session.Results, counter ratelimit.Counter) (*Server, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	s := &Server{
		r:        chi.NewRouter(),
		catalog:  cat,
		sessions: session.NewStore(),
		results:  results,
		limiter:  ratelimit.NewLimiter(counter, cfg.RateLimitMax, cfg.RateLimitWindow()),
		cfg:      cfg,
		loc:      loc,
		now:      time.Now,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"pokedleplus-go","endpoints":["/health","/meta","/search","POST /guess","/pokemon/{id}","/session","/sessions/summary"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Debug: per-mode pool sizes
	s.r.Get("/debug/catalog", func(w http.ResponseWriter, r *http.Request) {
		out := map[string]int{}
		for _, m := range modes.All() {
			pool, err := s.catalog.PoolIDs(r.Context(), m.Gens)
			if err != nil {
				writeErr(w, http.StatusInternalServerError, "CATALOG_FAILED", "")
				return
			}
			out[m.ID] = len(pool)
		}
		_ = json.NewEncoder(w).Encode(out)
	})

	s.mountGame()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"NOT_FOUND","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s, nil
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// dayKeyNow returns the current day key in the configured zone.
func (s *Server) dayKeyNow() string {
	return s.now().In(s.loc).Format("2006-01-02")
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRateLimit enforces the sliding-window limit per client identity
// and stamps X-RateLimit-* headers on every response it passes through.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d := s.limiter.Check(r.Context(), clientIP(r))
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		w.Header().Set("X-RateLimit-Reset", d.ResetAt.UTC().Format(time.RFC3339))
		if !d.Allowed {
			w.Header().Set("Retry-After", strconv.Itoa(d.RetryAfter(s.now())))
			writeErr(w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED",
				"Too many requests. Please try again later.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP extracts the client address set by the RealIP middleware.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// --------------------------- client identity -------------------------------

const clientCookieName = "pokedle_client"

// ensureClientID returns an existing client cookie or sets a new one.
// The value is a random identifier, not a credential: it only groups a
// guest's sessions and badges together.
func (s *Server) ensureClientID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(clientCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	id := genID()
	http.SetCookie(w, &http.Cookie{
		Name:     clientCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   os.Getenv("NODE_ENV") == "production",
		SameSite: func() http.SameSite {
			if os.Getenv("NODE_ENV") == "production" {
				return http.SameSiteNoneMode
			}
			return http.SameSiteLaxMode
		}(),
		Expires: time.Now().Add(180 * 24 * time.Hour),
	})
	return id
}

// genID creates a 22-char URL-safe, crypto-random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	s := base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(b[:])
	if len(s) > 22 {
		return s[:22]
	}
	return s
}

// ------------------------------- errors ------------------------------------

// errBody is the client-facing error envelope.
type errBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// writeErr emits the error taxonomy body with the given status.
func writeErr(w http.ResponseWriter, status int, kind, msg string) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errBody{Error: kind, Message: msg}); err != nil {
		log.Warn().Err(err).Str("kind", kind).Msg("write error body")
	}
}
