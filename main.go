// main.go
//
// Entry point for the Pokedle+ server.
// Wires configuration, logging, the catalog (SQLite when DB_PATH is set,
// embedded default otherwise), result persistence, the rate-limit
// counter, and the HTTP server.

package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pokedleplus/go-server/assets"
	"github.com/pokedleplus/go-server/internal/catalog"
	"github.com/pokedleplus/go-server/internal/config"
	"github.com/pokedleplus/go-server/internal/httpserver"
	"github.com/pokedleplus/go-server/internal/ratelimit"
	"github.com/pokedleplus/go-server/internal/session"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	// Missing secret is fatal here, before any traffic is served.
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	var cat catalog.Store
	var results *session.Results

	if cfg.DBPath != "" {
		db, err := openDB(cfg.DBPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
		}
		if err := migrate(db); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}

		defaults, err := assets.DefaultCatalog()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to decode embedded catalog")
		}
		seeded, err := catalog.SeedIfEmpty(context.Background(), db, defaults)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to seed catalog")
		}
		if seeded > 0 {
			log.Info().Int("rows", seeded).Msg("seeded catalog from embedded defaults")
		}

		cat = catalog.NewSQLStore(db)
		results = session.NewResults(db)
	} else {
		defaults, err := assets.DefaultCatalog()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to decode embedded catalog")
		}
		cat = catalog.NewMemoryStore(defaults)
		log.Warn().Msg("DB_PATH not set; serving embedded catalog, results not persisted")
	}

	var counter ratelimit.Counter
	if cfg.RedisAddr != "" {
		counter = ratelimit.NewRedisCounter(cfg.RedisAddr)
		log.Info().Str("addr", cfg.RedisAddr).Msg("using shared rate-limit counter")
	}

	srv, err := httpserver.New(cfg, cat, results, counter)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build server")
	}
	log.Info().Str("port", cfg.Port).Str("tz", cfg.Timezone).Msg("starting pokedleplus server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
