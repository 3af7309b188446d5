// @title         Civlink API
// @version       0.1.0
// @description   Identity resolution and linking for the civil registry

package main

import (
	"context"

	"civlink/internal/platform/config"
	"civlink/internal/platform/logger"
	phttp "civlink/internal/platform/net/http"
	"civlink/internal/platform/store"

	"civlink/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // primary store, owns identities and links
	regCfg := root.Prefix("SERVICE_REGISTRY_")  // authoritative civil registry (read mostly)
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // search audit stream

	// bring up logging early
	l := logger.Get()

	// open the platform store (two postgres pools + CH adapter)
	st, err := store.Open(
		context.Background(),
		store.Config{
			AppName: "civlink-api",
			PG: store.PGConfig{
				Enabled:     true,
				URL:         pgCfg.MustString("DBURL"),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", true),
			},
			Registry: store.PGConfig{
				Enabled:     true,
				URL:         regCfg.MustString("DBURL"),
				MaxConns:    int32(regCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: regCfg.MayInt("SLOW_MS", 500),
				LogSQL:      regCfg.MayBool("LOG_SQL", false),
			},
			CH: store.CHConfig{
				Enabled: chCfg.MayBool("ENABLED", false),
				URL:     chCfg.MayString("DBURL", ""),
			},
		},
		store.WithLogger(*logger.Get()),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
