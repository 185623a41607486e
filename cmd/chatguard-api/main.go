// @title         Chatguard API
// @version       0.1.0
// @description   Reply pipeline and cross system loop guard

package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"chatguard/internal/core/version"
	"chatguard/internal/modkit/httpkit"
	"chatguard/internal/modkit/repokit"
	"chatguard/internal/platform/config"
	"chatguard/internal/platform/logger"
	phttp "chatguard/internal/platform/net/http"
	"chatguard/internal/platform/store"

	"chatguard/internal/services/api"
	guardrepo "chatguard/internal/services/guard/repo"
)

func main() {
	// a local .env is optional, real env wins
	_ = godotenv.Load()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_")
	rdsCfg := root.Prefix("SERVICE_REDIS_")

	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// every backend is optional, the guard and reply pipeline degrade to memory
	st, err := store.Open(
		ctx,
		store.Config{
			AppName: version.Service,
			PG: store.PGConfig{
				Enabled:        pgCfg.MayString("DBURL", "") != "",
				URL:            pgCfg.MayString("DBURL", ""),
				MaxConns:       int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQuery:      pgCfg.MayDuration("SLOW", 500*time.Millisecond),
				LogSQL:         pgCfg.MayBool("LOG_SQL", false),
				ConnectRetries: pgCfg.MayInt("CONNECT_RETRIES", 6),
				PingTimeout:    pgCfg.MayDuration("PING_TIMEOUT", 5*time.Second),
			},
			CH: store.CHConfig{
				Enabled:    chCfg.MayString("DBURL", "") != "",
				URL:        chCfg.MayString("DBURL", ""),
				ClientName: "chatguard",
				ClientTag:  "api",
			},
			RDS: store.RedisConfig{
				Enabled:  rdsCfg.MayString("ADDR", "") != "",
				Addr:     rdsCfg.MayString("ADDR", ""),
				DB:       rdsCfg.MayInt("DB", 0),
				Password: rdsCfg.MayString("PASSWORD", ""),
			},
		},
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// fail fast when a configured backend is unreachable
	repokit.MustGuard(ctx, st)

	if st.PG != nil && pgCfg.MayBool("ENSURE_SCHEMA", true) {
		if err := guardrepo.NewPG().Bind(st.PG).EnsureSchema(ctx); err != nil {
			l.Panic().Err(err).Msg("guard schema failed")
		}
	}

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	stack := httpkit.StackOptions{
		CORSOrigins: apiCfg.MayCSV("CORS_ORIGINS", nil),
		Slow:        apiCfg.MayDuration("SLOW", 2*time.Second),
		Timeout:     apiCfg.MayDuration("TIMEOUT", 30*time.Second),
		MaxInFlight: apiCfg.MayInt("MAX_INFLIGHT", 0),
	}
	mounted := api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			Stack:          stack,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)
	defer func() {
		if err := mounted.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close modules")
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	g.Go(func() error { return mounted.Sweeper.Run(gctx) })
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		l.Error().Err(err).Msg("api stopped")
		return
	}
	l.Info().Msg("api stopped")
}
