package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "time/tzdata"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/betterhouse/syndic/internal/auth"
	"github.com/betterhouse/syndic/internal/cache"
	"github.com/betterhouse/syndic/internal/config"
	"github.com/betterhouse/syndic/internal/copro"
	"github.com/betterhouse/syndic/internal/db"
	internalhttp "github.com/betterhouse/syndic/internal/http"
	"github.com/betterhouse/syndic/internal/service"
	"github.com/betterhouse/syndic/internal/store"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("api encerrada com erro")
	}
}

func run() error {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	copro.SetLocation(cfg.Location)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var pool *pgxpool.Pool
	if cfg.DBDSN != "" {
		pool, err = db.NewPool(ctx, cfg.DBDSN)
		if err != nil {
			return fmt.Errorf("db: %w", err)
		}
		defer pool.Close()
	}

	var redisClient *redis.Client
	var derived cache.Cache = cache.NoopCache{}
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("redis parse: %w", err)
		}
		redisClient = redis.NewClient(redisOpts)
		defer redisClient.Close()
		derived = cache.NewRedisCache(redisClient)
	} else {
		log.Warn().Msg("REDIS_URL ausente; cache e revogação de sessão desativados")
	}

	var source store.Source
	switch cfg.SnapshotSource {
	case config.SourcePostgres:
		source = store.NewPostgresSource(pool)
	default:
		source = store.SeedSource{Path: cfg.SeedFile}
	}

	st := store.New(source)
	if _, err := st.Load(ctx); err != nil {
		return fmt.Errorf("snapshot inicial: %w", err)
	}

	refresher := store.NewRefresher(st, cfg.SnapshotRefresh)
	if err := refresher.Start(ctx); err != nil {
		return fmt.Errorf("refresher: %w", err)
	}
	defer refresher.Stop()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTTL)
	authService := service.NewAuthService(st, jwtManager, derived)

	handler, err := internalhttp.NewRouter(cfg, st, derived, authService, pool, redisClient)
	if err != nil {
		return fmt.Errorf("router: %w", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("source", source.Name()).Msgf("API ouvindo em :%d", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("encerrando...")
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
