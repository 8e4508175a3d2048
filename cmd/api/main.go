package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"studio/internal/docstore"
	"studio/internal/http/handlers"
	"studio/internal/http/httpapi"
	"studio/internal/identity"
	"studio/internal/infra"
	"studio/internal/infra/geoip"
	"studio/internal/middleware"
	"studio/internal/session"
	"studio/internal/state"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var firebaseClients *infra.FirebaseClients
	if cfg.AuthDriver == infra.AuthDriverFirebase || cfg.DocstoreDriver == infra.DocstoreDriverFirestore {
		firebaseClients, err = infra.NewFirebase(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize firebase")
		}
		defer firebaseClients.Close()
	}

	var docs docstore.Store
	switch cfg.DocstoreDriver {
	case infra.DocstoreDriverFirestore:
		docs = docstore.NewFirestore(firebaseClients.Firestore)
	case infra.DocstoreDriverPostgres:
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer pool.Close()
		pg := docstore.NewPostgres(pool)
		if err := pg.Init(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize document table")
		}
		docs = pg
	default:
		docs = docstore.NewMemory()
	}
	if cfg.ProfileCacheTTL > 0 {
		docs = docstore.NewCached(docs, cfg.ProfileCacheTTL)
	}

	var provider identity.Provider
	var verifier middleware.TokenVerifier
	if cfg.AuthDriver == infra.AuthDriverFirebase {
		provider = identity.NewFirebase(firebaseClients.Auth, cfg.FirebaseWebAPIKey)
		verifier = firebaseClients
	} else {
		mem := identity.NewMemory()
		provider = mem
		// In memory mode the bearer token is the uid itself.
		verifier = middleware.VerifierFunc(func(_ context.Context, token string) (string, error) {
			return token, nil
		})
	}

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
		resolver = nil
	}

	store := state.New()
	sync := session.New(store, provider, docs, logger)
	go sync.Run(ctx)

	app := handlers.NewApp(logger, store, sync)
	router := httpapi.NewRouter(app, httpapi.Options{
		Verifier:        verifier,
		GeoIP:           resolver,
		AllowedOrigins:  cfg.AllowedOrigins,
		DefaultLocale:   cfg.DefaultLocale,
		RateLimitPerMin: cfg.RateLimitPerMin,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
