package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adapthttp "axisconv/internal/adapter/http"
	"axisconv/internal/adapter/memory"
	"axisconv/internal/adapter/postgres"
	"axisconv/internal/adapter/sqlite"
	"axisconv/internal/app"
	"axisconv/internal/config"
	"axisconv/internal/domain"
)

// store is what every storage backend provides.
type store interface {
	domain.AxisRepository
	domain.UserRepository
	domain.SessionRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, openStore)
	stop()
	if err != nil {
		log.Fatal(err)
	}
}

// storeOpener opens the storage backend cfg selects.
type storeOpener func(cfg config.Config) (store, io.Closer, error)

// run serves until ctx is done. The store is closed on every return path.
func run(ctx context.Context, cfg config.Config, open storeOpener) error {
	db, closer, err := open(cfg)
	if err != nil {
		return fmt.Errorf("db open: %w", err)
	}
	defer func() { _ = closer.Close() }()
	log.Printf("storage backend: %s", cfg.Backend())

	axisSvc := app.NewAxisService(db)
	authSvc := app.NewAuthService(db, db)

	oidcCfg, err := adapthttp.NewOIDCConfig(ctx, cfg.OIDC)
	if err != nil {
		return err
	}

	srv := adapthttp.New(axisSvc, authSvc, adapthttp.Options{
		OIDC:             oidcCfg,
		TrustForwardAuth: cfg.TrustForwardAuth,
	})
	if cfg.DisableAuth {
		user, err := authSvc.ValidateForwardAuth(ctx, "local")
		if err != nil {
			return fmt.Errorf("provision local user: %w", err)
		}
		srv.WithoutAuth(user)
		log.Printf("authentication disabled; all requests act as %q", user.Username)
	}

	go purgeSessions(ctx, authSvc)

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	log.Printf("listening on %s", cfg.Addr)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func openStore(cfg config.Config) (store, io.Closer, error) {
	switch cfg.Backend() {
	case config.BackendPostgres:
		db, err := postgres.Open(cfg.DatabaseURL)
		return db, db, err
	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		return db, db, err
	}
	return memory.New(), io.NopCloser(nil), nil
}

func purgeSessions(ctx context.Context, auth *app.AuthService) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := auth.PurgeExpired(ctx); err != nil {
				log.Printf("purge sessions: %v", err)
			}
		}
	}
}
