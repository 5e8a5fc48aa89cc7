// Command badged runs the in-memory badge platform API for local
// development. It seeds a demo catalog and account, and logs generated OTPs
// so the auth flows can be completed without a mail server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openbadger/badgekit/pkg/config"
	"github.com/openbadger/badgekit/pkg/logger"
	"github.com/openbadger/badgekit/pkg/stubapi"
)

type serverConfig struct {
	Addr            string        `env:"BADGED_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"BADGED_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	SeedDemo        bool          `env:"BADGED_SEED_DEMO" envDefault:"true"`
}

func main() {
	var logCfg logger.Config
	config.MustLoad(&logCfg)
	log := logger.NewFromConfig(logCfg, logger.WithAttr(slog.String("app", "badged")))

	var cfg serverConfig
	config.MustLoad(&cfg)

	srv := stubapi.New(
		stubapi.WithLogger(log),
		stubapi.WithSeedCatalog(),
	)
	if cfg.SeedDemo {
		err := srv.SeedAccount(context.Background(),
			"demo@example.com", "Demo", "User", "password123",
			stubapi.UserBadge{BadgeID: 1, IsPublic: true},
			stubapi.UserBadge{BadgeID: 3, IsPublic: false},
		)
		if err != nil {
			log.Error("failed to seed demo account", slog.Any("error", err))
			os.Exit(1)
		}
		log.Info("seeded demo account", slog.String("email", "demo@example.com"), slog.String("password", "password123"))
	}

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("badge API listening", slog.String("addr", cfg.Addr))
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown failed", slog.Any("error", err))
			os.Exit(1)
		}
		log.Info("server stopped")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}
}
