package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/goldcrest/banking/infra"
	"github.com/goldcrest/banking/infra/memory"
	infrarepo "github.com/goldcrest/banking/infra/repository"
	"github.com/goldcrest/banking/pkg/config"
	"github.com/goldcrest/banking/pkg/repository"
	"github.com/goldcrest/banking/pkg/service"
	"github.com/goldcrest/banking/webapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	// The storage backend is chosen once at startup; business logic only
	// ever sees the UnitOfWork contract.
	var uow repository.UnitOfWork
	if cfg.DB.Url != "" {
		db, err := infra.NewDBConnection(*cfg.DB, cfg.Env)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		uow = infrarepo.NewUoW(db)
		logger.Info("using durable storage backend")
	} else {
		uow = memory.NewUnitOfWork(memory.NewStore())
		logger.Warn("DATABASE_URL not set, using in-memory storage backend")
	}

	app := webapi.NewApp(webapi.Deps{
		UserSvc:    service.NewUserService(uow, logger),
		AccountSvc: service.NewAccountService(uow, logger),
		AuthSvc:    service.NewAuthService(uow, *cfg.Jwt, logger),
		Cfg:        cfg,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "env", cfg.Env, "address", addr)
	return app.Listen(addr)
}

func newLogger(cfg *config.Log) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.Level(cfg.Level)}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}
