package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/altinbank/core/infra"
	infrarepo "github.com/altinbank/core/infra/repository"
	"github.com/altinbank/core/pkg/config"
	"github.com/altinbank/core/pkg/currency"
	"github.com/altinbank/core/pkg/engine"
	"github.com/altinbank/core/pkg/exchange"
	"github.com/altinbank/core/pkg/repository"
	accountsvc "github.com/altinbank/core/pkg/service/account"
	currencysvc "github.com/altinbank/core/pkg/service/currency"
	requestsvc "github.com/altinbank/core/pkg/service/request"
	usersvc "github.com/altinbank/core/pkg/service/user"
	"github.com/altinbank/core/webapi"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	bootLogger := slog.Default()
	cfg, err := config.Load(bootLogger)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	db, err := infra.NewDBConnection(cfg.DB.Url, cfg.Env)
	if err != nil {
		return err
	}
	if err := infra.Migrate(db); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	uow := infrarepo.NewUoW(db)
	if err := ensureBaseCurrency(uow); err != nil {
		return err
	}

	converter := exchange.NewConverter(exchange.NewStaticSource(), logger)
	deps := webapi.Deps{
		Engine:   engine.New(uow, converter, logger),
		Accounts: accountsvc.New(uow, logger),
		Currency: currencysvc.New(uow, converter, logger),
		Requests: requestsvc.New(uow, converter, logger),
		Users:    usersvc.New(uow, logger),
	}
	app := webapi.NewApp(deps)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "env", cfg.Env, "addr", cfg.Server.Addr)
		errCh <- app.Listen(cfg.Server.Addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
		return app.ShutdownWithTimeout(10 * time.Second)
	}
}

// ensureBaseCurrency seeds the base currency on first boot so accounts
// can always be opened in it.
func ensureBaseCurrency(uow repository.UnitOfWork) error {
	ctx := context.Background()
	return uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := uow.Currencies().Get(ctx, currency.BaseCurrency); err == nil {
			return nil
		}
		return uow.Currencies().Create(ctx, &currency.Currency{
			Code:      currency.BaseCurrency,
			Name:      "Euro",
			Active:    true,
			CreatedAt: time.Now().UTC(),
		})
	})
}
