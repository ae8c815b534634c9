package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/pranusri1903/expense-tracker/internal/clients/term"
	"github.com/pranusri1903/expense-tracker/internal/config"
	"github.com/pranusri1903/expense-tracker/internal/logger"
	"github.com/pranusri1903/expense-tracker/internal/model/session"
	"github.com/pranusri1903/expense-tracker/internal/model/storage"
	"github.com/pranusri1903/expense-tracker/internal/model/store"
	"github.com/pranusri1903/expense-tracker/internal/model/tracker"
)

func main() {
	_ = godotenv.Load()

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config", zap.Error(err))
	}

	backend, err := newStorage(conf)
	if err != nil {
		logger.Fatal("failed to init storage", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	recordStore := store.New(backend)
	sessionCtrl := session.NewController(ctx, backend, recordStore)

	client := term.New(os.Stdin, os.Stdout)
	svc := tracker.NewService(client, sessionCtrl, recordStore)

	_ = client.SendMessage("Welcome to Expense Tracker! Type /help to begin.")
	client.Listen(ctx, svc)

	// Mirror an interactive close: persist the active user's data on the
	// way out.
	if _, ok := sessionCtrl.ActiveUser(); ok {
		if err = sessionCtrl.Logout(context.Background()); err != nil {
			logger.Error("failed to log out on shutdown", zap.Error(err))
		}
	}
}

func newStorage(conf *config.Service) (storage.Storage, error) {
	switch backend := conf.App().Storage(); backend {
	case "file":
		return storage.NewFileStorage(conf.File())
	case "postgres":
		return storage.NewPostgresStorage(conf.Postgres())
	case "sqlite":
		return storage.NewSqliteStorage(conf.Sqlite())
	default:
		return nil, errors.Errorf("unsupported storage backend %q", backend)
	}
}
