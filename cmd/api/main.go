package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medassist/internal/adapters/notifications/cronalarm"
	"medassist/internal/adapters/notifications/telegram"
	"medassist/internal/adapters/notifications/webhook"
	"medassist/internal/adapters/storage/badgerstore"
	mem "medassist/internal/adapters/storage/memory"
	pg "medassist/internal/adapters/storage/postgres"
	"medassist/internal/adapters/storage/sqlite"
	"medassist/internal/domain/medications"
	"medassist/internal/platform/config"
	"medassist/internal/platform/logger"
	"medassist/internal/platform/metrics"
	"medassist/internal/ports/kv"
	"medassist/internal/ports/notifications"
	"medassist/internal/router"
)

// @title MedAssist API
// @version 1.0
// @description Recordatorios de medicación: perfil, tratamientos, tomas programadas y recordatorios del día.
// @BasePath /
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "medassist: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Archivo opcional vía MEDASSIST_CONFIG; el resto por env MEDASSIST_*.
	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.App.Name,
	})
	if zl, ok := log.(*logger.ZapLogger); ok {
		defer func() { _ = zl.Sync() }()
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	m := metrics.New()

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	sender, err := newSender(cfg, log)
	if err != nil {
		return err
	}
	alarms := cronalarm.New(sender, cronalarm.Options{
		Logger:   log,
		Metrics:  m,
		Location: loc,
	})
	alarms.Start()

	app := router.New(router.Options{
		Store:    store,
		Alarms:   alarms,
		Logger:   log,
		Metrics:  m,
		Location: loc,
		Limits: medications.Limits{
			MaxDosesPerDay:   cfg.Schedule.MaxDosesPerDay,
			MaxTreatmentDays: cfg.Schedule.MaxTreatmentDays,
		},
	})

	// El dispatcher no persiste alarmas: al arrancar se vuelven a programar.
	restored := app.Medications.RestoreAlarms(context.Background())
	m.SetInventory(app.Medications.Snapshot(context.Background()).Inventory())

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      app.Handler,
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":            cfg.Addr(),
			"storage":         cfg.Storage.Driver,
			"channel":         sender.Name(),
			"restored_alarms": restored,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-stop:
		log.Info("shutting down", map[string]any{"signal": sig.String()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("http shutdown", map[string]any{"error": err})
	}
	alarms.Stop(ctx)
	return nil
}

func openStore(cfg *config.Config) (kv.Store, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		closer := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return sqlite.NewKVStore(db), closer, nil

	case config.DriverBadger:
		db, err := badgerstore.Open(cfg.Storage.BadgerPath)
		if err != nil {
			return nil, nil, err
		}
		return badgerstore.NewKVStore(db), func() { _ = db.Close() }, nil

	case config.DriverPostgres:
		db, err := pg.Open(cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := pg.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("postgres schema: %w", err)
		}
		return pg.NewKVStore(db), func() { _ = db.Close() }, nil

	default:
		return mem.NewKVStore(), func() {}, nil
	}
}

func newSender(cfg *config.Config, log logger.Logger) (notifications.Sender, error) {
	switch cfg.Notifications.Channel {
	case config.ChannelWebhook:
		s, err := webhook.New(cfg.Notifications.WebhookURL, webhook.Options{Logger: log})
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.ChannelTelegram:
		s, err := telegram.New(cfg.Notifications.TelegramToken, cfg.Notifications.TelegramChatID)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return cronalarm.NewLogSender(log.With(map[string]any{"component": "alerts"})), nil
	}
}
