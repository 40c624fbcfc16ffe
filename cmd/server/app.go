package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/quickrecap/quickrecap-api/internal/api"
	"github.com/quickrecap/quickrecap-api/internal/config"
	"github.com/quickrecap/quickrecap-api/internal/events"
	"github.com/quickrecap/quickrecap-api/internal/platform/metrics"
	"github.com/quickrecap/quickrecap-api/internal/platform/postgres"
	"github.com/quickrecap/quickrecap-api/internal/platform/redis"
	"github.com/quickrecap/quickrecap-api/internal/platform/storage"
	"github.com/quickrecap/quickrecap-api/internal/service"
	"github.com/quickrecap/quickrecap-api/internal/service/auth"
	"github.com/quickrecap/quickrecap-api/internal/store"
)

// application holds the wired dependencies of the server.
type application struct {
	config     *config.Config
	logger     *slog.Logger
	metrics    *metrics.Metrics
	jwtService auth.JWTService
	handlers   api.Handlers

	// closers run in reverse order on shutdown.
	closers []func() error
}

// newApplication wires stores, services and handlers.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		metrics: metrics.New(),
	}

	userStore := postgres.NewPostgresUserStore(db, logger)
	activityStore := postgres.NewPostgresActivityStore(db, logger)
	favoriteStore := postgres.NewPostgresFavoriteStore(db, logger)
	ratingStore := postgres.NewPostgresRatingStore(db, logger)
	historyStore := postgres.NewPostgresHistoryStore(db, logger)
	reportStore := postgres.NewPostgresErrorReportStore(db, logger)
	fileStore := postgres.NewPostgresFileStore(db, logger)

	revoked, err := app.setupRevocationList(ctx, db)
	if err != nil {
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}
	app.jwtService = jwtService

	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(service.NewMetricsEventHandler(app.metrics, logger))

	authService, err := auth.NewService(auth.Deps{
		Users:   userStore,
		Hasher:  auth.NewBcryptHasher(cfg.Auth.BCryptCost),
		Tokens:  jwtService,
		Revoked: revoked,
		Emitter: emitter,
		DB:      db,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	userService, err := service.NewUserService(userStore, db, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}
	activityService, err := service.NewActivityService(activityStore, favoriteStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity service: %w", err)
	}
	favoriteService, err := service.NewFavoriteService(favoriteStore, activityStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create favorite service: %w", err)
	}
	ratingService, err := service.NewRatingService(ratingStore, activityStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create rating service: %w", err)
	}
	historyService, err := service.NewHistoryService(service.HistoryDeps{
		History:    historyStore,
		Activities: activityStore,
		Emitter:    emitter,
		DB:         db,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create history service: %w", err)
	}
	reportService, err := service.NewErrorReportService(reportStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create error report service: %w", err)
	}

	blobs, err := storage.OpenDir(cfg.Storage.UploadDir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare upload directory: %w", err)
	}
	app.closers = append(app.closers, blobs.Close)
	fileService, err := service.NewFileService(fileStore, blobs, cfg.Storage.MaxUploadBytes, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create file service: %w", err)
	}

	app.handlers = api.Handlers{
		Auth:       api.NewAuthHandler(authService, logger),
		Users:      api.NewUserHandler(userService, logger),
		Activities: api.NewActivityHandler(activityService, favoriteService, ratingService, logger),
		History:    api.NewHistoryHandler(historyService, logger),
		Reports:    api.NewErrorReportHandler(reportService, logger),
		Files:      api.NewFileHandler(fileService, logger),
	}
	return app, nil
}

// setupRevocationList picks Redis when configured and the revoked_tokens
// table otherwise. Expired Postgres entries are purged at startup.
func (app *application) setupRevocationList(ctx context.Context, db *sql.DB) (store.RevokedTokenStore, error) {
	if app.config.Redis.URL != "" {
		client, err := redis.NewClient(ctx, app.config.Redis.URL)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, client.Close)
		app.logger.Info("using Redis for refresh token revocation")
		return redis.NewRevokedTokenStore(client, app.logger), nil
	}

	pgStore := postgres.NewPostgresRevokedTokenStore(db, app.logger)
	purged, err := pgStore.PurgeExpired(ctx)
	if err != nil {
		app.logger.Warn("failed to purge expired revocations", slog.String("error", err.Error()))
	} else {
		app.logger.Info("using Postgres for refresh token revocation", slog.Int64("purged", purged))
	}
	return pgStore, nil
}

// Run serves HTTP until ctx is canceled or a shutdown signal arrives.
func (app *application) Run(ctx context.Context) error {
	return app.startHTTPServer(ctx, app.setupRouter())
}

func (app *application) cleanup() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](); err != nil {
			app.logger.Error("cleanup failed", slog.String("error", err.Error()))
		}
	}
}
