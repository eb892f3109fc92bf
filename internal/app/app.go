// Package app assembles the comment service from configuration: store,
// lifecycle service, HTTP engine and server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/OlivierMantz/CommentAPI/internal/auth"
	"github.com/OlivierMantz/CommentAPI/internal/config"
	"github.com/OlivierMantz/CommentAPI/internal/db"
	"github.com/OlivierMantz/CommentAPI/internal/domain"
	handler "github.com/OlivierMantz/CommentAPI/internal/handler/http"
	"github.com/OlivierMantz/CommentAPI/internal/handler/middleware"
	"github.com/OlivierMantz/CommentAPI/internal/repository/memory"
	"github.com/OlivierMantz/CommentAPI/internal/repository/mongodb"
	"github.com/OlivierMantz/CommentAPI/internal/repository/postgres"
	"github.com/OlivierMantz/CommentAPI/internal/retry"
	"github.com/OlivierMantz/CommentAPI/internal/seed"
	"github.com/OlivierMantz/CommentAPI/internal/usecase"
)

type App struct {
	cfg     *config.Config
	repo    domain.CommentRepository
	service domain.CommentService
	engine  *ginext.Engine
	server  *http.Server
	closers []func(context.Context) error
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg}

	if err := a.openStore(ctx); err != nil {
		a.close(context.Background())
		return nil, err
	}

	if cfg.Seed.Enabled {
		if _, err := seed.Run(ctx, a.repo); err != nil {
			a.close(context.Background())
			return nil, err
		}
	}

	a.service = usecase.NewCommentUsecase(a.repo, usecase.WithAdminUpdate(cfg.Policy.AdminCanUpdate))

	verifier := auth.NewTokenVerifier(auth.Options{
		Secret:     []byte(cfg.Auth.Secret),
		Issuer:     cfg.Auth.Issuer,
		Audience:   cfg.Auth.Audience,
		RolesClaim: cfg.Auth.RolesClaim,
	})

	a.engine = ginext.New()
	a.engine.Use(
		ginext.Recovery(),
		middleware.LoggerMiddleware(),
		middleware.TimeoutMiddleware(time.Duration(cfg.Server.RequestTimeoutSec)*time.Second),
	)
	handler.RegisterHealth(a.engine)
	handler.NewCommentHandler(a.service, verifier).RegisterRoutes(a.engine)

	a.server = &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      a.engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
	}

	return a, nil
}

func (a *App) openStore(ctx context.Context) error {
	switch a.cfg.Store.Driver {
	case config.DriverPostgres:
		database, err := db.Connect(ctx, a.cfg.Database)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, func(context.Context) error {
			db.Close(database)
			return nil
		})
		if a.cfg.Migrations.Enabled {
			if err := db.RunMigrations(database); err != nil {
				return err
			}
		}
		a.repo = postgres.NewCommentRepository(database, retry.FromConfig(a.cfg.Retry))

	case config.DriverMongo:
		client, err := db.ConnectMongo(ctx, a.cfg.Mongo)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, client.Disconnect)
		repo := mongodb.NewCommentRepository(client.Database(a.cfg.Mongo.Database))
		if err := repo.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("create mongo indexes: %w", err)
		}
		a.repo = repo

	case config.DriverMemory:
		a.repo = memory.NewCommentRepository()

	default:
		return fmt.Errorf("unknown store driver %q", a.cfg.Store.Driver)
	}

	zlog.Logger.Info().Str("driver", a.cfg.Store.Driver).Msg("comment store ready")
	return nil
}

func (a *App) Handler() http.Handler {
	return a.engine
}

// Start serves HTTP until Stop is called. It returns nil after a graceful
// shutdown.
func (a *App) Start() error {
	zlog.Logger.Info().Str("addr", a.server.Addr).Msg("starting HTTP server")
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) Stop(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	a.close(ctx)
	return err
}

func (a *App) close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			zlog.Logger.Warn().Err(err).Msg("close store")
		}
	}
	a.closers = nil
}
