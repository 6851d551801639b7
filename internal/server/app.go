// Package server wires the catalog server together: database, object
// storage, services and the HTTP API, with graceful shutdown on signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/mghilardi/vidlib/internal/execx"
	"github.com/mghilardi/vidlib/internal/logging"
	"github.com/mghilardi/vidlib/internal/probe"
	"github.com/mghilardi/vidlib/internal/server/config"
	"github.com/mghilardi/vidlib/internal/server/httpapi"
	"github.com/mghilardi/vidlib/internal/server/migrations"
	videosrepo "github.com/mghilardi/vidlib/internal/server/repositories/videos"
	"github.com/mghilardi/vidlib/internal/server/services"
	"github.com/mghilardi/vidlib/internal/server/storage"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	blobs, err := storage.NewS3Store(ctx, storage.Options{
		Bucket:        c.S3Bucket,
		Region:        c.S3Region,
		BaseEndpoint:  c.S3BaseEndpoint,
		AccessKey:     c.S3AccessKey,
		SecretKey:     c.S3SecretKey,
		PresignExpiry: c.PresignExpiry,
	})
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	prober := probe.NewFFProbe(c.FFProbePath, execx.NewCommandRunner())
	repo := videosrepo.NewPostgresRepository(db)
	vs := services.NewVideoService(repo, blobs, prober, logger)

	return &App{
		config: c,
		logger: logger,
		db:     db,
		server: httpapi.NewServer(c.EndpointAddr, logger, vs),
	}, nil
}

// openDB connects through the pgx stdlib driver and applies the embedded
// migrations.
func openDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		db.Close()
		return nil, err
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	defer app.db.Close()

	app.logger.Info(ctx, "Starting app...")

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.server.Run(ctx)
	})

	return g.Wait()
}
