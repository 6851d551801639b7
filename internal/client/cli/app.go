// Package cli implements the interactive client: a small REPL over the
// catalog service and the upload core.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mghilardi/vidlib/internal/client/catalog"
	"github.com/mghilardi/vidlib/internal/client/client"
	"github.com/mghilardi/vidlib/internal/client/config"
	videosrepo "github.com/mghilardi/vidlib/internal/client/repositories/videos"
	"github.com/mghilardi/vidlib/internal/client/services"
	"github.com/mghilardi/vidlib/internal/client/uploads"
	"github.com/mghilardi/vidlib/internal/client/validation"
	"github.com/mghilardi/vidlib/internal/execx"
	"github.com/mghilardi/vidlib/internal/logging"
	"github.com/mghilardi/vidlib/internal/probe"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

type App struct {
	config       *config.Config
	apiClient    client.Client
	videoService services.VideoService
	validator    *validation.Validator
	registry     *uploads.Registry
	orchestrator *uploads.Orchestrator
	guard        *uploads.Guard
	catalog      *catalog.Catalog
	log          logging.Logger
	Mode         Mode
	reader       *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := videosrepo.Open(ctx, c.CacheDSN)
	if err != nil {
		return nil, fmt.Errorf("init cache: %w", err)
	}
	cache := videosrepo.NewSQLiteRepository(db)

	apiClient := client.NewHTTPClient(c.ServerEndpointAddr)

	cat := catalog.New()
	registry := uploads.NewRegistry()
	prober := probe.NewFFProbe(c.FFProbePath, execx.NewCommandRunner())
	validator := validation.NewValidator(prober, c.Policy())

	app := &App{
		config:       c,
		apiClient:    apiClient,
		videoService: services.NewVideoService(apiClient, cat, cache, log),
		validator:    validator,
		registry:     registry,
		catalog:      cat,
		log:          log,
		reader:       bufio.NewReader(os.Stdin),
	}

	app.orchestrator = uploads.NewOrchestrator(apiClient, registry, cat,
		uploads.NotifierFunc(app.notify), log)
	app.guard = uploads.NewGuard(registry, app)

	return app, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.apiClient.Close()

	_ = a.Refresh(ctx)

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, func() string { return string(a.Mode) }, scanner)
}

// notify prints user-facing messages from background uploads.
func (a *App) notify(msg string) {
	printlnFn(msg)
}

// Confirm implements uploads.Confirmer with a y/n prompt.
func (a *App) Confirm(prompt string) bool {
	answer, err := GetSimpleText(a.reader, prompt+" [y/N]", os.Stdout)
	if err != nil {
		return false
	}
	return answer == "y" || answer == "Y" || answer == "yes"
}

// CanLeave runs the navigation guard before the REPL exits.
func (a *App) CanLeave() bool {
	return a.guard.CanLeave()
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		printlnFn(fmt.Sprintf("Switched to %s mode", mode))
	}
}

// StartOnlineStatusWatcher periodically pings the server and flips the
// online/offline indicator.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.apiClient.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
