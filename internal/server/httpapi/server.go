// Package httpapi exposes the catalog over HTTP: multipart uploads, JSON
// reads and edits.
package httpapi

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/mghilardi/vidlib/internal/logging"
	"github.com/mghilardi/vidlib/internal/server/services"
)

type Server struct {
	address string
	videos  *services.VideoService
	logger  logging.Logger
}

func NewServer(a string, l logging.Logger, vs *services.VideoService) *Server {
	return &Server{
		address: a,
		logger:  l.With("module", "http_server"),
		videos:  vs,
	}
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /ping", s.handlePing)
	mux.HandleFunc("POST /videos", s.handleCreateVideo)
	mux.HandleFunc("GET /videos", s.handleListVideos)
	mux.HandleFunc("GET /videos/{id}", s.handleGetVideo)
	mux.HandleFunc("PATCH /videos/{id}", s.handleUpdateVideo)
	mux.HandleFunc("DELETE /videos/{id}", s.handleDeleteVideo)

	return mux
}

func (s *Server) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.Serve(listen); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
