// Package services holds the client-side application services that sit
// between the CLI and the transport/storage layers.
package services

import (
	"context"
	"fmt"

	"github.com/mghilardi/vidlib/internal/client/catalog"
	"github.com/mghilardi/vidlib/internal/client/client"
	"github.com/mghilardi/vidlib/internal/client/models"
	"github.com/mghilardi/vidlib/internal/client/repositories/videos"
	"github.com/mghilardi/vidlib/internal/logging"
)

// VideoService loads and edits the catalog. Reads prefer the server and fall
// back to the local cache when it is unreachable.
type VideoService interface {
	// Load refreshes the catalog from the server; on failure it serves the
	// cached snapshot instead and returns fromCache=true. The error is only
	// non-nil when neither source is available.
	Load(ctx context.Context) (fromCache bool, err error)

	Update(ctx context.Context, id string, update models.VideoUpdate) (*models.Video, error)
	Delete(ctx context.Context, id string) error
}

type videoService struct {
	client  client.Client
	catalog *catalog.Catalog
	cache   videos.Repository
	log     logging.Logger
}

func NewVideoService(c client.Client, cat *catalog.Catalog, cache videos.Repository, log logging.Logger) VideoService {
	return &videoService{client: c, catalog: cat, cache: cache, log: log}
}

func (s *videoService) Load(ctx context.Context) (bool, error) {
	list, err := s.client.ListVideos(ctx)
	if err != nil {
		s.log.Warn(ctx, "server unreachable, trying cache", "error", err)

		cached, cacheErr := s.cache.GetAll(ctx)
		if cacheErr != nil {
			return false, fmt.Errorf("load videos: %w", err)
		}
		s.catalog.Replace(cached)
		return true, nil
	}

	s.catalog.Replace(list)
	s.persist(ctx)
	return false, nil
}

func (s *videoService) Update(ctx context.Context, id string, update models.VideoUpdate) (*models.Video, error) {
	updated, err := s.client.UpdateVideo(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("update video: %w", err)
	}

	s.catalog.ApplyUpdate(*updated)
	s.persist(ctx)
	return updated, nil
}

func (s *videoService) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteVideo(ctx, id); err != nil {
		return fmt.Errorf("delete video: %w", err)
	}

	s.catalog.RemoveByID(id)
	s.persist(ctx)
	return nil
}

// persist writes the current catalog snapshot to the cache, best effort.
func (s *videoService) persist(ctx context.Context) {
	if err := s.cache.ReplaceAll(ctx, s.catalog.Videos()); err != nil {
		s.log.Warn(ctx, "cache write failed", "error", err)
	}
}
