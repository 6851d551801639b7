// Package services implements the server-side catalog operations on top of
// the repository and the blob store.
package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/mghilardi/vidlib/internal/logging"
	"github.com/mghilardi/vidlib/internal/probe"
	"github.com/mghilardi/vidlib/internal/server/models"
	"github.com/mghilardi/vidlib/internal/server/repositories/videos"
	"github.com/mghilardi/vidlib/internal/server/storage"
)

// UploadFile is one file received from a multipart upload.
type UploadFile struct {
	Name        string
	Size        int64
	ContentType string
	Body        io.Reader
}

// CreateVideoRequest carries the metadata and files of a new upload.
// Thumbnail is optional (nil Body means no thumbnail).
type CreateVideoRequest struct {
	Title       string
	Description string
	Category    string
	Tags        []string
	Video       UploadFile
	Thumbnail   *UploadFile
}

// VideoService owns the catalog: it persists rows, stores media blobs and
// resolves storage keys into presigned URLs for responses.
type VideoService struct {
	repo   videos.Repository
	blobs  storage.BlobStore
	prober probe.Prober
	log    logging.Logger
	now    func() time.Time
}

func NewVideoService(repo videos.Repository, blobs storage.BlobStore,
	prober probe.Prober, log logging.Logger) *VideoService {
	return &VideoService{
		repo:   repo,
		blobs:  blobs,
		prober: prober,
		log:    log,
		now:    time.Now,
	}
}

// Create stores the uploaded media and inserts the catalog row. The video is
// spooled to a temporary file so its duration can be probed before it goes to
// object storage; a probe failure is logged and leaves the duration at zero.
func (s *VideoService) Create(ctx context.Context, req CreateVideoRequest) (*models.VideoView, error) {
	id := uuid.NewString()

	tmpPath, err := spoolToTemp(req.Video.Body)
	if err != nil {
		return nil, fmt.Errorf("spool upload: %w", err)
	}
	defer os.Remove(tmpPath)

	duration, err := s.prober.ProbeDuration(ctx, tmpPath)
	if err != nil {
		s.log.Warn(ctx, "duration probe failed", "video", req.Video.Name, "error", err.Error())
		duration = 0
	}

	video := &models.Video{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		VideoKey:    path.Join("videos", id, req.Video.Name),
		Duration:    duration,
		UploadDate:  s.now().UTC(),
		Size:        req.Video.Size,
		Category:    req.Category,
		Tags:        req.Tags,
	}

	f, err := os.Open(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("reopen upload: %w", err)
	}
	defer f.Close()

	if err := s.blobs.Put(ctx, video.VideoKey, req.Video.ContentType, f); err != nil {
		return nil, fmt.Errorf("store video: %w", err)
	}

	if req.Thumbnail != nil {
		video.ThumbnailKey = path.Join("videos", id, "thumbnails", req.Thumbnail.Name)
		if err := s.blobs.Put(ctx, video.ThumbnailKey, req.Thumbnail.ContentType, req.Thumbnail.Body); err != nil {
			return nil, fmt.Errorf("store thumbnail: %w", err)
		}
	}

	if err := s.repo.Create(ctx, video); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "video created", "id", id, "title", video.Title, "size", video.Size)
	return s.toView(ctx, video)
}

// List returns the whole catalog, newest first.
func (s *VideoService) List(ctx context.Context) ([]*models.VideoView, error) {
	rows, err := s.repo.SelectAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*models.VideoView, 0, len(rows))
	for _, row := range rows {
		view, err := s.toView(ctx, row)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// Get returns one catalog entry.
func (s *VideoService) Get(ctx context.Context, id string) (*models.VideoView, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toView(ctx, row)
}

// Update applies a partial metadata edit and returns the updated entry.
func (s *VideoService) Update(ctx context.Context, id string, update models.VideoUpdate) (*models.VideoView, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		row.Title = *update.Title
	}
	if update.Description != nil {
		row.Description = *update.Description
	}
	if update.Category != nil {
		row.Category = *update.Category
	}
	if update.Tags != nil {
		row.Tags = update.Tags
	}

	if err := s.repo.Update(ctx, row); err != nil {
		return nil, err
	}
	return s.toView(ctx, row)
}

// Delete removes the row and then the stored media. Blob deletion failures
// are logged but do not fail the request once the row is gone.
func (s *VideoService) Delete(ctx context.Context, id string) error {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	for _, key := range []string{row.VideoKey, row.ThumbnailKey} {
		if key == "" {
			continue
		}
		if err := s.blobs.Delete(ctx, key); err != nil {
			s.log.Warn(ctx, "blob cleanup failed", "key", key, "error", err.Error())
		}
	}

	s.log.Info(ctx, "video deleted", "id", id)
	return nil
}

func (s *VideoService) toView(ctx context.Context, v *models.Video) (*models.VideoView, error) {
	videoURL, err := s.blobs.PresignGet(ctx, v.VideoKey)
	if err != nil {
		return nil, fmt.Errorf("presign video: %w", err)
	}

	var thumbnailURL string
	if v.ThumbnailKey != "" {
		thumbnailURL, err = s.blobs.PresignGet(ctx, v.ThumbnailKey)
		if err != nil {
			return nil, fmt.Errorf("presign thumbnail: %w", err)
		}
	}

	tags := v.Tags
	if tags == nil {
		tags = []string{}
	}

	return &models.VideoView{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		Thumbnail:   thumbnailURL,
		VideoURL:    videoURL,
		Duration:    v.Duration,
		UploadDate:  v.UploadDate,
		Size:        v.Size,
		Category:    v.Category,
		Tags:        tags,
	}, nil
}

func spoolToTemp(body io.Reader) (string, error) {
	tmp, err := os.CreateTemp("", "upload-*")
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}
