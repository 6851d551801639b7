// Package client defines the transport interface to the catalog backend and
// its HTTP implementation.
package client

import (
	"context"

	"github.com/mghilardi/vidlib/internal/client/models"
)

// EventType discriminates the events an upload emits.
type EventType string

const (
	// EventProgress carries an upload-progress percentage (0..100).
	EventProgress EventType = "progress"
	// EventComplete carries the catalog record created by the server.
	EventComplete EventType = "complete"
	// EventError carries the transport failure that ended the upload.
	EventError EventType = "error"
)

// UploadEvent is one element of an upload's event stream: zero or more
// progress events followed by exactly one terminal complete or error event.
type UploadEvent struct {
	Type     EventType
	Progress int
	Video    *models.Video
	Err      error
}

// UploadRequest names the local files and metadata of one submission.
// ThumbnailPath may be empty.
type UploadRequest struct {
	VideoPath     string
	ThumbnailPath string
	Metadata      models.VideoMetadata
}

// Client talks to the catalog backend.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	// Upload submits the files as one multipart request and returns the
	// event stream. The channel is closed after the terminal event.
	Upload(ctx context.Context, req UploadRequest) <-chan UploadEvent

	ListVideos(ctx context.Context) ([]models.Video, error)
	GetVideo(ctx context.Context, id string) (*models.Video, error)
	UpdateVideo(ctx context.Context, id string, update models.VideoUpdate) (*models.Video, error)
	DeleteVideo(ctx context.Context, id string) error
}
