// Package videos caches the last successfully loaded catalog in a local
// sqlite database so the client can still show the library when the server
// is unreachable. Upload state is never persisted here.
package videos

import (
	"context"

	"github.com/mghilardi/vidlib/internal/client/models"
)

type Repository interface {
	// ReplaceAll swaps the cached catalog for the given snapshot, keeping
	// the list order, inside one transaction.
	ReplaceAll(ctx context.Context, videos []models.Video) error

	// GetAll returns the cached catalog in its original order.
	GetAll(ctx context.Context) ([]models.Video, error)
}
