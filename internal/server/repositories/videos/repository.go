// Package videos provides the server-side persistence layer for catalog rows.
package videos

import (
	"context"

	"github.com/mghilardi/vidlib/internal/server/models"
)

// Repository is the storage contract for catalog rows.
type Repository interface {
	Create(ctx context.Context, video *models.Video) error
	GetByID(ctx context.Context, id string) (*models.Video, error)
	SelectAll(ctx context.Context) ([]*models.Video, error)
	Update(ctx context.Context, video *models.Video) error
	Delete(ctx context.Context, id string) error
}
