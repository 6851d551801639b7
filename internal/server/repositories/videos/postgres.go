package videos

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mghilardi/vidlib/internal/common"
	"github.com/mghilardi/vidlib/internal/dbx"
	"github.com/mghilardi/vidlib/internal/server/models"
)

// PostgresRepository implements video storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new catalog row. Tags are stored as a JSON array.
func (r *PostgresRepository) Create(ctx context.Context, video *models.Video) error {
	query := `
		INSERT INTO videos (id, title, description, video_key, thumbnail_key,
			duration, upload_date, size, category, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	tags, err := marshalTags(video.Tags)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, query,
		video.ID, video.Title, video.Description, video.VideoKey, video.ThumbnailKey,
		video.Duration, video.UploadDate, video.Size, video.Category, tags)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetByID returns one row, or common.ErrNotFound when the id is unknown.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Video, error) {
	query := `
		SELECT id, title, description, video_key, thumbnail_key,
			duration, upload_date, size, category, tags
		FROM videos WHERE id=$1;
	`
	row := r.db.QueryRowContext(ctx, query, id)

	video, err := scanVideo(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return video, nil
}

// SelectAll returns every row, newest upload first.
func (r *PostgresRepository) SelectAll(ctx context.Context) ([]*models.Video, error) {
	query := `
		SELECT id, title, description, video_key, thumbnail_key,
			duration, upload_date, size, category, tags
		FROM videos ORDER BY upload_date DESC;
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select videos: %w", err)
	}
	defer rows.Close()

	var result []*models.Video
	for rows.Next() {
		video, err := scanVideo(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, video)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update rewrites the mutable metadata of an existing row.
func (r *PostgresRepository) Update(ctx context.Context, video *models.Video) error {
	query := `
		UPDATE videos SET title=$2, description=$3, category=$4, tags=$5
		WHERE id=$1;
	`
	tags, err := marshalTags(video.Tags)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query,
		video.ID, video.Title, video.Description, video.Category, tags)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireOneRow(res)
}

// Delete removes a row, or returns common.ErrNotFound when the id is unknown.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM videos WHERE id=$1;`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireOneRow(res)
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func scanVideo(scan func(dest ...any) error) (*models.Video, error) {
	var item models.Video
	var tags []byte
	if err := scan(
		&item.ID, &item.Title, &item.Description, &item.VideoKey, &item.ThumbnailKey,
		&item.Duration, &item.UploadDate, &item.Size, &item.Category, &tags,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tags, &item.Tags); err != nil {
		return nil, fmt.Errorf("invalid tags column: %w", err)
	}
	return &item, nil
}

func marshalTags(tags []string) ([]byte, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return nil, fmt.Errorf("marshal tags: %w", err)
	}
	return b, nil
}
