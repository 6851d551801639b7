package videos

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/mghilardi/vidlib/internal/client/migrations"
	"github.com/mghilardi/vidlib/internal/client/models"
	"github.com/mghilardi/vidlib/internal/dbx"
)

// SQLiteRepository stores the catalog cache in sqlite (modernc driver).
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Open opens (or creates) the cache database at dsn and applies the embedded
// migrations.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, fmt.Errorf("migrate cache db: %w", err)
	}

	return db, nil
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, list []models.Video) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM videos`); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}

		query := `
			INSERT INTO videos (id, position, title, description, thumbnail, video_url,
				duration, upload_date, size, category, tags)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`
		for i, v := range list {
			tags, err := json.Marshal(v.Tags)
			if err != nil {
				return fmt.Errorf("encode tags: %w", err)
			}
			_, err = tx.ExecContext(ctx, query,
				v.ID, i, v.Title, v.Description, v.Thumbnail, v.VideoURL,
				v.Duration, v.UploadDate.UTC().Format(time.RFC3339Nano), v.Size, v.Category, string(tags))
			if err != nil {
				return fmt.Errorf("insert cached video: %w", err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Video, error) {
	query := `
		SELECT id, title, description, thumbnail, video_url, duration,
			upload_date, size, category, tags
		FROM videos ORDER BY position
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select cached videos: %w", err)
	}
	defer rows.Close()

	var result []models.Video
	for rows.Next() {
		var v models.Video
		var uploadDate, tags string
		if err := rows.Scan(&v.ID, &v.Title, &v.Description, &v.Thumbnail, &v.VideoURL,
			&v.Duration, &uploadDate, &v.Size, &v.Category, &tags); err != nil {
			return nil, err
		}
		if v.UploadDate, err = time.Parse(time.RFC3339Nano, uploadDate); err != nil {
			return nil, fmt.Errorf("parse upload date: %w", err)
		}
		if err := json.Unmarshal([]byte(tags), &v.Tags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
