package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"promptfeed/internal/domain"
	"promptfeed/internal/infra"
	"promptfeed/internal/sqlinline"
)

// ImageRepositoryPG implements domain.ImageRepository backed by PostgreSQL.
type ImageRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewImageRepository(sql infra.SQLExecutor) *ImageRepositoryPG {
	return &ImageRepositoryPG{sql: sql}
}

// List returns up to limit images after skipping offset, newest first.
func (r *ImageRepositoryPG) List(ctx context.Context, offset, limit int) ([]domain.PublishedImage, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListPublishedImages, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := make([]domain.PublishedImage, 0, limit)
	for rows.Next() {
		var img domain.PublishedImage
		if err := rows.Scan(&img.ID, &img.ImageURL, &img.Prompt, &img.Hearts, &img.CreatedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return images, nil
}

func (r *ImageRepositoryPG) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.sql.QueryRow(ctx, sqlinline.QCountPublishedImages).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// FindByID returns domain.ErrNotFound when no row matches.
func (r *ImageRepositoryPG) FindByID(ctx context.Context, id int64) (*domain.PublishedImage, error) {
	return scanImage(r.sql.QueryRow(ctx, sqlinline.QSelectPublishedImage, id))
}

// SetHearts overwrites the counter in a single UPDATE ... RETURNING.
// A row deleted since the caller's lookup surfaces as domain.ErrNotFound.
func (r *ImageRepositoryPG) SetHearts(ctx context.Context, id int64, hearts int64) (*domain.PublishedImage, error) {
	return scanImage(r.sql.QueryRow(ctx, sqlinline.QSetImageHearts, id, hearts))
}

func (r *ImageRepositoryPG) Create(ctx context.Context, imageURL, prompt string) (*domain.PublishedImage, error) {
	return scanImage(r.sql.QueryRow(ctx, sqlinline.QInsertPublishedImage, imageURL, prompt))
}

func scanImage(row pgx.Row) (*domain.PublishedImage, error) {
	var img domain.PublishedImage
	if err := row.Scan(&img.ID, &img.ImageURL, &img.Prompt, &img.Hearts, &img.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &img, nil
}

var _ domain.ImageRepository = (*ImageRepositoryPG)(nil)
