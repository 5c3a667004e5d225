package repo

import (
	"context"
	"database/sql"

	"promptfeed/internal/domain"
	"promptfeed/internal/infra"
	"promptfeed/internal/sqlinline"
)

// PostRepositoryPG implements domain.PostRepository for the legacy posts table.
type PostRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewPostRepository(sql infra.SQLExecutor) *PostRepositoryPG {
	return &PostRepositoryPG{sql: sql}
}

func (r *PostRepositoryPG) Create(ctx context.Context, imageURL, prompt string, userID *string) error {
	_, err := r.sql.Exec(ctx, sqlinline.QInsertPost, imageURL, prompt, userID)
	return err
}

// ListRecent returns the newest posts first.
func (r *PostRepositoryPG) ListRecent(ctx context.Context, limit int) ([]domain.Post, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListRecentPosts, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]domain.Post, 0)
	for rows.Next() {
		var p domain.Post
		var userID sql.NullString
		if err := rows.Scan(&p.ID, &p.ImageURL, &p.Prompt, &p.CreatedAt, &userID); err != nil {
			return nil, err
		}
		if userID.Valid {
			id := userID.String
			p.UserID = &id
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

var _ domain.PostRepository = (*PostRepositoryPG)(nil)
