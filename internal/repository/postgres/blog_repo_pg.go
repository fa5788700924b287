package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/sajhahub/sajha-hub-backend/internal/domain"
)

type BlogRepository struct {
	db *sqlx.DB
}

func NewBlogRepo(db *sqlx.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

func (r *BlogRepository) Create(ctx context.Context, entry *domain.BlogEntry) (*domain.BlogEntry, error) {
	const query = `
		INSERT INTO blog_entry (title, content, author, author_id, category, image_url, read_time)
		VALUES (:title, :content, :author, :author_id, :category, :image_url, :read_time)
		RETURNING id, title, content, author, author_id, category, image_url, read_time, created_at
	`

	args := map[string]any{
		"title":     entry.Title,
		"content":   entry.Content,
		"author":    entry.Author,
		"author_id": entry.AuthorID,
		"category":  entry.Category,
		"image_url": entry.ImageURL,
		"read_time": entry.ReadTime,
	}

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var created domain.BlogEntry
		if err = rows.StructScan(&created); err != nil {
			return nil, err
		}
		return &created, nil
	}
	return nil, sql.ErrNoRows
}

func (r *BlogRepository) ListRecent(ctx context.Context, limit, offset int) ([]domain.BlogEntry, error) {
	const query = `
		SELECT id, title, content, author, author_id, category, image_url, read_time, created_at
		FROM blog_entry
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	var entries []domain.BlogEntry
	if err := r.db.SelectContext(ctx, &entries, query, limit, offset); err != nil {
		return nil, err
	}
	return entries, nil
}
