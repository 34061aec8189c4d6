package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"BlogChallengeScanner/internal/domain"
	"BlogChallengeScanner/internal/ports"
)

// PostRepository persists reconciled posts.
type PostRepository struct {
	db *sql.DB
}

var _ ports.PostRepository = (*PostRepository)(nil)

// NewPostRepository wires a sql.DB implementation.
func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Get loads one post by ID, or nil if it does not exist.
func (r *PostRepository) Get(ctx context.Context, id string) (*domain.Post, error) {
	if r.db == nil {
		return nil, ErrNotInitialized
	}

	query, args, err := psql.
		Select("id", "blog_id", "title", "link", "publish_date", "content_full_text",
			"char_count_with_spaces", "char_count_no_spaces", "image_count",
			"is_recognized", "admin_feedback", "last_processed_at").
		From("posts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build post query: %w", err)
	}

	var (
		post     domain.Post
		feedback sql.NullString
	)
	row := r.db.QueryRowContext(ctx, query, args...)
	err = row.Scan(&post.ID, &post.BlogID, &post.Title, &post.Link, &post.PublishDate,
		&post.ContentFullText, &post.CharCountWithSpaces, &post.CharCountNoSpaces,
		&post.ImageCount, &post.IsRecognized, &feedback, &post.LastProcessedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan post %s: %w", id, err)
	}
	if feedback.Valid {
		post.AdminFeedback = &feedback.String
	}
	return &post, nil
}

// Merge upserts the extraction-owned fields of a post. admin_feedback is set
// only on first insert and deliberately missing from the conflict update:
// annotations written out-of-band survive every later merge.
func (r *PostRepository) Merge(ctx context.Context, post domain.Post) error {
	if r.db == nil {
		return ErrNotInitialized
	}

	var feedback sql.NullString
	if post.AdminFeedback != nil {
		feedback = sql.NullString{String: *post.AdminFeedback, Valid: true}
	}

	query, args, err := psql.
		Insert("posts").
		Columns("id", "blog_id", "title", "link", "publish_date", "content_full_text",
			"char_count_with_spaces", "char_count_no_spaces", "image_count",
			"is_recognized", "admin_feedback", "last_processed_at").
		Values(post.ID, post.BlogID, post.Title, post.Link, post.PublishDate,
			post.ContentFullText, post.CharCountWithSpaces, post.CharCountNoSpaces,
			post.ImageCount, post.IsRecognized, feedback, post.LastProcessedAt).
		Suffix(`ON CONFLICT (id) DO UPDATE
            SET title = EXCLUDED.title,
                link = EXCLUDED.link,
                publish_date = EXCLUDED.publish_date,
                content_full_text = EXCLUDED.content_full_text,
                char_count_with_spaces = EXCLUDED.char_count_with_spaces,
                char_count_no_spaces = EXCLUDED.char_count_no_spaces,
                image_count = EXCLUDED.image_count,
                is_recognized = EXCLUDED.is_recognized,
                last_processed_at = EXCLUDED.last_processed_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build post upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert post %s: %w", post.ID, err)
	}
	return nil
}
