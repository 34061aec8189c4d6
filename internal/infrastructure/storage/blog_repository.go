package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"BlogChallengeScanner/internal/domain"
	"BlogChallengeScanner/internal/ports"
)

// BlogRepository reads tracked blogs and writes their summaries.
type BlogRepository struct {
	db *sql.DB
}

var _ ports.BlogRepository = (*BlogRepository)(nil)

// NewBlogRepository wires a sql.DB implementation.
func NewBlogRepository(db *sql.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

// ActiveBlogs returns every blog flagged active.
func (r *BlogRepository) ActiveBlogs(ctx context.Context) ([]domain.Blog, error) {
	if r.db == nil {
		return nil, ErrNotInitialized
	}

	query, args, err := psql.
		Select("id", "name", "rss_feed_url", "is_active",
			"total_posts_in_window", "recognized_posts_in_window", "latest_post_date_in_window").
		From("blogs").
		Where(sq.Eq{"is_active": true}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build active blogs query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query active blogs: %w", err)
	}
	defer rows.Close()

	var blogs []domain.Blog
	for rows.Next() {
		var (
			blog    domain.Blog
			feedURL sql.NullString
			latest  sql.NullTime
		)
		err := rows.Scan(&blog.ID, &blog.Name, &feedURL, &blog.IsActive,
			&blog.TotalPostsInWindow, &blog.RecognizedPostsInWindow, &latest)
		if err != nil {
			return nil, fmt.Errorf("scan blog: %w", err)
		}
		blog.RSSFeedURL = feedURL.String
		if latest.Valid {
			blog.LatestPostDateInWindow = latest.Time
		}
		blogs = append(blogs, blog)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return blogs, nil
}

// UpdateSummary writes only the three summary counters. It fails when the
// blog record is absent; summaries never create blogs.
func (r *BlogRepository) UpdateSummary(ctx context.Context, blogID string, summary domain.BlogSummary) error {
	if r.db == nil {
		return ErrNotInitialized
	}

	builder := psql.
		Update("blogs").
		Set("total_posts_in_window", summary.TotalPostsInWindow).
		Set("recognized_posts_in_window", summary.RecognizedPostsInWindow).
		Where(sq.Eq{"id": blogID})
	if !summary.LatestPostDateInWindow.IsZero() {
		builder = builder.Set("latest_post_date_in_window", summary.LatestPostDateInWindow)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("build summary update: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update blog summary: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("summary rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("blog %s not found", blogID)
	}
	return nil
}
