package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dartsliga/league-system/models"
	"github.com/lib/pq"
)

var (
	ErrPostNotFound      = errors.New("post not found")
	ErrPostAuthorInvalid = errors.New("post author conflict or invalid")
)

// PostFilter narrows List; the zero value returns everything.
type PostFilter struct {
	PublishedOnly bool
	Type          *models.PostType
	Limit         int
	Offset        int
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int) (*models.Post, error)
	List(ctx context.Context, filter PostFilter) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	UpdateImageKey(ctx context.Context, postID int, imageKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresPostRepository struct {
	db *sql.DB
}

func NewPostgresPostRepository(db *sql.DB) PostRepository {
	return &postgresPostRepository{db: db}
}

const postColumns = `id, title, excerpt, body, type, pinned, published, author_id, image_key, created_at, updated_at`

func (r *postgresPostRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (title, excerpt, body, type, pinned, published, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		post.Title, post.Excerpt, post.Body, post.Type,
		post.Pinned, post.Published, post.AuthorID,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	return r.handlePostError(err)
}

func (r *postgresPostRepository) GetByID(ctx context.Context, id int) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	return r.scanPost(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresPostRepository) List(ctx context.Context, filter PostFilter) ([]*models.Post, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + postColumns + ` FROM posts WHERE 1=1`)

	args := make([]interface{}, 0, 4)
	if filter.PublishedOnly {
		queryBuilder.WriteString(` AND published = TRUE`)
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		queryBuilder.WriteString(` AND type = $` + strconv.Itoa(len(args)))
	}

	// Pinned posts lead, then newest first.
	queryBuilder.WriteString(` ORDER BY pinned DESC, created_at DESC`)

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		queryBuilder.WriteString(` LIMIT $` + strconv.Itoa(len(args)))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		queryBuilder.WriteString(` OFFSET $` + strconv.Itoa(len(args)))
	}

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := make([]*models.Post, 0)
	for rows.Next() {
		post, scanErr := r.scanPost(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *postgresPostRepository) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET title = $1, excerpt = $2, body = $3, type = $4, pinned = $5, published = $6, updated_at = $7
		WHERE id = $8`

	post.UpdatedAt = time.Now()
	result, err := r.db.ExecContext(ctx, query,
		post.Title, post.Excerpt, post.Body, post.Type,
		post.Pinned, post.Published, post.UpdatedAt, post.ID)
	if err != nil {
		return r.handlePostError(err)
	}
	return checkAffectedRows(result, ErrPostNotFound)
}

func (r *postgresPostRepository) UpdateImageKey(ctx context.Context, postID int, imageKey *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE posts SET image_key = $1, updated_at = NOW() WHERE id = $2`, imageKey, postID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPostNotFound)
}

func (r *postgresPostRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPostNotFound)
}

func (r *postgresPostRepository) scanPost(row interface{ Scan(...interface{}) error }) (*models.Post, error) {
	var p models.Post
	err := row.Scan(
		&p.ID, &p.Title, &p.Excerpt, &p.Body, &p.Type,
		&p.Pinned, &p.Published, &p.AuthorID, &p.ImageKey,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to scan post: %w", err)
	}
	return &p, nil
}

func (r *postgresPostRepository) handlePostError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Constraint == "posts_author_id_fkey" {
			return ErrPostAuthorInvalid
		}
	}
	return err
}
