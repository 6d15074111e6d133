package db

import (
	"context"

	"github.com/carspot/backend/internal/model"
	"github.com/jackc/pgx/v5"
)

func (db *Postgres) ListFeed(ctx context.Context) ([]model.Post, error) {
	query := `
		SELECT
			p.id, p.content, p.image_url, p.author_id, p.created_at, p.updated_at,
			u.id, u.last_name, u.first_name, u.username,
			COALESCE(ARRAY(SELECT l.user_id FROM post_likes l WHERE l.post_id = p.id ORDER BY l.created_at), '{}')
		FROM posts p
		JOIN users u ON u.id = p.author_id
		ORDER BY p.created_at DESC, p.id DESC`

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Post{}
	for rows.Next() {
		var (
			p      model.Post
			author model.AuthorSummary
		)
		if err := rows.Scan(
			&p.ID,
			&p.Content,
			&p.ImageURL,
			&p.AuthorID,
			&p.CreatedAt,
			&p.UpdatedAt,
			&author.ID,
			&author.LastName,
			&author.FirstName,
			&author.Username,
			&p.LikerIDs,
		); err != nil {
			return nil, err
		}
		p.Author = &author
		list = append(list, p)
	}
	return list, rows.Err()
}

func (db *Postgres) GetPost(ctx context.Context, postID int64) (*model.Post, error) {
	var p model.Post
	err := db.Pool.QueryRow(ctx, `
		SELECT id, content, image_url, author_id, created_at, updated_at
		FROM posts
		WHERE id = $1`, postID).Scan(&p.ID, &p.Content, &p.ImageURL, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (db *Postgres) CreatePost(ctx context.Context, authorID int64, req model.PostRequest) (*model.Post, error) {
	p := model.Post{LikerIDs: []int64{}}
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO posts (author_id, content, image_url)
		VALUES ($1, $2, $3)
		RETURNING id, content, image_url, author_id, created_at, updated_at`,
		authorID, req.Content, req.ImageURL,
	).Scan(&p.ID, &p.Content, &p.ImageURL, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (db *Postgres) DeletePost(ctx context.Context, postID int64) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ToggleLike removes an existing like or adds a new one. It reports whether the post is liked afterwards.
func (db *Postgres) ToggleLike(ctx context.Context, postID, userID int64) (bool, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	tag, err := tx.Exec(ctx, `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return false, err
	}
	liked := tag.RowsAffected() == 0
	if liked {
		if _, err := tx.Exec(ctx, `
			INSERT INTO post_likes (post_id, user_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, postID, userID); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return liked, nil
}

func (db *Postgres) ListComments(ctx context.Context, postID int64) ([]model.Comment, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT
			c.id, c.content, c.post_id, c.author_id, c.created_at, c.updated_at,
			u.id, u.last_name, u.first_name, u.username
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at, c.id`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.Comment{}
	for rows.Next() {
		var (
			c      model.Comment
			author model.AuthorSummary
		)
		if err := rows.Scan(
			&c.ID,
			&c.Content,
			&c.PostID,
			&c.AuthorID,
			&c.CreatedAt,
			&c.UpdatedAt,
			&author.ID,
			&author.LastName,
			&author.FirstName,
			&author.Username,
		); err != nil {
			return nil, err
		}
		c.Author = &author
		list = append(list, c)
	}
	return list, rows.Err()
}

func (db *Postgres) CreateComment(ctx context.Context, postID, authorID int64, content string) (*model.Comment, error) {
	var c model.Comment
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO comments (post_id, author_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, content, post_id, author_id, created_at, updated_at`,
		postID, authorID, content,
	).Scan(&c.ID, &c.Content, &c.PostID, &c.AuthorID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (db *Postgres) GetComment(ctx context.Context, commentID int64) (*model.Comment, error) {
	var c model.Comment
	err := db.Pool.QueryRow(ctx, `
		SELECT id, content, post_id, author_id, created_at, updated_at
		FROM comments
		WHERE id = $1`, commentID).Scan(&c.ID, &c.Content, &c.PostID, &c.AuthorID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (db *Postgres) DeleteComment(ctx context.Context, commentID int64) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
