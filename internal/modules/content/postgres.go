package content

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL content repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// ── banners ──────────────────────────────────────────────────────────────────

func (r *postgresRepo) CreateBanner(ctx context.Context, b *Banner) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO banners (id, title, image_url, link_url, position, is_active)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		b.ID, b.Title, b.ImageURL, b.LinkURL, b.Position, b.IsActive)
	return err
}

func (r *postgresRepo) ListBanners(ctx context.Context, activeOnly bool) ([]*Banner, error) {
	query := `SELECT id, title, image_url, link_url, position, is_active, created_at FROM banners`
	if activeOnly {
		query += ` WHERE is_active=TRUE`
	}
	query += ` ORDER BY position ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var banners []*Banner
	for rows.Next() {
		b := &Banner{}
		if err := rows.Scan(&b.ID, &b.Title, &b.ImageURL, &b.LinkURL,
			&b.Position, &b.IsActive, &b.CreatedAt); err != nil {
			return nil, err
		}
		banners = append(banners, b)
	}
	return banners, rows.Err()
}

func (r *postgresRepo) UpdateBanner(ctx context.Context, b *Banner) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE banners SET title=$1, image_url=$2, link_url=$3, position=$4, is_active=$5
		WHERE id=$6`,
		b.Title, b.ImageURL, b.LinkURL, b.Position, b.IsActive, b.ID)
	return err
}

func (r *postgresRepo) DeleteBanner(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM banners WHERE id=$1`, uid)
	return err
}

func (r *postgresRepo) GetBanner(ctx context.Context, id string) (*Banner, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	b := &Banner{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, title, image_url, link_url, position, is_active, created_at
		FROM banners WHERE id=$1`, uid).
		Scan(&b.ID, &b.Title, &b.ImageURL, &b.LinkURL, &b.Position, &b.IsActive, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ── posts ────────────────────────────────────────────────────────────────────

const postColumns = `id, title, slug, body, image_url, published, created_at, updated_at`

func (r *postgresRepo) CreatePost(ctx context.Context, p *Post) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO posts (id, title, slug, body, image_url, published)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		p.ID, p.Title, p.Slug, p.Body, p.ImageURL, p.Published)
	return err
}

func (r *postgresRepo) GetPostBySlug(ctx context.Context, slug string) (*Post, error) {
	return scanPost(r.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE slug=$1`, slug))
}

func (r *postgresRepo) GetPostByID(ctx context.Context, id string) (*Post, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return scanPost(r.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id=$1`, uid))
}

func (r *postgresRepo) ListPosts(ctx context.Context, publishedOnly bool) ([]*Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts`
	if publishedOnly {
		query += ` WHERE published=TRUE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var posts []*Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *postgresRepo) UpdatePost(ctx context.Context, p *Post) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE posts SET title=$1, slug=$2, body=$3, image_url=$4, published=$5, updated_at=$6
		WHERE id=$7`,
		p.Title, p.Slug, p.Body, p.ImageURL, p.Published, time.Now(), p.ID)
	return err
}

func (r *postgresRepo) DeletePost(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM posts WHERE id=$1`, uid)
	return err
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanPost(row rowScanner) (*Post, error) {
	p := &Post{}
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Body, &p.ImageURL,
		&p.Published, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}
