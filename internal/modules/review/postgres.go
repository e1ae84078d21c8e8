package review

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL review repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, rv *Review) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reviews (id, product_id, author_name, rating, comment, approved)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		rv.ID, rv.ProductID, rv.AuthorName, rv.Rating, rv.Comment, rv.Approved)
	return err
}

func (r *postgresRepo) ListByProduct(ctx context.Context, productID string, approvedOnly bool) ([]*Review, error) {
	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, err
	}
	query := `SELECT id, product_id, author_name, rating, comment, approved, created_at
	          FROM reviews WHERE product_id=$1`
	if approvedOnly {
		query += ` AND approved=TRUE`
	}
	query += ` ORDER BY created_at DESC`
	return r.query(ctx, query, pid)
}

func (r *postgresRepo) ListPending(ctx context.Context) ([]*Review, error) {
	return r.query(ctx, `
		SELECT id, product_id, author_name, rating, comment, approved, created_at
		FROM reviews WHERE approved=FALSE ORDER BY created_at ASC`)
}

func (r *postgresRepo) SetApproved(ctx context.Context, id string, approved bool) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `UPDATE reviews SET approved=$1 WHERE id=$2`, approved, uid)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id=$1`, uid)
	return err
}

func (r *postgresRepo) query(ctx context.Context, query string, args ...interface{}) ([]*Review, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var reviews []*Review
	for rows.Next() {
		rv := &Review{}
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.AuthorName, &rv.Rating,
			&rv.Comment, &rv.Approved, &rv.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}
