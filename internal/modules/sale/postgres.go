package sale

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL sale repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const saleColumns = `id, name, discount_percentage, start_date, end_date, is_active, is_global, product_id, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, s *Sale) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sales
		  (id, name, discount_percentage, start_date, end_date, is_active, is_global, product_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		s.ID, s.Name, s.DiscountPercentage, s.StartDate, s.EndDate,
		s.IsActive, s.IsGlobal, s.ProductID)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Sale, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return scanSale(r.db.QueryRowContext(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE id=$1`, uid))
}

func (r *postgresRepo) List(ctx context.Context) ([]*Sale, error) {
	return r.querySales(ctx,
		`SELECT `+saleColumns+` FROM sales ORDER BY created_at DESC`)
}

func (r *postgresRepo) ListApplicable(ctx context.Context) ([]*Sale, error) {
	return r.querySales(ctx, `
		SELECT `+saleColumns+`
		FROM sales
		WHERE is_active = TRUE AND start_date <= $1 AND end_date > $1
		ORDER BY created_at ASC`, time.Now())
}

func (r *postgresRepo) Update(ctx context.Context, s *Sale) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE sales SET
		  name=$1, discount_percentage=$2, start_date=$3, end_date=$4,
		  is_active=$5, is_global=$6, product_id=$7, updated_at=$8
		WHERE id=$9`,
		s.Name, s.DiscountPercentage, s.StartDate, s.EndDate,
		s.IsActive, s.IsGlobal, s.ProductID, time.Now(), s.ID)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM sales WHERE id=$1`, uid)
	return err
}

// ── helpers ──────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanSale(row rowScanner) (*Sale, error) {
	s := &Sale{}
	var productID sql.NullString
	err := row.Scan(&s.ID, &s.Name, &s.DiscountPercentage, &s.StartDate, &s.EndDate,
		&s.IsActive, &s.IsGlobal, &productID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if productID.Valid {
		uid, err := uuid.Parse(productID.String)
		if err != nil {
			return nil, fmt.Errorf("malformed product_id on sale %s: %w", s.ID, err)
		}
		s.ProductID = &uid
	}
	return s, nil
}

func (r *postgresRepo) querySales(ctx context.Context, query string, args ...interface{}) ([]*Sale, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var sales []*Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}
