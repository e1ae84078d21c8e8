package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL catalog repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const productColumns = `id, category_id, name, slug, description, price, stock_quantity, image_url, is_active, created_at, updated_at`

func (r *postgresRepo) CreateProduct(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products
		  (id, category_id, name, slug, description, price, stock_quantity, image_url, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		p.ID, p.CategoryID, p.Name, p.Slug, p.Description,
		p.Price, p.StockQuantity, p.ImageURL, p.IsActive)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetProductByID(ctx context.Context, id string) (*Product, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	p, err := scanProduct(r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id=$1`, uid))
	if err != nil {
		return nil, err
	}
	return p, r.loadSelections(ctx, p)
}

func (r *postgresRepo) GetProductBySlug(ctx context.Context, slug string) (*Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE slug=$1`, slug))
	if err != nil {
		return nil, err
	}
	return p, r.loadSelections(ctx, p)
}

func (r *postgresRepo) ListProducts(ctx context.Context, categorySlug string, activeOnly bool) ([]*Product, error) {
	query := `SELECT ` + productColumnsPrefixed + ` FROM products p`
	var args []interface{}
	where := ""
	if categorySlug != "" {
		query += ` JOIN categories c ON c.id = p.category_id`
		args = append(args, categorySlug)
		where = ` WHERE c.slug=$1`
	}
	if activeOnly {
		if where == "" {
			where = ` WHERE p.is_active=TRUE`
		} else {
			where += ` AND p.is_active=TRUE`
		}
	}
	query += where + ` ORDER BY p.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, p := range products {
		if err := r.loadSelections(ctx, p); err != nil {
			return nil, err
		}
	}
	return products, nil
}

func (r *postgresRepo) UpdateProduct(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE products SET
		  category_id=$1, name=$2, slug=$3, description=$4, price=$5,
		  stock_quantity=$6, image_url=$7, is_active=$8, updated_at=$9
		WHERE id=$10`,
		p.CategoryID, p.Name, p.Slug, p.Description, p.Price,
		p.StockQuantity, p.ImageURL, p.IsActive, time.Now(), p.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (r *postgresRepo) DeleteProduct(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM variations WHERE product_id=$1`,
		`DELETE FROM colors WHERE product_id=$1`,
		`DELETE FROM products WHERE id=$1`,
	} {
		if _, err := tx.ExecContext(ctx, q, uid); err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
	}
	return tx.Commit()
}

// ── variations ───────────────────────────────────────────────────────────────

func (r *postgresRepo) CreateVariation(ctx context.Context, v *Variation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO variations (id, product_id, name, price, apply_sale, quantity)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		v.ID, v.ProductID, v.Name, v.Price, v.ApplySale, v.Quantity)
	return err
}

func (r *postgresRepo) UpdateVariation(ctx context.Context, v *Variation) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE variations SET name=$1, price=$2, apply_sale=$3, quantity=$4 WHERE id=$5`,
		v.Name, v.Price, v.ApplySale, v.Quantity, v.ID)
	return err
}

func (r *postgresRepo) DeleteVariation(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM variations WHERE id=$1`, uid)
	return err
}

func (r *postgresRepo) GetVariation(ctx context.Context, id string) (*Variation, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	v := &Variation{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, product_id, name, price, apply_sale, quantity
		FROM variations WHERE id=$1`, uid).
		Scan(&v.ID, &v.ProductID, &v.Name, &v.Price, &v.ApplySale, &v.Quantity)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ── colors ───────────────────────────────────────────────────────────────────

func (r *postgresRepo) CreateColor(ctx context.Context, c *Color) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO colors (id, product_id, name, code, price, apply_sale, quantity)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		c.ID, c.ProductID, c.Name, c.Code, c.Price, c.ApplySale, c.Quantity)
	return err
}

func (r *postgresRepo) UpdateColor(ctx context.Context, c *Color) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE colors SET name=$1, code=$2, price=$3, apply_sale=$4, quantity=$5 WHERE id=$6`,
		c.Name, c.Code, c.Price, c.ApplySale, c.Quantity, c.ID)
	return err
}

func (r *postgresRepo) DeleteColor(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM colors WHERE id=$1`, uid)
	return err
}

func (r *postgresRepo) GetColor(ctx context.Context, id string) (*Color, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	c := &Color{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, product_id, name, code, price, apply_sale, quantity
		FROM colors WHERE id=$1`, uid).
		Scan(&c.ID, &c.ProductID, &c.Name, &c.Code, &c.Price, &c.ApplySale, &c.Quantity)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ── categories ───────────────────────────────────────────────────────────────

func (r *postgresRepo) CreateCategory(ctx context.Context, c *Category) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, slug, image_url) VALUES ($1,$2,$3,$4)`,
		c.ID, c.Name, c.Slug, c.ImageURL)
	return err
}

func (r *postgresRepo) ListCategories(ctx context.Context) ([]*Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, slug, image_url, created_at FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var categories []*Category
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.ImageURL, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *postgresRepo) DeleteCategory(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `UPDATE products SET category_id=NULL WHERE category_id=$1`, uid); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE id=$1`, uid); err != nil {
		return err
	}
	return tx.Commit()
}

// ── helpers ──────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanProduct(row rowScanner) (*Product, error) {
	p := &Product{}
	var categoryID sql.NullString
	err := row.Scan(&p.ID, &categoryID, &p.Name, &p.Slug, &p.Description,
		&p.Price, &p.StockQuantity, &p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if categoryID.Valid {
		uid, err := uuid.Parse(categoryID.String)
		if err != nil {
			return nil, fmt.Errorf("malformed category_id on product %s: %w", p.ID, err)
		}
		p.CategoryID = &uid
	}
	return p, nil
}

const productColumnsPrefixed = `p.id, p.category_id, p.name, p.slug, p.description, p.price, p.stock_quantity, p.image_url, p.is_active, p.created_at, p.updated_at`

// loadSelections attaches the product's variations and colors.
func (r *postgresRepo) loadSelections(ctx context.Context, p *Product) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, name, price, apply_sale, quantity
		FROM variations WHERE product_id=$1 ORDER BY name ASC`, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		v := &Variation{}
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Name, &v.Price, &v.ApplySale, &v.Quantity); err != nil {
			return err
		}
		p.Variations = append(p.Variations, v)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	crows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, name, code, price, apply_sale, quantity
		FROM colors WHERE product_id=$1 ORDER BY name ASC`, p.ID)
	if err != nil {
		return err
	}
	defer crows.Close()
	for crows.Next() {
		c := &Color{}
		if err := crows.Scan(&c.ID, &c.ProductID, &c.Name, &c.Code, &c.Price, &c.ApplySale, &c.Quantity); err != nil {
			return err
		}
		p.Colors = append(p.Colors, c)
	}
	return crows.Err()
}
