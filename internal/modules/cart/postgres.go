package cart

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type postgresStore struct{ db *sql.DB }

// NewPostgresStore creates the Postgres-backed cart store for signed-in
// users. The key is the user's UUID.
func NewPostgresStore(db *sql.DB) Store { return &postgresStore{db: db} }

func (s *postgresStore) Items(ctx context.Context, key string) ([]*Item, error) {
	userID, err := uuid.Parse(key)
	if err != nil {
		return nil, fmt.Errorf("invalid cart owner: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, product_id, variation_id, color_id, product_name, variation_name,
		       variation_price, color_name, color_code, color_price, unit_price,
		       apply_sale, quantity, added_at
		FROM cart_items WHERE user_id=$1 ORDER BY added_at ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		it := &Item{}
		var variationID, colorID sql.NullString
		if err := rows.Scan(&it.ID, &it.ProductID, &variationID, &colorID,
			&it.ProductName, &it.VariationName, &it.VariationPrice,
			&it.ColorName, &it.ColorCode, &it.ColorPrice,
			&it.UnitPrice, &it.ApplySale, &it.Quantity, &it.AddedAt); err != nil {
			return nil, err
		}
		if variationID.Valid {
			vid, err := uuid.Parse(variationID.String)
			if err != nil {
				return nil, err
			}
			it.VariationID = &vid
		}
		if colorID.Valid {
			cid, err := uuid.Parse(colorID.String)
			if err != nil {
				return nil, err
			}
			it.ColorID = &cid
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Save replaces the user's cart in a single transaction.
func (s *postgresStore) Save(ctx context.Context, key string, items []*Item) error {
	userID, err := uuid.Parse(key)
	if err != nil {
		return fmt.Errorf("invalid cart owner: %w", err)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id=$1`, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	for _, it := range items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO cart_items
			  (id, user_id, product_id, variation_id, color_id, product_name,
			   variation_name, variation_price, color_name, color_code, color_price,
			   unit_price, apply_sale, quantity, added_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
			it.ID, userID, it.ProductID, it.VariationID, it.ColorID, it.ProductName,
			it.VariationName, it.VariationPrice, it.ColorName, it.ColorCode, it.ColorPrice,
			it.UnitPrice, it.ApplySale, it.Quantity, it.AddedAt)
		if err != nil {
			return fmt.Errorf("insert cart item: %w", err)
		}
	}
	return tx.Commit()
}

func (s *postgresStore) Clear(ctx context.Context, key string) error {
	userID, err := uuid.Parse(key)
	if err != nil {
		return fmt.Errorf("invalid cart owner: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id=$1`, userID)
	return err
}
