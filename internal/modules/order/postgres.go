package order

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL order repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const orderColumns = `id, user_id, order_number, status, customer_name, email, phone, address, city,
       subtotal, shipping, total, currency, notes, courier, confirmed, created_at, updated_at`

// CreateOrder inserts the order and all its items inside a single transaction.
func (r *postgresRepo) CreateOrder(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders
		  (id, user_id, order_number, status, customer_name, email, phone, address, city,
		   subtotal, shipping, total, currency, notes, courier, confirmed)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		o.ID, o.UserID, o.OrderNumber, o.Status, o.CustomerName, o.Email, o.Phone,
		o.Address, o.City, o.Subtotal, o.Shipping, o.Total, o.Currency,
		o.Notes, o.Courier, o.Confirmed)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items
			  (id, order_id, product_id, product_name, variation_id, variation_name,
			   variation_price, color_id, color_name, color_code, color_price,
			   price, discount_percent, quantity)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
			item.ID, o.ID, item.ProductID, item.ProductName, item.VariationID,
			item.VariationName, item.VariationPrice, item.ColorID, item.ColorName,
			item.ColorCode, item.ColorPrice, item.Price, item.DiscountPercent,
			item.Quantity)
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}
	}

	return tx.Commit()
}

func (r *postgresRepo) GetOrderByID(ctx context.Context, id string) (*Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id=$1`, uid))
	if err != nil {
		return nil, err
	}
	o.Items, err = r.listItems(ctx, o.ID)
	return o, err
}

func (r *postgresRepo) GetOrderByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE order_number=$1`, orderNumber))
	if err != nil {
		return nil, err
	}
	o.Items, err = r.listItems(ctx, o.ID)
	return o, err
}

func (r *postgresRepo) ListOrders(ctx context.Context, filter ListFilter) ([]*Order, int, error) {
	where := ""
	args := []interface{}{}
	if filter.Status != "" {
		where = ` WHERE status=$1`
		args = append(args, filter.Status)
	}

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT `+orderColumns+` FROM orders`+where+
		` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	orders, err := r.queryOrders(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	// The back office list shows items inline, so load them eagerly.
	for _, o := range orders {
		if o.Items, err = r.listItems(ctx, o.ID); err != nil {
			return nil, 0, err
		}
	}
	return orders, total, nil
}

func (r *postgresRepo) ListOrdersByUser(ctx context.Context, userID string) ([]*Order, error) {
	orders, err := r.queryOrders(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.Items, err = r.listItems(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status=$1, updated_at=$2 WHERE id=$3`,
		status, time.Now(), id)
	return err
}

func (r *postgresRepo) UpdateAnnotations(ctx context.Context, o *Order) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE orders SET notes=$1, courier=$2, confirmed=$3, updated_at=$4 WHERE id=$5`,
		o.Notes, o.Courier, o.Confirmed, time.Now(), o.ID)
	return err
}

func (r *postgresRepo) UpdateItem(ctx context.Context, it *Item, subtotal, total float64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE order_items SET price=$1, quantity=$2 WHERE id=$3`,
		it.Price, it.Quantity, it.ID); err != nil {
		return fmt.Errorf("update order_item: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE orders SET subtotal=$1, total=$2, updated_at=$3 WHERE id=$4`,
		subtotal, total, time.Now(), it.OrderID); err != nil {
		return fmt.Errorf("update order totals: %w", err)
	}
	return tx.Commit()
}

func (r *postgresRepo) DeleteItem(ctx context.Context, orderID, itemID string, subtotal, total float64) error {
	iid, err := uuid.Parse(itemID)
	if err != nil {
		return err
	}
	oid, err := uuid.Parse(orderID)
	if err != nil {
		return err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM order_items WHERE id=$1 AND order_id=$2`, iid, oid); err != nil {
		return fmt.Errorf("delete order_item: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE orders SET subtotal=$1, total=$2, updated_at=$3 WHERE id=$4`,
		subtotal, total, time.Now(), oid); err != nil {
		return fmt.Errorf("update order totals: %w", err)
	}
	return tx.Commit()
}

// ── helpers ──────────────────────────────────────────────────────────────────

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanOrder(row rowScanner) (*Order, error) {
	o := &Order{}
	var userID sql.NullString
	err := row.Scan(&o.ID, &userID, &o.OrderNumber, &o.Status, &o.CustomerName,
		&o.Email, &o.Phone, &o.Address, &o.City, &o.Subtotal, &o.Shipping,
		&o.Total, &o.Currency, &o.Notes, &o.Courier, &o.Confirmed,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		uid, err := uuid.Parse(userID.String)
		if err != nil {
			return nil, fmt.Errorf("malformed user_id on order %s: %w", o.ID, err)
		}
		o.UserID = &uid
	}
	return o, nil
}

func (r *postgresRepo) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *postgresRepo) listItems(ctx context.Context, orderID uuid.UUID) ([]*Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, variation_id, variation_name,
		       variation_price, color_id, color_name, color_code, color_price,
		       price, discount_percent, quantity, created_at
		FROM order_items WHERE order_id=$1 ORDER BY created_at ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Item
	for rows.Next() {
		item := &Item{}
		var variationID, colorID sql.NullString
		var discount sql.NullInt64
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&variationID, &item.VariationName, &item.VariationPrice,
			&colorID, &item.ColorName, &item.ColorCode, &item.ColorPrice,
			&item.Price, &discount, &item.Quantity, &item.CreatedAt); err != nil {
			return nil, err
		}
		if variationID.Valid {
			vid, err := uuid.Parse(variationID.String)
			if err != nil {
				return nil, err
			}
			item.VariationID = &vid
		}
		if colorID.Valid {
			cid, err := uuid.Parse(colorID.String)
			if err != nil {
				return nil, err
			}
			item.ColorID = &cid
		}
		if discount.Valid {
			d := int(discount.Int64)
			item.DiscountPercent = &d
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
