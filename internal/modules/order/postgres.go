package order

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/suplefit/storefront-api/internal/platform/apperr"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a new PostgreSQL order repository.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

// CreateFromCart runs the whole checkout write-set in one transaction: the
// conditional stock decrements, the order and item inserts, and the cart
// clear. Any failure rolls all of it back.
func (r *postgresRepo) CreateFromCart(ctx context.Context, o *Order, cartID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperr.Wrap(apperr.Internal, err, "failed to begin checkout")
	}
	defer tx.Rollback()

	// Compare-and-decrement guards against a concurrent checkout that passed
	// the same validation read: zero rows means stock moved under us.
	for _, item := range o.Items {
		res, err := tx.ExecContext(ctx, `
			UPDATE products SET stock = stock - $2, updated_at = NOW()
			WHERE id = $1 AND stock >= $2`,
			item.ProductID, item.Quantity)
		if err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return apperr.New(apperr.BusinessRule, "insufficient stock for %s", r.productName(ctx, tx, item.ProductID))
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, total_amount, street, city, state, postal_code, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		o.ID, o.UserID, o.TotalAmount,
		o.ShippingAddress.Street, o.ShippingAddress.City,
		o.ShippingAddress.State, o.ShippingAddress.PostalCode,
		o.Status)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)`,
			o.ID, item.ProductID, item.Quantity, item.Price)
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	return tx.Commit()
}

func (r *postgresRepo) productName(ctx context.Context, tx *sql.Tx, productID uuid.UUID) string {
	var name string
	if err := tx.QueryRowContext(ctx, `SELECT name FROM products WHERE id = $1`, productID).Scan(&name); err != nil {
		return productID.String()
	}
	return name
}

const orderColumns = `o.id, o.user_id, o.total_amount, o.street, o.city, o.state, o.postal_code, o.status, o.created_at,
	       u.id, u.name, u.email`

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.New(apperr.NotFound, "order not found")
	}
	orders, err := r.queryOrders(ctx, `
		SELECT `+orderColumns+`
		FROM orders o JOIN users u ON u.id = o.user_id
		WHERE o.id = $1`, uid)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, apperr.New(apperr.NotFound, "order not found")
	}
	return orders[0], nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]*Order, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	return r.queryOrders(ctx, `
		SELECT `+orderColumns+`
		FROM orders o JOIN users u ON u.id = o.user_id
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC`, uid)
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]*Order, error) {
	return r.queryOrders(ctx, `
		SELECT `+orderColumns+`
		FROM orders o JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC`)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return apperr.New(apperr.NotFound, "order not found")
	}
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, uid, status)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.New(apperr.NotFound, "order not found")
	}
	return nil
}

func (r *postgresRepo) queryOrders(ctx context.Context, query string, args ...interface{}) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []*Order{}
	for rows.Next() {
		o := &Order{User: &UserSummary{}}
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.TotalAmount,
			&o.ShippingAddress.Street, &o.ShippingAddress.City,
			&o.ShippingAddress.State, &o.ShippingAddress.PostalCode,
			&o.Status, &o.CreatedAt,
			&o.User.ID, &o.User.Name, &o.User.Email,
		); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, o := range orders {
		if o.Items, err = r.listItems(ctx, o.ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// listItems resolves order lines against the products table. The price column
// is the captured purchase price, not the product's current one.
func (r *postgresRepo) listItems(ctx context.Context, orderID uuid.UUID) ([]*Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.product_id, oi.quantity, oi.price,
		       p.id, p.name, p.image
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.id ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*Item{}
	for rows.Next() {
		item := &Item{Product: &ProductSummary{}}
		if err := rows.Scan(
			&item.ProductID, &item.Quantity, &item.Price,
			&item.Product.ID, &item.Product.Name, &item.Product.Image,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
