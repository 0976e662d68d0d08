package order

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("not found")

type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

type InsufficientStockError struct {
	ProductID   int64
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: available %d, requested %d", e.ProductID, e.Available, e.Requested)
}

// DBPool matches the methods from *pgxpool.Pool that we use.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type Repository interface {
	PlaceOrders(ctx context.Context, userID string, items []Item) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	Get(ctx context.Context, id int64) (Order, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

type lockedProduct struct {
	name  string
	price decimal.Decimal
	stock int
	taken int
}

// PlaceOrders checks and decrements stock for every item and inserts one
// pending order per item, all in one transaction. Product rows are locked
// with SELECT ... FOR UPDATE in ascending id order, so concurrent checkouts
// of the same product serialize instead of overselling. Any failing item
// rolls back the whole checkout.
func (r *PostgresRepository) PlaceOrders(ctx context.Context, userID string, items []Item) ([]Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ids := distinctProductIDs(items)
	locked := make(map[int64]*lockedProduct, len(ids))
	for _, id := range ids {
		p, err := lockProduct(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		locked[id] = p
	}

	for _, it := range items {
		p := locked[it.ProductID]
		if available := p.stock - p.taken; available < it.Quantity {
			return nil, &InsufficientStockError{
				ProductID:   it.ProductID,
				ProductName: p.name,
				Available:   available,
				Requested:   it.Quantity,
			}
		}
		p.taken += it.Quantity
	}

	for _, id := range ids {
		if _, err := tx.Exec(ctx, `
			UPDATE products
			SET stock = stock - $2, updated_at = now()
			WHERE id = $1
		`, id, locked[id].taken); err != nil {
			return nil, fmt.Errorf("decrement stock for product %d: %w", id, err)
		}
	}

	orders := make([]Order, 0, len(items))
	for _, it := range items {
		p := locked[it.ProductID]
		o := Order{
			UserID:      userID,
			ProductID:   it.ProductID,
			ProductName: p.name,
			Quantity:    it.Quantity,
			TotalPrice:  p.price.Mul(decimal.NewFromInt(int64(it.Quantity))),
			Status:      StatusPending,
		}
		err := tx.QueryRow(ctx, `
			INSERT INTO orders (user_id, product_id, quantity, total_price, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at
		`, nullString(userID), o.ProductID, o.Quantity, o.TotalPrice.String(), string(o.Status)).
			Scan(&o.ID, &o.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("insert order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return orders, nil
}

func lockProduct(ctx context.Context, tx pgx.Tx, id int64) (*lockedProduct, error) {
	var (
		p     lockedProduct
		price string
	)
	err := tx.QueryRow(ctx, `
		SELECT name, price::text, stock
		FROM products
		WHERE id = $1
		FOR UPDATE
	`, id).Scan(&p.name, &price, &p.stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ProductNotFoundError{ProductID: id}
		}
		return nil, fmt.Errorf("lock product %d: %w", id, err)
	}
	p.price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse price of product %d: %w", id, err)
	}
	return &p, nil
}

func distinctProductIDs(items []Item) []int64 {
	ids := make([]int64, 0, len(items))
	for _, it := range items {
		if !slices.Contains(ids, it.ProductID) {
			ids = append(ids, it.ProductID)
		}
	}
	slices.Sort(ids)
	return ids
}

const orderSelect = `
	SELECT o.id, COALESCE(o.user_id, ''), o.product_id, COALESCE(p.name, ''),
	       o.quantity, o.total_price::text, o.status, o.created_at
	FROM orders o
	LEFT JOIN products p ON p.id = o.product_id`

func (r *PostgresRepository) ListAll(ctx context.Context) ([]Order, error) {
	return r.list(ctx, orderSelect+` ORDER BY o.created_at DESC, o.id DESC`)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return r.list(ctx, orderSelect+` WHERE o.user_id = $1 ORDER BY o.created_at DESC, o.id DESC`, userID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx, orderSelect+` WHERE o.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}
	return o, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	tag, err := r.pool.Exec(ctx, `UPDATE orders SET status=$2 WHERE id=$1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanOrder(row pgx.Row) (Order, error) {
	var (
		o      Order
		total  string
		status string
	)
	if err := row.Scan(&o.ID, &o.UserID, &o.ProductID, &o.ProductName, &o.Quantity, &total, &status, &o.CreatedAt); err != nil {
		return Order{}, err
	}
	d, err := decimal.NewFromString(total)
	if err != nil {
		return Order{}, fmt.Errorf("parse order total: %w", err)
	}
	o.TotalPrice = d
	o.Status = Status(status)
	return o, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
