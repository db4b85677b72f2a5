package repositories

import (
	"context"
	"strconv"

	"github.com/google/uuid"

	"beton/internal/models"
)

type OrderRepository interface {
	// CreateWithItems inserts the order and its items in one
	// transaction. Items referencing variants that do not exist are
	// skipped; everything rolls back on any other failure.
	CreateWithItems(ctx context.Context, order *models.Order, items []models.OrderItemInput) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, filter models.OrderFilter) ([]*models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	// UpdateWithItems updates the order row and swaps its item set in
	// one transaction, so a failure leaves neither applied. Unlike
	// creation, an unresolvable variant reference fails the whole call
	// with ErrUnknownVariant.
	UpdateWithItems(ctx context.Context, order *models.Order, items []models.OrderItemInput) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderRepo struct {
	db Database
}

func NewOrderRepo(db Database) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) CreateWithItems(ctx context.Context, order *models.Order, items []models.OrderItemInput) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO orders (id, fullname, contact, contact_method, status, deadline, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	RETURNING created_at, updated_at`
	err = tx.QueryRow(ctx, query,
		order.ID, order.Fullname, order.Contact, order.ContactMethod, order.Status, order.Deadline).
		Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return err
	}

	itemQuery := `INSERT INTO order_items (order_id, product_id, quantity)
	SELECT $1, id, $3 FROM product_variants WHERE id = $2`
	for _, item := range items {
		if _, err := tx.Exec(ctx, itemQuery, order.ID, item.ID, item.Quantity); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	query := `SELECT id, fullname, contact, contact_method, status, deadline, created_at, updated_at
	FROM orders WHERE id = $1`
	var o models.Order
	err := r.db.QueryRow(ctx, query, id).
		Scan(&o.ID, &o.Fullname, &o.Contact, &o.ContactMethod, &o.Status, &o.Deadline, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}

	itemQuery := `SELECT i.id, i.order_id, i.product_id, i.quantity,
	v.id, v.product_id, v.slug, v.title, v.configuration, v.price, v.stock, v.created_at, v.updated_at
	FROM order_items i
	JOIN product_variants v ON v.id = i.product_id
	WHERE i.order_id = $1
	ORDER BY i.id`
	rows, err := r.db.Query(ctx, itemQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		var v models.ProductVariant
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity,
			&v.ID, &v.ProductID, &v.Slug, &v.Title, &v.Configuration, &v.Price, &v.Stock, &v.CreatedAt, &v.UpdatedAt)
		if err != nil {
			return nil, err
		}
		item.Product = &v
		o.Items = append(o.Items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) List(ctx context.Context, filter models.OrderFilter) ([]*models.Order, error) {
	query := `SELECT id, fullname, contact, contact_method, status, deadline, created_at, updated_at
	FROM orders`
	var args []any
	var clauses []string
	add := func(column string, value string) {
		args = append(args, value)
		clauses = append(clauses, column)
	}
	if filter.Contact != nil {
		add("contact", *filter.Contact)
	}
	if filter.ContactMethod != nil {
		add("contact_method", *filter.ContactMethod)
	}
	if filter.Status != nil {
		add("status", *filter.Status)
	}
	for i, column := range clauses {
		if i == 0 {
			query += " WHERE "
		} else {
			query += " AND "
		}
		query += column + " = $" + strconv.Itoa(i+1)
	}
	query += " ORDER BY created_at"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		var o models.Order
		err := rows.Scan(&o.ID, &o.Fullname, &o.Contact, &o.ContactMethod, &o.Status, &o.Deadline, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return nil, err
		}
		orders = append(orders, &o)
	}
	return orders, rows.Err()
}

func (r *orderRepo) Update(ctx context.Context, order *models.Order) error {
	query := `UPDATE orders
	SET fullname = $1, contact = $2, contact_method = $3, status = $4, deadline = $5, updated_at = NOW()
	WHERE id = $6
	RETURNING updated_at`
	return r.db.QueryRow(ctx, query,
		order.Fullname, order.Contact, order.ContactMethod, order.Status, order.Deadline, order.ID).
		Scan(&order.UpdatedAt)
}

func (r *orderRepo) UpdateWithItems(ctx context.Context, order *models.Order, items []models.OrderItemInput) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `UPDATE orders
	SET fullname = $1, contact = $2, contact_method = $3, status = $4, deadline = $5, updated_at = NOW()
	WHERE id = $6
	RETURNING updated_at`
	err = tx.QueryRow(ctx, query,
		order.Fullname, order.Contact, order.ContactMethod, order.Status, order.Deadline, order.ID).
		Scan(&order.UpdatedAt)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, order.ID); err != nil {
		return err
	}

	itemQuery := `INSERT INTO order_items (order_id, product_id, quantity)
	SELECT $1, id, $3 FROM product_variants WHERE id = $2`
	for _, item := range items {
		tag, err := tx.Exec(ctx, itemQuery, order.ID, item.ID, item.Quantity)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrUnknownVariant
		}
	}

	return tx.Commit(ctx)
}

func (r *orderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoRows
	}
	return nil
}
