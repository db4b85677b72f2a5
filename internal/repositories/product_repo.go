package repositories

import (
	"context"
	"fmt"

	"beton/internal/models"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	List(ctx context.Context, filter models.ProductFilter, window *models.ProductListWindow) ([]*models.Product, error)
	Count(ctx context.Context, filter models.ProductFilter) (int, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, slug string) error
}

type productRepo struct {
	db Database
}

func NewProductRepo(db Database) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	query := `INSERT INTO products (slug, title, description, category_id, created_at, updated_at)
	VALUES ($1, $2, $3, $4, NOW(), NOW())
	RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query, product.Slug, product.Title, product.Description, product.CategoryID).
		Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *productRepo) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	query := `SELECT id, slug, title, description, category_id, created_at, updated_at
	FROM products WHERE slug = $1`
	var p models.Product
	err := r.db.QueryRow(ctx, query, slug).
		Scan(&p.ID, &p.Slug, &p.Title, &p.Description, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, filter models.ProductFilter, window *models.ProductListWindow) ([]*models.Product, error) {
	query := `SELECT p.id, p.slug, p.title, p.description, p.category_id, p.created_at, p.updated_at
	FROM products p`
	var args []any
	if filter.CategorySlug != "" {
		query += ` JOIN categories c ON c.id = p.category_id WHERE c.slug = $1`
		args = append(args, filter.CategorySlug)
	}
	query += ` ORDER BY p.id`
	if window != nil {
		query += fmt.Sprintf(` OFFSET $%d LIMIT $%d`, len(args)+1, len(args)+2)
		args = append(args, window.Start, window.End-window.Start)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Slug, &p.Title, &p.Description, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}

func (r *productRepo) Count(ctx context.Context, filter models.ProductFilter) (int, error) {
	query := `SELECT COUNT(*) FROM products p`
	var args []any
	if filter.CategorySlug != "" {
		query += ` JOIN categories c ON c.id = p.category_id WHERE c.slug = $1`
		args = append(args, filter.CategorySlug)
	}
	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	query := `UPDATE products
	SET slug = $1, title = $2, description = $3, category_id = $4, updated_at = NOW()
	WHERE id = $5
	RETURNING updated_at`
	return r.db.QueryRow(ctx, query, product.Slug, product.Title, product.Description, product.CategoryID, product.ID).
		Scan(&product.UpdatedAt)
}

func (r *productRepo) Delete(ctx context.Context, slug string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE slug = $1`, slug)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoRows
	}
	return nil
}
