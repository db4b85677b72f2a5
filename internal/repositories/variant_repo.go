package repositories

import (
	"context"

	"beton/internal/models"
)

type VariantRepository interface {
	Create(ctx context.Context, variant *models.ProductVariant) error
	GetBySlug(ctx context.Context, slug string) (*models.ProductVariant, error)
	ListByProduct(ctx context.Context, productID int64) ([]*models.ProductVariant, error)
	Update(ctx context.Context, variant *models.ProductVariant) error
	Delete(ctx context.Context, slug string) error
}

type variantRepo struct {
	db Database
}

func NewVariantRepo(db Database) VariantRepository {
	return &variantRepo{db: db}
}

func (r *variantRepo) Create(ctx context.Context, variant *models.ProductVariant) error {
	query := `INSERT INTO product_variants (product_id, slug, title, configuration, price, stock, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		variant.ProductID, variant.Slug, variant.Title, variant.Configuration, variant.Price, variant.Stock).
		Scan(&variant.ID, &variant.CreatedAt, &variant.UpdatedAt)
}

func (r *variantRepo) GetBySlug(ctx context.Context, slug string) (*models.ProductVariant, error) {
	query := `SELECT id, product_id, slug, title, configuration, price, stock, created_at, updated_at
	FROM product_variants WHERE slug = $1`
	var v models.ProductVariant
	err := r.db.QueryRow(ctx, query, slug).
		Scan(&v.ID, &v.ProductID, &v.Slug, &v.Title, &v.Configuration, &v.Price, &v.Stock, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *variantRepo) ListByProduct(ctx context.Context, productID int64) ([]*models.ProductVariant, error) {
	query := `SELECT id, product_id, slug, title, configuration, price, stock, created_at, updated_at
	FROM product_variants WHERE product_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var variants []*models.ProductVariant
	for rows.Next() {
		var v models.ProductVariant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Slug, &v.Title, &v.Configuration, &v.Price, &v.Stock, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		variants = append(variants, &v)
	}
	return variants, rows.Err()
}

func (r *variantRepo) Update(ctx context.Context, variant *models.ProductVariant) error {
	query := `UPDATE product_variants
	SET slug = $1, title = $2, configuration = $3, price = $4, stock = $5, updated_at = NOW()
	WHERE id = $6
	RETURNING updated_at`
	return r.db.QueryRow(ctx, query,
		variant.Slug, variant.Title, variant.Configuration, variant.Price, variant.Stock, variant.ID).
		Scan(&variant.UpdatedAt)
}

func (r *variantRepo) Delete(ctx context.Context, slug string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM product_variants WHERE slug = $1`, slug)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoRows
	}
	return nil
}
