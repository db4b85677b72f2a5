package repositories

import (
	"context"

	"beton/internal/models"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, slug string) error
}

type categoryRepo struct {
	db Database
}

func NewCategoryRepo(db Database) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, category *models.Category) error {
	query := `INSERT INTO categories (slug, title, description, created_at, updated_at)
	VALUES ($1, $2, $3, NOW(), NOW())
	RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query, category.Slug, category.Title, category.Description).
		Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
}

func (r *categoryRepo) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	query := `SELECT id, slug, title, description, created_at, updated_at
	FROM categories WHERE slug = $1`
	var c models.Category
	err := r.db.QueryRow(ctx, query, slug).
		Scan(&c.ID, &c.Slug, &c.Title, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) List(ctx context.Context) ([]*models.Category, error) {
	query := `SELECT id, slug, title, description, created_at, updated_at
	FROM categories ORDER BY title`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Slug, &c.Title, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

func (r *categoryRepo) Update(ctx context.Context, category *models.Category) error {
	query := `UPDATE categories
	SET slug = $1, title = $2, description = $3, updated_at = NOW()
	WHERE id = $4
	RETURNING updated_at`
	return r.db.QueryRow(ctx, query, category.Slug, category.Title, category.Description, category.ID).
		Scan(&category.UpdatedAt)
}

func (r *categoryRepo) Delete(ctx context.Context, slug string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE slug = $1`, slug)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoRows
	}
	return nil
}
