package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"

	"beton/internal/models"
	"beton/internal/repositories"
)

type VariantInput struct {
	ProductSlug   *string           `json:"product"`
	Title         string            `json:"title"`
	Configuration map[string]string `json:"configuration"`
	Price         *decimal.Decimal  `json:"price"`
	Stock         *int              `json:"stock"`
}

type VariantService interface {
	Create(ctx context.Context, input VariantInput) (*models.ProductVariant, error)
	GetBySlug(ctx context.Context, variantSlug string) (*models.ProductVariant, error)
	ListByProduct(ctx context.Context, productSlug string) ([]*models.ProductVariant, error)
	Update(ctx context.Context, variantSlug string, input VariantInput) (*models.ProductVariant, error)
	Delete(ctx context.Context, variantSlug string) error
}

type variantService struct {
	repo     repositories.VariantRepository
	products repositories.ProductRepository
}

func NewVariantService(repo repositories.VariantRepository, products repositories.ProductRepository) VariantService {
	return &variantService{repo: repo, products: products}
}

func (s *variantService) Create(ctx context.Context, input VariantInput) (*models.ProductVariant, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if input.ProductSlug == nil {
		return nil, fmt.Errorf("%w: product is required", ErrValidation)
	}
	if input.Price == nil || input.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must be non-negative", ErrValidation)
	}

	product, err := s.products.GetBySlug(ctx, *input.ProductSlug)
	if errors.Is(err, repositories.ErrNoRows) {
		return nil, fmt.Errorf("%w: unknown product %q", ErrValidation, *input.ProductSlug)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve product: %w", err)
	}

	variant := &models.ProductVariant{
		ProductID:     product.ID,
		Slug:          slug.Make(title),
		Title:         title,
		Configuration: input.Configuration,
		Price:         *input.Price,
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, fmt.Errorf("%w: stock must be non-negative", ErrValidation)
		}
		variant.Stock = *input.Stock
	}
	if err := s.repo.Create(ctx, variant); err != nil {
		return nil, fmt.Errorf("create variant: %w", err)
	}
	return variant, nil
}

func (s *variantService) GetBySlug(ctx context.Context, variantSlug string) (*models.ProductVariant, error) {
	variant, err := s.repo.GetBySlug(ctx, variantSlug)
	if errors.Is(err, repositories.ErrNoRows) {
		return nil, fmt.Errorf("%w: variant %q", ErrNotFound, variantSlug)
	}
	if err != nil {
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return variant, nil
}

func (s *variantService) ListByProduct(ctx context.Context, productSlug string) ([]*models.ProductVariant, error) {
	product, err := s.products.GetBySlug(ctx, productSlug)
	if errors.Is(err, repositories.ErrNoRows) {
		return nil, fmt.Errorf("%w: product %q", ErrNotFound, productSlug)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve product: %w", err)
	}
	return s.repo.ListByProduct(ctx, product.ID)
}

func (s *variantService) Update(ctx context.Context, variantSlug string, input VariantInput) (*models.ProductVariant, error) {
	variant, err := s.repo.GetBySlug(ctx, variantSlug)
	if errors.Is(err, repositories.ErrNoRows) {
		return nil, fmt.Errorf("%w: variant %q", ErrNotFound, variantSlug)
	}
	if err != nil {
		return nil, fmt.Errorf("get variant: %w", err)
	}

	if input.Title != "" {
		title := strings.TrimSpace(input.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title must not be blank", ErrValidation)
		}
		variant.Title = title
		variant.Slug = slug.Make(title)
	}
	if input.Configuration != nil {
		variant.Configuration = input.Configuration
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price must be non-negative", ErrValidation)
		}
		variant.Price = *input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, fmt.Errorf("%w: stock must be non-negative", ErrValidation)
		}
		variant.Stock = *input.Stock
	}

	if err := s.repo.Update(ctx, variant); err != nil {
		return nil, fmt.Errorf("update variant: %w", err)
	}
	return variant, nil
}

func (s *variantService) Delete(ctx context.Context, variantSlug string) error {
	err := s.repo.Delete(ctx, variantSlug)
	if errors.Is(err, repositories.ErrNoRows) {
		return fmt.Errorf("%w: variant %q", ErrNotFound, variantSlug)
	}
	if err != nil {
		return fmt.Errorf("delete variant: %w", err)
	}
	return nil
}
