package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gosimple/slug"

	"beton/internal/caching"
	"beton/internal/models"
	"beton/internal/repositories"
)

type ProductInput struct {
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	CategorySlug *string `json:"category"`
}

// ProductPage is a windowed product listing with its total count, so
// clients can page with {start, end} offsets.
type ProductPage struct {
	Count   int               `json:"count"`
	Results []*models.Product `json:"results"`
}

type ProductService interface {
	Create(ctx context.Context, input ProductInput) (*models.Product, error)
	GetBySlug(ctx context.Context, productSlug string) (*models.Product, error)
	List(ctx context.Context, filter models.ProductFilter, window *models.ProductListWindow) (*ProductPage, error)
	Update(ctx context.Context, productSlug string, input ProductInput) (*models.Product, error)
	Delete(ctx context.Context, productSlug string) error
}

type productService struct {
	repo       repositories.ProductRepository
	categories repositories.CategoryRepository
	cache      *caching.Cache
}

func NewProductService(repo repositories.ProductRepository, categories repositories.CategoryRepository, cache *caching.Cache) ProductService {
	return &productService{repo: repo, categories: categories, cache: cache}
}

func (s *productService) resolveCategory(ctx context.Context, categorySlug string) (*int64, error) {
	category, err := s.categories.GetBySlug(ctx, categorySlug)
	if errors.Is(err, repositories.ErrNoRows) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, categorySlug)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve category: %w", err)
	}
	return &category.ID, nil
}

func (s *productService) Create(ctx context.Context, input ProductInput) (*models.Product, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	product := &models.Product{
		Slug:        slug.Make(title),
		Title:       title,
		Description: input.Description,
	}
	if input.CategorySlug != nil {
		categoryID, err := s.resolveCategory(ctx, *input.CategorySlug)
		if err != nil {
			return nil, err
		}
		product.CategoryID = categoryID
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

func (s *productService) GetBySlug(ctx context.Context, productSlug string) (*models.Product, error) {
	key := caching.Key("product", productSlug)
	if s.cache != nil {
		var cached models.Product
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Printf("product cache read %s: %v", key, err)
		} else if hit {
			return &cached, nil
		}
	}

	product, err := s.repo.GetBySlug(ctx, productSlug)
	if errors.Is(err, repositories.ErrNoRows) {
		return nil, fmt.Errorf("%w: product %q", ErrNotFound, productSlug)
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, product); err != nil {
			log.Printf("product cache write %s: %v", key, err)
		}
	}
	return product, nil
}

func (s *productService) List(ctx context.Context, filter models.ProductFilter, window *models.ProductListWindow) (*ProductPage, error) {
	if window != nil {
		if window.Start < 0 || window.End < window.Start {
			return nil, fmt.Errorf("%w: offset window [%d, %d)", ErrValidation, window.Start, window.End)
		}
	}
	count, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	products, err := s.repo.List(ctx, filter, window)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return &ProductPage{Count: count, Results: products}, nil
}

func (s *productService) Update(ctx context.Context, productSlug string, input ProductInput) (*models.Product, error) {
	product, err := s.repo.GetBySlug(ctx, productSlug)
	if errors.Is(err, repositories.ErrNoRows) {
		return nil, fmt.Errorf("%w: product %q", ErrNotFound, productSlug)
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	if input.Title != "" {
		title := strings.TrimSpace(input.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title must not be blank", ErrValidation)
		}
		product.Title = title
		product.Slug = slug.Make(title)
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.CategorySlug != nil {
		categoryID, err := s.resolveCategory(ctx, *input.CategorySlug)
		if err != nil {
			return nil, err
		}
		product.CategoryID = categoryID
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	s.invalidate(ctx, productSlug, product.Slug)
	return product, nil
}

func (s *productService) Delete(ctx context.Context, productSlug string) error {
	err := s.repo.Delete(ctx, productSlug)
	if errors.Is(err, repositories.ErrNoRows) {
		return fmt.Errorf("%w: product %q", ErrNotFound, productSlug)
	}
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	s.invalidate(ctx, productSlug)
	return nil
}

func (s *productService) invalidate(ctx context.Context, slugs ...string) {
	if s.cache == nil {
		return
	}
	keys := make([]string, 0, len(slugs))
	for _, sl := range slugs {
		keys = append(keys, caching.Key("product", sl))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Printf("product cache invalidate: %v", err)
	}
}
