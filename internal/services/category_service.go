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

type CategoryInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

type CategoryService interface {
	Create(ctx context.Context, input CategoryInput) (*models.Category, error)
	GetBySlug(ctx context.Context, categorySlug string) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
	Update(ctx context.Context, categorySlug string, input CategoryInput) (*models.Category, error)
	Delete(ctx context.Context, categorySlug string) error
}

type categoryService struct {
	repo  repositories.CategoryRepository
	cache *caching.Cache
}

func NewCategoryService(repo repositories.CategoryRepository, cache *caching.Cache) CategoryService {
	return &categoryService{repo: repo, cache: cache}
}

func (s *categoryService) Create(ctx context.Context, input CategoryInput) (*models.Category, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	category := &models.Category{
		Slug:        slug.Make(title),
		Title:       title,
		Description: input.Description,
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return category, nil
}

func (s *categoryService) GetBySlug(ctx context.Context, categorySlug string) (*models.Category, error) {
	key := caching.Key("category", categorySlug)
	if s.cache != nil {
		var cached models.Category
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Printf("category cache read %s: %v", key, err)
		} else if hit {
			return &cached, nil
		}
	}

	category, err := s.repo.GetBySlug(ctx, categorySlug)
	if errors.Is(err, repositories.ErrNoRows) {
		return nil, fmt.Errorf("%w: category %q", ErrNotFound, categorySlug)
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, category); err != nil {
			log.Printf("category cache write %s: %v", key, err)
		}
	}
	return category, nil
}

func (s *categoryService) List(ctx context.Context) ([]*models.Category, error) {
	return s.repo.List(ctx)
}

func (s *categoryService) Update(ctx context.Context, categorySlug string, input CategoryInput) (*models.Category, error) {
	category, err := s.repo.GetBySlug(ctx, categorySlug)
	if errors.Is(err, repositories.ErrNoRows) {
		return nil, fmt.Errorf("%w: category %q", ErrNotFound, categorySlug)
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}

	if input.Title != "" {
		title := strings.TrimSpace(input.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title must not be blank", ErrValidation)
		}
		category.Title = title
		category.Slug = slug.Make(title)
	}
	if input.Description != nil {
		category.Description = input.Description
	}

	if err := s.repo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	s.invalidate(ctx, categorySlug, category.Slug)
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, categorySlug string) error {
	err := s.repo.Delete(ctx, categorySlug)
	if errors.Is(err, repositories.ErrNoRows) {
		return fmt.Errorf("%w: category %q", ErrNotFound, categorySlug)
	}
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	s.invalidate(ctx, categorySlug)
	return nil
}

func (s *categoryService) invalidate(ctx context.Context, slugs ...string) {
	if s.cache == nil {
		return
	}
	keys := make([]string, 0, len(slugs))
	for _, sl := range slugs {
		keys = append(keys, caching.Key("category", sl))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Printf("category cache invalidate: %v", err)
	}
}
