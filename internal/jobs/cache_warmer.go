// Package jobs runs the background schedule: a periodic warmer that
// keeps hot catalog entries in Redis.
package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"beton/internal/caching"
	"beton/internal/models"
	"beton/internal/repositories"
)

type CacheWarmer struct {
	categories repositories.CategoryRepository
	products   repositories.ProductRepository
	cache      *caching.Cache
	scheduler  gocron.Scheduler
}

func NewCacheWarmer(categories repositories.CategoryRepository, products repositories.ProductRepository, cache *caching.Cache) (*CacheWarmer, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &CacheWarmer{
		categories: categories,
		products:   products,
		cache:      cache,
		scheduler:  scheduler,
	}, nil
}

// Start schedules the warm-up run and begins the scheduler.
func (w *CacheWarmer) Start(interval time.Duration) error {
	_, err := w.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(w.warm),
		gocron.WithName("catalog-cache-warmer"),
	)
	if err != nil {
		return fmt.Errorf("schedule cache warmer: %w", err)
	}
	w.scheduler.Start()
	return nil
}

func (w *CacheWarmer) Stop() error {
	return w.scheduler.Shutdown()
}

func (w *CacheWarmer) warm() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	categories, err := w.categories.List(ctx)
	if err != nil {
		log.Printf("cache warmer: list categories: %v", err)
		return
	}
	for _, category := range categories {
		key := caching.Key("category", category.Slug)
		if err := w.cache.Set(ctx, key, category); err != nil {
			log.Printf("cache warmer: %s: %v", key, err)
		}
	}

	products, err := w.products.List(ctx, models.ProductFilter{}, nil)
	if err != nil {
		log.Printf("cache warmer: list products: %v", err)
		return
	}
	for _, product := range products {
		key := caching.Key("product", product.Slug)
		if err := w.cache.Set(ctx, key, product); err != nil {
			log.Printf("cache warmer: %s: %v", key, err)
		}
	}
	log.Printf("cache warmer: refreshed %d categories, %d products", len(categories), len(products))
}
