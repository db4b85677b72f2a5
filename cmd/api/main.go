package main

import (
	"context"
	"log"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"beton/internal/caching"
	"beton/internal/config"
	"beton/internal/handlers"
	"beton/internal/jobs"
	"beton/internal/repositories"
	"beton/internal/services"
	"beton/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	if err := database.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	cache := caching.New(redisClient, cfg.CacheTTL)

	categoryRepo := repositories.NewCategoryRepo(pool)
	productRepo := repositories.NewProductRepo(pool)
	variantRepo := repositories.NewVariantRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)

	var notifier services.OrderNotifier
	if cfg.BotToken != "" && len(cfg.OrderRecipients) > 0 {
		api, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, tgbotapi.APIEndpoint,
			&http.Client{Timeout: cfg.NotifyTimeout})
		if err != nil {
			log.Fatalf("telegram: %v", err)
		}
		notifier = services.NewTelegramNotifier(api, cfg.OrderRecipients)
	} else {
		log.Println("order notifications disabled: no bot token or recipients")
	}

	categoryService := services.NewCategoryService(categoryRepo, cache)
	productService := services.NewProductService(productRepo, categoryRepo, cache)
	variantService := services.NewVariantService(variantRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, notifier)

	warmer, err := jobs.NewCacheWarmer(categoryRepo, productRepo, cache)
	if err != nil {
		log.Fatalf("jobs: %v", err)
	}
	if err := warmer.Start(15 * time.Minute); err != nil {
		log.Fatalf("jobs: %v", err)
	}
	defer warmer.Stop()

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	handlers.RegisterRoutes(e, handlers.Handlers{
		Categories: handlers.NewCategoryHandler(categoryService),
		Products:   handlers.NewProductHandler(productService),
		Variants:   handlers.NewVariantHandler(variantService),
		Orders:     handlers.NewOrderHandler(orderService),
	}, cfg.AuthTokenHash)

	log.Fatal(e.Start(":" + cfg.Port))
}
