package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-service/internal/auth"
	"storefront-service/internal/config"
	controllers "storefront-service/internal/controllers/http"
	"storefront-service/internal/domain"
	"storefront-service/internal/infra/cache"
	mmongo "storefront-service/internal/infra/mongo"
	mmysql "storefront-service/internal/infra/mysql"
	"storefront-service/internal/infra/payment"
	"storefront-service/internal/infra/rabbitmq"
	"storefront-service/internal/repository"
	mongorepo "storefront-service/internal/repository/mongo"
	mysqlrepo "storefront-service/internal/repository/mysql"
	"storefront-service/internal/services"
	"storefront-service/internal/stock"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	var c cache.Cache = cache.Nop{}
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Addr,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     200,
			MinIdleConns: 20,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("redis at %s unreachable, caching may fail: %v", cfg.Redis.Addr, err)
		}
		c = cache.NewRedisCache(redisClient, "store:")
	} else {
		log.Println("REDIS_HOST not set, running without cache")
	}

	var publisher rabbitmq.PublisherInterface = rabbitmq.Nop{}
	if cfg.RabbitMQ.URL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Fatalf("failed to init publisher: %v", err)
		}
		defer p.Close()
		publisher = p
	} else {
		log.Println("RABBITMQ_URL not set, events are dropped")
	}

	var gateway payment.Gateway = payment.Disabled{}
	if cfg.Razorpay.KeyID != "" && cfg.Razorpay.KeySecret != "" {
		gateway = payment.NewRazorpay(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret, cfg.Razorpay.Currency)
	} else {
		log.Println("razorpay keys not set, online payments disabled")
	}

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		log.Println("WARNING: JWT_SECRET not set, using an insecure development secret")
		secret = "storefront-dev-secret"
	}
	tokens := auth.NewTokens(secret, cfg.Auth.TokenTTL)

	sales := services.NewSaleService(store.Sales, c, cfg.CacheTTL)
	products := services.NewProductService(store.Products, sales, c, cfg.CacheTTL)
	stockManager := stock.NewManager(store.Products, products.Invalidate)
	orders := services.NewOrderService(store.Orders, store.Products, sales, stockManager, publisher, gateway)
	orders.SetShipping(cfg.ShippingPrice, cfg.FreeShipping)

	handler := controllers.NewHandler(controllers.Services{
		Orders:       orders,
		Products:     products,
		Sales:        sales,
		Reviews:      services.NewReviewService(store.Reviews, store.Products, store.Users, c),
		Auth:         services.NewAuthService(store.Users, store.Resets, tokens, publisher, cfg.Auth.ResetTokenTTL),
		Wishlist:     services.NewWishlistService(store.Users, store.Products),
		Categories:   services.NewCategoryService(store.Categories),
		Blogs:        services.NewContentService[domain.Blog](store.Blogs),
		Projects:     services.NewContentService[domain.Project](store.Projects),
		Testimonials: services.NewContentService[domain.Testimonial](store.Testimonials),
	}, tokens, cfg.RequestTimeout)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	handler.RegisterRoutes(r)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Printf("Starting storefront service on port %s (store %s)", cfg.Port, cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server run: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		log.Printf("db: close: %v", err)
	}
}

func openStore(ctx context.Context, cfg config.Config) (*repository.Store, error) {
	switch cfg.StoreDriver {
	case "mysql":
		db, err := mmysql.Open(ctx, cfg.MySQL, cfg.Retry)
		if err != nil {
			return nil, err
		}
		return mysqlrepo.NewStore(db), nil
	case "mongo":
		db, err := mmongo.Connect(ctx, cfg.Mongo, cfg.Retry)
		if err != nil {
			return nil, err
		}
		return mongorepo.NewStore(db), nil
	default:
		return nil, errors.New("STORE_DRIVER must be mysql or mongo, got " + cfg.StoreDriver)
	}
}
