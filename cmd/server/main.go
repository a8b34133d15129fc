package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/efad07/lumina/cache"
	"github.com/efad07/lumina/config"
	"github.com/efad07/lumina/handler"
	natsclient "github.com/efad07/lumina/nats"
	"github.com/efad07/lumina/pkg/jwt"
	"github.com/efad07/lumina/publisher"
	"github.com/efad07/lumina/repository"
	"github.com/efad07/lumina/repository/memory"
	"github.com/efad07/lumina/repository/mongodb"
	"github.com/efad07/lumina/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var store repository.Store
	var opts []service.Option

	switch cfg.StoreBackend {
	case config.StoreMongo:
		client, err := mongodb.Connect(ctx, cfg.MongoURI)
		if err != nil {
			log.Fatalf("Failed to connect to mongo: %v", err)
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()

		db := client.Database(cfg.MongoDB)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			log.Fatalf("Failed to ensure indexes: %v", err)
		}
		store = mongodb.New(db)
		log.Println("Using mongo store")

		if cfg.RedisAddr != "" {
			rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
			if err := rdb.Ping(ctx).Err(); err != nil {
				log.Fatalf("Failed to ping redis: %v", err)
			}
			opts = append(opts, service.WithFeedCache(cache.NewFeedCache(rdb, cfg.CacheTTL)))
			log.Println("Feed cache enabled")
		}
	default:
		store = memory.NewSeeded()
		log.Println("Using seeded in-memory store")
	}

	if cfg.NatsURL != "" {
		nc, err := natsclient.NewClient(natsclient.Config{
			URL:           cfg.NatsURL,
			MaxReconnects: cfg.NatsMaxReconnects,
			ReconnectWait: cfg.NatsReconnectWait,
		})
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		defer nc.Close()

		opts = append(opts, service.WithPublisher(publisher.NewEventPublisher(nc)))
		log.Println("Event publishing enabled")
	}

	svc := service.New(store, opts...)
	jwtManager := jwt.NewManager(cfg.JWTSecret, cfg.TokenExpiry)

	app := fiber.New(fiber.Config{AppName: "lumina"})
	handler.New(svc, jwtManager).RegisterRoutes(app)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down gracefully...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
	if err := app.Listen(cfg.HTTPAddr); err != nil {
		log.Fatalf("Failed to serve: %v", err)
	}

	log.Println("Server stopped")
}
