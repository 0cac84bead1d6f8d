package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"shop-order-service/internal/controllers/http"
	mmysql "shop-order-service/internal/infra/mysql"
	"shop-order-service/internal/infra/rabbitmq"
	mysqlrepo "shop-order-service/internal/repository/mysql"
	"shop-order-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	db, err := mmysql.NewMySQLFromEnv()
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1000)
	sqlDB.SetMaxIdleConns(200)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	store := mysqlrepo.NewStore(db)

	publisher, err := rabbitmq.NewPublisher(os.Getenv("RABBITMQ_URL"), "order.exchange")
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}

	cfg := services.Config{
		RefundCouponOnCancel: os.Getenv("REFUND_COUPON_ON_CANCEL") == "true",
	}

	orders := services.NewOrderService(store, publisher, cfg)
	payments := services.NewPaymentService(store, publisher)

	redisClient := redis.NewClient(&redis.Options{
		Addr:         os.Getenv("REDIS_HOST") + ":6379",
		DB:           0,
		PoolSize:     200,
		MinIdleConns: 20,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	orders.SetRedisClient(redisClient)

	if warmup := os.Getenv("WARMUP_PRODUCT_IDS"); warmup != "" {
		ids := strings.Split(warmup, ",")
		go func() {
			time.Sleep(5 * time.Second)
			if err := orders.WarmupProductCache(context.Background(), ids); err != nil {
				log.Printf("Failed to warm up cache: %v", err)
			} else {
				log.Println("Cache warmed up successfully")
			}
		}()
	}

	handler := http.NewHandler(orders, payments, redisClient)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	handler.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting order service on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
