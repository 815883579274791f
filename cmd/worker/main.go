package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/yummybites/yummybites-backend/internal/config"
	kafkax "github.com/yummybites/yummybites-backend/internal/kafka"
	"github.com/yummybites/yummybites-backend/internal/orders"
	"github.com/yummybites/yummybites-backend/internal/postgres"
	"github.com/yummybites/yummybites-backend/internal/redisx"
	"github.com/yummybites/yummybites-backend/internal/tracker"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &tracker.Service{
		Log:         &orders.StatusLogRepo{DB: db},
		Redis:       rdb,
		ServiceName: cfg.ServiceName + "-tracker",
	}

	group := getenv("TRACKER_GROUP", "status-tracker")
	workers := mustAtoi(os.Getenv("TRACKER_WORKERS"), "4")
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, orders.TopicStatusChanged, workers)

	go func() {
		log.Printf("tracker consumer started: group=%s topic=%s workers=%d", group, orders.TopicStatusChanged, workers)
		if err := cons.Start(ctx, svc.HandleStatusChanged); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down consumer...")
	cancel()
	time.Sleep(500 * time.Millisecond)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}
