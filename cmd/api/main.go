package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/yummybites/yummybites-backend/internal/ai"
	"github.com/yummybites/yummybites-backend/internal/auth"
	"github.com/yummybites/yummybites-backend/internal/config"
	"github.com/yummybites/yummybites-backend/internal/httpx"
	kafkax "github.com/yummybites/yummybites-backend/internal/kafka"
	"github.com/yummybites/yummybites-backend/internal/menu"
	"github.com/yummybites/yummybites-backend/internal/orders"
	"github.com/yummybites/yummybites-backend/internal/payments"
	"github.com/yummybites/yummybites-backend/internal/postgres"
	"github.com/yummybites/yummybites-backend/internal/ratings"
	"github.com/yummybites/yummybites-backend/internal/redisx"
	"github.com/yummybites/yummybites-backend/internal/reservations"
	"github.com/yummybites/yummybites-backend/internal/ws"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers, one per topic
	prodPlaced := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderPlaced, 1024)
	prodPlaced.Start(ctx)
	prodStatus := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicStatusChanged, 1024)
	prodStatus.Start(ctx)
	prodCaptured := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicPaymentCaptured, 256)
	prodCaptured.Start(ctx)
	prodFailed := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicPaymentFailed, 256)
	prodFailed.Start(ctx)

	// Core: registry + gateway
	hub := ws.NewHub()
	ordersRepo := &orders.Repo{DB: db}
	gateway := &orders.Gateway{
		Store:   ordersRepo,
		Hub:     hub,
		Events:  prodStatus,
		Cache:   rdb,
		Service: cfg.ServiceName,
	}

	tokens := auth.NewService(cfg.JWTSecret, cfg.AdminEmail)
	menuRepo := &menu.Repo{DB: db}

	router := httpx.NewRouter(cfg.CORSOrigins)

	httpx.RegisterTimed(router,
		&httpx.AuthHandler{Users: &auth.Repo{DB: db}, Tokens: tokens},
		&httpx.OrdersHandler{
			Repo:     ordersRepo,
			Gateway:  gateway,
			Tokens:   tokens,
			Redis:    rdb,
			Producer: prodPlaced,
			Service:  cfg.ServiceName,
		},
		&httpx.MenuHandler{Repo: menuRepo},
		&httpx.RatingsHandler{Repo: &ratings.Repo{DB: db}, Tokens: tokens},
		&httpx.PaymentsHandler{
			Client:           payments.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret),
			Repo:             &payments.Repo{DB: db},
			Redis:            rdb,
			KeySecret:        cfg.RazorpayKeySecret,
			ProducerCaptured: prodCaptured,
			ProducerFailed:   prodFailed,
			Service:          cfg.ServiceName,
		},
		&httpx.ReservationsHandler{Repo: &reservations.Repo{DB: db}},
		&httpx.ChatHandler{Assistant: &ai.Assistant{
			Classifier: ai.RuleClassifier{},
			Catalog:    menuRepo,
			APIKey:     cfg.OpenAIAPIKey,
			Model:      cfg.OpenAIModel,
		}},
		&httpx.AdminHandler{
			Orders: ordersRepo,
			Log:    &orders.StatusLogRepo{DB: db},
			Users:  &auth.Repo{DB: db},
			Hub:    hub,
			Tokens: tokens,
		},
	)

	// The socket route lives outside the request timeout: it stays open for
	// the life of the observer.
	(&httpx.SocketHandler{Hub: hub}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)

	for _, p := range []*kafkax.Producer{prodPlaced, prodStatus, prodCaptured, prodFailed} {
		p.Close()
	}
	cancel()
	for _, p := range []*kafkax.Producer{prodPlaced, prodStatus, prodCaptured, prodFailed} {
		p.WaitClosed()
	}
}
