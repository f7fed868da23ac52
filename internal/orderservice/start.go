package orderservice

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"pos-system/internal/config"
	"pos-system/internal/connections/database"
	"pos-system/internal/connections/rabbitmq"
	"pos-system/internal/gateway"
	"pos-system/internal/logger"
	"pos-system/internal/orderservice/handlers"
	"pos-system/internal/orderservice/repository"
	"pos-system/internal/orderservice/service"
)

// Run wires and serves the order service: Postgres, RabbitMQ, the HTTP API
// and the WebSocket gateway. Blocks until ctx is canceled.
func Run(ctx context.Context, cfg *config.Config) error {
	lg := logger.New("order-service")

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()
	if err := database.InitSchema(ctx, db); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	lg.Info("database_connected", map[string]any{"host": cfg.Database.Host, "database": cfg.Database.Database})

	mq, err := rabbitmq.Dial(cfg.RabbitMQ)
	if err != nil {
		return fmt.Errorf("connect rabbitmq: %w", err)
	}
	defer mq.Close()
	if err := mq.DeclareEvents(); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}
	lg.Info("rabbitmq_connected", map[string]any{"host": cfg.RabbitMQ.Host})

	repo := repository.New(db)
	svc := service.New(repo, mq, lg)
	handler := handlers.New(svc)

	hub := gateway.NewHub(lg)
	defer hub.Close()
	relay := gateway.NewRelay(mq, hub, lg)
	relayErr := make(chan error, 1)
	go func() { relayErr <- relay.Run(ctx) }()

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Display-Name"},
		MaxAge:         300,
	}))

	r.Get("/api/menu", handler.Menu.List)
	r.Post("/api/menu/items", handler.Menu.Upsert)
	r.Get("/api/orders", handler.Orders.List)
	r.Get("/api/orders/pending", handler.Orders.ListPending)
	r.Post("/api/orders", handler.Orders.Create)
	r.Put("/api/orders/{id}/status", handler.Orders.UpdateStatus)
	r.Get("/ws", hub.HandleWS)
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := db.PingContext(req.Context()); err != nil {
			http.Error(w, "db unreachable", http.StatusServiceUnavailable)
			return
		}
		if err := mq.Ping(); err != nil {
			http.Error(w, "broker unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() { srvErr <- srv.ListenAndServe() }()
	lg.Info("service_started", map[string]any{"port": cfg.Server.Port})

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
		<-relayErr
		lg.Info("graceful_shutdown", nil)
		return nil
	case err := <-srvErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case err := <-relayErr:
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
		return fmt.Errorf("relay stopped: %w", err)
	}
}
