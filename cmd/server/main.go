package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/cors"

	"batepapo/internal/chat"
	"batepapo/internal/config"
	"batepapo/internal/database"
	"batepapo/internal/handler"
	"batepapo/internal/metrics"
	"batepapo/internal/store"
)

func openStore(cfg config.Config) (store.Store, error) {
	if cfg.StoreDriver == config.DriverMemory {
		log.Println("⚠️  Using in-memory store, data is lost on restart")
		return store.NewMemory(), nil
	}

	// データベース接続を初期化
	db, err := database.Init(cfg)
	if err != nil {
		return nil, err
	}
	return store.NewMySQL(db), nil
}

func main() {
	// .envファイルを読み込み
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  .env file not found, using default values: %v", err)
	}

	// 環境変数を読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	st, err := openStore(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}
	defer st.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	hub := handler.NewHub(cfg.AllowedOrigins)
	opts := chat.Options{Publisher: hub, Metrics: metrics.New(reg)}
	msgs := chat.NewMessages(st, opts)
	dir := chat.NewDirectory(st, msgs, opts)
	sweeper := chat.NewSweeper(st, msgs, cfg.SweepInterval, cfg.StaleAfter, opts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// WebSocket ブロードキャスターを開始
	go hub.HandleBroadcast()

	sweeperDone := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(sweeperDone)
	}()

	h := handler.New(dir, msgs, hub, reg)
	router := h.SetupRouter()

	// CORS対応
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS", "PUT"},
		AllowedHeaders:   []string{"Content-Type", "User"},
		ExposedHeaders:   []string{"Content-Length"},
		MaxAge:           300,
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Println("========================================")
	fmt.Println("  Bate-papo API Server")
	fmt.Println("========================================")
	fmt.Printf("  Environment: %s\n", cfg.Env)
	fmt.Printf("  Server: http://localhost:%s\n", cfg.ServerPort)
	fmt.Printf("  WebSocket: ws://localhost:%s/ws\n", cfg.ServerPort)
	fmt.Printf("  Store: %s\n", cfg.StoreDriver)
	if cfg.StoreDriver == config.DriverMySQL && cfg.DBName != "" {
		fmt.Printf("  Database: %s@%s:%s/%s\n", cfg.DBUser, cfg.DBHost, cfg.DBPort, cfg.DBName)
	}
	fmt.Printf("  Sweep: every %s, idle after %s\n", cfg.SweepInterval, cfg.StaleAfter)
	fmt.Printf("  Allowed Origins: %v\n", cfg.AllowedOrigins)
	fmt.Println("========================================")

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("❌ Shutdown error: %v", err)
		}
	}()

	log.Println("🚀 Server started successfully")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("❌ Server error: %v", err)
	}

	<-sweeperDone
	log.Println("👋 Server stopped")
}
