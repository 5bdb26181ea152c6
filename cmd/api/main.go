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

	"github.com/joho/godotenv"

	"github.com/apetrov/diarium/backend/internal/config"
	"github.com/apetrov/diarium/backend/internal/handler"
	"github.com/apetrov/diarium/backend/internal/service/ai"
	diaryservice "github.com/apetrov/diarium/backend/internal/service/diary"
	"github.com/apetrov/diarium/backend/internal/store/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	store, err := sqlite.Open(cfg.Store.DBPath)
	if err != nil {
		log.Fatalf("failed to open entry store at %s: %v", cfg.Store.DBPath, err)
	}
	defer store.Close()
	log.Printf("entry store ready at %s", cfg.Store.DBPath)

	// Initialize the oracle client
	var oracle diaryservice.Oracle
	if cfg.AI.Enabled() {
		aiService, err := ai.NewService(ctx, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize oracle client: %v", err)
			log.Println("continuing without model access - check the Ark environment variables")
		} else {
			oracle = aiService
			log.Println("oracle client initialized successfully")
		}
	} else {
		log.Println("Ark credentials not configured, model-backed endpoints will fail")
	}

	diarySvc := diaryservice.NewService(oracle, store, cfg.AI.FanoutLimit)
	router := handler.NewRouter(diarySvc)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Diarium backend listening on %s", addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
