package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alfagnish/bookshelf/internal/config"
	"github.com/alfagnish/bookshelf/internal/entity"
	"github.com/alfagnish/bookshelf/internal/repo"
	"github.com/alfagnish/bookshelf/internal/server"
	"github.com/alfagnish/bookshelf/internal/service"
	"github.com/alfagnish/bookshelf/internal/session"
	"github.com/alfagnish/bookshelf/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// 1. Load configuration from environment variables.
	cfg := config.Load()
	log.Printf("config: listen=%s users_db=%s books_db=%s",
		cfg.ListenAddr, cfg.UsersDBPath, cfg.BooksDBPath)

	// 2. Open the JSON file stores, creating empty ones on first run.
	userStore, err := store.Open[*entity.User](cfg.UsersDBPath)
	if err != nil {
		log.Fatalf("failed to open user store: %v", err)
	}
	bookStore, err := store.Open[*entity.Book](cfg.BooksDBPath)
	if err != nil {
		log.Fatalf("failed to open book store: %v", err)
	}

	// 3. Build repositories, services, and the session registry.
	users := service.NewUsers(repo.New("user", userStore))
	books := service.NewBooks(repo.New("book", bookStore))
	sessions := session.NewRegistry()

	// 4. Set up the router and dispatcher with all handlers.
	handler := server.New(cfg, users, books, sessions)

	// 5. Start the HTTP server.
	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("bookshelf listening on %s", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-done
	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}

	log.Println("bookshelf stopped")
}
