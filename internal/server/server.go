package server

import (
	"log"
	"net/http"
	"time"

	"github.com/alfagnish/bookshelf/internal/config"
	"github.com/alfagnish/bookshelf/internal/handlers"
	"github.com/alfagnish/bookshelf/internal/router"
	"github.com/alfagnish/bookshelf/internal/service"
	"github.com/alfagnish/bookshelf/internal/session"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
)

// New wires the route table, session guard, and middleware chain into a
// single http.Handler.
func New(cfg *config.Config, users *service.Users, books *service.Books, sessions *session.Registry) http.Handler {
	rt := router.New()

	guard := func(next router.HandlerFunc) router.HandlerFunc {
		return session.Guard(sessions, next)
	}

	// ── Route registration ──────────────────────────────────
	handlers.NewUsersHandler(users, cfg.JWTSecret).Routes(rt, guard)
	handlers.NewBooksHandler(books).Routes(rt)

	// ── Middleware ───────────────────────────────────────────
	var h http.Handler = &dispatcher{routes: rt}
	h = middleware.RealIP(h)
	h = middleware.Recoverer(h)
	h = requestLogger(h)
	h = cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "Session-ID"},
		MaxAge:         300,
	})(h)
	return h
}

// requestLogger is a simple middleware that logs each HTTP request with
// method, path, status code, duration, and a generated request ID. The ID is
// echoed back in the X-Request-ID response header.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.NewString()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ww.Header().Set("X-Request-ID", reqID)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		log.Printf("%s %s %d %s id=%s",
			r.Method,
			r.URL.Path,
			status,
			time.Since(start).Round(time.Millisecond),
			reqID,
		)
	})
}
