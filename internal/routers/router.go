package routers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"codeshare/internal/api"
	"codeshare/internal/metrics"
	"codeshare/internal/utils"
)

// Options tune the HTTP surface around the handlers.
type Options struct {
	AllowedOrigin string // CORS origin for the frontend
	CreateLimit   int    // room creations per IP per minute, 0 disables
}

func New(log *utils.Logger, h *api.Handlers, opts Options) http.Handler {
	r := chi.NewRouter()

	if opts.AllowedOrigin != "" {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{opts.AllowedOrigin},
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	r.Get("/api/health", h.Health)

	if opts.CreateLimit > 0 {
		limiter := newIPLimiter(opts.CreateLimit, time.Minute)
		r.With(limiter.middleware).Post("/api/rooms", h.CreateRoom)
	} else {
		r.Post("/api/rooms", h.CreateRoom)
	}

	r.Get("/api/rooms/{roomCode}", h.CheckRoom)

	r.Get("/ws", h.ServeWS)

	r.Handle("/metrics", metrics.Handler())

	return r
}
