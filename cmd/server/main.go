package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"codeshare/internal/api"
	"codeshare/internal/events"
	"codeshare/internal/routers"
	"codeshare/internal/utils"
)

// Swap-able seams for tests.
var (
	listenAndServe = http.ListenAndServe
	exitFunc       = func(err error) { log.Fatal(err) }

	defaultPort        = "5000"
	defaultFrontendURL = "http://localhost:3000"
	defaultRedisAddr   = "" // lifecycle events disabled unless set
	defaultCreateLimit = 30 // room creations per IP per minute
)

func main() {
	if err := run(context.Background()); err != nil {
		exitFunc(err)
	}
}

func run(ctx context.Context) error {
	_ = godotenv.Load()

	logger := utils.NewLogger()

	port := envOr("PORT", defaultPort)
	host := os.Getenv("HOST")
	frontendURL := envOr("FRONTEND_URL", defaultFrontendURL)
	redisAddr := envOr("REDIS_ADDR", defaultRedisAddr)

	pub := events.NewPublisher(redisAddr, logger)
	defer func() { _ = pub.Close() }()
	pub.Ping(ctx)

	h := api.NewHandlers(logger, pub)

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
	)
	r.Mount("/", routers.New(logger, h, routers.Options{
		AllowedOrigin: frontendURL,
		CreateLimit:   defaultCreateLimit,
	}))

	addr := host + ":" + port
	logger.Info("codeshare listening", "addr", addr, "frontend", frontendURL)
	return listenAndServe(addr, r)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
