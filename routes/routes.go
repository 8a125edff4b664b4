package routes

import (
	"net/http"
	"time"

	_ "github.com/Dosada05/prono-scoreboard/docs"
	"github.com/Dosada05/prono-scoreboard/handlers"
	"github.com/Dosada05/prono-scoreboard/middleware"
	"github.com/Dosada05/prono-scoreboard/services"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Scoreboard *handlers.ScoreboardHandler
	Auth       *handlers.AuthHandler
	WebSocket  *handlers.WebSocketHandler
	Health     *handlers.HealthHandler
}

type Options struct {
	JWTSecret      []byte
	AllowedOrigins []string
	// Gatherer backs /metrics; nil disables the endpoint.
	Gatherer prometheus.Gatherer
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", h.Health.Healthz)
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	if opts.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	// The websocket route is registered outside the timeout middleware.
	router.Get("/ws/scoreboard", h.WebSocket.ServeWs)

	router.Route("/api", func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(60 * time.Second))

		r.Get("/scoreboard", h.Scoreboard.GetScoreboard)
		r.Get("/players/{playerID}", h.Scoreboard.GetPlayer)
		r.Get("/groups", h.Scoreboard.ListGroups)

		r.Route("/matches", func(r chi.Router) {
			r.Get("/", h.Scoreboard.ListMatches)
			r.Get("/live", h.Scoreboard.GetLiveMatch)
			r.Get("/{matchNumber}", h.Scoreboard.GetMatch)
		})

		r.Post("/auth/token", h.Auth.Login)

		r.Route("/admin", func(r chi.Router) {
			if len(opts.JWTSecret) == 0 {
				r.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
					http.Error(w, "admin endpoints are disabled", http.StatusForbidden)
				})
				return
			}
			r.Use(middleware.Authenticate(opts.JWTSecret))
			r.Use(middleware.Authorize(services.RoleAdmin))

			r.Post("/refresh", h.Scoreboard.Refresh)
		})
	})
}
