package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/edu2job/edu2job-server/internal/api/handlers"
	"github.com/edu2job/edu2job-server/internal/auth"
	"github.com/edu2job/edu2job-server/internal/metrics"
	"github.com/edu2job/edu2job-server/internal/services"
)

// Deps groups everything the router needs.
type Deps struct {
	Users          services.UserServiceProvider
	Predictions    services.PredictionServiceProvider
	Dashboard      services.DashboardServiceProvider
	Tokens         auth.TokenVerifier
	Metrics        *metrics.Metrics
	AllowedOrigins []string
	// Static serves the browser client. Nil disables it.
	Static http.Handler
}

// NewRouter creates and configures a new Chi router.
func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}

	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(d.Users, d.Metrics)
	dashboardHandler := handlers.NewDashboardHandler(d.Dashboard)
	predictionHandler := handlers.NewPredictionHandler(d.Predictions, d.Metrics)

	r.Post("/register", userHandler.Register)
	r.Post("/login", userHandler.Login)

	// Session-guarded routes
	r.Group(func(r chi.Router) {
		r.Use(auth.Guard(d.Tokens))
		r.Get("/api/dashboard", dashboardHandler.Get)
		r.Post("/predict", predictionHandler.Predict)
	})

	r.Get("/healthz", handlers.Health)
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	if d.Static != nil {
		r.Handle("/*", d.Static)
	}

	return r
}
