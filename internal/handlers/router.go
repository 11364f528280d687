package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"mathclasses-backend/internal/middleware"
	"mathclasses-backend/internal/observability"
	"mathclasses-backend/pkg/api"
	"mathclasses-backend/pkg/auth"
)

// Router assembles the HTTP surface of the API.
type Router struct {
	catalog   *CatalogHandler
	saved     *SavedHandler
	resources *ResourceHandler
	account   *AccountHandler

	validator *auth.Validator
	metrics   *observability.Collector
	logger    *zap.Logger

	allowedOrigins []string
	timeout        func(http.Handler) http.Handler
}

// NewRouter creates a router over the given handlers.
func NewRouter(
	catalogHandler *CatalogHandler,
	savedHandler *SavedHandler,
	resourceHandler *ResourceHandler,
	accountHandler *AccountHandler,
	validator *auth.Validator,
	metrics *observability.Collector,
	logger *zap.Logger,
	allowedOrigins []string,
	timeout func(http.Handler) http.Handler,
) *Router {
	return &Router{
		catalog:        catalogHandler,
		saved:          savedHandler,
		resources:      resourceHandler,
		account:        accountHandler,
		validator:      validator,
		metrics:        metrics,
		logger:         logger,
		allowedOrigins: allowedOrigins,
		timeout:        timeout,
	}
}

// Setup builds the chi router with all middleware and routes.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(rt.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if rt.timeout != nil {
		r.Use(rt.timeout)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if rt.metrics != nil {
		r.Method(http.MethodGet, "/metrics", rt.metrics.Handler())
	}

	authenticate := middleware.Authenticate(rt.validator, rt.logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/topics", func(r chi.Router) {
			rt.instrument(r, "/api/topics")
			r.Get("/", rt.catalog.ListTopics)
			r.Get("/{topicID}", rt.catalog.GetTopic)
			r.Get("/{topicID}/resources", rt.catalog.ListTopicResources)
			r.Get("/{topicID}/related", rt.catalog.ListRelatedTopics)
		})

		r.Route("/resources", func(r chi.Router) {
			rt.instrument(r, "/api/resources")
			r.Get("/{resourceID}/download", rt.catalog.DownloadResource)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/", rt.resources.Create)
				r.Delete("/{resourceID}", rt.resources.Delete)
			})
		})

		r.Route("/saved", func(r chi.Router) {
			rt.instrument(r, "/api/saved")
			r.Use(authenticate)
			r.Get("/", rt.saved.List)
			r.Get("/{resourceID}", rt.saved.Get)
			r.Post("/{resourceID}/toggle", rt.saved.Toggle)
		})

		r.Group(func(r chi.Router) {
			rt.instrument(r, "/api/profile")
			r.Use(authenticate)
			r.Get("/profile", rt.account.Profile)
		})

		r.Route("/auth", func(r chi.Router) {
			rt.instrument(r, "/api/auth")
			r.Post("/signup", rt.account.SignUp)
			r.Post("/signin", rt.account.SignIn)
			r.Post("/reset-password", rt.account.ResetPassword)
		})
	})

	return r
}

func (rt *Router) instrument(r chi.Router, route string) {
	if rt.metrics != nil {
		r.Use(rt.metrics.Middleware(route))
	}
}
