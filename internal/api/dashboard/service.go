package dashboard

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/videra/data-server/internal/api/schema"
	"github.com/videra/data-server/internal/config"
	"github.com/videra/data-server/internal/signup"
	"github.com/videra/data-server/internal/storage"
)

// limiterIdleLifetime is the time a per-IP rate limiter is kept after its last use
const limiterIdleLifetime = 10 * time.Minute

// Service represents the dashboard API service
type Service struct {
	mtx    sync.Mutex
	server *http.Server

	Config  *config.Config
	Storage storage.Driver

	signup   *signup.Checker
	limiters *limiterPool
	writer   *schema.Writer
}

// Handler builds the HTTP handler serving the dashboard API.
// Calling Shutdown releases the resources allocated by it.
func (service *Service) Handler() http.Handler {
	// Create the HTTP schema writer
	service.writer = &schema.Writer{
		OnInternalError: func(err error) {
			log.Error().Err(err).Msg("the dashboard API experienced an unexpected error")
		},
	}

	service.signup = signup.NewChecker(service.Storage.Users(), service.Config.SignupMaxAccountsPerIP)
	service.limiters = newLimiterPool(service.Config.APIRateLimitRPS, service.Config.APIRateLimitBurst, limiterIdleLifetime)

	// Create the HTTP router
	router := chi.NewRouter()
	router.Use(middleware.RealIP)
	router.Use(middleware.RedirectSlashes)
	router.Use(middleware.Recoverer)
	router.Use(service.MiddlewareLogRequests)
	router.Use(MiddlewareMeasureRequests)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: service.Config.APIAllowedOrigins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	router.NotFound(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteNotFound(writer)
	})
	router.MethodNotAllowed(func(writer http.ResponseWriter, _ *http.Request) {
		service.writer.WriteErrors(writer, http.StatusMethodNotAllowed, schema.ErrMethodNotAllowed)
	})

	// Register the operational endpoints
	router.Get("/health", service.EndpointHealth)
	router.Handle("/metrics", promhttp.Handler())

	// Register the API endpoint handlers
	router.Route("/v1", func(router chi.Router) {
		router.Use(service.MiddlewareRateLimit)
		service.registerEndpoints(router)
	})

	return router
}

// Startup starts up the dashboard API
func (service *Service) Startup() error {
	service.mtx.Lock()
	server := &http.Server{
		Addr:              service.Config.APIListenAddress,
		Handler:           service.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	service.server = server
	service.mtx.Unlock()
	return server.ListenAndServe()
}

// Shutdown gracefully shuts down the dashboard API
func (service *Service) Shutdown(ctx context.Context) error {
	service.mtx.Lock()
	defer service.mtx.Unlock()
	if service.limiters != nil {
		service.limiters.close()
	}
	if service.server == nil {
		return nil
	}
	server := service.server
	service.server = nil
	return server.Shutdown(ctx)
}

func (service *Service) registerEndpoints(router chi.Router) {
	// Register the content controller endpoints
	router.Get("/content", service.EndpointGetContentItems)
	router.Post("/content", service.EndpointCreateContentItem)
	router.Get("/content/{id}", service.EndpointGetContentItem)
	router.Put("/content/{id}", service.EndpointEditContentItem)
	router.Delete("/content/{id}", service.EndpointDeleteContentItem)

	// Register the analytics controller endpoints
	router.Get("/analytics", service.EndpointGetDataPoints)
	router.Get("/analytics/summary", service.EndpointGetSummary)
	router.Get("/analytics/charts/{type}", service.EndpointGetChart)

	// Register the trending topic controller endpoints
	router.Get("/trends", service.EndpointGetTopics)
	router.Get("/trends/{id}", service.EndpointGetTopic)

	// Register the user administration endpoints
	router.Get("/admin/users", service.EndpointGetUsers)
	router.Get("/admin/users/{id}", service.EndpointGetUser)
	router.Patch("/admin/users/{id}", service.EndpointEditUser)

	// Register the signup eligibility endpoint
	router.Get("/signup/eligibility", service.EndpointGetSignupEligibility)
}

type healthResponse struct {
	Status string `json:"status"`
}

// EndpointHealth handles the 'GET /health' endpoint
func (service *Service) EndpointHealth(writer http.ResponseWriter, _ *http.Request) {
	service.writer.WriteJSON(writer, http.StatusOK, &healthResponse{Status: "ok"})
}
