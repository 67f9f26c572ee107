package http

import (
	"net/http"

	"github.com/frontandrew/carrent/internal/delivery/http/middleware"
	"github.com/frontandrew/carrent/internal/pkg/config"
	"github.com/frontandrew/carrent/internal/pkg/logger"
	"github.com/frontandrew/carrent/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Router содержит все зависимости для HTTP роутера
type Router struct {
	carHandler         *CarHandler
	reservationHandler *ReservationHandler
	metrics            *metrics.Metrics
	config             *config.Config
	logger             logger.Logger
}

// NewRouter создает новый HTTP router. metrics может быть nil
func NewRouter(
	carHandler *CarHandler,
	reservationHandler *ReservationHandler,
	metrics *metrics.Metrics,
	config *config.Config,
	logger logger.Logger,
) *Router {
	return &Router{
		carHandler:         carHandler,
		reservationHandler: reservationHandler,
		metrics:            metrics,
		config:             config,
		logger:             logger,
	}
}

// Setup настраивает все маршруты
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Глобальные middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RecoveryMiddleware(rt.logger))
	r.Use(middleware.LoggingMiddleware(rt.logger))
	if rt.metrics != nil {
		r.Use(middleware.MetricsMiddleware(rt.metrics))
	}
	r.Use(middleware.CORSMiddleware(middleware.CORSConfig{
		AllowedOrigins: rt.config.CORS.AllowedOrigins,
		AllowedMethods: rt.config.CORS.AllowedMethods,
		AllowedHeaders: rt.config.CORS.AllowedHeaders,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
		})
	})

	if rt.metrics != nil && rt.config.Metrics.Enabled {
		r.Method(http.MethodGet, rt.config.Metrics.Path, rt.metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/cars", rt.carHandler.ListCars)
		r.Post("/cars", rt.carHandler.CreateCar)

		r.Route("/car/{id}", func(r chi.Router) {
			r.Get("/", rt.carHandler.GetCar)
			r.Post("/", rt.carHandler.CreateCar)
			r.Put("/", rt.carHandler.UpdateCar)
			r.Patch("/", rt.carHandler.PatchCar)
			r.Delete("/", rt.carHandler.DeleteCar)

			r.Route("/reservations", func(r chi.Router) {
				r.Get("/", rt.reservationHandler.ListReservations)
				r.Post("/", rt.reservationHandler.CreateReservation)

				r.Route("/{rid}", func(r chi.Router) {
					r.Get("/", rt.reservationHandler.GetReservation)
					r.Put("/", rt.reservationHandler.UpdateReservation)
					r.Patch("/", rt.reservationHandler.PatchReservation)
					r.Delete("/", rt.reservationHandler.DeleteReservation)
				})
			})
		})
	})

	return r
}
