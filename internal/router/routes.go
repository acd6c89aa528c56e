package router

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/handler"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/middleware"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/tutoring-service/internal/platform/metrics"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Users    *handler.UserHandler
	Teachers *handler.TeacherHandler
	Health   *handler.HealthHandler
}

// NewRouter builds the HTTP surface. guard protects the authenticated routes.
// A nil metrics manager disables /metrics and request observation.
func NewRouter(h Handlers, guard func(http.Handler) http.Handler, mm *metrics.MetricsManager, log *logger.Logger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	if mm != nil {
		r.Use(middleware.Metrics(mm))
		r.Handle("/metrics", mm.Handler())
	}

	r.Get("/healthz", h.Health.Health)
	SetupUserRoutes(r, h.Users, guard)
	SetupTeacherRoutes(r, h.Teachers, guard)
	return r
}

// SetupUserRoutes configures the learner/parent routes.
func SetupUserRoutes(r chi.Router, h *handler.UserHandler, guard func(http.Handler) http.Handler) {
	r.Route("/api/users", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Get("/confirm/{token}", h.Confirm)
		r.Post("/confirm/resend", h.ResendConfirmation)

		r.With(guard).Get("/profile", h.Profile)
	})
}

// SetupTeacherRoutes configures the teacher directory routes.
func SetupTeacherRoutes(r chi.Router, h *handler.TeacherHandler, guard func(http.Handler) http.Handler) {
	r.Route("/api/teachers", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Register)
		r.Post("/login", h.Login)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(guard)
			r.Put("/{id}", h.Update)
			r.Post("/{id}/reviews", h.AddReview)
		})
	})
}
