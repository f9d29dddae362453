package wire

import (
	"cinema-api/internal/adaptor"
	"cinema-api/internal/data/entity"
	"cinema-api/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireShowtime(r chi.Router, showtimeHandler *adaptor.ShowtimeHandler, log *zap.Logger) {
	r.Route("/api/showtimes", func(r chi.Router) {
		// The schedule is public.
		r.Get("/", showtimeHandler.GetShowtimes)
		r.Get("/{id}", showtimeHandler.GetShowtimeByID)

		// Schedule mutations are for staff and managers.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(log, entity.RoleStaff, entity.RoleManager))

			r.Post("/", showtimeHandler.CreateShowtime)
			r.Put("/{id}", showtimeHandler.UpdateShowtime)
			r.Delete("/{id}", showtimeHandler.DeleteShowtime)
		})
	})
}
