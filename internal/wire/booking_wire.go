package wire

import (
	"cinema-api/internal/adaptor"
	"cinema-api/internal/data/entity"
	"cinema-api/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, log *zap.Logger) {
	r.Route("/api/bookings", func(r chi.Router) {
		// Only customers place bookings.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(log, entity.RoleCustomer))

			r.Post("/", bookingHandler.CreateBooking)
		})

		// Any authenticated user may read and cancel; the service scopes
		// customers to their own bookings.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth())

			r.Get("/", bookingHandler.GetBookings)
			r.Get("/{id}", bookingHandler.GetBookingByID)
			r.Delete("/{id}", bookingHandler.CancelBooking)
		})

		// Status changes are a back-office operation.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(log, entity.RoleStaff, entity.RoleManager))

			r.Put("/{id}", bookingHandler.UpdateBooking)
		})
	})
}
