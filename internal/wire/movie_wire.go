package wire

import (
	"cinema-api/internal/adaptor"
	"cinema-api/internal/data/entity"
	"cinema-api/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler, log *zap.Logger) {
	r.Route("/api/movies", func(r chi.Router) {
		// Browsing the catalog is public.
		r.Get("/", movieHandler.GetMovies)
		r.Get("/{id}", movieHandler.GetMovieByID)

		// Catalog mutations are for staff and managers.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(log, entity.RoleStaff, entity.RoleManager))

			r.Post("/", movieHandler.CreateMovie)
			r.Put("/{id}", movieHandler.UpdateMovie)
			r.Delete("/{id}", movieHandler.DeleteMovie)
		})
	})
}
