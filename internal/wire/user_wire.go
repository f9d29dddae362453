package wire

import (
	"cinema-api/internal/adaptor"
	"cinema-api/internal/data/entity"
	"cinema-api/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, log *zap.Logger) {
	// User administration is manager-only.
	r.Route("/api/users", func(r chi.Router) {
		r.Use(middleware.RequireRole(log, entity.RoleManager))

		r.Get("/", userHandler.GetUsers)
		r.Get("/{id}", userHandler.GetUserByID)
		r.Put("/{id}", userHandler.UpdateUser)
		r.Delete("/{id}", userHandler.DeleteUser)
	})
}
