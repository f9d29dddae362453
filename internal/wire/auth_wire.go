package wire

import (
	"cinema-api/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	// POST /api/register - create an account. Open by default; when open
	// registration is disabled the service itself requires a manager
	// identity, so the route stays public here.
	r.Post("/api/register", authHandler.Register)

	// POST /api/login - exchange credentials for an access token
	r.Post("/api/login", authHandler.Login)
}
