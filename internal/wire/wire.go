package wire

import (
	"net/http"

	"cinema-api/internal/adaptor"
	"cinema-api/internal/data/repository"
	"cinema-api/internal/usecase"
	"cinema-api/pkg/middleware"
	"cinema-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface of the application.
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and the router from the shared
// dependencies.
func Wiring(repo *repository.Repository, config *utils.Config, tokens *utils.TokenManager, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, tokens, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, tokens, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	tokens *utils.TokenManager,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware. Authenticate resolves a bearer token into an
	// identity when one is presented; requests without a token continue as
	// anonymous and are rejected later by the per-route guards.
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Authenticate(tokens, repo.User, logger))

	wireAuth(r, handler.Auth)
	wireUser(r, handler.User, logger)
	wireMovie(r, handler.Movie, logger)
	wireShowtime(r, handler.Showtime, logger)
	wireBooking(r, handler.Booking, logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
