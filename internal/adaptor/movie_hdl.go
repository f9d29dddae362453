package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-api/internal/dto/request"
	"cinema-api/internal/usecase"
	"cinema-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// GetMovies handles GET /api/movies (public)
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	req := paginatedRequest(r)

	movies, err := h.service.GetMovies(r.Context(), req)
	if err != nil {
		respondError(w, h.log, err, "get movies")
		return
	}

	utils.ResponseSuccess(w, "success", movies)
}

// GetMovieByID handles GET /api/movies/{id} (public)
func (h *MovieHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid movie ID", nil)
		return
	}

	movie, err := h.service.GetMovieByID(r.Context(), id)
	if err != nil {
		respondError(w, h.log, err, "get movie")
		return
	}

	utils.ResponseSuccess(w, "success", movie)
}

// CreateMovie handles POST /api/movies (staff or manager)
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	movie, err := h.service.CreateMovie(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "create movie")
		return
	}

	utils.ResponseCreated(w, "Movie created", movie)
}

// UpdateMovie handles PUT /api/movies/{id} (staff or manager)
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid movie ID", nil)
		return
	}

	var req request.UpdateMovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	movie, err := h.service.UpdateMovie(r.Context(), id, &req)
	if err != nil {
		respondError(w, h.log, err, "update movie")
		return
	}

	utils.ResponseSuccess(w, "Movie updated", movie)
}

// DeleteMovie handles DELETE /api/movies/{id} (staff or manager)
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid movie ID", nil)
		return
	}

	if err := h.service.DeleteMovie(r.Context(), id); err != nil {
		respondError(w, h.log, err, "delete movie")
		return
	}

	utils.ResponseSuccess(w, "Movie deleted", nil)
}
