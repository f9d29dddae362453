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

type ShowtimeHandler struct {
	service usecase.ShowtimeService
	log     *zap.Logger
}

func NewShowtimeHandler(service usecase.ShowtimeService, log *zap.Logger) *ShowtimeHandler {
	return &ShowtimeHandler{
		service: service,
		log:     log.With(zap.String("handler", "showtime")),
	}
}

// GetShowtimes handles GET /api/showtimes (public)
func (h *ShowtimeHandler) GetShowtimes(w http.ResponseWriter, r *http.Request) {
	req := paginatedRequest(r)

	showtimes, err := h.service.GetShowtimes(r.Context(), req)
	if err != nil {
		respondError(w, h.log, err, "get showtimes")
		return
	}

	utils.ResponseSuccess(w, "success", showtimes)
}

// GetShowtimeByID handles GET /api/showtimes/{id} (public)
func (h *ShowtimeHandler) GetShowtimeByID(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid showtime ID", nil)
		return
	}

	showtime, err := h.service.GetShowtimeByID(r.Context(), id)
	if err != nil {
		respondError(w, h.log, err, "get showtime")
		return
	}

	utils.ResponseSuccess(w, "success", showtime)
}

// CreateShowtime handles POST /api/showtimes (staff or manager)
func (h *ShowtimeHandler) CreateShowtime(w http.ResponseWriter, r *http.Request) {
	var req request.ShowtimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	showtime, err := h.service.CreateShowtime(r.Context(), &req)
	if err != nil {
		respondError(w, h.log, err, "create showtime")
		return
	}

	utils.ResponseCreated(w, "Showtime created", showtime)
}

// UpdateShowtime handles PUT /api/showtimes/{id} (staff or manager)
func (h *ShowtimeHandler) UpdateShowtime(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid showtime ID", nil)
		return
	}

	var req request.UpdateShowtimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	showtime, err := h.service.UpdateShowtime(r.Context(), id, &req)
	if err != nil {
		respondError(w, h.log, err, "update showtime")
		return
	}

	utils.ResponseSuccess(w, "Showtime updated", showtime)
}

// DeleteShowtime handles DELETE /api/showtimes/{id} (staff or manager)
func (h *ShowtimeHandler) DeleteShowtime(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid showtime ID", nil)
		return
	}

	if err := h.service.DeleteShowtime(r.Context(), id); err != nil {
		respondError(w, h.log, err, "delete showtime")
		return
	}

	utils.ResponseSuccess(w, "Showtime deleted", nil)
}
