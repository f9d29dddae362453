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

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings (customer only)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), utils.GetIdentity(r.Context()), &req)
	if err != nil {
		respondError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking created", booking)
}

// GetBookings handles GET /api/bookings. Customers see their own bookings,
// staff and managers see all of them.
func (h *BookingHandler) GetBookings(w http.ResponseWriter, r *http.Request) {
	req := paginatedRequest(r)

	bookings, err := h.service.GetBookings(r.Context(), utils.GetIdentity(r.Context()), req)
	if err != nil {
		respondError(w, h.log, err, "get bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetBookingByID handles GET /api/bookings/{id}
func (h *BookingHandler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	booking, err := h.service.GetBookingByID(r.Context(), utils.GetIdentity(r.Context()), id)
	if err != nil {
		respondError(w, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// UpdateBooking handles PUT /api/bookings/{id} (staff or manager)
func (h *BookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	var req request.UpdateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.UpdateBooking(r.Context(), id, &req)
	if err != nil {
		respondError(w, h.log, err, "update booking")
		return
	}

	utils.ResponseSuccess(w, "Booking updated", booking)
}

// CancelBooking handles DELETE /api/bookings/{id}. Cancelling releases the
// booked seats back to the showtime.
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid booking ID", nil)
		return
	}

	if err := h.service.CancelBooking(r.Context(), utils.GetIdentity(r.Context()), id); err != nil {
		respondError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled", nil)
}
