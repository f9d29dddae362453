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

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// GetUsers handles GET /api/users (manager only)
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	req := paginatedRequest(r)

	users, err := h.service.GetUsers(r.Context(), req)
	if err != nil {
		respondError(w, h.log, err, "get users")
		return
	}

	utils.ResponseSuccess(w, "success", users)
}

// GetUserByID handles GET /api/users/{id} (manager only)
func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid user ID", nil)
		return
	}

	user, err := h.service.GetUserByID(r.Context(), id)
	if err != nil {
		respondError(w, h.log, err, "get user")
		return
	}

	utils.ResponseSuccess(w, "success", user)
}

// UpdateUser handles PUT /api/users/{id} (manager only)
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid user ID", nil)
		return
	}

	var req request.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	user, err := h.service.UpdateUser(r.Context(), id, &req)
	if err != nil {
		respondError(w, h.log, err, "update user")
		return
	}

	utils.ResponseSuccess(w, "User updated", user)
}

// DeleteUser handles DELETE /api/users/{id} (manager only)
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid user ID", nil)
		return
	}

	if err := h.service.DeleteUser(r.Context(), id); err != nil {
		respondError(w, h.log, err, "delete user")
		return
	}

	utils.ResponseSuccess(w, "User deleted", nil)
}

// paginatedRequest reads page/per_page query parameters with defaults.
func paginatedRequest(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}
