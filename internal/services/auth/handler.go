package auth

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/snapai/showcase/internal/middleware"
	"github.com/snapai/showcase/internal/utils"
)

type Handler struct {
	service *Service
	redis   *redis.Client
}

func NewHandler(service *Service, redisClient *redis.Client) *Handler {
	return &Handler{service: service, redis: redisClient}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	// Login and register get strict per-minute limiting
	r.Group(func(r chi.Router) {
		r.Use(middleware.StrictRateLimitMiddleware(h.redis, 10))
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/refresh", h.RefreshToken)
	})

	r.Post("/logout", h.Logout)

	return r
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := utils.Validate(&req); err != nil {
		utils.RespondValidationError(w, utils.FormatValidationErrors(err))
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			utils.RespondErrorWithCode(w, http.StatusConflict, "USER_EXISTS", "Email already in use")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	utils.RespondCreated(w, resp)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := utils.Validate(&req); err != nil {
		utils.RespondValidationError(w, utils.FormatValidationErrors(err))
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			utils.RespondErrorWithCode(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "Failed to login")
		return
	}

	utils.RespondSuccess(w, resp)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.service.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			utils.RespondErrorWithCode(w, http.StatusUnauthorized, "INVALID_SESSION", "Session not found or expired")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "Failed to refresh token")
		return
	}

	utils.RespondSuccess(w, resp)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.Logout(r.Context(), req.RefreshToken); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to logout")
		return
	}

	utils.RespondNoContent(w)
}
