package submission

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/snapai/showcase/internal/middleware"
	"github.com/snapai/showcase/internal/services/icon"
	"github.com/snapai/showcase/internal/utils"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes are the authenticated submission endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	r.Get("/mine", h.ListMine)
	return r
}

// ShowcaseRoutes are the public feed endpoints.
func (h *Handler) ShowcaseRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Showcase)
	return r
}

// AdminRoutes are the moderation console endpoints.
func (h *Handler) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.AdminList)
	r.Patch("/{id}/approval", h.SetApproval)
	r.Patch("/{id}/featured", h.SetFeatured)
	r.Post("/{id}/reject", h.Reject)
	return r
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.RequireAuth(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	// Generous cap so oversized files reach the gate and get the size
	// message instead of a blind connection error.
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	req := &CreateRequest{
		Command:       utils.SanitizeString(r.FormValue("command")),
		Prompt:        utils.SanitizeString(r.FormValue("prompt")),
		GitHubProfile: utils.SanitizeString(r.FormValue("github_profile")),
		WebsiteURL:    utils.SanitizeString(r.FormValue("website_url")),
		Description:   utils.SanitizeString(r.FormValue("description")),
	}

	var fileData []byte
	var contentType string
	if file, header, err := r.FormFile("icon"); err == nil {
		defer file.Close()
		fileData, err = io.ReadAll(file)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Failed to read file")
			return
		}
		contentType = header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}
	}

	sub, err := h.service.Create(r.Context(), userID, req, fileData, contentType)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields), errors.Is(err, ErrInvalidGitHubURL), errors.Is(err, ErrInvalidWebsiteURL):
			utils.RespondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, icon.ErrInvalidFileType):
			utils.RespondError(w, http.StatusBadRequest, icon.InvalidFileTypeMessage)
		case errors.Is(err, icon.ErrFileTooLarge):
			utils.RespondError(w, http.StatusRequestEntityTooLarge, icon.FileTooLargeMessage(int64(len(fileData))))
		default:
			utils.RespondError(w, http.StatusInternalServerError, "Failed to submit icon")
		}
		return
	}

	utils.RespondCreated(w, sub)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.RequireAuth(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	views, err := h.service.ListMine(r.Context(), userID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to list submissions")
		return
	}

	utils.RespondSuccess(w, views)
}

func (h *Handler) Showcase(w http.ResponseWriter, r *http.Request) {
	page := utils.GetQueryInt(r, "page", 1)

	feed, err := h.service.Feed(r.Context(), page)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to load showcase")
		return
	}

	utils.RespondSuccess(w, feed)
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	queues, err := h.service.AdminQueues(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to load submissions")
		return
	}

	utils.RespondSuccess(w, queues)
}

func (h *Handler) SetApproval(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid submission ID")
		return
	}

	var req struct {
		Approved *bool `json:"approved"`
	}
	if err := utils.DecodeJSON(r, &req); err != nil || req.Approved == nil {
		utils.RespondError(w, http.StatusBadRequest, "approved is required")
		return
	}

	if err := h.service.SetApproval(r.Context(), id, *req.Approved); err != nil {
		h.respondModerationError(w, err)
		return
	}

	utils.RespondSuccess(w, map[string]bool{"approved": *req.Approved})
}

func (h *Handler) SetFeatured(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid submission ID")
		return
	}

	var req struct {
		Featured *bool `json:"featured"`
	}
	if err := utils.DecodeJSON(r, &req); err != nil || req.Featured == nil {
		utils.RespondError(w, http.StatusBadRequest, "featured is required")
		return
	}

	if err := h.service.SetFeatured(r.Context(), id, *req.Featured); err != nil {
		h.respondModerationError(w, err)
		return
	}

	utils.RespondSuccess(w, map[string]bool{"featured": *req.Featured})
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid submission ID")
		return
	}

	if err := h.service.Reject(r.Context(), id); err != nil {
		h.respondModerationError(w, err)
		return
	}

	utils.RespondNoContent(w)
}

// respondModerationError maps a moderation failure to a response scoped to
// the single record acted on.
func (h *Handler) respondModerationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		utils.RespondError(w, http.StatusNotFound, "Submission not found")
	case errors.Is(err, ErrRejected):
		utils.RespondErrorWithCode(w, http.StatusConflict, "REJECTED", "Submission has been rejected")
	case errors.Is(err, ErrNotApproved):
		utils.RespondErrorWithCode(w, http.StatusConflict, "NOT_APPROVED", "Submission must be approved before it can be featured")
	default:
		utils.RespondError(w, http.StatusInternalServerError, "Failed to update submission")
	}
}
