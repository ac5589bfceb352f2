package github

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/snapai/showcase/internal/middleware"
	"github.com/snapai/showcase/internal/utils"
)

type Handler struct {
	debouncer *Debouncer
}

func NewHandler(client *Client, quiet time.Duration) *Handler {
	return &Handler{
		debouncer: NewDebouncer(quiet, client.FetchProfile),
	}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/preview", h.Preview)
	return r
}

// Preview resolves a GitHub profile URL to a profile snapshot for the
// submission form. Requests are debounced per user, so a burst of lookups
// while typing only hits the GitHub API once the input settles; superseded
// requests return 204.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.RequireAuth(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profileURL := r.URL.Query().Get("url")
	if profileURL == "" {
		utils.RespondError(w, http.StatusBadRequest, "url query parameter is required")
		return
	}

	if !ValidProfileURL(profileURL) {
		utils.RespondError(w, http.StatusBadRequest, "Please enter a valid GitHub profile URL (e.g., https://github.com/username)")
		return
	}

	handle, _ := ExtractUsername(profileURL)

	res := <-h.debouncer.Schedule(r.Context(), userID.String(), handle)
	if res.Superseded {
		utils.RespondNoContent(w)
		return
	}
	if res.Err != nil {
		// Enrichment is advisory: a failed lookup is "no profile", not an error
		utils.RespondSuccess(w, map[string]any{"profile": nil})
		return
	}

	utils.RespondSuccess(w, map[string]any{"profile": res.Profile})
}
