package handlers

import (
	"net/http"

	"internhub/internal/app"
	"internhub/internal/http/middleware"
	"internhub/internal/http/response"
)

type ApplicationHandler struct {
	applications *app.ApplicationService
}

func NewApplicationHandler(applications *app.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications}
}

type applyRequest struct {
	CoverLetter string `json:"cover_letter"`
}

func (h *ApplicationHandler) Apply(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	internshipID, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req applyRequest
	// The cover letter body is optional.
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			response.Error(w, err)
			return
		}
	}
	created, err := h.applications.Apply(r.Context(), internshipID, userID, req.CoverLetter)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *ApplicationHandler) MyApplications(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	items, err := h.applications.ListForUser(r.Context(), userID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"applications": items})
}
