package handlers

import (
	"fmt"
	"net/http"
	"time"

	"internhub/internal/app"
	"internhub/internal/domain/application"
	"internhub/internal/domain/internship"
	"internhub/internal/http/middleware"
	"internhub/internal/http/response"
)

type AdminHandler struct {
	auth           *app.AuthService
	internships    *app.InternshipService
	applications   *app.ApplicationService
	users          *app.UserService
	transfers      *app.TransferService
	maxUploadBytes int64
}

func NewAdminHandler(auth *app.AuthService, internships *app.InternshipService, applications *app.ApplicationService, users *app.UserService, transfers *app.TransferService, maxUploadBytes int64) *AdminHandler {
	return &AdminHandler{
		auth:           auth,
		internships:    internships,
		applications:   applications,
		users:          users,
		transfers:      transfers,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *AdminHandler) Me(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	account, err := h.auth.Admin(r.Context(), adminID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, account)
}

func (h *AdminHandler) ListUploads(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	files, err := h.transfers.ListUploads(r.Context(), adminID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"uploads": files})
}

type internshipRequest struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Domain       string   `json:"domain"`
	Position     string   `json:"position"`
	Salary       int      `json:"salary"`
	Type         string   `json:"type"`
	Duration     string   `json:"duration"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	IsActive     *bool    `json:"is_active"`
}

func (req internshipRequest) toDomain() internship.Internship {
	item := internship.Internship{
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		Domain:       req.Domain,
		Position:     req.Position,
		Salary:       req.Salary,
		Type:         req.Type,
		Duration:     req.Duration,
		Description:  req.Description,
		Requirements: req.Requirements,
		IsActive:     true,
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	return item
}

func (h *AdminHandler) ListInternships(w http.ResponseWriter, r *http.Request) {
	query, err := listQueryFromRequest(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	result, err := h.internships.ListAdmin(r.Context(), query)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

func (h *AdminHandler) GetInternship(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.internships.GetAdmin(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}

func (h *AdminHandler) CreateInternship(w http.ResponseWriter, r *http.Request) {
	var req internshipRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.internships.Create(r.Context(), req.toDomain())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

func (h *AdminHandler) UpdateInternship(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req internshipRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	item := req.toDomain()
	item.ID = id
	updated, err := h.internships.Update(r.Context(), item)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *AdminHandler) ToggleInternship(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.internships.Toggle(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *AdminHandler) DeleteInternship(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.internships.Delete(r.Context(), id); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, messageResponse{Message: "internship deleted"})
}

func (h *AdminHandler) BulkUpload(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return
	}
	attachment, err := attachmentFromForm(r, "excel", h.maxUploadBytes)
	if err != nil {
		response.Error(w, err)
		return
	}
	summary, err := h.transfers.ImportInternships(r.Context(), attachment.Data, attachment.Filename, adminID)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, summary)
}

func (h *AdminHandler) ListApplications(w http.ResponseWriter, r *http.Request) {
	items, err := h.applications.ListAll(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"applications": items})
}

type applicationStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminHandler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 2)
	if err != nil {
		response.Error(w, err)
		return
	}
	var req applicationStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.applications.UpdateStatus(r.Context(), id, application.Status(req.Status))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, updated)
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRangeFromQuery(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	users, err := h.users.List(r.Context(), from, to)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"users": users, "total": len(users)})
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.users.Delete(r.Context(), id); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, messageResponse{Message: "user deleted"})
}

func (h *AdminHandler) DownloadUsers(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	result, err := h.transfers.ExportUsers(r.Context(), values.Get("startDate"), values.Get("endDate"))
	if err != nil {
		response.Error(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Data)
}

func dateRangeFromQuery(r *http.Request) (*time.Time, *time.Time, error) {
	values := r.URL.Query()
	var from, to *time.Time
	if raw := values.Get("startDate"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, nil, invalidDateError("startDate")
		}
		from = &parsed
	}
	if raw := values.Get("endDate"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return nil, nil, invalidDateError("endDate")
		}
		endOfDay := parsed.Add(24*time.Hour - time.Nanosecond)
		to = &endOfDay
	}
	return from, to, nil
}
