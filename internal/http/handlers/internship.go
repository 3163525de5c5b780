package handlers

import (
	"net/http"
	"strconv"

	"internhub/internal/app"
	"internhub/internal/common"
	"internhub/internal/http/response"
)

type InternshipHandler struct {
	internships *app.InternshipService
}

func NewInternshipHandler(internships *app.InternshipService) *InternshipHandler {
	return &InternshipHandler{internships: internships}
}

func listQueryFromRequest(r *http.Request) (app.ListQuery, error) {
	values := r.URL.Query()
	query := app.ListQuery{
		Search:   values.Get("search"),
		Location: values.Get("location"),
		Domain:   values.Get("domain"),
		Position: values.Get("position"),
	}
	fields := map[string]string{}
	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			fields["page"] = "page must be a number"
		case page < 1:
			fields["page"] = "page must be at least 1"
		default:
			query.Page = page
		}
	}
	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			fields["limit"] = "limit must be a number"
		case limit < 1:
			fields["limit"] = "limit must be at least 1"
		default:
			query.Limit = limit
		}
	}
	if raw := values.Get("minSalary"); raw != "" {
		min, err := strconv.Atoi(raw)
		if err != nil {
			fields["minSalary"] = "minSalary must be a number"
		} else {
			query.MinSalary = &min
		}
	}
	if raw := values.Get("maxSalary"); raw != "" {
		max, err := strconv.Atoi(raw)
		if err != nil {
			fields["maxSalary"] = "maxSalary must be a number"
		} else {
			query.MaxSalary = &max
		}
	}
	if len(fields) > 0 {
		return query, common.NewValidationError("invalid query parameters", fields)
	}
	return query, nil
}

func (h *InternshipHandler) List(w http.ResponseWriter, r *http.Request) {
	query, err := listQueryFromRequest(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	result, err := h.internships.List(r.Context(), query)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

func (h *InternshipHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	item, err := h.internships.Get(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, item)
}
