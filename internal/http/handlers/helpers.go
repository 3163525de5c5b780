package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"internhub/internal/common"
)

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return common.NewError(common.CodeValidation, "request body is required", nil)
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return common.NewError(common.CodeValidation, "request body is required", nil)
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return common.NewError(common.CodeValidation, "request body too large", err)
		}
		return common.NewError(common.CodeValidation, "invalid json body", err)
	}
	return nil
}

// idFromPath extracts a UUID path segment counted from the end,
// so indexFromEnd 1 matches /internships/{id} and 2 matches
// /internships/{id}/toggle.
func idFromPath(r *http.Request, indexFromEnd int) (common.UUID, error) {
	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if indexFromEnd < 1 || indexFromEnd > len(segments) {
		return "", common.NewError(common.CodeValidation, "invalid path", nil)
	}
	raw := segments[len(segments)-indexFromEnd]
	id, err := common.ParseUUID(raw)
	if err != nil {
		return "", common.NewError(common.CodeValidation, "invalid id in path", err)
	}
	return id, nil
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "authentication required", nil)
}

func invalidDateError(field string) error {
	return common.NewValidationError("invalid date range", map[string]string{field: "expected YYYY-MM-DD"})
}
