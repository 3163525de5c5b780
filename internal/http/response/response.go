package response

import (
	"encoding/json"
	"net/http"

	"internhub/internal/common"
)

// ErrorCollector lets the metrics layer count failed responses without the
// response package depending on it.
type ErrorCollector interface {
	IncErrors()
}

var (
	collector  ErrorCollector
	production bool
)

func SetErrorCollector(c ErrorCollector) {
	collector = c
}

// SetProductionMode switches internal faults to a generic message.
func SetProductionMode(enabled bool) {
	production = enabled
}

func JSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type errorBody struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func Error(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := errorBody{Message: "internal server error"}

	if appErr, ok := err.(*common.Error); ok {
		status = statusFor(appErr.Code)
		body.Message = appErr.Message
		body.Fields = appErr.Fields
		if appErr.Code == common.CodeInternal && production {
			body.Message = "internal server error"
		}
	} else if err != nil && !production {
		// Raw error strings from unknown faults stay out of production responses.
		body.Message = err.Error()
	}

	if status >= http.StatusInternalServerError && collector != nil {
		collector.IncErrors()
	}
	JSON(w, status, body)
}

func statusFor(code common.Code) int {
	switch code {
	case common.CodeValidation:
		return http.StatusBadRequest
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeConflict:
		return http.StatusConflict
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	case common.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
