package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/chartbridge/pkg/errors"
)

// errorResponse is the JSON error envelope returned by every failing route.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error code to an HTTP status and writes the envelope.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(errors.GetCode(err)), errorResponse{
		Error: errorBody{
			Code:    errors.GetCode(err),
			Message: errors.UserMessage(err),
		},
	})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeUnsupportedChartType,
		errors.ErrCodeNonNumericColumn,
		errors.ErrCodeNoNumericColumns,
		errors.ErrCodeMissingColumn,
		errors.ErrCodeColumnNotFound:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidProxyState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
