package httpclient

import (
	"encoding/json"
	"io"
	"net/http"

	apperrors "github.com/ch1tg/GameTrackr-web/pkg/errors"
)

// serverErrorBody mirrors the error payload returned by the GameTrackr API:
// a single "error" field carrying a human-readable message.
type serverErrorBody struct {
	Error string `json:"error"`
}

// ParseResponseError reads the body of a non-2xx HTTP response and translates
// it into an AppError. When the body carries the standard {"error": "..."}
// payload, that message is preserved as the user-facing message; otherwise the
// given fallback message is used.
//
// The caller should only invoke this when resp.StatusCode indicates an error
// (i.e., not 2xx). The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, fallback string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		return apperrors.FromStatus(resp.StatusCode, fallback)
	}

	var body serverErrorBody
	if json.Unmarshal(bodyBytes, &body) == nil && body.Error != "" {
		return apperrors.FromStatus(resp.StatusCode, body.Error)
	}

	// Unstructured error body.
	return apperrors.FromStatus(resp.StatusCode, fallback)
}

// IsClientError returns true if the HTTP status code is a 4xx client error.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
