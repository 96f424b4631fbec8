package httpclient

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/ch1tg/GameTrackr-web/pkg/errors"
)

func fakeResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParseResponseError_StructuredBody(t *testing.T) {
	resp := fakeResponse(http.StatusUnauthorized, `{"error":"invalid credentials"}`)

	err := ParseResponseError(resp, "login failed")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "invalid credentials", appErr.Message)
	assert.Equal(t, http.StatusUnauthorized, appErr.Status)
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
}

func TestParseResponseError_UnstructuredBody(t *testing.T) {
	resp := fakeResponse(http.StatusBadGateway, "<html>Bad Gateway</html>")

	err := ParseResponseError(resp, "failed to fetch trending games")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "failed to fetch trending games", appErr.Message)
	assert.Equal(t, http.StatusBadGateway, appErr.Status)
}

func TestParseResponseError_EmptyErrorField(t *testing.T) {
	resp := fakeResponse(http.StatusBadRequest, `{"error":""}`)

	err := ParseResponseError(resp, "generic message")
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "generic message", appErr.Message)
}

func TestParseResponseError_ConflictMapsSentinel(t *testing.T) {
	resp := fakeResponse(http.StatusConflict, `{"error":"username already taken"}`)

	err := ParseResponseError(resp, "registration failed")
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
	assert.Equal(t, "username already taken", apperrors.UserMessage(err))
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(400))
	assert.True(t, IsClientError(404))
	assert.True(t, IsClientError(499))
	assert.False(t, IsClientError(399))
	assert.False(t, IsClientError(500))
}
