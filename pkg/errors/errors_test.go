package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Sentinel error identity ---

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound, ErrInvalidInput, ErrUnauthorized,
		ErrForbidden, ErrConflict, ErrInternal, ErrUnreachable,
	}

	for i := 0; i < len(sentinels); i++ {
		for j := i + 1; j < len(sentinels); j++ {
			assert.NotEqual(t, sentinels[i], sentinels[j],
				"sentinels %d and %d should be distinct", i, j)
		}
	}
}

// --- AppError behavior ---

func TestAppError_ErrorString_WithWrappedError(t *testing.T) {
	inner := fmt.Errorf("connection reset")
	appErr := &AppError{Code: "INTERNAL_ERROR", Message: "something broke", Err: inner}
	assert.Contains(t, appErr.Error(), "INTERNAL_ERROR")
	assert.Contains(t, appErr.Error(), "something broke")
	assert.Contains(t, appErr.Error(), "connection reset")
}

func TestAppError_ErrorString_WithoutWrappedError(t *testing.T) {
	appErr := &AppError{Code: "NOT_FOUND", Message: "user not found"}
	assert.Equal(t, "NOT_FOUND: user not found", appErr.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	appErr := &AppError{Code: "NOT_FOUND", Message: "nope", Err: ErrNotFound}
	assert.True(t, errors.Is(appErr, ErrNotFound))
}

// --- Constructor functions ---

func TestNotFound(t *testing.T) {
	err := NotFound("game", "12345")
	require.NotNil(t, err)
	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Contains(t, err.Message, "game")
	assert.Contains(t, err.Message, "12345")
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestInvalidInput(t *testing.T) {
	err := InvalidInput("confirmation does not match username")
	require.NotNil(t, err)
	assert.Equal(t, "INVALID_INPUT", err.Code)
	assert.Equal(t, "confirmation does not match username", err.Message)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestUnreachable(t *testing.T) {
	inner := fmt.Errorf("dial tcp: connection refused")
	err := Unreachable(inner)
	require.NotNil(t, err)
	assert.Equal(t, "UNREACHABLE", err.Code)
	assert.Equal(t, "the server is not responding", err.Message)
	assert.True(t, errors.Is(err, ErrUnreachable))
	assert.True(t, errors.Is(err, inner))
}

func TestFromStatus_MapsSentinels(t *testing.T) {
	tests := []struct {
		status   int
		code     string
		sentinel error
	}{
		{http.StatusNotFound, "NOT_FOUND", ErrNotFound},
		{http.StatusBadRequest, "INVALID_INPUT", ErrInvalidInput},
		{http.StatusUnauthorized, "UNAUTHORIZED", ErrUnauthorized},
		{http.StatusForbidden, "FORBIDDEN", ErrForbidden},
		{http.StatusConflict, "CONFLICT", ErrConflict},
		{http.StatusInternalServerError, "INTERNAL_ERROR", ErrInternal},
	}

	for _, tt := range tests {
		err := FromStatus(tt.status, "msg")
		assert.Equal(t, tt.code, err.Code, "status %d", tt.status)
		assert.Equal(t, "msg", err.Message)
		assert.Equal(t, tt.status, err.Status)
		assert.True(t, errors.Is(err, tt.sentinel), "status %d", tt.status)
	}
}

func TestFromStatus_UnmappedClientError(t *testing.T) {
	err := FromStatus(http.StatusTeapot, "odd")
	assert.Equal(t, "REQUEST_FAILED", err.Code)
	assert.Nil(t, err.Err)
}

// --- UserMessage ---

func TestUserMessage_AppError(t *testing.T) {
	err := FromStatus(http.StatusUnauthorized, "wrong password")
	assert.Equal(t, "wrong password", UserMessage(err))
}

func TestUserMessage_Wrapped(t *testing.T) {
	err := Wrap(Unauthorized("wrong password"), "login")
	assert.Equal(t, "wrong password", UserMessage(err))
}

func TestUserMessage_PlainError(t *testing.T) {
	assert.Equal(t, "something went wrong", UserMessage(fmt.Errorf("boom")))
}

// --- HTTPStatus ---

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(ErrNotFound))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrInvalidInput))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(ErrUnauthorized))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(ErrUnreachable))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(fmt.Errorf("anything")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(Conflict("busy")))
}
