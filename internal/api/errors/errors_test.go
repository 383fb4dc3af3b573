package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want int
	}{
		// Validation failures are input errors, same status as bad_request.
		{KindValidation, http.StatusBadRequest},
		{KindBadRequest, http.StatusBadRequest},
		{KindNotFound, http.StatusNotFound},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindConflict, http.StatusConflict},
		{KindUpstream, http.StatusBadGateway},
		{KindServiceUnavailable, http.StatusServiceUnavailable},
		{KindEncoding, http.StatusInternalServerError},
		{KindInternal, http.StatusInternalServerError},
		{ErrorKind("something_else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			err := &APIError{Kind: tt.kind, Message: "boom"}
			assert.Equal(t, tt.want, err.HTTPStatus())
		})
	}
}

func TestConstructors(t *testing.T) {
	vErr := NewValidationError("Validation failed", map[string]string{"title": "is required"})
	assert.Equal(t, KindValidation, vErr.Kind)
	assert.Equal(t, "is required", vErr.Details["title"])

	nfErr := NewNotFoundError("Tracked video yt123")
	assert.Equal(t, "Tracked video yt123 not found", nfErr.Message)

	authErr := NewUnauthorizedError("YouTube authorization required", "https://example.com/auth")
	assert.Equal(t, KindUnauthorized, authErr.Kind)
	assert.Equal(t, "https://example.com/auth", authErr.AuthURL)

	upErr := NewUpstreamError("voice synthesis failed", assert.AnError)
	assert.Equal(t, KindUpstream, upErr.Kind)
	assert.Equal(t, assert.AnError.Error(), upErr.Details["cause"])
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{Kind: KindInternal, Message: "boom"}
	assert.Equal(t, "boom", err.Error())
}
