package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	t.Run("maps known codes", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, GetHTTPStatus("NOT_FOUND"))
		assert.Equal(t, http.StatusConflict, GetHTTPStatus("ALREADY_EXISTS"))
		assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus("INVALID_STATE"))
		assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus("INSUFFICIENT_STOCK"))
		assert.Equal(t, http.StatusGatewayTimeout, GetHTTPStatus("RENDER_TIMEOUT"))
	})

	t.Run("validation codes map to bad request", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, GetHTTPStatus("INVALID_PHONE"))
		assert.Equal(t, http.StatusBadRequest, GetHTTPStatus("INVALID_STRATEGY"))
	})

	t.Run("unknown codes map to internal error", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("SOMETHING_ELSE"))
	})
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a"}, 41, 2, 20)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(41), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Customer not found", "req-123")

	assert.False(t, resp.Success)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}
