package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/coopledger/internal/domain/apperr"
)

func TestError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   ErrorBody
	}{
		{"unauthenticated", apperr.Unauthenticated("token expired"), http.StatusUnauthorized, ErrorBody{"unauthorized", "token expired"}},
		{"forbidden", apperr.Forbidden("nope"), http.StatusForbidden, ErrorBody{"forbidden", "nope"}},
		{"validation", apperr.Validation("no fields to update"), http.StatusBadRequest, ErrorBody{"validation_failed", "no fields to update"}},
		{"wrapped not found", fmt.Errorf("load: %w", apperr.NotFound("log x not found")), http.StatusNotFound, ErrorBody{"not_found", "log x not found"}},
		{"internal", errors.New("socket closed"), http.StatusInternalServerError, ErrorBody{"internal_error", "internal server error"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

			Error(c, nil, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.True(t, c.IsAborted())
			var body ErrorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body)
		})
	}
}
