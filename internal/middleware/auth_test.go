package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-service/internal/domain/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIKeyAuth(t *testing.T) {
	validKeys := map[string]bool{"key-one": true, "key-two": true, "disabled": false}

	tests := []struct {
		name           string
		keys           map[string]bool
		header         string
		query          string
		expectedStatus int
		expectActor    bool
	}{
		{name: "auth disabled with no keys", keys: nil, expectedStatus: http.StatusOK},
		{name: "valid header", keys: validKeys, header: "key-one", expectedStatus: http.StatusOK, expectActor: true},
		{name: "valid query parameter", keys: validKeys, query: "key-two", expectedStatus: http.StatusOK, expectActor: true},
		{name: "missing key", keys: validKeys, expectedStatus: http.StatusUnauthorized},
		{name: "invalid key", keys: validKeys, header: "nope", expectedStatus: http.StatusUnauthorized},
		{name: "disabled key", keys: validKeys, header: "disabled", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID(), APIKeyAuth(tt.keys))
			var actor string
			router.GET("/api/inventory", func(c *gin.Context) {
				actor = GetActor(c)
				c.Status(http.StatusOK)
			})

			url := "/api/inventory"
			if tt.query != "" {
				url += "?api_key=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, url, nil)
			if tt.header != "" {
				req.Header.Set(APIKeyHeader, tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectActor {
				assert.Regexp(t, `^api-key:[0-9a-f]{8}$`, actor)
			}
			if tt.expectedStatus == http.StatusUnauthorized {
				var resp dto.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, dto.ErrCodeUnauthorized, resp.Error)
				assert.NotEmpty(t, resp.RequestID)
			}
		})
	}
}

func TestFingerprint(t *testing.T) {
	assert.Equal(t, fingerprint("key-one"), fingerprint("key-one"))
	assert.NotEqual(t, fingerprint("key-one"), fingerprint("key-two"))
	assert.Len(t, fingerprint("anything"), 8)
}
