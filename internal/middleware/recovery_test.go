package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-service/internal/domain/dto"
	"github.com/guttosm/fulfillment-service/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecovery(t *testing.T) {
	tests := []struct {
		name            string
		locale          string
		expectedMessage string
	}{
		{name: "english", locale: "en", expectedMessage: "An unexpected error occurred"},
		{name: "portuguese", locale: "pt", expectedMessage: "Ocorreu um erro inesperado"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID(), Recovery())
			router.GET("/panic", func(*gin.Context) { panic("inventory: debit exceeds on-hand quantity") })

			req := httptest.NewRequest(http.MethodGet, "/panic", nil)
			req.Header.Set(i18n.AcceptLanguageHeader, tt.locale)
			req.Header.Set(RequestIDHeader, "req-panic")
			w := httptest.NewRecorder()

			assert.NotPanics(t, func() { router.ServeHTTP(w, req) })

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, dto.ErrCodeInternal, resp.Error)
			assert.Equal(t, tt.expectedMessage, resp.Message)
			assert.Equal(t, "req-panic", resp.RequestID)
		})
	}
}
