package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-service/internal/domain/dto"
	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/guttosm/fulfillment-service/internal/i18n"
	"github.com/guttosm/fulfillment-service/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveBuilder(locale string, write func(*ResponseBuilder)) *httptest.ResponseRecorder {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/x", func(c *gin.Context) { write(NewResponseBuilder(c)) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if locale != "" {
		req.Header.Set(i18n.AcceptLanguageHeader, locale)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestResponseBuilder_Success(t *testing.T) {
	tests := []struct {
		name            string
		locale          string
		messageKey      string
		expectedMessage string
	}{
		{name: "no message", messageKey: ""},
		{name: "english message", messageKey: i18n.SuccessKeyRestockProcessed, expectedMessage: "Restock processed"},
		{name: "dutch message", locale: "nl", messageKey: i18n.SuccessKeyRestockProcessed, expectedMessage: "Aanvulling verwerkt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			levels := []model.InventoryLevel{{ProductID: 0, Quantity: 4}}
			w := serveBuilder(tt.locale, func(b *ResponseBuilder) {
				b.Success(http.StatusOK, tt.messageKey, levels)
			})

			assert.Equal(t, http.StatusOK, w.Code)
			var resp struct {
				Data      []model.InventoryLevel `json:"data"`
				Message   string                 `json:"message"`
				RequestID string                 `json:"request_id"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, levels, resp.Data)
			assert.Equal(t, tt.expectedMessage, resp.Message)
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}

func TestResponseBuilder_Error(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		key          string
		details      map[string]string
		expectedCode string
	}{
		{name: "unprocessable with details", status: http.StatusUnprocessableEntity, key: i18n.ErrKeyAllLinesRejected, details: map[string]string{"line_0": "product 9: unknown product"}, expectedCode: dto.ErrCodeUnprocessable},
		{name: "service unavailable", status: http.StatusServiceUnavailable, key: i18n.ErrKeyServiceUnavailable, expectedCode: dto.ErrCodeUnavailable},
		{name: "bad request", status: http.StatusBadRequest, key: i18n.ErrKeyInvalidOrderID, expectedCode: dto.ErrCodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveBuilder("", func(b *ResponseBuilder) {
				b.ErrorWithDetails(tt.status, tt.key, errors.New("cause"), tt.details)
			})

			assert.Equal(t, tt.status, w.Code)
			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedCode, resp.Error)
			assert.NotEmpty(t, resp.Message)
			assert.NotEqual(t, tt.key, resp.Message, "message must be translated")
			assert.Equal(t, tt.details, resp.Details)
		})
	}
}

func TestResponseBuilder_BadRequest(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		expectedField string
	}{
		{name: "bind error", err: errors.New("invalid character")},
		{name: "empty lines", err: &dto.ValidationError{Field: "requested", Message: dto.ErrMsgEmptyLineItems}, expectedField: "requested"},
		{name: "too many lines", err: &dto.ValidationError{Field: "items", Message: dto.ErrMsgTooManyLineItems}, expectedField: "items"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveBuilder("", func(b *ResponseBuilder) { b.BadRequest(tt.err) })

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, dto.ErrCodeInvalidRequest, resp.Error)
			assert.Equal(t, tt.expectedField, resp.Details["field"])
		})
	}
}

func TestResponsePools_Reset(t *testing.T) {
	resp := getSuccessResponse()
	resp.Data = "x"
	resp.Message = "m"
	putSuccessResponse(resp)
	assert.Nil(t, resp.Data)
	assert.Empty(t, resp.Message)

	errResp := getErrorResponse()
	errResp.Details = map[string]string{"a": "b"}
	putErrorResponse(errResp)
	assert.Nil(t, errResp.Details)
}
