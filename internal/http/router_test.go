package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-service/internal/middleware"
	"github.com/guttosm/fulfillment-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	svc := service.NewFulfillmentService()
	require.NoError(t, svc.InitCatalog(context.Background(), testProducts()))
	return NewHandler(svc)
}

func TestRouter_Endpoints(t *testing.T) {
	router := NewRouter(newTestHandler(t), NewHealthHandler(), DefaultRouterConfig())

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
	}{
		{name: "healthz endpoint", method: http.MethodGet, path: "/healthz", expectedStatus: http.StatusOK},
		{name: "readyz endpoint", method: http.MethodGet, path: "/readyz", expectedStatus: http.StatusOK},
		{name: "metrics endpoint", method: http.MethodGet, path: "/metrics", expectedStatus: http.StatusOK},
		{name: "swagger endpoint", method: http.MethodGet, path: "/swagger/index.html", expectedStatus: http.StatusOK},
		{name: "catalog read", method: http.MethodGet, path: "/api/catalog", expectedStatus: http.StatusOK},
		{name: "inventory read", method: http.MethodGet, path: "/api/inventory", expectedStatus: http.StatusOK},
		{name: "deferred read", method: http.MethodGet, path: "/api/orders/deferred", expectedStatus: http.StatusOK},
		{name: "shipments without persistence", method: http.MethodGet, path: "/api/orders/1/shipments", expectedStatus: http.StatusServiceUnavailable},
		{name: "order without body", method: http.MethodPost, path: "/api/orders", expectedStatus: http.StatusBadRequest},
		{name: "restock without body", method: http.MethodPost, path: "/api/restocks", expectedStatus: http.StatusBadRequest},
		{name: "catalog without body", method: http.MethodPut, path: "/api/catalog", expectedStatus: http.StatusBadRequest},
		{name: "unknown route", method: http.MethodGet, path: "/api/packs", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRouter_APIKeyAuth(t *testing.T) {
	cfg := DefaultRouterConfig()
	cfg.EnableAuth = true
	cfg.APIKeys = map[string]bool{"ops-key": true}
	router := NewRouter(newTestHandler(t), NewHealthHandler(), cfg)

	tests := []struct {
		name           string
		path           string
		key            string
		expectedStatus int
	}{
		{name: "api without key", path: "/api/inventory", expectedStatus: http.StatusUnauthorized},
		{name: "api with key", path: "/api/inventory", key: "ops-key", expectedStatus: http.StatusOK},
		{name: "health stays open", path: "/healthz", expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.key != "" {
				req.Header.Set(middleware.APIKeyHeader, tt.key)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRouter_RateLimit(t *testing.T) {
	tests := []struct {
		name    string
		auth    bool
		path    string
		limited bool
	}{
		{name: "anonymous callers limited by IP everywhere", path: "/healthz", limited: true},
		{name: "authenticated api limited per actor", auth: true, path: "/api/inventory", limited: true},
		{name: "probes not limited when api keys are on", auth: true, path: "/healthz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := middleware.NewRateLimiter(2, time.Minute)
			defer limiter.Stop()
			cfg := RouterConfig{RateLimiter: limiter}
			if tt.auth {
				cfg.EnableAuth = true
				cfg.APIKeys = map[string]bool{"ops-key": true}
			}
			router := NewRouter(newTestHandler(t), NewHealthHandler(), cfg)

			var last int
			for i := 0; i < 3; i++ {
				req := httptest.NewRequest(http.MethodGet, tt.path, nil)
				req.Header.Set(middleware.APIKeyHeader, "ops-key")
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)
				last = w.Code
			}

			if tt.limited {
				assert.Equal(t, http.StatusTooManyRequests, last)
			} else {
				assert.Equal(t, http.StatusOK, last)
			}
		})
	}
}

func TestRouter_SwaggerBasicAuth(t *testing.T) {
	cfg := DefaultRouterConfig()
	cfg.SwaggerUser = "docs"
	cfg.SwaggerPass = "secret"
	router := NewRouter(nil, NewHealthHandler(), cfg)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	req.SetBasicAuth("docs", "secret")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewRouter_NilHandler(t *testing.T) {
	router := NewRouter(nil, nil, RouterConfig{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/inventory", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.IsType(t, &gin.Engine{}, router)
}
