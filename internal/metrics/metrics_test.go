package metrics

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(PrometheusMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.GET("/error", func(c *gin.Context) {
		c.String(http.StatusInternalServerError, "error")
	})

	tests := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{
			name:           "records metrics for successful request",
			path:           "/test",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "records metrics for error request",
			path:           "/error",
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := strconv.Itoa(tt.expectedStatus)
			before := testutil.ToFloat64(HTTPRequestTotal.WithLabelValues(http.MethodGet, tt.path, status))
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestTotal.WithLabelValues(http.MethodGet, tt.path, status)))
		})
	}
}

func TestRecordOrderProcessed(t *testing.T) {
	before := testutil.ToFloat64(OrdersProcessedTotal.WithLabelValues("deferred"))
	RecordOrderProcessed("deferred")
	assert.Equal(t, before+1, testutil.ToFloat64(OrdersProcessedTotal.WithLabelValues("deferred")))
}

func TestRecordPackageShipped(t *testing.T) {
	before := testutil.ToFloat64(PackagesShippedTotal.WithLabelValues("success"))
	RecordPackageShipped(1800, "success")
	RecordPackageShipped(700, "success")
	assert.Equal(t, before+2, testutil.ToFloat64(PackagesShippedTotal.WithLabelValues("success")))
}

func TestRecordPackerSearch(t *testing.T) {
	RecordPackerSearch(2*time.Millisecond, "search")
	RecordPackerSearch(10*time.Microsecond, "cache")

	assert.Equal(t, 2, testutil.CollectAndCount(PackerSearchDuration))
}

func TestSetDeferredQueueSize(t *testing.T) {
	SetDeferredQueueSize(3)
	assert.Equal(t, float64(3), testutil.ToFloat64(DeferredQueueSize))

	SetDeferredQueueSize(0)
	assert.Equal(t, float64(0), testutil.ToFloat64(DeferredQueueSize))
}

func TestRecordRestock(t *testing.T) {
	before := testutil.ToFloat64(RestocksTotal)
	RecordRestock()
	assert.Equal(t, before+1, testutil.ToFloat64(RestocksTotal))
}

func TestRecordRejectedLineItem(t *testing.T) {
	before := testutil.ToFloat64(RejectedLineItemsTotal.WithLabelValues("order", "unknown product"))
	RecordRejectedLineItem("order", "unknown product")
	assert.Equal(t, before+1, testutil.ToFloat64(RejectedLineItemsTotal.WithLabelValues("order", "unknown product")))
}

func TestRecordCacheOperation(t *testing.T) {
	before := testutil.ToFloat64(CacheOperationsTotal.WithLabelValues("get", "hit"))
	RecordCacheOperation("get", "hit")
	RecordCacheOperation("get", "miss")
	RecordCacheOperation("set", "success")

	assert.Equal(t, before+1, testutil.ToFloat64(CacheOperationsTotal.WithLabelValues("get", "hit")))
}

func TestUpdateCacheMetrics(t *testing.T) {
	UpdateCacheMetrics(50, 100)
	UpdateCacheMetrics(75, 100)

	assert.Equal(t, float64(75), testutil.ToFloat64(CacheSize))
	assert.Equal(t, float64(100), testutil.ToFloat64(CacheCapacity))
}

func TestSetCircuitBreakerState(t *testing.T) {
	SetCircuitBreakerState("shipments", 2)
	assert.Equal(t, float64(2), testutil.ToFloat64(CircuitBreakerState.WithLabelValues("shipments")))
}
