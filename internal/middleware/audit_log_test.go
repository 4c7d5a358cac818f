package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuditContext(actor string) *gin.Context {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/orders", nil)
	c.Set(string(RequestIDKey), "req-42")
	if actor != "" {
		SetActor(c, actor)
	}
	return c
}

func TestAuditLog(t *testing.T) {
	tests := []struct {
		name          string
		actor         string
		err           error
		expectedLevel string
		expectedError string
	}{
		{name: "anonymous success", expectedLevel: "info"},
		{name: "authenticated success", actor: "token:ops", expectedLevel: "info"},
		{name: "rejected lines", actor: "api-key:abcd", err: errors.New("line 0 (product 9): unknown product"), expectedLevel: "warn", expectedError: "line 0 (product 9): unknown product"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{}
			c := newAuditContext(tt.actor)
			fields := map[string]interface{}{"order_id": 123, "packages": 3}

			if tt.err != nil {
				AuditLogError(sink, c, model.ActionProcessOrder, "Order processed", tt.err, fields)
			} else {
				AuditLog(sink, c, model.ActionProcessOrder, "Order processed", fields)
			}

			entries := sink.all()
			require.Len(t, entries, 1)
			entry := entries[0]
			assert.Equal(t, tt.expectedLevel, entry.Level)
			assert.Equal(t, model.ActionProcessOrder, entry.ActionType)
			assert.Equal(t, "req-42", entry.RequestID)
			assert.Equal(t, http.MethodPost, entry.Method)
			assert.Equal(t, "/api/orders", entry.Path)
			assert.Equal(t, tt.actor, entry.Actor)
			assert.Equal(t, tt.expectedError, entry.Error)
			assert.Equal(t, 123, entry.Fields["order_id"])
		})
	}
}

func TestAuditLog_NilSink(t *testing.T) {
	c := newAuditContext("")

	assert.NotPanics(t, func() {
		AuditLog(nil, c, model.ActionRestock, "Restock", nil)
		AuditLogError(nil, c, model.ActionRestock, "Restock", errors.New("x"), nil)
	})
}
