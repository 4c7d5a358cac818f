package middleware

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/guttosm/fulfillment-service/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNewAsyncLogger_NilService(t *testing.T) {
	assert.Nil(t, NewAsyncLogger(nil, DefaultAsyncLoggerConfig()))
}

func TestAsyncLogger_BatchesEntries(t *testing.T) {
	svc := new(mocks.MockLoggingService)
	var mu sync.Mutex
	var batches [][]*model.LogEntry
	svc.On("CreateLogs", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		mu.Lock()
		defer mu.Unlock()
		batches = append(batches, args.Get(1).([]*model.LogEntry))
	}).Return(nil)

	al := NewAsyncLogger(svc, AsyncLoggerConfig{BufferSize: 10, BatchSize: 2, FlushInterval: time.Hour})
	for i := 0; i < 5; i++ {
		assert.True(t, al.Log(&model.LogEntry{Message: "HTTP request"}))
	}
	al.Stop()

	mu.Lock()
	defer mu.Unlock()
	total := 0
	for _, b := range batches {
		assert.LessOrEqual(t, len(b), 2)
		total += len(b)
	}
	assert.Equal(t, 5, total)

	stats := al.Stats()
	assert.Equal(t, int64(5), stats.Enqueued)
	assert.Equal(t, int64(5), stats.Written)
	assert.Zero(t, stats.Errors)
}

func TestAsyncLogger_FlushInterval(t *testing.T) {
	svc := new(mocks.MockLoggingService)
	written := make(chan int, 1)
	svc.On("CreateLogs", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		written <- len(args.Get(1).([]*model.LogEntry))
	}).Return(nil)

	al := NewAsyncLogger(svc, AsyncLoggerConfig{BatchSize: 50, FlushInterval: 10 * time.Millisecond})
	defer al.Stop()
	al.Log(&model.LogEntry{Message: "one"})

	select {
	case n := <-written:
		assert.Equal(t, 1, n)
	case <-time.After(2 * time.Second):
		t.Fatal("entry was not flushed")
	}
}

func TestAsyncLogger_WriteErrorsCounted(t *testing.T) {
	svc := new(mocks.MockLoggingService)
	svc.On("CreateLogs", mock.Anything, mock.Anything).Return(errors.New("mongo down"))

	al := NewAsyncLogger(svc, AsyncLoggerConfig{BatchSize: 10, FlushInterval: time.Hour})
	al.Log(&model.LogEntry{})
	al.Log(&model.LogEntry{})
	al.Stop()

	stats := al.Stats()
	assert.Equal(t, int64(2), stats.Errors)
	assert.Zero(t, stats.Written)
}

func TestAsyncLogger_DropsAfterStop(t *testing.T) {
	svc := new(mocks.MockLoggingService)
	al := NewAsyncLogger(svc, DefaultAsyncLoggerConfig())
	al.Stop()
	al.Stop()

	assert.False(t, al.Log(&model.LogEntry{}))
	assert.Equal(t, int64(1), al.Stats().Dropped)
	svc.AssertNotCalled(t, "CreateLogs", mock.Anything, mock.Anything)
}
