package server

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type mockService struct {
	started atomic.Bool
	stopped chan struct{}
	once    sync.Once
	startFn func() error
	order   *[]string
	name    string
	mu      *sync.Mutex
}

func newMockService(name string, order *[]string, mu *sync.Mutex) *mockService {
	return &mockService{name: name, stopped: make(chan struct{}), order: order, mu: mu}
}

func (m *mockService) Start() error {
	m.started.Store(true)
	if m.startFn != nil {
		return m.startFn()
	}
	<-m.stopped
	return nil
}

func (m *mockService) Stop() {
	m.once.Do(func() {
		if m.order != nil {
			m.mu.Lock()
			*m.order = append(*m.order, m.name)
			m.mu.Unlock()
		}
		close(m.stopped)
	})
}

func waitStarted(t *testing.T, svcs ...*mockService) {
	t.Helper()
	require.Eventually(t, func() bool {
		for _, s := range svcs {
			if !s.started.Load() {
				return false
			}
		}
		return true
	}, 2*time.Second, 5*time.Millisecond)
}

func TestLifecycle_StopsInReverseOrderOnCancel(t *testing.T) {
	var (
		mu    sync.Mutex
		order []string
	)
	lc := NewLifecycle(zaptest.NewLogger(t))
	svc1 := newMockService("svc1", &order, &mu)
	svc2 := newMockService("svc2", &order, &mu)
	lc.Add("svc1", svc1)
	lc.Add("svc2", svc2)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- lc.Run(ctx) }()

	waitStarted(t, svc1, svc2)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("lifecycle did not shut down in time")
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"svc2", "svc1"}, order)
}

func TestLifecycle_ServiceFailureStopsAllAndIsReturned(t *testing.T) {
	lc := NewLifecycle(zaptest.NewLogger(t))
	healthy := newMockService("healthy", nil, nil)
	failing := newMockService("failing", nil, nil)
	failing.startFn = func() error { return errors.New("bind: address in use") }
	lc.Add("healthy", healthy)
	lc.Add("failing", failing)

	done := make(chan error, 1)
	go func() { done <- lc.Run(context.Background()) }()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failing")
	case <-time.After(2 * time.Second):
		t.Fatal("lifecycle did not return after service failure")
	}
	select {
	case <-healthy.stopped:
	default:
		t.Fatal("healthy service was not stopped")
	}
}
