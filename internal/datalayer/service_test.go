package datalayer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evolveapp-desktop/internal/domain"
)

type fakeChecker struct {
	connected bool
	err       error
	seen      *domain.APIConfig
}

func (f fakeChecker) CheckHealth(context.Context) (bool, error) {
	return f.connected, f.err
}

func newTestService(checker fakeChecker) *Service {
	cfg := domain.APIConfig{BaseURL: "http://api.test"}
	s := NewService(
		func() domain.APIConfig { return cfg },
		func(c domain.APIConfig) HealthChecker {
			if checker.seen != nil {
				*checker.seen = c
			}
			return checker
		},
		nil,
	)
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return s
}

func TestInitializeIsNoop(t *testing.T) {
	assert.NoError(t, newTestService(fakeChecker{}).Initialize(context.Background()))
}

func TestExecuteQueryAlwaysRejected(t *testing.T) {
	s := newTestService(fakeChecker{connected: true})

	for _, query := range []string{"SELECT 1", "DELETE FROM users", " ", ""} {
		out, err := s.ExecuteQuery(query)
		assert.Empty(t, out)
		assert.ErrorIs(t, err, ErrLocalQueryUnsupported)
	}
	assert.Equal(t, "Local database queries not supported. Use API endpoints instead.", ErrLocalQueryUnsupported.Error())
}

func TestSyncModuleReturnsStatusJSON(t *testing.T) {
	var seen domain.APIConfig
	s := newTestService(fakeChecker{connected: true, seen: &seen})

	out, err := s.SyncModule(context.Background(), "email")
	require.NoError(t, err)

	var status struct {
		Connected         bool    `json:"connected"`
		LastSync          *string `json:"last_sync"`
		PendingOperations int     `json:"pending_operations"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &status))
	assert.True(t, status.Connected)
	require.NotNil(t, status.LastSync)
	assert.Equal(t, "2026-01-02T03:04:05Z", *status.LastSync)
	assert.Zero(t, status.PendingOperations)
	assert.Equal(t, "http://api.test", seen.BaseURL)
}

func TestSyncModuleDisconnected(t *testing.T) {
	out, err := newTestService(fakeChecker{connected: false}).SyncModule(context.Background(), "health-check")
	require.NoError(t, err)
	assert.JSONEq(t, `{"connected":false,"last_sync":"2026-01-02T03:04:05Z","pending_operations":0}`, out)
}

func TestSyncModuleCheckError(t *testing.T) {
	_, err := newTestService(fakeChecker{err: errors.New("bad url")}).SyncModule(context.Background(), "email")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad url")
}
