// Package datalayer is the local side of the data layer. All business data
// lives behind the remote API, so initialization is a no-op, local queries
// are rejected, and sync only reports API reachability.
package datalayer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"evolveapp-desktop/internal/domain"
)

// ErrLocalQueryUnsupported is returned for every local query.
//
//nolint:staticcheck // message is shown to users verbatim
var ErrLocalQueryUnsupported = errors.New("Local database queries not supported. Use API endpoints instead.")

// HealthChecker reports remote API reachability.
type HealthChecker interface {
	CheckHealth(ctx context.Context) (bool, error)
}

// Service implements the local data-layer operations.
type Service struct {
	checker func(domain.APIConfig) HealthChecker
	config  func() domain.APIConfig
	now     func() time.Time
	logger  *slog.Logger
}

// NewService creates a data-layer service. config is called on every
// operation so environment changes are picked up.
func NewService(config func() domain.APIConfig, checker func(domain.APIConfig) HealthChecker, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		checker: checker,
		config:  config,
		now:     time.Now,
		logger:  logger,
	}
}

// Initialize only logs; there is no local database to prepare.
func (s *Service) Initialize(_ context.Context) error {
	s.logger.Info("using remote database via API", "base_url", s.config().BaseURL)
	s.logger.Info("no local database initialization required")
	return nil
}

// ExecuteQuery always fails with ErrLocalQueryUnsupported.
func (s *Service) ExecuteQuery(_ string) (string, error) {
	return "", ErrLocalQueryUnsupported
}

// Status checks remote API reachability. PendingOperations is always 0
// because there is no local queue.
func (s *Service) Status(ctx context.Context) (domain.SyncStatus, error) {
	connected, err := s.checker(s.config()).CheckHealth(ctx)
	if err != nil {
		return domain.SyncStatus{}, fmt.Errorf("check API connection: %w", err)
	}

	lastSync := s.now().UTC().Format(time.RFC3339Nano)
	return domain.SyncStatus{
		Connected:         connected,
		LastSync:          &lastSync,
		PendingOperations: 0,
	}, nil
}

// SyncModule returns the JSON-encoded sync status. Data is synced by the
// front-end's direct API calls; nothing is stored locally.
func (s *Service) SyncModule(ctx context.Context, moduleID string) (string, error) {
	s.logger.Info("sync requested", "module_id", moduleID)

	status, err := s.Status(ctx)
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(status)
	if err != nil {
		return "", fmt.Errorf("encode sync status: %w", err)
	}
	return string(data), nil
}
