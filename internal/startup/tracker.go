package startup

import (
	"fmt"
	"sync"

	"evolveapp-desktop/internal/domain"
)

// Tracker records the current startup stage and rejects out-of-order moves.
type Tracker struct {
	mu      sync.RWMutex
	current domain.Stage
}

// NewTracker creates a tracker in the starting stage.
func NewTracker() *Tracker {
	return &Tracker{current: domain.StageStarting}
}

// Advance moves to stage if the edge is allowed. Repeating the current stage
// is a no-op.
func (t *Tracker) Advance(stage domain.Stage) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if stage == t.current {
		return nil
	}
	if !isValidTransition(t.current, stage) {
		return fmt.Errorf("invalid startup transition: %s -> %s", t.current, stage)
	}

	t.current = stage
	return nil
}

// Current returns the current stage.
func (t *Tracker) Current() domain.Stage {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// IsTerminal reports whether startup has finished, successfully or not.
func (t *Tracker) IsTerminal() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current == domain.StageRunning || t.current == domain.StageFatalAbort
}

// isValidTransition enforces the allowed startup state machine edges.
func isValidTransition(from, to domain.Stage) bool {
	switch from {
	case domain.StageStarting:
		return to == domain.StageLoggingReady
	case domain.StageLoggingReady:
		return to == domain.StageDiagnosticsCollected
	case domain.StageDiagnosticsCollected:
		return to == domain.StageFatalAbort || to == domain.StageContinuingStartup
	case domain.StageContinuingStartup:
		return to == domain.StageBackgroundDispatched
	case domain.StageBackgroundDispatched:
		return to == domain.StageRunning
	default:
		return false
	}
}
