package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/csfinder/internal/logger"
)

const (
	// DefaultSessionTTL is the idle duration after which a session is dropped
	DefaultSessionTTL = 30 * time.Minute
	// DefaultSweepInterval is the default period between two sweeps
	DefaultSweepInterval = 5 * time.Minute
)

// SessionStore is the part of the session registry the sweeper needs.
type SessionStore interface {
	Sweep(ttl time.Duration) int
	Count() int
}

// SessionSweeper periodically drops idle sessions
type SessionSweeper struct {
	sessions SessionStore
	logger   logger.Logger
	interval time.Duration
	ttl      time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewSessionSweeper creates a new session sweeper. Zero durations select the defaults.
func NewSessionSweeper(
	sessions SessionStore,
	log logger.Logger,
	interval time.Duration,
	ttl time.Duration,
) *SessionSweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}

	return &SessionSweeper{
		sessions: sessions,
		logger:   log,
		interval: interval,
		ttl:      ttl,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic sweep in a background goroutine
func (s *SessionSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-s.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	s.logger.Info("session sweeper started",
		logger.Duration("interval", s.interval),
		logger.Duration("ttl", s.ttl))
}

// Stop stops the sweeper. It is safe to call more than once.
func (s *SessionSweeper) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
	})
}

// Sweep removes sessions idle for longer than the ttl and returns how many
func (s *SessionSweeper) Sweep() int {
	removed := s.sessions.Sweep(s.ttl)

	if removed > 0 {
		s.logger.Info("expired idle sessions",
			logger.Int("removed", removed),
			logger.Int("remaining", s.sessions.Count()))
	} else {
		s.logger.Debug("no idle sessions to expire")
	}

	return removed
}
