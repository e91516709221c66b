// Package state implements the in-memory CSRF state-token store used by
// the OAuth handshake. Tokens are single-use and time-bounded: consuming
// a token deletes it, and a background sweep removes expired entries.
package state

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
)

var (
	// ErrInvalidState indicates a missing, unknown, or expired state token.
	ErrInvalidState = errors.New("invalid or missing state parameter - possible CSRF attempt")

	// ErrStateTypeMismatch indicates the token was issued for a different integration.
	ErrStateTypeMismatch = errors.New("state token type mismatch")
)

// entry records one issued state token.
type entry struct {
	createdAt       time.Time
	integrationType string
}

// Store is the in-memory state-token store. Safe for concurrent use;
// a single mutex serializes Issue, Consume and the sweep so that
// check-then-delete is atomic.
type Store struct {
	mu      sync.Mutex
	tokens  map[string]entry
	ttl     time.Duration
	sweep   time.Duration
	cron    *cron.Cron
	logger  arbor.ILogger
	running bool
}

// NewStore creates a state-token store with the given token TTL and
// sweep interval. Call Start to launch the background sweep and
// Shutdown to stop it during graceful termination.
func NewStore(ttl, sweepInterval time.Duration, logger arbor.ILogger) *Store {
	return &Store{
		tokens: make(map[string]entry),
		ttl:    ttl,
		sweep:  sweepInterval,
		cron:   cron.New(),
		logger: logger,
	}
}

// Issue generates a cryptographically random token (256 bits, hex-encoded)
// and records it against the integration type. Collisions with live tokens
// are probabilistically excluded by the entropy width, not checked.
func (s *Store) Issue(integrationType string) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate state token: %w", err)
	}
	token := hex.EncodeToString(buf)

	s.mu.Lock()
	s.tokens[token] = entry{
		createdAt:       time.Now(),
		integrationType: integrationType,
	}
	count := len(s.tokens)
	s.mu.Unlock()

	s.logger.Debug().
		Str("integration", integrationType).
		Int("live_tokens", count).
		Msg("Issued OAuth state token")

	return token, nil
}

// Consume validates a token against the integration type and deletes it.
// The entry is removed on any lookup hit, mismatches included, so no
// token can ever validate twice. At most one concurrent caller succeeds
// for a given token.
func (s *Store) Consume(token, integrationType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.tokens[token]
	if !ok {
		return ErrInvalidState
	}

	// One-time use: delete regardless of what the checks below decide.
	delete(s.tokens, token)

	if time.Since(e.createdAt) > s.ttl {
		s.logger.Debug().
			Str("integration", integrationType).
			Msg("Rejected expired state token")
		return ErrInvalidState
	}

	if e.integrationType != integrationType {
		s.logger.Warn().
			Str("issued_for", e.integrationType).
			Str("presented_for", integrationType).
			Msg("State token presented for a different integration")
		return ErrStateTypeMismatch
	}

	return nil
}

// Sweep removes every entry older than the TTL. Takes a single pass over
// the map under the lock.
func (s *Store) Sweep(now time.Time) {
	s.mu.Lock()
	removed := 0
	for token, e := range s.tokens {
		if now.Sub(e.createdAt) > s.ttl {
			delete(s.tokens, token)
			removed++
		}
	}
	remaining := len(s.tokens)
	s.mu.Unlock()

	if removed > 0 {
		s.logger.Debug().
			Int("removed", removed).
			Int("remaining", remaining).
			Msg("Swept expired state tokens")
	}
}

// Start launches the recurring expiry sweep on a background cron schedule.
func (s *Store) Start() error {
	if s.running {
		return fmt.Errorf("state token store already running")
	}

	spec := fmt.Sprintf("@every %s", s.sweep)
	if _, err := s.cron.AddFunc(spec, func() {
		s.Sweep(time.Now())
	}); err != nil {
		return fmt.Errorf("failed to schedule state token sweep: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Debug().
		Str("interval", s.sweep.String()).
		Str("ttl", s.ttl.String()).
		Msg("State token sweep started")

	return nil
}

// Shutdown stops the sweep and clears all entries so no timer keeps the
// process alive during graceful termination.
func (s *Store) Shutdown() {
	if s.running {
		s.cron.Stop()
		s.running = false
	}

	s.mu.Lock()
	s.tokens = make(map[string]entry)
	s.mu.Unlock()

	s.logger.Debug().Msg("State token store shut down")
}

// Len returns the number of live tokens. Used by tests and diagnostics.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}
