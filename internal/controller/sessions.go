package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrSessionNotFound = errors.New("form session not found")

// Scope separates public intake forms from admin ones so an admin form id
// cannot be used on a public route and the other way round.
type Scope string

const (
	ScopePublic Scope = "public"
	ScopeAdmin  Scope = "admin"
)

type session struct {
	controller *Controller
	scope      Scope
	lastSeen   time.Time
}

// Sessions keeps the live form instances of the process keyed by id.
// Instances share nothing; the registry only maps ids to them.
type Sessions struct {
	mu     sync.RWMutex
	items  map[string]*session
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

func NewSessions(ttl time.Duration, logger *zap.Logger) *Sessions {
	return &Sessions{
		items:  make(map[string]*session),
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

func (s *Sessions) Add(c *Controller, scope Scope) string {
	id := uuid.New().String()

	s.mu.Lock()
	s.items[id] = &session{controller: c, scope: scope, lastSeen: s.now()}
	s.mu.Unlock()

	s.logger.Debug("form session opened",
		zap.String("session_id", id),
		zap.String("mode", string(c.Mode())),
		zap.String("scope", string(scope)),
	)
	return id
}

func (s *Sessions) Get(id string, scope Scope) (*Controller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok || item.scope != scope {
		return nil, ErrSessionNotFound
	}
	item.lastSeen = s.now()
	return item.controller, nil
}

func (s *Sessions) Remove(id string, scope Scope) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok || item.scope != scope {
		return false
	}
	delete(s.items, id)
	return true
}

func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Sweep drops sessions idle for longer than the ttl. A session with a submit
// in flight is kept until the submit settles.
func (s *Sessions) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, item := range s.items {
		if item.lastSeen.After(cutoff) || item.controller.State() == StateSubmitting {
			continue
		}
		delete(s.items, id)
		removed++
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *Sessions) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Info("expired form sessions removed", zap.Int("count", n))
			}
		}
	}
}
