package chathub

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// SenderLimiter maintains per-user rate limiters for message sends and
// performs periodic cleanup of idle entries.
type SenderLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	senders map[string]*senderEntry
	stopCh  chan struct{}
}

type senderEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewSenderLimiter creates a limiter store allowing limitPerMinute messages
// per user with the given burst capacity.
func NewSenderLimiter(limitPerMinute, burst int) *SenderLimiter {
	if limitPerMinute <= 0 {
		limitPerMinute = 60
	}
	s := &SenderLimiter{
		limit:   rate.Every(time.Minute / time.Duration(limitPerMinute)),
		burst:   burst,
		senders: map[string]*senderEntry{},
		stopCh:  make(chan struct{}),
	}
	go s.cleanupLoop()
	return s
}

func (s *SenderLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-10 * time.Minute)
			s.mu.Lock()
			for id, e := range s.senders {
				if e.lastSeen.Before(cutoff) {
					delete(s.senders, id)
				}
			}
			s.mu.Unlock()
		case <-s.stopCh:
			return
		}
	}
}

// Stop stops the cleanup goroutine.
func (s *SenderLimiter) Stop() {
	close(s.stopCh)
}

// Allow reports whether userID may send another message now.
func (s *SenderLimiter) Allow(userID string) bool {
	s.mu.Lock()
	e, ok := s.senders[userID]
	if !ok {
		e = &senderEntry{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.senders[userID] = e
	}
	e.lastSeen = time.Now()
	s.mu.Unlock()
	return e.limiter.Allow()
}
