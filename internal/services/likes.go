package services

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"articleboard/internal/logger"
)

// LikeCounterService tracks per-article like counters. Counters live in
// process memory and reset on restart; they are keyed by article id so
// concurrent requests against different articles never contend, and
// increments on the same article are atomic.
type LikeCounterService struct {
	counters sync.Map // article id -> *atomic.Int64
}

func NewLikeCounterService() *LikeCounterService {
	return &LikeCounterService{}
}

func (s *LikeCounterService) counter(articleID int) *atomic.Int64 {
	if c, ok := s.counters.Load(articleID); ok {
		return c.(*atomic.Int64)
	}
	c, _ := s.counters.LoadOrStore(articleID, new(atomic.Int64))
	return c.(*atomic.Int64)
}

// Increment bumps the counter for the article and returns the new value.
func (s *LikeCounterService) Increment(articleID int) int64 {
	v := s.counter(articleID).Add(1)
	logger.Log.Debug("like counter incremented",
		zap.Int("article_id", articleID),
		zap.Int64("value", v),
	)
	return v
}

// Get reads the current counter without mutating it.
func (s *LikeCounterService) Get(articleID int) int64 {
	return s.counter(articleID).Load()
}

// Bump preserves the legacy /good contract: no prior value yields 1,
// otherwise the caller-supplied value plus one.
func (s *LikeCounterService) Bump(prev *int) int {
	if prev == nil {
		return 1
	}
	return *prev + 1
}
