package services

import (
	"sync"
	"testing"
)

func TestLikeCounter_Bump(t *testing.T) {
	s := NewLikeCounterService()

	if got := s.Bump(nil); got != 1 {
		t.Fatalf("Bump(nil) = %d, want 1", got)
	}

	five := 5
	if got := s.Bump(&five); got != 6 {
		t.Fatalf("Bump(5) = %d, want 6", got)
	}
}

func TestLikeCounter_KeyedPerArticle(t *testing.T) {
	s := NewLikeCounterService()

	s.Increment(1)
	s.Increment(1)
	s.Increment(2)

	if got := s.Get(1); got != 2 {
		t.Fatalf("article 1 counter = %d, want 2", got)
	}
	if got := s.Get(2); got != 1 {
		t.Fatalf("article 2 counter = %d, want 1", got)
	}
	if got := s.Get(99); got != 0 {
		t.Fatalf("untouched article counter = %d, want 0", got)
	}
}

// N concurrent increments starting from zero must land on exactly N.
func TestLikeCounter_ConcurrentIncrements(t *testing.T) {
	const n = 1000
	s := NewLikeCounterService()

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			s.Increment(42)
		}()
	}
	wg.Wait()

	if got := s.Get(42); got != n {
		t.Fatalf("after %d concurrent increments counter = %d", n, got)
	}
}
