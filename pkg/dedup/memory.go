package dedup

import (
	"context"
	"sync"
)

// MemoryGuard is a process-local dedup guard. It does not survive restarts
// and is meant for tests and single-instance setups where the sqlite or
// redis backends are unavailable.
type MemoryGuard struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewMemoryGuard creates an empty in-memory guard
func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{seen: make(map[string]struct{})}
}

// ShouldProcess reports whether the post has not been marked yet
func (g *MemoryGuard) ShouldProcess(_ context.Context, postID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.seen[postID]
	return !ok, nil
}

// MarkProcessed records the post as dispatched
func (g *MemoryGuard) MarkProcessed(_ context.Context, postID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seen[postID] = struct{}{}
	return nil
}
