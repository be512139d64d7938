package attendance

import (
	"sync"

	"github.com/gestipresence/presence-backend-go/internal/domain/attendance"
)

// recentFeed keeps the last few scans, newest first. It is display-only and
// never consulted when reconciling.
type recentFeed struct {
	mu      sync.Mutex
	size    int
	entries []attendance.RecentScan
}

func newRecentFeed(size int) *recentFeed {
	if size < 1 {
		size = 1
	}
	return &recentFeed{size: size}
}

func (f *recentFeed) Push(s attendance.RecentScan) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries = append([]attendance.RecentScan{s}, f.entries...)
	if len(f.entries) > f.size {
		f.entries = f.entries[:f.size]
	}
}

// List returns up to limit entries; a non-positive limit returns all of them.
func (f *recentFeed) List(limit int) []attendance.RecentScan {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := len(f.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]attendance.RecentScan, n)
	copy(out, f.entries[:n])
	return out
}
