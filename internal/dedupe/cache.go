// Package dedupe suppresses repeated submissions of the same deed.
package dedupe

import (
	"sync"
	"time"
)

type mark struct {
	fingerprint string
	at          time.Time
}

// Cache remembers deed fingerprints for a ttl window, holding at most capacity entries.
type Cache struct {
	mu       sync.Mutex
	marks    map[string]time.Time
	queue    []mark
	capacity int
	ttl      time.Duration
	now      func() time.Time
}

// NewCache creates a cache with the provided capacity and ttl.
func NewCache(capacity int, ttl time.Duration) *Cache {
	if capacity <= 0 {
		capacity = 1
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Cache{
		marks:    make(map[string]time.Time, capacity),
		queue:    make([]mark, 0, capacity),
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Seen reports whether the fingerprint was remembered inside the ttl window.
func (c *Cache) Seen(fingerprint string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seenLocked(fingerprint, c.now())
}

// Remember records a fingerprint.
func (c *Cache) Remember(fingerprint string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rememberLocked(fingerprint, c.now())
}

// Claim remembers the fingerprint and returns true, unless it was already seen, in which
// case it returns false. Concurrent submissions of one deed get exactly one true.
func (c *Cache) Claim(fingerprint string) bool {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.seenLocked(fingerprint, now) {
		return false
	}
	c.rememberLocked(fingerprint, now)
	return true
}

// Forget drops a fingerprint, used when a claimed submission could not be stored.
func (c *Cache) Forget(fingerprint string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.marks, fingerprint)
}

// Len returns the number of live fingerprints.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.marks)
}

func (c *Cache) seenLocked(fingerprint string, now time.Time) bool {
	at, ok := c.marks[fingerprint]
	return ok && now.Sub(at) <= c.ttl
}

func (c *Cache) rememberLocked(fingerprint string, now time.Time) {
	c.marks[fingerprint] = now
	c.queue = append(c.queue, mark{fingerprint: fingerprint, at: now})
	c.evict(now)
}

// evict pops the queue while over capacity or while the head has expired. A queue entry
// only deletes its map key when it is the key's latest mark.
func (c *Cache) evict(now time.Time) {
	cutoff := now.Add(-c.ttl)

	for len(c.queue) > 0 && (len(c.marks) > c.capacity || c.queue[0].at.Before(cutoff)) {
		head := c.queue[0]
		c.queue = c.queue[1:]

		if at, ok := c.marks[head.fingerprint]; ok && at.Equal(head.at) {
			delete(c.marks, head.fingerprint)
		}
	}
}
