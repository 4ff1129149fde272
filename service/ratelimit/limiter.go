package ratelimit

import (
	"sync"
	"time"
)

const (
	// OrderLimit is the number of orders one address may place per window.
	OrderLimit = 3
	// Window is the sliding window the limit applies over.
	Window = time.Hour
)

// Result of an admission check.
type Result struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Conf tunes the limiter; zero values fall back to the order defaults.
type Conf struct {
	Limit  int
	Window time.Duration
	Clock  func() time.Time // injectable clock for tests; nil => time.Now
}

func (c *Conf) norm() {
	if c.Limit <= 0 {
		c.Limit = OrderLimit
	}
	if c.Window <= 0 {
		c.Window = Window
	}
	if c.Clock == nil {
		c.Clock = time.Now
	}
}

// Limiter is a per-address sliding window rate limiter. Timestamps are kept
// in memory per address and compacted against the window on every call.
// The whole table sits behind one mutex; the critical section is a short
// read-compact-append on a single slice.
type Limiter struct {
	mu     sync.Mutex
	conf   Conf
	byAddr map[string][]time.Time
}

func NewLimiter(conf Conf) *Limiter {
	conf.norm()
	return &Limiter{
		conf:   conf,
		byAddr: make(map[string][]time.Time),
	}
}

// Admit decides whether addr may place another order right now. Allowed
// attempts record their timestamp; rejected attempts do not count against
// the window.
func (l *Limiter) Admit(addr string) Result {
	now := l.conf.Clock()

	l.mu.Lock()
	defer l.mu.Unlock()

	recent := l.compactLocked(addr, now)
	if len(recent) >= l.conf.Limit {
		retry := recent[0].Add(l.conf.Window).Sub(now)
		if retry < 0 {
			retry = 0
		}
		return Result{Allowed: false, RetryAfter: retry}
	}

	l.byAddr[addr] = append(recent, now)
	return Result{Allowed: true}
}

// Blocked returns the addresses currently at or over the limit together
// with their in-window timestamps. Compaction runs first so an address
// whose qualifying attempts have aged out is never reported.
func (l *Limiter) Blocked() map[string][]time.Time {
	now := l.conf.Clock()

	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(map[string][]time.Time)
	for addr := range l.byAddr {
		recent := l.compactLocked(addr, now)
		if len(recent) >= l.conf.Limit {
			ts := make([]time.Time, len(recent))
			copy(ts, recent)
			out[addr] = ts
		}
	}
	return out
}

// compactLocked drops timestamps older than the window for addr and stores
// the result back, deleting the entry entirely when nothing remains.
// Caller must hold l.mu.
func (l *Limiter) compactLocked(addr string, now time.Time) []time.Time {
	ts := l.byAddr[addr]
	cut := 0
	for cut < len(ts) && now.Sub(ts[cut]) >= l.conf.Window {
		cut++
	}
	if cut == 0 {
		return ts
	}
	recent := ts[cut:]
	if len(recent) == 0 {
		delete(l.byAddr, addr)
		return nil
	}
	kept := make([]time.Time, len(recent))
	copy(kept, recent)
	l.byAddr[addr] = kept
	return kept
}
