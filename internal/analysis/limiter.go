package analysis

import (
	"sync"
	"time"

	"github.com/heartmarshall/reading-copilot/internal/domain"
)

// Limiter is a per-key sliding-window request limiter: at most max
// requests within any window.
type Limiter struct {
	max     int
	window  time.Duration
	now     func() time.Time
	windows sync.Map // map[string]*slidingWindow
	stop    chan struct{}
	once    sync.Once
}

type slidingWindow struct {
	mu     sync.Mutex
	stamps []time.Time
}

// NewLimiter creates a limiter. A positive cleanupInterval starts a
// background goroutine that drops idle keys; call Stop() on shutdown.
func NewLimiter(max int, window, cleanupInterval time.Duration) *Limiter {
	l := &Limiter{
		max:    max,
		window: window,
		now:    time.Now,
		stop:   make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go l.cleanup(cleanupInterval)
	}
	return l
}

// Stop terminates the background cleanup goroutine.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}

// Allow consumes a slot for key or returns a *domain.RateLimitError telling
// the caller how long until the oldest request leaves the window.
func (l *Limiter) Allow(key string) error {
	val, _ := l.windows.LoadOrStore(key, &slidingWindow{})
	w := val.(*slidingWindow)

	w.mu.Lock()
	defer w.mu.Unlock()

	now := l.now()
	w.prune(now, l.window)

	if len(w.stamps) >= l.max {
		retry := l.window - now.Sub(w.stamps[0])
		if retry < 0 {
			retry = 0
		}
		return &domain.RateLimitError{RetryAfter: retry}
	}

	w.stamps = append(w.stamps, now)
	return nil
}

// Remaining reports how many requests key may still make in the current window.
func (l *Limiter) Remaining(key string) int {
	val, ok := l.windows.Load(key)
	if !ok {
		return l.max
	}
	w := val.(*slidingWindow)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.prune(l.now(), l.window)
	return max(0, l.max-len(w.stamps))
}

func (w *slidingWindow) prune(now time.Time, window time.Duration) {
	drop := 0
	for drop < len(w.stamps) && now.Sub(w.stamps[drop]) >= window {
		drop++
	}
	w.stamps = w.stamps[drop:]
}

func (l *Limiter) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			now := l.now()
			l.windows.Range(func(key, value any) bool {
				w := value.(*slidingWindow)
				w.mu.Lock()
				w.prune(now, l.window)
				idle := len(w.stamps) == 0
				w.mu.Unlock()
				if idle {
					l.windows.Delete(key)
				}
				return true
			})
		}
	}
}
