// ABOUTME: Shared periodic-callback runner for engine implementations
// ABOUTME: Ticker goroutine gated by the owning context's running state
package engine

import (
	"sync"
	"time"
)

// interval is the common SetInterval implementation shared by the real
// engines. It runs fn on a ticker goroutine, skipping ticks while the
// owning context reports itself suspended.
type interval struct {
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// startInterval launches the ticker goroutine. running is sampled before
// every tick; a false result skips that tick entirely.
func startInterval(fn func(), period time.Duration, running func() bool) *interval {
	iv := &interval{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	go func() {
		defer close(iv.done)

		ticker := time.NewTicker(period)
		defer ticker.Stop()

		for {
			select {
			case <-iv.stop:
				return
			case <-ticker.C:
				if running() {
					fn()
				}
			}
		}
	}()

	return iv
}

// cancel stops the interval and waits for any in-flight tick to finish.
// Safe to call more than once.
func (iv *interval) cancel() {
	iv.stopOnce.Do(func() {
		close(iv.stop)
	})
	<-iv.done
}
