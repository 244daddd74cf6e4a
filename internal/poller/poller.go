// Package poller implements the fixed-interval refresh timer used in place
// of push-based updates. The handle is owned by the session lifecycle: it is
// started after authentication and stopped on sign-out or teardown.
package poller

import (
	"sync"
	"time"
)

// Poller runs a tick function on a fixed period until stopped.
type Poller struct {
	interval time.Duration
	tick     func()

	mu   sync.Mutex
	stop chan struct{}
}

// New poller. The tick function is invoked from a single background
// goroutine; it must do its own locking.
func New(interval time.Duration, tick func()) *Poller {
	return &Poller{interval: interval, tick: tick}
}

// Start launches the timer. Starting a running poller is a no-op.
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stop != nil {
		return
	}
	stop := make(chan struct{})
	p.stop = stop

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.tick()
			case <-stop:
				return
			}
		}
	}()
}

// Stop tears the timer down. Stopping a stopped poller is a no-op.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stop == nil {
		return
	}
	close(p.stop)
	p.stop = nil
}

// Running reports whether the timer is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stop != nil
}
