package crawler

import (
	"sync/atomic"
	"time"
)

// progressDrainTimeout bounds how long Crawl waits for a slow consumer to
// take the remaining snapshots before returning.
var progressDrainTimeout = 2 * time.Second

// progressPump hands snapshots to a ProgressFunc on a separate goroutine.
// send never blocks: snapshots are dropped while the buffer is full.
// close waits for buffered snapshots to be delivered, up to
// progressDrainTimeout; after it returns the ProgressFunc is not called again.
type progressPump struct {
	ch        chan Progress
	done      chan struct{}
	abandoned atomic.Bool
}

func startPump(fn ProgressFunc) *progressPump {
	if fn == nil {
		return nil
	}
	p := &progressPump{ch: make(chan Progress, progressBuffer), done: make(chan struct{})}
	go func() {
		defer close(p.done)
		for pr := range p.ch {
			if p.abandoned.Load() {
				continue
			}
			fn(pr)
		}
	}()
	return p
}

func (p *progressPump) send(pr Progress) {
	if p == nil {
		return
	}
	select {
	case p.ch <- pr:
	default:
	}
}

func (p *progressPump) close() {
	if p == nil {
		return
	}
	close(p.ch)

	timer := time.NewTimer(progressDrainTimeout)
	defer timer.Stop()
	select {
	case <-p.done:
	case <-timer.C:
		p.abandoned.Store(true)
	}
}
