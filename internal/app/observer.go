package app

import (
	"sync"

	"conway/internal/sim"
)

// observer keeps the newest event published by a controller.
type observer struct {
	mu     sync.Mutex
	latest sim.Event
	cancel func()
}

func newObserver(ctrl *sim.Controller) *observer {
	o := &observer{latest: ctrl.Snapshot()}
	o.cancel = ctrl.Subscribe(o.observe)
	return o
}

func (o *observer) observe(ev sim.Event) {
	o.mu.Lock()
	o.latest = ev
	o.mu.Unlock()
}

// Latest returns the newest event seen.
func (o *observer) Latest() sim.Event {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.latest
}

// Close detaches from the controller. It is safe to call more than once.
func (o *observer) Close() {
	o.mu.Lock()
	cancel := o.cancel
	o.cancel = nil
	o.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}
