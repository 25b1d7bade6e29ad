// Package route keeps an in-memory location history and publishes every
// location change on a channel, the way a browser router would.
package route

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/atomicstack/gooeynav/internal/logging/events"
	"github.com/atomicstack/gooeynav/internal/menu"
)

var (
	// ErrNoHistory is returned by Back and Forward at either end of the history.
	ErrNoHistory = errors.New("route: no history in that direction")
	// ErrStopped is returned once the router has been stopped.
	ErrStopped = errors.New("route: router stopped")
)

const maxQueued = 64

// Cause records what moved the router.
type Cause int

const (
	CauseNavigate Cause = iota
	CauseBack
	CauseForward
)

func (c Cause) String() string {
	switch c {
	case CauseNavigate:
		return "navigate"
	case CauseBack:
		return "back"
	case CauseForward:
		return "forward"
	default:
		return "unknown"
	}
}

// Event is published for every location change.
type Event struct {
	Location string
	Previous string
	Cause    Cause
}

// Router owns the history stack. Navigate, Back and Forward never block on
// the consumer; events are queued and delivered by a single goroutine.
type Router struct {
	mu      sync.Mutex
	history []string
	pos     int
	queue   []Event
	stopped bool

	wake   chan struct{}
	events chan Event

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a router positioned at start.
func New(start string) *Router {
	ctx, cancel := context.WithCancel(context.Background())
	r := &Router{
		history: []string{normalize(start)},
		wake:    make(chan struct{}, 1),
		events:  make(chan Event, 16),
		ctx:     ctx,
		cancel:  cancel,
	}

	r.wg.Add(1)
	go r.deliver()
	return r
}

// Location returns the current location.
func (r *Router) Location() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.history[r.pos]
}

// History returns a copy of the history stack and the current position.
func (r *Router) History() ([]string, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.history...), r.pos
}

// Navigate pushes target onto the history, discarding any forward entries.
// Navigating to the current location leaves the history untouched.
func (r *Router) Navigate(target string) error {
	target = normalize(target)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return ErrStopped
	}
	from := r.history[r.pos]
	if target == from {
		return nil
	}
	r.history = append(r.history[:r.pos+1], target)
	r.pos++
	events.Route.Navigate(from, target)
	r.publishLocked(Event{Location: target, Previous: from, Cause: CauseNavigate})
	return nil
}

// Back moves one entry back in the history.
func (r *Router) Back() error {
	return r.step(-1, CauseBack)
}

// Forward moves one entry forward in the history.
func (r *Router) Forward() error {
	return r.step(1, CauseForward)
}

func (r *Router) step(delta int, cause Cause) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stopped {
		return ErrStopped
	}
	next := r.pos + delta
	if next < 0 || next >= len(r.history) {
		return ErrNoHistory
	}
	from := r.history[r.pos]
	r.pos = next
	to := r.history[next]
	if cause == CauseBack {
		events.Route.Back(to)
	} else {
		events.Route.Forward(to)
	}
	r.publishLocked(Event{Location: to, Previous: from, Cause: cause})
	return nil
}

func (r *Router) publishLocked(evt Event) {
	if len(r.queue) >= maxQueued {
		events.Route.Dropped(r.queue[0].Location)
		r.queue = r.queue[1:]
	}
	r.queue = append(r.queue, evt)
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// Events returns the channel of location changes. It is closed after Stop
// once the delivery goroutine has exited.
func (r *Router) Events() <-chan Event {
	return r.events
}

// Stop cancels delivery. Queued events that were not yet delivered are
// discarded.
func (r *Router) Stop() {
	r.mu.Lock()
	r.stopped = true
	r.queue = nil
	r.mu.Unlock()
	r.cancel()
}

// Wait blocks until the delivery goroutine has exited and the events channel
// is closed.
func (r *Router) Wait() {
	r.wg.Wait()
}

func (r *Router) deliver() {
	defer r.wg.Done()
	defer close(r.events)
	for {
		select {
		case <-r.ctx.Done():
			return
		case <-r.wake:
		}
		for {
			r.mu.Lock()
			if len(r.queue) == 0 {
				r.mu.Unlock()
				break
			}
			evt := r.queue[0]
			r.queue = r.queue[1:]
			r.mu.Unlock()

			select {
			case <-r.ctx.Done():
				return
			case r.events <- evt:
			}
		}
	}
}

func normalize(location string) string {
	location = strings.TrimSpace(location)
	if location == "" {
		return "/"
	}
	location = menu.NormalizeTarget(location)
	if trimmed := strings.TrimRight(location, "/"); trimmed != "" {
		return trimmed
	}
	return "/"
}
