package layout

import (
	"sort"
	"sync"
)

// Size is a container size in terminal cells.
type Size struct {
	Width  int
	Height int
}

// Container is the box the nav bar lays its items out in. Its size is pushed
// from outside (window resizes, parent layout changes) and observers are told
// about every change.
type Container struct {
	mu   sync.Mutex
	size Size
	subs map[uint64]func(Size)
	next uint64
}

// NewContainer creates a container with an initial size.
func NewContainer(width, height int) *Container {
	return &Container{
		size: Size{Width: width, Height: height},
		subs: make(map[uint64]func(Size)),
	}
}

// Size returns the current size.
func (c *Container) Size() Size {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Resize updates the size and notifies observers when it changed. It reports
// whether a change was published.
func (c *Container) Resize(width, height int) bool {
	c.mu.Lock()
	next := Size{Width: width, Height: height}
	if next == c.size {
		c.mu.Unlock()
		return false
	}
	c.size = next
	ids := make([]uint64, 0, len(c.subs))
	for id := range c.subs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	fns := make([]func(Size), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, c.subs[id])
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(next)
	}
	return true
}

// Subscribe registers fn for size changes. The returned cancel func is safe to
// call more than once.
func (c *Container) Subscribe(fn func(Size)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	c.mu.Lock()
	id := c.next
	c.next++
	c.subs[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
		})
	}
}

// Observers reports how many subscriptions are live.
func (c *Container) Observers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}
