package events

import (
	"time"

	"github.com/atomicstack/gooeynav/internal/logging"
)

type NavTracer struct{}

var Nav = NavTracer{}

func (NavTracer) Select(index int, target string, changed bool) {
	logging.Trace("nav.select", map[string]interface{}{
		"index":   index,
		"target":  target,
		"changed": changed,
	})
}

func (NavTracer) Sync(location string, index int, changed bool) {
	logging.Trace("nav.sync", map[string]interface{}{
		"location": location,
		"index":    index,
		"changed":  changed,
	})
}

func (NavTracer) Burst(id uint64, particles int, bubbleTime time.Duration) {
	logging.Trace("nav.burst", map[string]interface{}{
		"burst":      id,
		"particles":  particles,
		"bubbleTime": bubbleTime.String(),
	})
}

func (NavTracer) LayoutSkipped(index int, err error) {
	if err == nil {
		return
	}
	logging.Trace("nav.layout.skip", map[string]interface{}{"index": index, "error": err.Error()})
}

func (NavTracer) Resize(width, height int) {
	logging.Trace("nav.resize", map[string]interface{}{"width": width, "height": height})
}

func (NavTracer) Items(count int) {
	logging.Trace("nav.items", map[string]interface{}{"count": count})
}
