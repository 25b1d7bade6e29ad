package events

import "github.com/atomicstack/gooeynav/internal/logging"

type RouteTracer struct{}

var Route = RouteTracer{}

func (RouteTracer) Navigate(from, to string) {
	logging.Trace("route.navigate", map[string]interface{}{"from": from, "to": to})
}

func (RouteTracer) Back(to string) {
	logging.Trace("route.back", map[string]interface{}{"to": to})
}

func (RouteTracer) Forward(to string) {
	logging.Trace("route.forward", map[string]interface{}{"to": to})
}

func (RouteTracer) Dropped(location string) {
	logging.Trace("route.dropped", map[string]interface{}{"location": location})
}
