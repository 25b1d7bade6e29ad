package events

import "github.com/atomicstack/gooeynav/internal/logging"

type UITracer struct{}

type PromptTracer struct{}

var (
	UI     = UITracer{}
	Prompt = PromptTracer{}
)

func (UITracer) Key(key string, focus string) {
	logging.Trace("ui.key", map[string]interface{}{"key": key, "focus": focus})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}

func (PromptTracer) Open(location string) {
	logging.Trace("prompt.open", map[string]interface{}{"location": location})
}

func (PromptTracer) Submit(value string) {
	logging.Trace("prompt.submit", map[string]interface{}{"value": value})
}

func (PromptTracer) Cancel() {
	logging.Trace("prompt.cancel", nil)
}

func (PromptTracer) Complete(query, suggestion string) {
	logging.Trace("prompt.complete", map[string]interface{}{"query": query, "suggestion": suggestion})
}
