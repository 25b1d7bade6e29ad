package nav

import (
	"time"

	"github.com/atomicstack/gooeynav/internal/nav/burst"
	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg asks the nav bar to advance its burst to At. Frames carry the
// generation they were requested for; frames from an earlier mount are dropped.
type FrameMsg struct {
	Gen uint64
	At  time.Time
}

// FrameScheduler requests the next animation frame.
type FrameScheduler interface {
	Schedule(gen uint64) tea.Cmd
}

// TickScheduler schedules frames with tea.Tick.
type TickScheduler struct {
	Interval time.Duration
}

func (s TickScheduler) Schedule(gen uint64) tea.Cmd {
	interval := s.Interval
	if interval <= 0 {
		interval = burst.FrameInterval
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg{Gen: gen, At: t}
	})
}

// ManualFrames records frame requests and releases them only when drained,
// so tests decide exactly when time moves.
type ManualFrames struct {
	requested []uint64
}

func (f *ManualFrames) Schedule(gen uint64) tea.Cmd {
	f.requested = append(f.requested, gen)
	return nil
}

// Pending reports the number of frames requested since the last Drain.
func (f *ManualFrames) Pending() int {
	return len(f.requested)
}

// Drain returns every requested frame stamped with at.
func (f *ManualFrames) Drain(at time.Time) []tea.Msg {
	if len(f.requested) == 0 {
		return nil
	}
	msgs := make([]tea.Msg, 0, len(f.requested))
	for _, gen := range f.requested {
		msgs = append(msgs, FrameMsg{Gen: gen, At: at})
	}
	f.requested = f.requested[:0]
	return msgs
}
