package burst

import (
	"math"
	"time"
)

// Phase is a particle's lifecycle stage.
type Phase int

const (
	Scheduled Phase = iota
	Alive
	Removed
)

func (p Phase) String() string {
	switch p {
	case Scheduled:
		return "scheduled"
	case Alive:
		return "alive"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Vec is an offset from the burst origin, X in columns and Y in rows.
type Vec struct {
	X float64
	Y float64
}

// Particle is one element of a burst.
type Particle struct {
	Burst    uint64
	Index    int
	Start    Vec
	End      Vec
	Pos      Vec
	Lifetime time.Duration
	Scale    float64
	Rotation float64
	Color    int

	vel      Vec
	createAt time.Time
	stepped  time.Time
	phase    Phase
	attached bool
}

// Phase returns the lifecycle stage.
func (p *Particle) Phase() Phase {
	return p.phase
}

// Attached reports whether the particle is still on the burst layer. A newer
// burst detaches everything before it.
func (p *Particle) Attached() bool {
	return p.attached
}

// CreateAt is when the particle leaves the Scheduled phase.
func (p *Particle) CreateAt() time.Time {
	return p.createAt
}

// ExpireAt is when the particle is removed.
func (p *Particle) ExpireAt() time.Time {
	return p.createAt.Add(p.Lifetime)
}

// Progress returns how far through its lifetime the particle is, in [0, 1].
func (p *Particle) Progress(now time.Time) float64 {
	if p.phase == Scheduled || p.Lifetime <= 0 {
		return 0
	}
	f := float64(now.Sub(p.createAt)) / float64(p.Lifetime)
	return math.Max(0, math.Min(1, f))
}

func (p *Particle) create() bool {
	if p.phase != Scheduled {
		return false
	}
	p.phase = Alive
	p.Pos = p.Start
	p.stepped = p.createAt
	return true
}

// remove ends the lifecycle. It reports false when the particle was already
// removed, which is not an error.
func (p *Particle) remove() bool {
	if p.phase != Alive {
		return false
	}
	p.phase = Removed
	p.attached = false
	return true
}

func (p *Particle) detach() {
	p.attached = false
}
