// Package burst plays the particle effect shown when the visitor moves the
// nav highlight. Time is passed in explicitly so the engine can be driven by
// Bubble Tea frame ticks in the app and by a fake clock in tests.
package burst

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/harmonica"
)

const (
	frameRate   = 60
	minLifetime = time.Second / frameRate
	// maxCatchUp bounds spring steps per Advance after a long stall.
	maxCatchUp = 4 * frameRate
)

// FrameInterval is the cadence the engine expects Advance to be called at.
const FrameInterval = time.Second / frameRate

// Stats counts lifecycle transitions since the engine was created.
type Stats struct {
	Bursts  int
	Created int
	Removed int
}

// Engine owns every particle of the current and superseded bursts.
type Engine struct {
	cfg    Config
	rng    *rand.Rand
	spring harmonica.Spring

	particles []*Particle
	burst     uint64

	activatePending bool
	active          bool
	activatedAt     time.Time

	stats  Stats
	closed bool
}

// New constructs an engine for cfg.
func New(cfg Config) *Engine {
	cfg = cfg.withDefaults()
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Engine{
		cfg:    cfg,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		spring: harmonica.NewSpring(harmonica.FPS(frameRate), 6.0, 0.7),
	}
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// BubbleTime is the highlight merge duration for this engine.
func (e *Engine) BubbleTime() time.Duration {
	return e.cfg.BubbleTime()
}

// Fire starts a new burst at now and returns its id. Particles of earlier
// bursts are detached from the layer straight away; their own expiry still
// runs and becomes a no-op on the layer.
func (e *Engine) Fire(now time.Time) uint64 {
	if e.closed {
		return 0
	}
	e.burst++
	e.stats.Bursts++
	e.active = false
	e.activatePending = false
	e.activatedAt = time.Time{}
	for _, p := range e.particles {
		p.detach()
	}

	n := e.cfg.ParticleCount
	for i := 0; i < n; i++ {
		e.particles = append(e.particles, e.newParticle(i, n, now))
	}
	return e.burst
}

func (e *Engine) newParticle(i, n int, now time.Time) *Particle {
	lifetime := 2*e.cfg.AnimationTime + time.Duration(e.noise(float64(2*e.cfg.TimeVariance)))
	if lifetime < minLifetime {
		lifetime = minLifetime
	}
	d := e.cfg.Distances
	point := n - i
	rotate := e.noise(e.cfg.Spin / 10)
	if rotate > 0 {
		rotate = (rotate + e.cfg.Spin/20) * 10
	} else {
		rotate = (rotate - e.cfg.Spin/20) * 10
	}
	return &Particle{
		Burst:    e.burst,
		Index:    i,
		Start:    e.polar(d[0], point, n),
		End:      e.polar(d[1]+e.noise(e.cfg.DistanceJitter), point, n),
		Lifetime: lifetime,
		Scale:    1 + e.noise(0.2),
		Rotation: rotate,
		Color:    e.rng.IntN(e.cfg.Palette),
		createAt: now.Add(time.Duration(i) * e.cfg.Stagger),
		attached: true,
	}
}

// polar places point of total evenly around a circle of radius distance, with
// a few degrees of jitter on the angle.
func (e *Engine) polar(distance float64, point, total int) Vec {
	angle := (360 + e.noise(8)) / float64(total) * float64(point) * (math.Pi / 180)
	return Vec{
		X: distance * math.Cos(angle) * e.cfg.Aspect,
		Y: distance * math.Sin(angle),
	}
}

// noise returns a uniform value in (-n/2, n/2].
func (e *Engine) noise(n float64) float64 {
	return n/2 - e.rng.Float64()*n
}

// Advance moves every lifecycle forward to now. Creation follows particle
// order within a burst; each particle is removed once its lifetime is over.
// The container turns active on the frame after the last particle of the
// current burst is created.
func (e *Engine) Advance(now time.Time) {
	if e.closed {
		return
	}
	if e.activatePending {
		e.activatePending = false
		e.active = true
		e.activatedAt = now
	}
	n := e.cfg.ParticleCount
	live := e.particles[:0]
	for _, p := range e.particles {
		if p.phase == Scheduled && !now.Before(p.createAt) {
			p.create()
			e.stats.Created++
			if p.Burst == e.burst && p.Index == n-1 {
				e.activatePending = true
			}
		}
		if p.phase == Alive {
			if p.attached {
				e.step(p, now)
			}
			if !now.Before(p.ExpireAt()) && p.remove() {
				e.stats.Removed++
			}
		}
		if p.phase != Removed {
			live = append(live, p)
		}
	}
	for i := len(live); i < len(e.particles); i++ {
		e.particles[i] = nil
	}
	e.particles = live
}

func (e *Engine) step(p *Particle, now time.Time) {
	frames := int(now.Sub(p.stepped) / FrameInterval)
	if frames <= 0 {
		return
	}
	p.stepped = p.stepped.Add(time.Duration(frames) * FrameInterval)
	if frames > maxCatchUp {
		frames = maxCatchUp
	}
	for i := 0; i < frames; i++ {
		p.Pos.X, p.vel.X = e.spring.Update(p.Pos.X, p.vel.X, p.End.X)
		p.Pos.Y, p.vel.Y = e.spring.Update(p.Pos.Y, p.vel.Y, p.End.Y)
	}
}

// Visible returns copies of the particles currently drawn on the layer.
func (e *Engine) Visible() []Particle {
	out := make([]Particle, 0, len(e.particles))
	for _, p := range e.particles {
		if p.phase == Alive && p.attached {
			out = append(out, *p)
		}
	}
	return out
}

// Pending counts lifecycles that have not reached Removed.
func (e *Engine) Pending() int {
	return len(e.particles)
}

// Active reports whether the current burst has activated the highlight.
func (e *Engine) Active() bool {
	return e.active
}

// Glowing reports whether the highlight is still inside its merge window.
func (e *Engine) Glowing(now time.Time) bool {
	return e.active && now.Before(e.activatedAt.Add(e.BubbleTime()))
}

// Merging reports whether a burst is running but has not activated yet.
func (e *Engine) Merging() bool {
	return e.burst > 0 && !e.active && !e.closed
}

// Busy reports whether another frame is needed.
func (e *Engine) Busy(now time.Time) bool {
	if e.closed {
		return false
	}
	return len(e.particles) > 0 || e.activatePending || e.Glowing(now)
}

// Stats returns the lifecycle counters.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Close drops all particles and stops the engine from accepting bursts.
func (e *Engine) Close() {
	e.closed = true
	for i := range e.particles {
		e.particles[i].detach()
		e.particles[i] = nil
	}
	e.particles = nil
	e.activatePending = false
}
