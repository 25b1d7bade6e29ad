package burst

import "time"

// Config tunes a particle burst. Zero values fall back to the defaults.
type Config struct {
	// AnimationTime is the base flight time; particles live roughly twice it.
	AnimationTime time.Duration
	// TimeVariance is the symmetric spread applied to each particle lifetime.
	TimeVariance time.Duration
	// ParticleCount is the number of particles per burst.
	ParticleCount int
	// Distances holds the start and end radius in rows.
	Distances [2]float64
	// DistanceJitter bounds the noise added to the end radius.
	DistanceJitter float64
	// Spin bounds particle rotation; larger values rotate further.
	Spin float64
	// Aspect stretches horizontal offsets so circles look round in a grid of
	// cells taller than they are wide.
	Aspect float64
	// Stagger delays particle i by i*Stagger.
	Stagger time.Duration
	// Palette is the number of colours a particle may pick from.
	Palette int
	// Seed fixes the jitter sequence. Zero seeds from the clock.
	Seed uint64
}

const (
	defaultAnimationTime  = 600 * time.Millisecond
	defaultTimeVariance   = 300 * time.Millisecond
	defaultParticleCount  = 15
	defaultStartDistance  = 3.0
	defaultEndDistance    = 0.5
	defaultDistanceJitter = 0.6
	defaultSpin           = 100
	defaultAspect         = 2.0
	defaultStagger        = 10 * time.Millisecond
	defaultPalette        = 4
)

// DefaultConfig returns the stock burst tuning.
func DefaultConfig() Config {
	return Config{
		AnimationTime:  defaultAnimationTime,
		TimeVariance:   defaultTimeVariance,
		ParticleCount:  defaultParticleCount,
		Distances:      [2]float64{defaultStartDistance, defaultEndDistance},
		DistanceJitter: defaultDistanceJitter,
		Spin:           defaultSpin,
		Aspect:         defaultAspect,
		Stagger:        defaultStagger,
		Palette:        defaultPalette,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.AnimationTime <= 0 {
		c.AnimationTime = def.AnimationTime
	}
	if c.TimeVariance < 0 {
		c.TimeVariance = 0
	}
	if c.ParticleCount <= 0 {
		c.ParticleCount = def.ParticleCount
	}
	if c.Distances == ([2]float64{}) {
		c.Distances = def.Distances
	}
	if c.DistanceJitter < 0 {
		c.DistanceJitter = 0
	}
	if c.Spin < 0 {
		c.Spin = 0
	}
	if c.Aspect <= 0 {
		c.Aspect = def.Aspect
	}
	if c.Stagger < 0 {
		c.Stagger = 0
	}
	if c.Palette <= 0 {
		c.Palette = def.Palette
	}
	return c
}

// BubbleTime is how long the highlight merge takes. The nav bar keeps the
// glow style for this long after a burst activates.
func (c Config) BubbleTime() time.Duration {
	return 2*c.AnimationTime + c.TimeVariance
}
