package ebitenfx

import (
	"math"
	"math/rand"

	"github.com/milk9111/nodefx/system"
)

// Shaker turns shake impulses into a decaying camera offset. A new
// impulse replaces the current one; an issued shake always runs its full
// duration. It implements the scheduler's CameraShaker.
type Shaker struct {
	left  int
	total int
	freq  float64
	amp   float64
	phase float64
	t     int
}

var _ system.CameraShaker = (*Shaker)(nil)

func NewShaker() *Shaker {
	return &Shaker{}
}

// Shake starts a shake with the given oscillation frequency (Hz),
// amplitude (world units) and duration (seconds).
func (s *Shaker) Shake(frequency, amplitude, duration float64) {
	frames := int(math.Round(duration * 60))
	if frames <= 0 || amplitude <= 0 {
		return
	}
	s.left = frames
	s.total = frames
	s.freq = frequency
	s.amp = amplitude
	s.phase = rand.Float64() * 2 * math.Pi
	s.t = 0
}

// Update advances the shake by one frame. Call once per game update.
func (s *Shaker) Update() {
	if s.left == 0 {
		return
	}
	s.left--
	s.t++
}

// Active reports whether a shake is still running.
func (s *Shaker) Active() bool {
	return s.left > 0
}

// Offset returns the current camera displacement. Zero when no shake is
// running. The amplitude decays linearly over the shake's duration.
func (s *Shaker) Offset() (x, y float64) {
	if s.left == 0 {
		return 0, 0
	}
	decay := float64(s.left) / float64(s.total)
	a := s.amp * decay
	angle := 2*math.Pi*s.freq*float64(s.t)/60 + s.phase
	return a * math.Sin(angle), a * math.Cos(1.7*angle)
}
