// Package palette hands out visually distinct colours for strategy legs.
package palette

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"
)

// Color is an HSL colour. H is in degrees [0, 360), S and L in percent.
type Color struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// Config holds allocator tuning.
type Config struct {
	HueThreshold float64    // minimum circular hue distance between issued colours
	Saturation   [2]float64 // percent range
	Lightness    [2]float64 // percent range
	MaxAttempts  int
	Seed         int64 // 0 means time-based
}

// DefaultConfig returns the allocator defaults.
func DefaultConfig() Config {
	return Config{
		HueThreshold: 30,
		Saturation:   [2]float64{50, 90},
		Lightness:    [2]float64{30, 60},
		MaxAttempts:  100,
	}
}

// Allocator issues colours whose hues stay apart from every colour it has
// already issued. When no such hue can be found within MaxAttempts it returns
// the candidate farthest from its nearest neighbour.
type Allocator struct {
	cfg    Config
	mu     sync.Mutex
	rng    *rand.Rand
	issued []Color
}

// NewAllocator creates a new colour allocator.
func NewAllocator(cfg Config) *Allocator {
	def := DefaultConfig()
	if cfg.HueThreshold <= 0 {
		cfg.HueThreshold = def.HueThreshold
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.Saturation[1] <= cfg.Saturation[0] {
		cfg.Saturation = def.Saturation
	}
	if cfg.Lightness[1] <= cfg.Lightness[0] {
		cfg.Lightness = def.Lightness
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Allocator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Next returns the next colour.
func (a *Allocator) Next() Color {
	a.mu.Lock()
	defer a.mu.Unlock()

	var best Color
	bestDist := -1.0
	for attempt := 0; attempt < a.cfg.MaxAttempts; attempt++ {
		c := a.random()
		d := a.nearest(c.H)
		if d >= a.cfg.HueThreshold {
			best = c
			break
		}
		if d > bestDist {
			best, bestDist = c, d
		}
	}

	a.issued = append(a.issued, best)
	return best
}

// Issued returns a copy of every colour handed out so far.
func (a *Allocator) Issued() []Color {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Color, len(a.issued))
	copy(out, a.issued)
	return out
}

// Reset forgets all issued colours.
func (a *Allocator) Reset() {
	a.mu.Lock()
	a.issued = nil
	a.mu.Unlock()
}

func (a *Allocator) random() Color {
	s := a.cfg.Saturation
	l := a.cfg.Lightness
	return Color{
		H: float64(a.rng.Intn(360)),
		S: s[0] + a.rng.Float64()*(s[1]-s[0]),
		L: l[0] + a.rng.Float64()*(l[1]-l[0]),
	}
}

// nearest returns the circular hue distance to the closest issued colour.
func (a *Allocator) nearest(h float64) float64 {
	nearest := 360.0
	for _, c := range a.issued {
		nearest = math.Min(nearest, HueDistance(h, c.H))
	}
	return nearest
}

// HueDistance returns the distance between two hues around the colour wheel.
func HueDistance(h1, h2 float64) float64 {
	d := math.Mod(math.Abs(h1-h2), 360)
	return math.Min(d, 360-d)
}

// RGB converts the colour to 8-bit channels.
func (c Color) RGB() (r, g, b int) {
	l := c.L / 100
	amp := c.S * math.Min(l, 1-l) / 100
	f := func(n float64) int {
		k := math.Mod(n+c.H/30, 12)
		v := l - amp*math.Max(math.Min(math.Min(k-3, 9-k), 1), -1)
		return int(math.Round(255 * math.Min(math.Max(v, 0), 1)))
	}
	return f(0), f(8), f(4)
}

// Hex renders the colour as #rrggbb.
func (c Color) Hex() string {
	r, g, b := c.RGB()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
