// Package chart renders payoff curves as text.
package chart

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/fatih/color"

	"options-payoff/internal/models"
	"options-payoff/internal/payoff"
)

// Glyphs used on the plot.
const (
	GlyphTotal     = '*'
	GlyphLeg       = '.'
	GlyphZero      = '-'
	GlyphBreakEven = 'o'
	GlyphStrike    = '^'
)

// Series is one curve on the chart.
type Series struct {
	Name   string
	Points []payoff.Point
	// Color is a #rrggbb hex string; empty means default terminal colour.
	Color string
	Glyph rune
}

// Options controls rendering.
type Options struct {
	Width      int
	Height     int
	Strikes    []float64
	BreakEvens []float64
	Color      bool
}

// DefaultOptions returns an 72x20 plot without colour.
func DefaultOptions() Options {
	return Options{Width: 72, Height: 20}
}

// Build evaluates the portfolio at the prices and returns one series per
// valid leg in legs followed by the combined curve of the whole portfolio.
// Pass nil legs to draw the combined curve alone.
func Build(prices []float64, portfolio, legs []models.Position) []Series {
	var out []Series
	for _, p := range legs {
		if !p.Valid() {
			continue
		}
		name := p.Label
		if name == "" {
			name = p.String()
		}
		out = append(out, Series{
			Name:   name,
			Points: payoff.LegCurve(prices, p),
			Color:  p.Color,
			Glyph:  GlyphLeg,
		})
	}
	return append(out, Series{
		Name:   "Total",
		Points: payoff.Curve(prices, portfolio),
		Glyph:  GlyphTotal,
	})
}

// Render draws the series. Later series are drawn over earlier ones, so the
// combined curve should come last.
func Render(w io.Writer, series []Series, opts Options) error {
	if opts.Width < 10 {
		opts.Width = 10
	}
	if opts.Height < 5 {
		opts.Height = 5
	}

	xmin, xmax, ok := xRange(series)
	if !ok {
		_, err := fmt.Fprintln(w, "(nothing to plot)")
		return err
	}
	ymin, ymax := yRange(series)

	g := newGrid(opts, xmin, xmax, ymin, ymax)
	zero := g.row(0)
	for c := 0; c < g.width; c++ {
		g.set(zero, c, string(GlyphZero))
	}
	for _, s := range series {
		glyph := string(s.Glyph)
		if opts.Color {
			glyph = colorize(s, glyph)
		}
		for c := 0; c < g.width; c++ {
			v := valueAt(s.Points, g.price(c))
			g.set(g.row(v), c, glyph)
		}
	}
	for _, be := range opts.BreakEvens {
		if be < xmin || be > xmax {
			continue
		}
		mark := string(GlyphBreakEven)
		if opts.Color {
			mark = color.New(color.FgYellow, color.Bold).Sprint(mark)
		}
		g.set(zero, g.col(be), mark)
	}

	return g.write(w, opts.Strikes)
}

type grid struct {
	width, height int
	xmin, xmax    float64
	ymin, ymax    float64
	cells         [][]string
}

func newGrid(opts Options, xmin, xmax, ymin, ymax float64) *grid {
	cells := make([][]string, opts.Height)
	for r := range cells {
		cells[r] = make([]string, opts.Width)
		for c := range cells[r] {
			cells[r][c] = " "
		}
	}
	return &grid{
		width:  opts.Width,
		height: opts.Height,
		xmin:   xmin,
		xmax:   xmax,
		ymin:   ymin,
		ymax:   ymax,
		cells:  cells,
	}
}

func (g *grid) price(c int) float64 {
	return g.xmin + float64(c)*(g.xmax-g.xmin)/float64(g.width-1)
}

func (g *grid) col(x float64) int {
	c := int(math.Round((x - g.xmin) / (g.xmax - g.xmin) * float64(g.width-1)))
	return clamp(c, 0, g.width-1)
}

func (g *grid) row(y float64) int {
	r := int(math.Round((g.ymax - y) / (g.ymax - g.ymin) * float64(g.height-1)))
	return clamp(r, 0, g.height-1)
}

func (g *grid) set(r, c int, s string) {
	g.cells[r][c] = s
}

func (g *grid) write(w io.Writer, strikes []float64) error {
	labels := make([]string, g.height)
	labels[0] = formatValue(g.ymax)
	labels[g.height-1] = formatValue(g.ymin)
	labels[g.row(0)] = formatValue(0)

	margin := 0
	for _, l := range labels {
		if len(l) > margin {
			margin = len(l)
		}
	}

	var b strings.Builder
	for r := 0; r < g.height; r++ {
		fmt.Fprintf(&b, "%*s |%s\n", margin, labels[r], strings.Join(g.cells[r], ""))
	}

	ticks := []byte(strings.Repeat(" ", g.width))
	for _, k := range strikes {
		if k < g.xmin || k > g.xmax {
			continue
		}
		ticks[g.col(k)] = byte(GlyphStrike)
	}
	fmt.Fprintf(&b, "%*s +%s\n", margin, "", string(ticks))
	fmt.Fprintf(&b, "%*s  %s\n", margin, "", g.axisLabels(strikes))

	_, err := io.WriteString(w, b.String())
	return err
}

// axisLabels places price labels under the x axis, skipping any that would
// overlap a label already placed.
func (g *grid) axisLabels(strikes []float64) string {
	line := []byte(strings.Repeat(" ", g.width+8))
	taken := make([]bool, len(line))

	place := func(x float64) {
		text := formatPrice(x)
		start := g.col(x) - len(text)/2
		if start < 0 {
			start = 0
		}
		end := start + len(text)
		if end > len(line) {
			return
		}
		for i := max(0, start-1); i < min(len(line), end+1); i++ {
			if taken[i] {
				return
			}
		}
		for i := start; i < end; i++ {
			line[i] = text[i-start]
			taken[i] = true
		}
	}

	place(g.xmin)
	for _, k := range strikes {
		if k >= g.xmin && k <= g.xmax {
			place(k)
		}
	}
	place(g.xmax)
	return strings.TrimRight(string(line), " ")
}

func xRange(series []Series) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, p := range s.Points {
			lo = math.Min(lo, p.Price)
			hi = math.Max(hi, p.Price)
		}
	}
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return 0, 0, false
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi, true
}

func yRange(series []Series) (lo, hi float64) {
	for _, s := range series {
		for _, p := range s.Points {
			lo = math.Min(lo, p.Value)
			hi = math.Max(hi, p.Value)
		}
	}
	if hi == lo {
		lo, hi = lo-1, hi+1
	}
	return lo, hi
}

// valueAt interpolates linearly between the samples around x. Points must be
// sorted by price.
func valueAt(points []payoff.Point, x float64) float64 {
	if len(points) == 0 {
		return 0
	}
	i := sort.Search(len(points), func(i int) bool { return points[i].Price >= x })
	switch {
	case i == 0:
		return points[0].Value
	case i == len(points):
		return points[len(points)-1].Value
	}
	p1, p2 := points[i-1], points[i]
	if p2.Price == p1.Price {
		return p2.Value
	}
	t := (x - p1.Price) / (p2.Price - p1.Price)
	return p1.Value + t*(p2.Value-p1.Value)
}

func colorize(s Series, glyph string) string {
	if r, g, b, ok := ParseHex(s.Color); ok {
		return color.RGB(r, g, b).Sprint(glyph)
	}
	if s.Glyph == GlyphTotal {
		return color.New(color.FgCyan, color.Bold).Sprint(glyph)
	}
	return glyph
}

// ParseHex decodes a #rrggbb colour.
func ParseHex(hex string) (r, g, b int, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return 0, 0, 0, false
	}
	return r, g, b, true
}

func formatValue(v float64) string {
	if math.Abs(v) < 0.005 {
		v = 0
	}
	return fmt.Sprintf("%.2f", v)
}

func formatPrice(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
