package charts

import (
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/wcharczuk/go-chart/v2"
)

// BandScale maps categories to evenly spaced bands of equal width.
type BandScale struct {
	domain    []string
	index     map[string]int
	positions []float64
	step      float64
	bandwidth float64
}

// NewBandScale lays out domain over [r0, r1]. A reversed range (r0 > r1)
// puts the first category at r0. Inner and outer padding are fractions of
// the step; round snaps step and band width to whole pixels.
func NewBandScale(domain []string, r0, r1, paddingInner, paddingOuter float64, round bool) *BandScale {
	b := &BandScale{domain: domain, index: make(map[string]int, len(domain))}
	for i, d := range domain {
		if _, dup := b.index[d]; !dup {
			b.index[d] = i
		}
	}

	n := float64(len(domain))
	reverse := r1 < r0
	start, stop := r0, r1
	if reverse {
		start, stop = r1, r0
	}
	b.step = (stop - start) / math.Max(1, n-paddingInner+paddingOuter*2)
	if round {
		b.step = math.Floor(b.step)
	}
	start += (stop - start - b.step*(n-paddingInner)) * 0.5
	b.bandwidth = b.step * (1 - paddingInner)
	if round {
		start = math.Round(start)
		b.bandwidth = math.Round(b.bandwidth)
	}

	b.positions = make([]float64, len(domain))
	for i := range domain {
		b.positions[i] = start + b.step*float64(i)
	}
	if reverse {
		for i, j := 0, len(b.positions)-1; i < j; i, j = i+1, j-1 {
			b.positions[i], b.positions[j] = b.positions[j], b.positions[i]
		}
	}
	return b
}

// NewPointScale is a band scale with zero-width bands.
func NewPointScale(domain []string, r0, r1, padding float64) *BandScale {
	return NewBandScale(domain, r0, r1, 1, padding, false)
}

// Scale returns the start of v's band.
func (b *BandScale) Scale(v string) (float64, bool) {
	i, ok := b.index[v]
	if !ok {
		return 0, false
	}
	return b.positions[i], true
}

// Center returns the middle of v's band.
func (b *BandScale) Center(v string) (float64, bool) {
	p, ok := b.Scale(v)
	return p + b.bandwidth/2, ok
}

func (b *BandScale) Domain() []string   { return b.domain }
func (b *BandScale) Bandwidth() float64 { return b.bandwidth }
func (b *BandScale) Step() float64      { return b.step }

// LinearScale maps a continuous domain onto a pixel range. The domain is
// held in a go-chart ContinuousRange so exported axes share it.
type LinearScale struct {
	Range  *chart.ContinuousRange
	r0, r1 float64
	round  bool
}

// NewLinearScale maps [d0, d1] onto [r0, r1].
func NewLinearScale(d0, d1, r0, r1 float64, round bool) *LinearScale {
	return &LinearScale{
		Range: &chart.ContinuousRange{Min: d0, Max: d1, Domain: int(math.Abs(r1 - r0))},
		r0:    r0,
		r1:    r1,
		round: round,
	}
}

// Domain returns the lower and upper domain bounds.
func (l *LinearScale) Domain() (float64, float64) {
	return l.Range.GetMin(), l.Range.GetMax()
}

// Scale maps v into the range. A degenerate domain maps everything to r0.
func (l *LinearScale) Scale(v float64) float64 {
	delta := l.Range.GetDelta()
	if delta == 0 {
		return l.r0
	}
	out := l.r0 + (v-l.Range.GetMin())/delta*(l.r1-l.r0)
	if l.round {
		out = math.Round(out)
	}
	return out
}

// Ticks returns roughly count round values inside the domain.
func (l *LinearScale) Ticks(count int) []float64 {
	return NiceTicks(l.Range.GetMin(), l.Range.GetMax(), count)
}

// SqrtScale maps [0, max] onto [r0, r1] through a square root, so the area
// of a circle sized by it is proportional to the value.
type SqrtScale struct {
	max    float64
	r0, r1 float64
}

func NewSqrtScale(max, r0, r1 float64) *SqrtScale {
	return &SqrtScale{max: max, r0: r0, r1: r1}
}

func (s *SqrtScale) Scale(v float64) float64 {
	if s.max <= 0 {
		return (s.r0 + s.r1) / 2
	}
	return s.r0 + math.Sqrt(math.Max(0, v))/math.Sqrt(s.max)*(s.r1-s.r0)
}

// Max returns the upper domain bound.
func (s *SqrtScale) Max() float64 { return s.max }

// Category10 is the ten-color qualitative palette used for categories.
var Category10 = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// OrdinalScale assigns palette colors to categories in first-seen order.
type OrdinalScale struct {
	palette  []string
	assigned map[string]string
}

func NewOrdinalScale(domain []string, palette []string) *OrdinalScale {
	o := &OrdinalScale{palette: palette, assigned: make(map[string]string, len(domain))}
	for _, d := range domain {
		o.Scale(d)
	}
	return o
}

func (o *OrdinalScale) Scale(v string) string {
	if c, ok := o.assigned[v]; ok {
		return c
	}
	c := o.palette[len(o.assigned)%len(o.palette)]
	o.assigned[v] = c
	return c
}

var viridisStops = mustHexes(
	"#440154", "#482878", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
)

func mustHexes(hexes ...string) []colorful.Color {
	out := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(err)
		}
		out[i] = c
	}
	return out
}

// SequentialScale maps [0, max] onto the viridis colormap.
type SequentialScale struct {
	max float64
}

func NewSequentialScale(max float64) *SequentialScale {
	return &SequentialScale{max: max}
}

func (s *SequentialScale) Scale(v float64) string {
	t := 0.0
	if s.max > 0 {
		t = math.Max(0, math.Min(1, v/s.max))
	}
	return Viridis(t)
}

// Viridis interpolates the colormap at t in [0, 1].
func Viridis(t float64) string {
	seg := t * float64(len(viridisStops)-1)
	i := int(math.Floor(seg))
	if i >= len(viridisStops)-1 {
		return viridisStops[len(viridisStops)-1].Hex()
	}
	frac := seg - float64(i)
	if frac == 0 {
		return viridisStops[i].Hex()
	}
	return viridisStops[i].BlendLab(viridisStops[i+1], frac).Clamped().Hex()
}

// NiceTicks returns evenly spaced round values covering [start, stop].
func NiceTicks(start, stop float64, count int) []float64 {
	if count <= 0 || start == stop {
		return []float64{start}
	}
	inc := tickIncrement(start, stop, count)
	if inc == 0 {
		return nil
	}
	var out []float64
	for i := math.Ceil(start / inc); i*inc <= stop+inc*1e-9; i++ {
		out = append(out, math.Round(i*inc*1e6)/1e6)
	}
	return out
}

func tickIncrement(start, stop float64, count int) float64 {
	step := (stop - start) / float64(count)
	power := math.Floor(math.Log10(step))
	err := step / math.Pow(10, power)
	factor := 1.0
	switch {
	case err >= math.Sqrt(50):
		factor = 10
	case err >= math.Sqrt(10):
		factor = 5
	case err >= math.Sqrt(2):
		factor = 2
	}
	return factor * math.Pow(10, power)
}

var siPrefixes = []struct {
	exp    float64
	symbol string
}{
	{12, "T"}, {9, "G"}, {6, "M"}, {3, "k"}, {0, ""}, {-3, "m"},
}

// FormatSI renders v with an SI prefix: 1500 -> "1.5k", 200000 -> "200k".
func FormatSI(v float64) string {
	if v == 0 {
		return "0"
	}
	abs := math.Abs(v)
	for _, p := range siPrefixes {
		if abs >= math.Pow(10, p.exp) {
			return trimFloat(v/math.Pow(10, p.exp)) + p.symbol
		}
	}
	return trimFloat(v)
}

func trimFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
