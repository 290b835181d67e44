package charts

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Margin is the space reserved around a low-level chart's plot area.
type Margin struct {
	Top    float64 `validate:"gte=0"`
	Right  float64 `validate:"gte=0"`
	Bottom float64 `validate:"gte=0"`
	Left   float64 `validate:"gte=0"`
}

// DefaultMargin is used when a descriptor leaves Margin zero.
var DefaultMargin = Margin{Top: 40, Right: 30, Bottom: 80, Left: 60}

// Style holds per-kind overrides. Zero values keep the renderer defaults.
type Style struct {
	BarPadding   float64 `validate:"gte=0,lt=1"`
	Opacity      float64 `validate:"gte=0,lte=1"`
	MinRadius    float64 `validate:"gte=0"`
	MaxRadius    float64 `validate:"gtefield=MinRadius"`
	TickRotation float64
}

// Descriptor tells the low-level renderer which chart to draw and which
// record fields feed which channel. Descriptors are defined once per call
// site and never mutated.
type Descriptor struct {
	Kind     Kind   `validate:"required"`
	XKey     string `validate:"required"`
	YKey     string `validate:"required"`
	ValueKey string
	Title    string
	Margin   Margin
	Style    Style
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func descriptorValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Validate checks the descriptor for programmer errors.
func (d Descriptor) Validate() error {
	if d.Kind.Backend() != LowLevel {
		return fmt.Errorf("%w: %s is not drawn by the low-level renderer", ErrInvalidDescriptor, d.Kind)
	}
	if err := descriptorValidator().Struct(d); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
	}
	if (d.Kind == Bubble || d.Kind == Heatmap) && d.ValueKey == "" {
		return fmt.Errorf("%w: %s needs a value key", ErrInvalidDescriptor, d.Kind)
	}
	return nil
}

// margin returns the descriptor's margins, falling back to DefaultMargin.
func (d Descriptor) margin() Margin {
	if d.Margin == (Margin{}) {
		return DefaultMargin
	}
	return d.Margin
}

func (d Descriptor) style() Style {
	s := d.Style
	if s.BarPadding == 0 {
		s.BarPadding = 0.1
	}
	if s.Opacity == 0 {
		s.Opacity = 0.7
	}
	if s.MinRadius == 0 && s.MaxRadius == 0 {
		s.MinRadius, s.MaxRadius = 5, 30
	}
	return s
}
