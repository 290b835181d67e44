package charts

import (
	"fmt"

	"salesdash/internal/theme"
)

// Config is the declarative description of a high-level chart: what to
// plot and how to present it.
type Config struct {
	Data    Data
	Options Options
}

// Data holds the category labels and the series plotted against them.
type Data struct {
	Labels   []string
	Datasets []Dataset
}

// Point is one (x, y) pair of a scatter series.
type Point struct {
	X float64
	Y float64
}

// Dataset is one plotted series. BackgroundColor and BorderColor hold one
// color for the whole series or one per data point.
type Dataset struct {
	Label           string
	Data            []float64
	Points          []Point
	BackgroundColor []string
	BorderColor     []string
	BorderWidth     float64
	Fill            bool
	Tension         float64
	PointRadius     float64
}

// Options controls presentation.
type Options struct {
	// IndexAxis "y" lays bars out horizontally.
	IndexAxis string
	Plugins   Plugins
	Scales    map[string]*Scale
}

type Plugins struct {
	Title   Title
	Legend  Legend
	Tooltip Tooltip
}

type Title struct {
	Display bool
	Text    string
	Color   string
}

type Legend struct {
	// Hidden turns the legend off; it is shown by default.
	Hidden   bool
	Position string
	Labels   LegendLabels
}

type LegendLabels struct {
	Color string
}

// Tooltip selects how hovered values are labelled. Currency formats values
// as money; PointLabel labels scatter points with both coordinates.
type Tooltip struct {
	Currency   bool
	PointLabel bool
}

// Scale is one declared axis.
type Scale struct {
	Type        string
	Position    string
	BeginAtZero bool
	Stacked     bool
	Title       *AxisTitle
	Grid        Grid
	Ticks       Ticks
}

type AxisTitle struct {
	Display bool
	Text    string
	Color   string
}

type Grid struct {
	Color string
}

type Ticks struct {
	Color string
}

// MergeTheme fills the theme-dependent fields of cfg from colors: title
// color, legend label color and, for every declared scale, grid, tick and
// axis-title colors. Nothing else in cfg is touched.
func MergeTheme(cfg *Config, colors theme.ColorSet) {
	cfg.Options.Plugins.Title.Color = colors.Text
	cfg.Options.Plugins.Legend.Labels.Color = colors.Text
	for name, scale := range cfg.Options.Scales {
		if scale == nil {
			scale = &Scale{}
			cfg.Options.Scales[name] = scale
		}
		scale.Grid.Color = colors.KPIBorder
		scale.Ticks.Color = colors.ChartText
		if scale.Title != nil {
			scale.Title.Color = colors.Text
		}
	}
}

// Validate rejects configs that cannot be drawn as kind.
func (c *Config) Validate(kind Kind) error {
	if c == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	switch c.Options.IndexAxis {
	case "", "x", "y":
	default:
		return fmt.Errorf("%w: index axis %q", ErrInvalidConfig, c.Options.IndexAxis)
	}
	if len(c.Data.Datasets) == 0 {
		return fmt.Errorf("%w: no datasets", ErrInvalidConfig)
	}

	switch kind {
	case Line, Bar, Doughnut:
		if kind == Doughnut && len(c.Data.Datasets) != 1 {
			return fmt.Errorf("%w: doughnut takes exactly one dataset, got %d", ErrInvalidConfig, len(c.Data.Datasets))
		}
		for i, ds := range c.Data.Datasets {
			if len(ds.Points) > 0 {
				return fmt.Errorf("%w: dataset %d of a %s chart has points", ErrInvalidConfig, i, kind)
			}
			if len(ds.Data) != len(c.Data.Labels) {
				return fmt.Errorf("%w: dataset %d has %d values for %d labels", ErrInvalidConfig, i, len(ds.Data), len(c.Data.Labels))
			}
		}
	case Scatter:
		for i, ds := range c.Data.Datasets {
			if len(ds.Data) > 0 {
				return fmt.Errorf("%w: scatter dataset %d needs points, not values", ErrInvalidConfig, i)
			}
		}
	case BarHorizontal, BarVertical, Bubble, Heatmap:
		return fmt.Errorf("%w: %s is not drawn by the high-level renderer", ErrInvalidConfig, kind)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidConfig, kind)
	}
	return nil
}
