package charts

import "fmt"

// Kind is the closed set of chart kinds the renderers know how to draw.
type Kind int

const (
	BarHorizontal Kind = iota + 1
	BarVertical
	Bubble
	Heatmap
	Line
	Doughnut
	Scatter
	// Bar is the declarative bar chart; IndexAxis selects its orientation.
	Bar
)

var kindNames = map[Kind]string{
	BarHorizontal: "bar-horizontal",
	BarVertical:   "bar-vertical",
	Bubble:        "bubble",
	Heatmap:       "heatmap",
	Line:          "line",
	Doughnut:      "doughnut",
	Scatter:       "scatter",
	Bar:           "bar",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a kind name to its Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown chart kind %q", name)
}

// Backend names the renderer that draws a kind.
type Backend int

const (
	LowLevel Backend = iota + 1
	HighLevel
)

func (b Backend) String() string {
	switch b {
	case LowLevel:
		return "low-level"
	case HighLevel:
		return "high-level"
	default:
		return "unknown"
	}
}

// Backend returns the renderer responsible for k.
func (k Kind) Backend() Backend {
	switch k {
	case BarHorizontal, BarVertical, Bubble, Heatmap:
		return LowLevel
	case Line, Doughnut, Scatter, Bar:
		return HighLevel
	default:
		return 0
	}
}
