package charts

import (
	"fmt"

	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/google/uuid"

	"salesdash/internal/logger"
	"salesdash/internal/models"
	"salesdash/internal/surface"
	"salesdash/internal/theme"
)

// CanvasHost finds canvas surfaces and can recreate an empty one.
type CanvasHost interface {
	SurfaceLookup
	ResetCanvas(id, message string) bool
}

// HighLevelRenderer draws declarative charts onto canvas surfaces as
// ECharts instances, keeping at most one live instance per surface.
type HighLevelRenderer struct {
	host      CanvasHost
	theme     *theme.Resolver
	instances *InstanceRegistry
	log       *logger.Logger
}

// NewHighLevelRenderer creates a renderer bound to a page's canvases.
func NewHighLevelRenderer(host CanvasHost, resolver *theme.Resolver, log *logger.Logger) *HighLevelRenderer {
	if log == nil {
		log = logger.NewNop()
	}
	return &HighLevelRenderer{
		host:      host,
		theme:     resolver,
		instances: NewInstanceRegistry(),
		log:       log.WithComponent("highlevel-renderer"),
	}
}

// Instances exposes the per-surface instance registry.
func (r *HighLevelRenderer) Instances() *InstanceRegistry {
	return r.instances
}

// DisposeAll releases every chart instance the renderer owns.
func (r *HighLevelRenderer) DisposeAll() {
	r.instances.DisposeAll()
}

// Render themes cfg and binds a new chart of the given kind to the canvas
// named surfaceID, disposing any previous instance first. An empty dataset
// leaves a placeholder and a fresh canvas; a missing surface is a no-op.
// Config errors wrap ErrInvalidConfig.
func (r *HighLevelRenderer) Render(ds models.Dataset, surfaceID string, kind Kind, cfg *Config) error {
	s, ok := r.host.Surface(surfaceID)
	if !ok {
		r.log.Warn("Canvas not found, nothing drawn", map[string]interface{}{"surface": surfaceID, "kind": kind.String()})
		return nil
	}
	if s.Kind() != surface.Canvas {
		return fmt.Errorf("%w: surface %s is not a canvas", ErrInvalidConfig, surfaceID)
	}

	if ds.Empty() {
		r.log.Warn("No data to draw", map[string]interface{}{"surface": surfaceID})
		r.instances.Dispose(surfaceID)
		r.host.ResetCanvas(surfaceID, NoDataMessage)
		return nil
	}

	if err := cfg.Validate(kind); err != nil {
		return err
	}
	colors := r.theme.Colors()
	MergeTheme(cfg, colors)

	inst, err := r.instances.Replace(surfaceID, func() (*Instance, error) {
		option := buildOption(kind, cfg)
		snippet, err := buildSnippet(surfaceID, cfg.Options.Plugins.Title.Text, s.Height(), option)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		return &Instance{ID: uuid.New(), SurfaceID: surfaceID, Kind: kind, Snippet: snippet, Option: option}, nil
	})
	if err != nil {
		// The old instance is already disposed; drop its markup too.
		s.SetMarkup("")
		return err
	}
	s.SetMarkup(inst.Snippet.HTML)

	r.log.Debug("Chart instance bound", map[string]interface{}{
		"surface":  surfaceID,
		"kind":     kind.String(),
		"instance": inst.ID.String(),
		"theme":    colors.Theme,
	})
	return nil
}

// buildOption translates a validated, themed config into an ECharts option.
func buildOption(kind Kind, cfg *Config) map[string]interface{} {
	o := cfg.Options
	option := map[string]interface{}{
		"title": map[string]interface{}{
			"show":      o.Plugins.Title.Display,
			"text":      o.Plugins.Title.Text,
			"left":      "center",
			"textStyle": opts.TextStyle{Color: o.Plugins.Title.Color, FontSize: 16},
		},
		"legend":  legendOption(o.Plugins.Legend),
		"tooltip": map[string]interface{}{"trigger": "item"},
	}

	switch kind {
	case Line, Bar:
		horizontal := kind == Bar && o.IndexAxis == "y"
		categoryAxis := map[string]interface{}{"type": "category", "data": cfg.Data.Labels}
		valueAxis := map[string]interface{}{"type": "value"}
		if kind == Line {
			categoryAxis["boundaryGap"] = false
		}
		if horizontal {
			styleAxis(valueAxis, o.Scales["x"])
			styleAxis(categoryAxis, o.Scales["y"])
			option["xAxis"], option["yAxis"] = valueAxis, categoryAxis
		} else {
			styleAxis(categoryAxis, o.Scales["x"])
			styleAxis(valueAxis, o.Scales["y"])
			option["xAxis"], option["yAxis"] = categoryAxis, valueAxis
		}
		option["grid"] = map[string]interface{}{"left": "3%", "right": "4%", "bottom": "8%", "containLabel": true}
		option["tooltip"] = map[string]interface{}{"trigger": "axis", "axisPointer": map[string]interface{}{"type": "shadow"}}
		option["series"] = cartesianSeries(kind, cfg)
	case Doughnut:
		option["series"] = []interface{}{doughnutSeries(cfg)}
	case Scatter:
		xAxis := map[string]interface{}{"type": "value", "scale": true}
		yAxis := map[string]interface{}{"type": "value", "scale": true}
		styleAxis(xAxis, o.Scales["x"])
		styleAxis(yAxis, o.Scales["y"])
		option["xAxis"], option["yAxis"] = xAxis, yAxis
		option["series"] = scatterSeries(cfg)
	}
	if o.Plugins.Tooltip.Currency && (kind == Line || kind == Bar) {
		option["tooltip"] = map[string]interface{}{"trigger": "axis", "formatter": "{b}<br/>{a}: ${c}"}
	}
	return option
}

func legendOption(l Legend) map[string]interface{} {
	legend := map[string]interface{}{
		"show":      !l.Hidden,
		"textStyle": opts.TextStyle{Color: l.Labels.Color},
	}
	switch l.Position {
	case "right":
		legend["orient"], legend["right"], legend["top"] = "vertical", 10, "middle"
	case "left":
		legend["orient"], legend["left"], legend["top"] = "vertical", 10, "middle"
	case "bottom":
		legend["bottom"] = 0
	default:
		legend["top"] = 30
	}
	return legend
}

func styleAxis(axis map[string]interface{}, s *Scale) {
	if s == nil {
		return
	}
	if s.Type == "linear" {
		axis["type"] = "value"
	}
	if axis["type"] == "value" {
		axis["scale"] = !s.BeginAtZero
	}
	if s.Position != "" {
		axis["position"] = s.Position
	}
	if s.Title != nil && s.Title.Display {
		axis["name"] = s.Title.Text
		axis["nameLocation"] = "middle"
		axis["nameGap"] = 30
		axis["nameTextStyle"] = opts.TextStyle{Color: s.Title.Color}
	}
	axis["splitLine"] = map[string]interface{}{
		"show":      true,
		"lineStyle": map[string]interface{}{"color": s.Grid.Color},
	}
	axis["axisLabel"] = map[string]interface{}{"color": s.Ticks.Color}
	axis["axisLine"] = map[string]interface{}{"lineStyle": map[string]interface{}{"color": s.Ticks.Color}}
}

func stacked(cfg *Config) bool {
	for _, s := range cfg.Options.Scales {
		if s != nil && s.Stacked {
			return true
		}
	}
	return false
}

func colorAt(colors []string, i int) string {
	if len(colors) == 0 {
		return ""
	}
	return colors[i%len(colors)]
}

func cartesianSeries(kind Kind, cfg *Config) []interface{} {
	stack := stacked(cfg)
	series := make([]interface{}, 0, len(cfg.Data.Datasets))
	for _, ds := range cfg.Data.Datasets {
		s := map[string]interface{}{"name": ds.Label}
		switch kind {
		case Line:
			data := make([]opts.LineData, len(ds.Data))
			for i, v := range ds.Data {
				data[i] = opts.LineData{Value: v}
			}
			s["type"] = types.ChartLine
			s["data"] = data
			s["smooth"] = ds.Tension > 0
			s["itemStyle"] = opts.ItemStyle{Color: colorAt(ds.BorderColor, 0)}
			s["lineStyle"] = map[string]interface{}{"color": colorAt(ds.BorderColor, 0), "width": 2}
			if ds.Fill {
				s["areaStyle"] = map[string]interface{}{"color": colorAt(ds.BackgroundColor, 0)}
			}
		case Bar:
			data := make([]opts.BarData, len(ds.Data))
			for i, v := range ds.Data {
				data[i] = opts.BarData{Value: v}
				if len(ds.BackgroundColor) > 1 {
					data[i].ItemStyle = &opts.ItemStyle{Color: colorAt(ds.BackgroundColor, i), BorderColor: colorAt(ds.BorderColor, i), BorderWidth: float32(ds.BorderWidth)}
				}
			}
			s["type"] = types.ChartBar
			s["data"] = data
			s["itemStyle"] = opts.ItemStyle{Color: colorAt(ds.BackgroundColor, 0), BorderColor: colorAt(ds.BorderColor, 0), BorderWidth: float32(ds.BorderWidth)}
			if stack {
				s["stack"] = "total"
			}
		}
		series = append(series, s)
	}
	return series
}

func doughnutSeries(cfg *Config) map[string]interface{} {
	ds := cfg.Data.Datasets[0]
	data := make([]opts.PieData, len(ds.Data))
	for i, v := range ds.Data {
		data[i] = opts.PieData{
			Name:  cfg.Data.Labels[i],
			Value: v,
			ItemStyle: &opts.ItemStyle{
				Color:       colorAt(ds.BackgroundColor, i),
				BorderColor: colorAt(ds.BorderColor, i),
				BorderWidth: float32(ds.BorderWidth),
			},
		}
	}
	return map[string]interface{}{
		"type":   types.ChartPie,
		"name":   ds.Label,
		"radius": []string{"50%", "70%"},
		"label":  map[string]interface{}{"color": cfg.Options.Plugins.Legend.Labels.Color},
		"data":   data,
	}
}

func scatterSeries(cfg *Config) []interface{} {
	pointLabel := cfg.Options.Plugins.Tooltip.PointLabel
	series := make([]interface{}, 0, len(cfg.Data.Datasets))
	for _, ds := range cfg.Data.Datasets {
		size := ds.PointRadius * 2
		if size == 0 {
			size = 6
		}
		data := make([]opts.ScatterData, len(ds.Points))
		for i, p := range ds.Points {
			data[i] = opts.ScatterData{Value: []float64{p.X, p.Y}}
			if pointLabel {
				data[i].Name = fmt.Sprintf("Ventas: %s, Ganancia: %s", FormatCurrency(p.X), FormatCurrency(p.Y))
			}
		}
		s := map[string]interface{}{
			"type":       types.ChartScatter,
			"name":       ds.Label,
			"symbolSize": size,
			"data":       data,
			"itemStyle":  opts.ItemStyle{Color: colorAt(ds.BackgroundColor, 0), BorderColor: colorAt(ds.BorderColor, 0), BorderWidth: float32(ds.BorderWidth)},
		}
		if pointLabel {
			s["tooltip"] = map[string]interface{}{"formatter": "{a}: {b}"}
		}
		series = append(series, s)
	}
	return series
}
