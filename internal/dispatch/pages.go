package dispatch

import (
	"salesdash/internal/charts"
	"salesdash/internal/models"
	"salesdash/internal/surface"
	"salesdash/internal/theme"
)

const (
	vectorWidth   = 600
	vectorHeight  = 400
	heatmapWidth  = 900
	canvasWidth   = 600
	canvasHeight  = 300
	profitGreen   = "rgba(46, 204, 113, 0.8)"
	salesLabel    = "Ventas ($)"
	accentOpacity = "33"
)

var (
	segmentFills   = []string{"rgba(52, 152, 219, 0.8)", "rgba(46, 204, 113, 0.8)", "rgba(230, 126, 34, 0.8)"}
	segmentBorders = []string{"rgba(52, 152, 219, 1)", "rgba(46, 204, 113, 1)", "rgba(230, 126, 34, 1)"}
)

func vector(id, title string) surface.Spec {
	return surface.Spec{ID: id, Kind: surface.Vector, Width: vectorWidth, Height: vectorHeight, Title: title}
}

func canvas(id, title string) surface.Spec {
	return surface.Spec{ID: id, Kind: surface.Canvas, Width: canvasWidth, Height: canvasHeight, Title: title}
}

func lowLevel(source string, desc charts.Descriptor, id string) Entry {
	return Entry{Source: source, SurfaceID: id, Kind: desc.Kind, Descriptor: desc}
}

func highLevel(source string, kind charts.Kind, id string, build ConfigBuilder) Entry {
	return Entry{Source: source, SurfaceID: id, Kind: kind, Build: build}
}

// DefaultRegistry returns the dashboard, customers, products, regions and
// time pages. palette colors the per-category scatter series.
func DefaultRegistry(palette Palette) *Registry {
	if palette == nil {
		palette = HashedPalette{}
	}
	r := NewRegistry()
	for _, p := range []*Page{
		dashboardPage(),
		customersPage(),
		productsPage(palette),
		regionsPage(),
		timePage(),
	} {
		if err := r.Register(p); err != nil {
			panic(err)
		}
	}
	return r
}

func dashboardPage() *Page {
	return &Page{
		Route: "/dashboard",
		Name:  "dashboard",
		Title: "Dashboard General",
		Notes: "Ventas por **región**, tendencia mensual, productos más vendidos y ventas por categoría y subcategoría.",
		Surfaces: []surface.Spec{
			vector("sales-by-region-chart", "Ventas por Región"),
			canvas("salesTrendCanvas", "Tendencia de Ventas Mensual"),
			vector("top-products-chart", "Top 10 Productos Más Vendidos"),
			vector("category-subcategory-chart", "Ventas por Categoría y Subcategoría"),
		},
		Entries: []Entry{
			lowLevel("/api/sales_by_region", charts.Descriptor{
				Kind: charts.BarVertical, XKey: "region", YKey: "total_sales", Title: "Ventas por Región",
			}, "sales-by-region-chart"),
			highLevel("/api/sales_trend", charts.Line, "salesTrendCanvas",
				areaLine("month", "total_sales", "Tendencia de Ventas Mensual")),
			lowLevel("/api/top_products", charts.Descriptor{
				Kind: charts.BarHorizontal, XKey: "product_name", YKey: "total_sales", Title: "Top 10 Productos Más Vendidos",
			}, "top-products-chart"),
			lowLevel("/api/category_subcategory_sales", charts.Descriptor{
				Kind: charts.Bubble, XKey: "category", YKey: "sub_category", ValueKey: "total_sales",
				Title: "Ventas por Categoría y Subcategoría",
			}, "category-subcategory-chart"),
		},
	}
}

func customersPage() *Page {
	return &Page{
		Route: "/clientes",
		Name:  "clientes",
		Title: "Análisis de Clientes",
		Notes: "Pedidos por segmento de cliente y los diez clientes con más ventas.",
		Surfaces: []surface.Spec{
			canvas("ordersBySegmentCanvas", "Pedidos por Segmento de Cliente"),
			canvas("topCustomersCanvas", "Top 10 Clientes por Ventas"),
		},
		Entries: []Entry{
			highLevel("/api/orders_by_segment", charts.Doughnut, "ordersBySegmentCanvas", ordersBySegment),
			highLevel("/api/top_customers_by_sales", charts.Bar, "topCustomersCanvas",
				horizontalRanking(func(r models.Record) string { return r.String("customer_name") }, "total_sales", "Top 10 Clientes por Ventas")),
		},
	}
}

func productsPage(palette Palette) *Page {
	return &Page{
		Route: "/productos",
		Name:  "productos",
		Title: "Análisis de Productos",
		Notes: "Ganancia frente a ventas por categoría. Cada punto es una categoría.",
		Surfaces: []surface.Spec{
			canvas("profitVsSalesCategoryCanvas", "Ganancia vs Ventas por Categoría"),
		},
		Entries: []Entry{
			highLevel("/api/profit_vs_sales_by_category", charts.Scatter, "profitVsSalesCategoryCanvas", profitVsSales(palette)),
		},
	}
}

func regionsPage() *Page {
	return &Page{
		Route: "/regiones",
		Name:  "regiones",
		Title: "Análisis Regional",
		Notes: "Ventas y ganancias apiladas por estado y las veinte ciudades con más ventas.",
		Surfaces: []surface.Spec{
			canvas("salesByStateCanvas", "Ventas y Ganancias por Estado"),
			canvas("topCitiesCanvas", "Top 20 Ciudades por Ventas"),
		},
		Entries: []Entry{
			highLevel("/api/sales_profit_by_state", charts.Bar, "salesByStateCanvas", salesProfitByState),
			highLevel("/api/top_cities_by_sales", charts.Bar, "topCitiesCanvas",
				horizontalRanking(func(r models.Record) string { return r.String("city") + ", " + r.String("state") }, "sales", "Top 20 Ciudades por Ventas")),
		},
	}
}

func timePage() *Page {
	heatmap := vector("sales-heatmap", "Ventas Mensuales (Heatmap)")
	heatmap.Width = heatmapWidth
	return &Page{
		Route: "/tiempo",
		Name:  "tiempo",
		Title: "Análisis Temporal",
		Notes: "Ventas mensuales, ventas por día de la semana y el mapa de calor por mes y día.",
		Surfaces: []surface.Spec{
			canvas("salesByYearMonthCanvas", "Ventas Mensuales a lo largo del Tiempo"),
			canvas("salesByDayOfWeekCanvas", "Ventas por Día de la Semana"),
			heatmap,
		},
		Entries: []Entry{
			highLevel("/api/sales_by_year_month", charts.Line, "salesByYearMonthCanvas",
				areaLine("year_month", "total_sales", "Ventas Mensuales a lo largo del Tiempo")),
			highLevel("/api/sales_by_day_of_week", charts.Bar, "salesByDayOfWeekCanvas", salesByDayOfWeek),
			lowLevel("/api/sales_heatmap", charts.Descriptor{
				Kind: charts.Heatmap, XKey: "day", YKey: "month", ValueKey: "value",
				Title:  "Ventas Mensuales (Heatmap)",
				Margin: charts.Margin{Top: 40, Right: 30, Bottom: 60, Left: 60},
			}, "sales-heatmap"),
		},
	}
}

func titled(text string) charts.Title {
	return charts.Title{Display: true, Text: text}
}

func areaLine(labelKey, valueKey, title string) ConfigBuilder {
	return func(ds models.Dataset, colors theme.ColorSet) *charts.Config {
		return &charts.Config{
			Data: charts.Data{
				Labels: ds.Strings(labelKey),
				Datasets: []charts.Dataset{{
					Label:           salesLabel,
					Data:            ds.Numbers(valueKey),
					BorderColor:     []string{colors.Accent},
					BackgroundColor: []string{colors.Accent + accentOpacity},
					Fill:            true,
					Tension:         0.1,
				}},
			},
			Options: charts.Options{
				Plugins: charts.Plugins{Title: titled(title), Tooltip: charts.Tooltip{Currency: true}},
			},
		}
	}
}

func ordersBySegment(ds models.Dataset, _ theme.ColorSet) *charts.Config {
	return &charts.Config{
		Data: charts.Data{
			Labels: ds.Strings("segment"),
			Datasets: []charts.Dataset{{
				Label:           "Cantidad de Pedidos",
				Data:            ds.Numbers("order_count"),
				BackgroundColor: segmentFills,
				BorderColor:     segmentBorders,
				BorderWidth:     1,
			}},
		},
		Options: charts.Options{
			Plugins: charts.Plugins{
				Title:  titled("Pedidos por Segmento de Cliente"),
				Legend: charts.Legend{Position: "right"},
			},
		},
	}
}

func horizontalRanking(label func(models.Record) string, valueKey, title string) ConfigBuilder {
	return func(ds models.Dataset, colors theme.ColorSet) *charts.Config {
		labels := make([]string, len(ds))
		for i, rec := range ds {
			labels[i] = label(rec)
		}
		return &charts.Config{
			Data: charts.Data{
				Labels: labels,
				Datasets: []charts.Dataset{{
					Label:           salesLabel,
					Data:            ds.Numbers(valueKey),
					BackgroundColor: []string{colors.Accent},
					BorderColor:     []string{colors.Accent},
					BorderWidth:     1,
				}},
			},
			Options: charts.Options{
				IndexAxis: "y",
				Plugins: charts.Plugins{
					Title:   titled(title),
					Legend:  charts.Legend{Hidden: true},
					Tooltip: charts.Tooltip{Currency: true},
				},
				Scales: map[string]*charts.Scale{"x": {BeginAtZero: true}},
			},
		}
	}
}

func profitVsSales(palette Palette) ConfigBuilder {
	return func(ds models.Dataset, _ theme.ColorSet) *charts.Config {
		series := make([]charts.Dataset, 0, len(ds))
		for _, rec := range ds {
			category := rec.String("category")
			fill, border := palette.Colors(category)
			series = append(series, charts.Dataset{
				Label:           category,
				Points:          []charts.Point{{X: rec.Number("sales"), Y: rec.Number("profit")}},
				BackgroundColor: []string{fill},
				BorderColor:     []string{border},
				PointRadius:     8,
			})
		}
		return &charts.Config{
			Data: charts.Data{Datasets: series},
			Options: charts.Options{
				Plugins: charts.Plugins{
					Title:   titled("Ganancia vs Ventas por Categoría"),
					Tooltip: charts.Tooltip{PointLabel: true},
				},
				Scales: map[string]*charts.Scale{
					"x": {Type: "linear", Position: "bottom", Title: &charts.AxisTitle{Display: true, Text: "Ventas ($)"}},
					"y": {Type: "linear", Position: "left", Title: &charts.AxisTitle{Display: true, Text: "Ganancia ($)"}},
				},
			},
		}
	}
}

func salesProfitByState(ds models.Dataset, colors theme.ColorSet) *charts.Config {
	return &charts.Config{
		Data: charts.Data{
			Labels: ds.Strings("state"),
			Datasets: []charts.Dataset{
				{Label: salesLabel, Data: ds.Numbers("sales"), BackgroundColor: []string{colors.Accent}},
				{Label: "Ganancia ($)", Data: ds.Numbers("profit"), BackgroundColor: []string{profitGreen}},
			},
		},
		Options: charts.Options{
			Plugins: charts.Plugins{
				Title:   titled("Ventas y Ganancias por Estado"),
				Tooltip: charts.Tooltip{Currency: true},
			},
			Scales: map[string]*charts.Scale{
				"x": {Stacked: true},
				"y": {Stacked: true, BeginAtZero: true},
			},
		},
	}
}

func salesByDayOfWeek(ds models.Dataset, colors theme.ColorSet) *charts.Config {
	return &charts.Config{
		Data: charts.Data{
			Labels: ds.Strings("day"),
			Datasets: []charts.Dataset{{
				Label:           salesLabel,
				Data:            ds.Numbers("total_sales"),
				BackgroundColor: []string{colors.Accent},
			}},
		},
		Options: charts.Options{
			Plugins: charts.Plugins{
				Title:   titled("Ventas por Día de la Semana"),
				Legend:  charts.Legend{Hidden: true},
				Tooltip: charts.Tooltip{Currency: true},
			},
			Scales: map[string]*charts.Scale{"y": {BeginAtZero: true}},
		},
	}
}
