// Package echarts renders the diagnostic core's numeric output to
// interactive HTML charts with go-echarts. It is a pure sink: it never feeds
// anything back into the numeric transforms.
package echarts

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/google/uuid"

	"clvplot/internal/errors"
	"clvplot/ports"
)

// Config holds chart presentation defaults.
type Config struct {
	OutputDir string
	Width     string // e.g. "900px"
	Height    string // e.g. "500px"
	Theme     string
}

// DefaultConfig returns the presentation defaults.
func DefaultConfig(outputDir string) Config {
	return Config{
		OutputDir: outputDir,
		Width:     "900px",
		Height:    "500px",
		Theme:     "light",
	}
}

// ChartArtifact records one rendered chart file.
type ChartArtifact struct {
	ID    uuid.UUID
	Title string
	Path  string
}

// Renderer implements ports.Renderer by writing one HTML file per chart
// under the configured output directory.
type Renderer struct {
	cfg       Config
	artifacts []ChartArtifact
}

// NewRenderer creates a renderer writing into cfg.OutputDir.
func NewRenderer(cfg Config) *Renderer {
	return &Renderer{cfg: cfg}
}

// Artifacts lists the charts rendered so far.
func (r *Renderer) Artifacts() []ChartArtifact {
	return r.artifacts
}

// Heatmap renders a dense surface as a category-axis heatmap. Square aspect
// is honored by forcing equal pixel width and height.
func (r *Renderer) Heatmap(grid [][]float64, spec ports.ChartSpec) error {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return errors.RenderFailed(spec.Title, fmt.Errorf("empty grid"))
	}
	rows, cols := len(grid), len(grid[0])

	hm := charts.NewHeatMap()
	width, height := r.cfg.Width, r.cfg.Height
	if spec.SquareAspect {
		height = width
	}

	min, max := grid[0][0], grid[0][0]
	data := make([]opts.HeatMapData, 0, rows*cols)
	for rec := 0; rec < rows; rec++ {
		for f := 0; f < cols; f++ {
			v := grid[rec][f]
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
			data = append(data, opts.HeatMapData{Value: [3]interface{}{f, rec, v}})
		}
	}

	xLabels := make([]string, cols)
	for f := range xLabels {
		xLabels[f] = strconv.Itoa(f)
	}
	yLabels := make([]interface{}, rows)
	for rec := range yLabels {
		yLabels[rec] = strconv.Itoa(rec)
	}

	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  width,
			Height: height,
			Theme:  r.cfg.Theme,
		}),
		charts.WithTitleOpts(opts.Title{Title: spec.Title}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: spec.XLabel}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Name: spec.YLabel, Data: yLabels}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Min: float32(min),
			Max: float32(max),
		}),
	)
	hm.SetXAxis(xLabels).AddSeries("", data)

	return r.write(hm, spec.Title)
}

// Lines renders one or more curves; dashed series flag extrapolation and
// markers become vertical overlay lines.
func (r *Renderer) Lines(series []ports.LineSeries, markers []ports.MarkerLine, spec ports.ChartSpec) error {
	if len(series) == 0 {
		return errors.RenderFailed(spec.Title, fmt.Errorf("no data series provided"))
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  r.cfg.Width,
			Height: r.cfg.Height,
			Theme:  r.cfg.Theme,
		}),
		charts.WithTitleOpts(opts.Title{Title: spec.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(spec.ShowLegend)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: spec.XLabel}),
		r.yAxis(spec),
	)

	// Mark lines belong to one series only; attaching them per-chart would
	// duplicate them across every series.
	markerOpts := make([]charts.SeriesOpts, 0, len(markers))
	for _, m := range markers {
		markerOpts = append(markerOpts, charts.WithMarkLineNameXAxisItemOpts(
			opts.MarkLineNameXAxisItem{Name: m.Label, XAxis: m.X},
		))
	}

	for i, s := range series {
		data := make([]opts.LineData, len(s.Y))
		for j := range s.Y {
			data[j] = opts.LineData{Value: []interface{}{s.X[j], s.Y[j]}}
		}
		seriesOpts := []charts.SeriesOpts{
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}),
		}
		if s.Dashed {
			seriesOpts = append(seriesOpts, charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed"}))
		}
		if i == 0 {
			seriesOpts = append(seriesOpts, markerOpts...)
		}
		line.AddSeries(s.Name, data, seriesOpts...)
	}

	return r.write(line, spec.Title)
}

// Histogram renders grouped bars over shared bin labels.
func (r *Renderer) Histogram(series []ports.HistogramSeries, binLabels []string, spec ports.ChartSpec) error {
	if len(series) == 0 {
		return errors.RenderFailed(spec.Title, fmt.Errorf("no histogram series provided"))
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  r.cfg.Width,
			Height: r.cfg.Height,
			Theme:  r.cfg.Theme,
		}),
		charts.WithTitleOpts(opts.Title{Title: spec.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(spec.ShowLegend)}),
		charts.WithXAxisOpts(opts.XAxis{Name: spec.XLabel}),
		charts.WithYAxisOpts(opts.YAxis{Name: spec.YLabel}),
	)

	bar.SetXAxis(binLabels)
	for _, s := range series {
		data := make([]opts.BarData, len(s.Counts))
		for i, c := range s.Counts {
			data[i] = opts.BarData{Value: c}
		}
		bar.AddSeries(s.Name, data)
	}

	return r.write(bar, spec.Title)
}

func (r *Renderer) yAxis(spec ports.ChartSpec) charts.GlobalOpts {
	axis := opts.YAxis{Type: "value", Name: spec.YLabel}
	if spec.YMax > spec.YMin {
		axis.Min = spec.YMin
		axis.Max = spec.YMax
	}
	return charts.WithYAxisOpts(axis)
}

type renderable interface {
	Render(w io.Writer) error
}

func (r *Renderer) write(chart renderable, title string) error {
	if err := os.MkdirAll(r.cfg.OutputDir, 0o755); err != nil {
		return errors.RenderFailed(title, err)
	}

	id := uuid.New()
	path := filepath.Join(r.cfg.OutputDir, fmt.Sprintf("%s-%s.html", slugify(title), id.String()[:8]))

	f, err := os.Create(path)
	if err != nil {
		return errors.RenderFailed(title, err)
	}
	defer f.Close()

	if err := chart.Render(f); err != nil {
		return errors.RenderFailed(title, err)
	}

	r.artifacts = append(r.artifacts, ChartArtifact{ID: id, Title: title, Path: path})
	return nil
}

func slugify(title string) string {
	slug := strings.ToLower(title)
	slug = strings.Map(func(c rune) rune {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			return c
		case c == ' ' || c == '-' || c == '_':
			return '-'
		default:
			return -1
		}
	}, slug)
	slug = strings.Trim(slug, "-")
	if len(slug) > 48 {
		slug = slug[:48]
	}
	if slug == "" {
		slug = "chart"
	}
	return slug
}
