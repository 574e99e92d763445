package ports

// ChartSpec carries the presentation hints the numeric core hands to a
// renderer alongside its data: titles, axis labels, the interpolation mode
// for heatmaps, and whether the plot must keep a square aspect ratio.
type ChartSpec struct {
	Title         string
	XLabel        string
	YLabel        string
	Interpolation string // heatmaps only, e.g. "none"
	SquareAspect  bool
	ShowLegend    bool
	YMin, YMax    float64 // honored when YMax > YMin
}

// LineSeries is one named curve. Dashed flags a visually distinct style,
// used to mark extrapolation beyond observed data.
type LineSeries struct {
	Name   string
	X      []float64
	Y      []float64
	Dashed bool
}

// MarkerLine is a vertical overlay marker, e.g. a purchase event under an
// alive-probability trace.
type MarkerLine struct {
	X     float64
	Label string
}

// HistogramSeries is one named bar group over shared integer bins.
type HistogramSeries struct {
	Name   string
	Counts []float64
}

// Renderer is the sink the diagnostic core hands its arrays and series to.
// The core never inspects rendering output; failures surface as errors.
type Renderer interface {
	// Heatmap renders a dense 2-D surface indexed [row][col].
	Heatmap(grid [][]float64, spec ChartSpec) error

	// Lines renders one or more curves with optional vertical markers.
	Lines(series []LineSeries, markers []MarkerLine, spec ChartSpec) error

	// Histogram renders grouped bars over shared bin labels.
	Histogram(series []HistogramSeries, binLabels []string, spec ChartSpec) error
}
