package render

import (
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	goqubo "github.com/ising-lab/goqubo"
)

// EnergyChart renders an HTML bar chart of per-sample energies. Broken
// samples (any unsatisfied constraint) are labelled in the subtitle count.
func EnergyChart(w io.Writer, title string, solutions []*goqubo.DecodedSolution) error {
	labels := make([]string, len(solutions))
	items := make([]opts.BarData, len(solutions))
	broken := 0
	for i, s := range solutions {
		labels[i] = strconv.Itoa(i)
		items[i] = opts.BarData{Value: s.Energy}
		if len(s.Constraints(true)) > 0 {
			broken++
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: strconv.Itoa(len(solutions)) + " samples, " + strconv.Itoa(broken) + " with broken constraints",
		}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1200px", Height: "600px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).
		AddSeries("energy", items).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}))

	return bar.Render(w)
}
