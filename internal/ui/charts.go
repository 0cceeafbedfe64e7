package ui

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/DeafMist/noble-deeds/backend/internal/analytics"
)

const defaultBarColor = "#19486A"

// RenderAnalyticsPage writes an HTML page with one bar chart per distribution.
func RenderAnalyticsPage(w io.Writer, stats analytics.Stats) error {
	page := components.NewPage()
	page.AddCharts(
		barChart(
			"SDG Impact Distribution",
			fmt.Sprintf("%d deeds, %d active SDGs", stats.TotalDeeds, stats.ActiveSDGs),
			SDGRows(stats.SDGs),
		),
		barChart("Geographic Distribution", "deeds per country", BucketRows(stats.Locations)),
		barChart("Contributor Demographics - Gender", "contributors", BucketRows(stats.Genders)),
		barChart("Contributor Demographics - Age", "contributors", BucketRows(stats.Ages)),
	)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render analytics page: %w", err)
	}
	return nil
}

func barChart(title, subtitle string, rows []BarRow) *charts.Bar {
	labels := make([]string, 0, len(rows))
	data := make([]opts.BarData, 0, len(rows))
	for _, r := range rows {
		color := r.Color
		if color == "" {
			color = defaultBarColor
		}
		labels = append(labels, r.Label)
		data = append(data, opts.BarData{
			Name:      r.Label,
			Value:     r.Count,
			ItemStyle: &opts.ItemStyle{Color: color},
		})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
	)
	bar.SetXAxis(labels).AddSeries("Deeds", data)
	return bar
}
