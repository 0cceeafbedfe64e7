package ui

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/DeafMist/noble-deeds/backend/internal/analytics"
)

const (
	barFull  = "█"
	barEmpty = "░"
)

// Bar draws a horizontal bar of the given width filled to percent (0..100).
func Bar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	percent = math.Max(0, math.Min(100, percent))
	filled := int(math.Round(percent / 100 * float64(width)))
	return strings.Repeat(barFull, filled) + strings.Repeat(barEmpty, width-filled)
}

// BarRow is one labelled line of a bar chart.
type BarRow struct {
	Label string
	Count int
	Color string
}

// RenderBars writes rows as bars scaled to the largest count, the way the dashboard sizes them.
func RenderBars(w io.Writer, title, unit string, rows []BarRow, width int) {
	fmt.Fprintln(w, StyleHeader.Render(title))
	if len(rows) == 0 {
		fmt.Fprintln(w, "  "+FormatMuted("no data"))
		fmt.Fprintln(w)
		return
	}

	max, labelWidth := 0, 0
	for _, r := range rows {
		if r.Count > max {
			max = r.Count
		}
		if n := lipgloss.Width(r.Label); n > labelWidth {
			labelWidth = n
		}
	}

	for _, r := range rows {
		bar := Bar(analytics.Percent(r.Count, max), width)
		if r.Color != "" {
			bar = lipgloss.NewStyle().Foreground(lipgloss.Color(r.Color)).Render(bar)
		}
		pad := strings.Repeat(" ", labelWidth-lipgloss.Width(r.Label))
		fmt.Fprintf(w, "  %s%s  %s %s\n", r.Label, pad, bar, StyleBold.Render(fmt.Sprintf("%d %s", r.Count, unit)))
	}
	fmt.Fprintln(w)
}

// SDGRows converts the SDG distribution into colored bar rows.
func SDGRows(counts []analytics.SDGCount) []BarRow {
	rows := make([]BarRow, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, BarRow{Label: sdgLabel(c.ID, c.Title), Count: c.Count, Color: c.Color})
	}
	return rows
}

// BucketRows converts a location, gender or age distribution into bar rows.
func BucketRows(buckets []analytics.Bucket) []BarRow {
	rows := make([]BarRow, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, BarRow{Label: b.Key, Count: b.Count})
	}
	return rows
}

func sdgLabel(id int, title string) string {
	return fmt.Sprintf("SDG %d: %s", id, title)
}
