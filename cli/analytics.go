package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/DeafMist/noble-deeds/backend/internal/analytics"
	"github.com/DeafMist/noble-deeds/backend/internal/ui"
)

const barWidth = 30

func newAnalyticsCmd(a *app) *cobra.Command {
	var htmlPath string

	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Summarize impact across SDGs, places and contributors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			stats := analytics.Summarize(a.deeds)

			if htmlPath != "" {
				if err := writeHTML(htmlPath, stats); err != nil {
					return err
				}
				fmt.Fprintln(out, ui.FormatSuccess("Charts written to "+htmlPath))
				return nil
			}

			renderStats(out, stats)
			return nil
		},
	}
	cmd.Flags().StringVar(&htmlPath, "html", "", "write go-echarts bar charts to this HTML file instead")
	return cmd
}

func renderStats(out io.Writer, stats analytics.Stats) {
	fmt.Fprintln(out, ui.FormatTitle("Impact Analytics"))
	fmt.Fprintf(out, "  Total Deeds     %s\n", ui.StyleBold.Render(fmt.Sprint(stats.TotalDeeds)))
	fmt.Fprintf(out, "  Lives Impacted  %s\n", ui.StyleBold.Render(fmt.Sprint(stats.TotalImpact)))
	fmt.Fprintf(out, "  Avg. Impact     %s\n", ui.StyleBold.Render(fmt.Sprint(stats.AverageImpact)))
	fmt.Fprintf(out, "  Active SDGs     %s\n\n", ui.StyleBold.Render(fmt.Sprint(stats.ActiveSDGs)))

	ui.RenderBars(out, "SDG Impact Distribution", "deeds", ui.SDGRows(stats.SDGs), barWidth)
	ui.RenderBars(out, "Geographic Distribution", "deeds", ui.BucketRows(stats.Locations), barWidth)
	ui.RenderBars(out, "Gender", "contributors", ui.BucketRows(stats.Genders), barWidth)
	ui.RenderBars(out, "Age Groups", "contributors", ui.BucketRows(stats.Ages), barWidth)
}

func writeHTML(path string, stats analytics.Stats) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return ui.RenderAnalyticsPage(f, stats)
}

func printList(out io.Writer, title string, values []string) {
	fmt.Fprintln(out, ui.StyleHeader.Render(title))
	for _, v := range values {
		fmt.Fprintln(out, "  "+v)
	}
}
