package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DeafMist/noble-deeds/backend/internal/sdg"
	"github.com/DeafMist/noble-deeds/backend/internal/ui"
)

func newSDGsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sdgs",
		Short: "List the 17 Sustainable Development Goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.FormatTitle("Sustainable Development Goals"))
			for _, tag := range sdg.Catalog() {
				fmt.Fprintf(out, "  %s %2d  %s %s\n", ui.Swatch(tag.Color), tag.ID, tag.Title, ui.FormatMuted(tag.Color))
			}
			return nil
		},
	}
}

func newClassifyCmd() *cobra.Command {
	var threshold int

	cmd := &cobra.Command{
		Use:   "classify <description>",
		Short: "Suggest SDG tags for a deed description",
		Long: `Run the keyword classifier over a description.

Descriptions no longer than --threshold characters get no suggestion,
matching the submission form. Use --threshold 0 to always classify.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			description := strings.Join(args, " ")

			tags := sdg.Suggest(description, threshold)
			if len(tags) == 0 {
				fmt.Fprintln(out, ui.FormatMuted(fmt.Sprintf("description too short for a suggestion (needs more than %d characters)", threshold)))
				return nil
			}
			if sdg.IsDefault(tags) {
				fmt.Fprintln(out, ui.FormatMuted("no keyword matched, falling back to the default goal"))
			}
			for _, tag := range tags {
				fmt.Fprintln(out, "  "+ui.SDGBadge(tag.ID, tag.Title, tag.Color))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&threshold, "threshold", sdg.DefaultSuggestThreshold, "minimum description length before suggesting")
	return cmd
}
