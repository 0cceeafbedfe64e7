package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/DeafMist/noble-deeds/backend/internal/analytics"
	"github.com/DeafMist/noble-deeds/backend/internal/feed"
	"github.com/DeafMist/noble-deeds/backend/internal/processing"
	"github.com/DeafMist/noble-deeds/backend/internal/ui"
)

const excerptWords = 12

func newFeedCmd(a *app) *cobra.Command {
	var c feed.Criteria

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Browse deeds matching the given filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			deeds := feed.Filter(a.deeds, c)

			fmt.Fprintln(out, ui.FormatTitle(fmt.Sprintf("Deeds (%d of %d)", len(deeds), len(a.deeds))))
			fmt.Fprintln(out, ui.StyleBold.Render(fmt.Sprintf("Total Impact: %d lives", analytics.TotalImpact(deeds))))
			if len(deeds) == 0 {
				fmt.Fprintln(out, ui.FormatMuted("No deeds found matching your filters."))
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tLOCATION\tIMPACT\tSDGS\tDESCRIPTION")
			for _, d := range deeds {
				ids := make([]string, 0, len(d.SDGs))
				for _, tag := range d.SDGs {
					ids = append(ids, fmt.Sprint(tag.ID))
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
					processing.Truncate(d.ID, 8),
					d.Date,
					d.Location,
					d.Impact,
					strings.Join(ids, ","),
					processing.Excerpt(d.Description, excerptWords),
				)
			}
			return w.Flush()
		},
	}

	f := cmd.Flags()
	f.StringVarP(&c.SearchTerm, "q", "q", "", "search description and location")
	f.IntVar(&c.SDGID, "sdg", 0, "only deeds tagged with this SDG id")
	f.StringVar(&c.Location, "location", "", "location substring")
	f.StringVar(&c.Gender, "gender", "", "contributor gender")
	f.StringVar(&c.Age, "age", "", "contributor age bracket")
	return cmd
}

func newOptionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "Show the distinct filter values present in the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			opts := feed.BuildOptions(a.deeds)
			printList(out, "Locations", opts.Locations)
			printList(out, "Genders", opts.Genders)
			printList(out, "Ages", opts.Ages)
			return nil
		},
	}
}
