package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DeafMist/noble-deeds/backend/internal/models"
	"github.com/DeafMist/noble-deeds/backend/internal/repository"
	"github.com/DeafMist/noble-deeds/backend/internal/ui"
)

// app carries the dataset shared by every subcommand.
type app struct {
	deedsPath string
	deeds     []models.Deed
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "deeds",
		Short: "Noble Deeds - classify, browse and analyze good deeds",
		Long: ui.StyleTitle.Render("Noble Deeds") + " - SDG impact tracker\n\n" +
			"Classify deed descriptions against the 17 UN Sustainable Development Goals,\n" +
			"filter the deed feed and summarize impact analytics.",
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
	}
	root.PersistentFlags().StringVar(&a.deedsPath, "deeds", "", "YAML deed dataset (defaults to the built-in sample deeds)")

	root.AddCommand(
		newSDGsCmd(),
		newClassifyCmd(),
		newFeedCmd(a),
		newOptionsCmd(a),
		newAnalyticsCmd(a),
	)
	return root
}

func (a *app) load(_ *cobra.Command, _ []string) error {
	if a.deedsPath == "" {
		a.deeds = repository.SampleDeeds()
		return nil
	}
	deeds, err := repository.LoadYAML(a.deedsPath)
	if err != nil {
		return fmt.Errorf("load deeds: %w", err)
	}
	a.deeds = deeds
	return nil
}
