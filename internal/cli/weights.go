package cli

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/obbkit/obbkit/internal/dataset"
	"github.com/obbkit/obbkit/internal/sampler"
)

func (c *CLI) newWeightsCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "weights <images-dir> <labels-dir>",
		Short: "Compute and summarize per-example sampling weights",
		Long: `Compute the sampling weight of every example from the class biases in the
dataset config, exactly as the training injector would, and print the
per-class biases and the weight vector statistics. Useful for sanity-checking
a bias table before committing to a long run.`,
		Args:    cobra.ExactArgs(2),
		Example: `  obbkit weights SAR/split/images/train SAR/split/labels/train --config dota_dataset.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := dataset.LoadConfig(configPath)
			if err != nil {
				return err
			}

			ds, err := dataset.Load(args[0], args[1], cfg.ClassNames())
			if err != nil {
				return err
			}
			slog.Debug("dataset loaded", "examples", ds.Len())

			empty := cfg.Weights.EmptyLabel
			if empty == 0 {
				empty = sampler.DefaultEmptyLabelWeight
			}
			table, err := sampler.NewClassWeightTable(cfg.Weights.Classes, empty)
			if err != nil {
				return err
			}

			weights, err := table.SampleWeights(ds.LabelSets())
			if err != nil {
				return err
			}
			stats := sampler.Summarize(weights)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Class biases:")
			ids := make([]int, 0, len(cfg.Names))
			for id := range cfg.Names {
				ids = append(ids, id)
			}
			sort.Ints(ids)
			for _, id := range ids {
				fmt.Fprintf(out, "  %2d %-12s %.2f\n", id, cfg.Names[id], table.Bias(id))
			}
			fmt.Fprintf(out, "Empty-label weight: %.3f\n\n", table.EmptyLabelWeight())
			fmt.Fprintf(out, "Examples: %d\n", len(weights))
			fmt.Fprintf(out, "Weights:  min %.3f | max %.3f | mean %.3f\n", stats.Min, stats.Max, stats.Mean)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "dataset.yaml", "Dataset config with class names and biases")
	return cmd
}
