package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/obbkit/obbkit/internal/dataset"
)

func (c *CLI) newSplitCommand() *cobra.Command {
	var (
		ratio float64
		seed  uint64
	)

	cmd := &cobra.Command{
		Use:   "split <images-dir> <labels-dir> <out-dir>",
		Short: "Split a dataset into train and val subsets",
		Args:  cobra.ExactArgs(3),
		Example: `  obbkit split SAR/images SAR/labels SAR/split
  obbkit split SAR/images SAR/labels SAR/split --ratio 0.9 --seed 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			slog.Info("Splitting dataset",
				"images", args[0], "labels", args[1], "out", args[2], "ratio", ratio, "seed", seed)
			report, err := dataset.Split(args[0], args[1], args[2], ratio, seed, slog.Default())
			if err != nil {
				return err
			}
			slog.Info("Split complete",
				"train", report.Train, "val", report.Val, "skipped", report.Skipped)
			return nil
		},
	}

	cmd.Flags().Float64Var(&ratio, "ratio", 0.8, "Fraction of examples assigned to the train subset")
	cmd.Flags().Uint64Var(&seed, "seed", 42, "Shuffle seed; same seed, same partition")
	return cmd
}
