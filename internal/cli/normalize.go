package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/obbkit/obbkit/internal/dataset"
)

func (c *CLI) newNormalizeCommand() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "normalize <images-dir> <labels-dir>",
		Short: "Normalize label coordinates to the [0,1] range",
		Args:  cobra.ExactArgs(2),
		Example: `  obbkit normalize SAR/split/images/train SAR/split/labels/train
  obbkit normalize SAR/images SAR/annfiles -o SAR/labels`,
		RunE: func(cmd *cobra.Command, args []string) error {
			slog.Info("Normalizing label coordinates", "images", args[0], "labels", args[1])
			report, err := dataset.NormalizeLabels(args[0], args[1], outDir, slog.Default())
			if err != nil {
				return err
			}
			slog.Info("Normalization complete",
				"processed", report.Processed, "skipped", report.Skipped, "dropped_lines", report.DroppedLines)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output label directory (default: rewrite in place)")
	return cmd
}
