package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/obbkit/obbkit/internal/dataset"
)

func (c *CLI) newConvertCommand() *cobra.Command {
	var (
		outDir     string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "convert <label-dir>",
		Short: "Convert DOTA annotations to YOLO-OBB label files",
		Args:  cobra.ExactArgs(1),
		Example: `  obbkit convert SAR/annfiles --config dota_dataset.yaml -o SAR/labels
  obbkit convert SAR/annfiles --config dota_dataset.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := dataset.LoadConfig(configPath)
			if err != nil {
				return err
			}

			slog.Info("Converting DOTA annotations", "in", args[0], "out", outDir)
			report, err := dataset.ConvertDOTA(args[0], outDir, cfg.ClassIndex(), slog.Default())
			if err != nil {
				return err
			}
			slog.Info("Conversion complete",
				"files", report.Files, "objects", report.Objects, "skipped_lines", report.SkippedLines)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output label directory (default: rewrite in place)")
	cmd.Flags().StringVar(&configPath, "config", "dataset.yaml", "Dataset config with class names")
	return cmd
}
