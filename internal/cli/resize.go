package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/obbkit/obbkit/internal/dataset"
)

func (c *CLI) newResizeCommand() *cobra.Command {
	var maxSide int

	cmd := &cobra.Command{
		Use:   "resize <images-dir> <out-dir>",
		Short: "Downsample oversized images, preserving aspect ratio",
		Long: `Downsample every image whose longer side exceeds --max-side, writing the
results (and unmodified copies of images already within the bound) to the
output directory. Run this before normalize so label coordinates are scaled
against the final image dimensions.`,
		Args:    cobra.ExactArgs(2),
		Example: `  obbkit resize SAR/raw/images SAR/images --max-side 1024`,
		RunE: func(cmd *cobra.Command, args []string) error {
			imagesDir, outDir := args[0], args[1]
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}

			entries, err := os.ReadDir(imagesDir)
			if err != nil {
				return err
			}

			resized := 0
			for _, entry := range entries {
				if entry.IsDir() || !dataset.IsImage(entry.Name()) {
					continue
				}
				src := filepath.Join(imagesDir, entry.Name())
				dst := filepath.Join(outDir, entry.Name())
				if err := dataset.ResizeLonger(src, dst, maxSide); err != nil {
					return err
				}
				resized++
				slog.Debug("resized image", "file", entry.Name())
			}
			if resized == 0 {
				return fmt.Errorf("no images found in %s", imagesDir)
			}

			slog.Info("Resize complete", "images", resized, "max_side", maxSide)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxSide, "max-side", 1024, "Maximum length of the longer image side in pixels")
	return cmd
}
