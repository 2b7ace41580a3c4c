package dataset

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// NormalizeReport counts the outcome of a coordinate normalization run.
type NormalizeReport struct {
	Processed    int // label files rewritten
	Skipped      int // label files whose image was missing or unreadable
	DroppedLines int // malformed annotation lines removed
}

// NormalizeLabels rescales the pixel corner coordinates of every label file
// in labelsDir to the [0,1] range, dividing by the dimensions of the matching
// image in imagesDir and clamping out-of-bounds values. Output coordinates
// are written with six decimals.
//
// Label files whose image cannot be found or decoded are left out of the
// output and counted as skipped. Malformed lines within a file are dropped
// and counted, and the rest of the file is still written. outDir may be empty
// to rewrite labels in place.
func NormalizeLabels(imagesDir, labelsDir, outDir string, logger *slog.Logger) (*NormalizeReport, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if outDir == "" {
		outDir = labelsDir
	} else if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("dataset: create output dir: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(labelsDir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("dataset: list %s: %w", labelsDir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("dataset: no label files found in %s", labelsDir)
	}
	sort.Strings(files)

	report := &NormalizeReport{}
	for _, path := range files {
		stem := strings.TrimSuffix(filepath.Base(path), ".txt")

		imagePath, ok := findImage(imagesDir, stem)
		if !ok {
			logger.Warn("no image for label file", "file", path)
			report.Skipped++
			continue
		}
		width, height, err := Dimensions(imagePath)
		if err != nil {
			logger.Warn("undecodable image", "image", imagePath, "error", err)
			report.Skipped++
			continue
		}

		lines, dropped, err := normalizeFile(path, width, height, logger)
		if err != nil {
			return nil, err
		}
		if err := writeLines(filepath.Join(outDir, filepath.Base(path)), lines); err != nil {
			return nil, err
		}

		report.Processed++
		report.DroppedLines += dropped
	}

	logger.Info("normalization finished",
		"processed", report.Processed, "skipped", report.Skipped, "dropped_lines", report.DroppedLines)
	return report, nil
}

func normalizeFile(path string, width, height int, logger *slog.Logger) ([]string, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("dataset: read %s: %w", path, err)
	}

	var lines []string
	dropped := 0
	for lineNum, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		ann, err := ParseAnnotation(line)
		if err != nil {
			logger.Warn("dropping malformed annotation", "file", path, "line", lineNum+1, "error", err)
			dropped++
			continue
		}

		for i := 0; i < 8; i += 2 {
			ann.Coords[i] = clamp01(ann.Coords[i] / float64(width))
			ann.Coords[i+1] = clamp01(ann.Coords[i+1] / float64(height))
		}
		lines = append(lines, ann.String())
	}
	return lines, dropped, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
