package dataset

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ConvertReport counts the outcome of a DOTA conversion run.
type ConvertReport struct {
	Files        int // label files written
	Objects      int // annotations converted
	SkippedLines int // malformed or unknown-class lines dropped
}

// ConvertDOTA rewrites DOTA-format annotation files into YOLO-OBB label
// files. DOTA lines carry the corner coordinates first and the class name in
// ninth position:
//
//	x1 y1 x2 y2 x3 y3 x4 y4 classname [difficulty]
//
// which becomes
//
//	index x1 y1 x2 y2 x3 y3 x4 y4
//
// with the class name mapped through classIndex. Coordinate text is carried
// over verbatim. Lines with fewer than ten fields or an unmapped class name
// are skipped and counted; an output file is written even when every line of
// the input was skipped. outDir may be empty to rewrite files in place.
func ConvertDOTA(inDir, outDir string, classIndex map[string]int, logger *slog.Logger) (*ConvertReport, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(classIndex) == 0 {
		return nil, fmt.Errorf("dataset: empty class index")
	}
	if outDir == "" {
		outDir = inDir
	} else if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("dataset: create output dir: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(inDir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("dataset: list %s: %w", inDir, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("dataset: no label files found in %s", inDir)
	}
	sort.Strings(files)

	report := &ConvertReport{}
	for _, path := range files {
		converted, skipped, err := convertDOTAFile(path, classIndex, logger)
		if err != nil {
			return nil, err
		}

		outPath := filepath.Join(outDir, filepath.Base(path))
		if err := writeLines(outPath, converted); err != nil {
			return nil, err
		}

		report.Files++
		report.Objects += len(converted)
		report.SkippedLines += skipped
		logger.Debug("converted label file", "file", path, "objects", len(converted), "skipped", skipped)
	}

	logger.Info("conversion finished",
		"files", report.Files, "objects", report.Objects, "skipped_lines", report.SkippedLines)
	return report, nil
}

func convertDOTAFile(path string, classIndex map[string]int, logger *slog.Logger) ([]string, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("dataset: read %s: %w", path, err)
	}

	var converted []string
	skipped := 0
	for lineNum, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 10 {
			logger.Warn("short annotation line", "file", path, "line", lineNum+1)
			skipped++
			continue
		}

		index, ok := classIndex[fields[8]]
		if !ok {
			logger.Warn("unknown class name", "file", path, "line", lineNum+1, "class", fields[8])
			skipped++
			continue
		}

		converted = append(converted, fmt.Sprintf("%d %s", index, strings.Join(fields[:8], " ")))
	}
	return converted, skipped, nil
}

func writeLines(path string, lines []string) error {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("dataset: write %s: %w", path, err)
	}
	return nil
}
