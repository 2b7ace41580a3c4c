package dataset

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/exp/rand"
)

// SplitReport counts the outcome of a train/val split.
type SplitReport struct {
	Train   int // image+label pairs copied into the train subset
	Val     int // image+label pairs copied into the val subset
	Skipped int // stems missing their label file
}

// Split partitions an images+labels directory pair into train and val
// subsets, copying files into the conventional layout under outDir:
//
//	outDir/images/train  outDir/images/val
//	outDir/labels/train  outDir/labels/val
//
// Image stems are shuffled with the given seed before splitting, so the same
// seed over the same file set always yields the same partition. trainRatio is
// the fraction assigned to the train subset and must be in (0,1). Images
// without a matching label file are skipped and counted.
func Split(imagesDir, labelsDir, outDir string, trainRatio float64, seed uint64, logger *slog.Logger) (*SplitReport, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if trainRatio <= 0 || trainRatio >= 1 {
		return nil, fmt.Errorf("dataset: train ratio must be in (0,1), got %v", trainRatio)
	}

	entries, err := os.ReadDir(imagesDir)
	if err != nil {
		return nil, fmt.Errorf("dataset: read images dir: %w", err)
	}
	var stems []string
	for _, entry := range entries {
		if !entry.IsDir() && isImage(entry.Name()) {
			stems = append(stems, strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())))
		}
	}
	if len(stems) == 0 {
		return nil, fmt.Errorf("dataset: no images found in %s", imagesDir)
	}

	// ReadDir order is already sorted; sorting again keeps the shuffle
	// deterministic even if that ever changes.
	sort.Strings(stems)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(stems), func(i, j int) {
		stems[i], stems[j] = stems[j], stems[i]
	})
	splitIdx := int(float64(len(stems)) * trainRatio)

	type subsetSpec struct {
		name  string
		stems []string
		count *int
	}
	report := &SplitReport{}
	subsets := []subsetSpec{
		{"train", stems[:splitIdx], &report.Train},
		{"val", stems[splitIdx:], &report.Val},
	}

	for _, subset := range subsets {
		imagesOut := filepath.Join(outDir, "images", subset.name)
		labelsOut := filepath.Join(outDir, "labels", subset.name)
		for _, dir := range []string{imagesOut, labelsOut} {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("dataset: create %s: %w", dir, err)
			}
		}

		for _, stem := range subset.stems {
			imagePath, ok := findImage(imagesDir, stem)
			if !ok {
				// Raced away since ReadDir; treat like a missing pair.
				logger.Warn("image disappeared during split", "stem", stem)
				report.Skipped++
				continue
			}
			labelPath := filepath.Join(labelsDir, stem+".txt")
			if _, err := os.Stat(labelPath); err != nil {
				logger.Warn("no label file for image", "stem", stem)
				report.Skipped++
				continue
			}

			if err := copyFile(imagePath, filepath.Join(imagesOut, filepath.Base(imagePath))); err != nil {
				return nil, err
			}
			if err := copyFile(labelPath, filepath.Join(labelsOut, stem+".txt")); err != nil {
				return nil, err
			}
			*subset.count++
		}
	}

	logger.Info("split finished",
		"train", report.Train, "val", report.Val, "skipped", report.Skipped, "ratio", trainRatio)
	return report, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("dataset: open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("dataset: create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("dataset: copy %s: %w", dst, err)
	}
	return out.Close()
}
