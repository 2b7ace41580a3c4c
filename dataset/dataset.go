// Package dataset provides the public API for loading and preparing YOLO-OBB
// oriented-detection datasets.
//
// This package wraps the internal dataset implementation and exports the
// dataset model (examples, annotations, label sets) together with the
// preparation tools: DOTA conversion, coordinate normalization, train/val
// splitting and image resizing.
//
// Example usage:
//
//	cfg, err := dataset.LoadConfig("dota_dataset.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ds, err := dataset.Load("SAR/split/images/train", "SAR/split/labels/train", cfg.ClassNames())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Examples: %d\n", ds.Len())
package dataset

import (
	"log/slog"

	"github.com/obbkit/obbkit/internal/dataset"
)

// Core dataset model.
type (
	// Annotation is one oriented bounding box: a class id and four corner
	// points in YOLO-OBB order.
	Annotation = dataset.Annotation

	// Example is one dataset entry: an image path and its annotations.
	Example = dataset.Example

	// Dataset is an ordered, indexable collection of examples.
	Dataset = dataset.Dataset

	// Config is the dataset YAML: paths, class names and sampling biases.
	Config = dataset.Config

	// WeightConfig is the class bias table and empty-label weight carried in
	// the dataset YAML.
	WeightConfig = dataset.WeightConfig
)

// Preparation reports.
type (
	ConvertReport   = dataset.ConvertReport
	NormalizeReport = dataset.NormalizeReport
	SplitReport     = dataset.SplitReport
)

// New wraps a slice of examples into a Dataset.
func New(examples []Example, classNames []string) *Dataset {
	return dataset.New(examples, classNames)
}

// Load reads a YOLO-OBB dataset from an images directory and a labels
// directory. Images without a label file become background examples with an
// empty label set.
func Load(imagesDir, labelsDir string, classNames []string) (*Dataset, error) {
	return dataset.Load(imagesDir, labelsDir, classNames)
}

// LoadConfig reads and validates a dataset YAML file.
func LoadConfig(path string) (*Config, error) {
	return dataset.LoadConfig(path)
}

// ParseAnnotation parses one YOLO-OBB label line.
func ParseAnnotation(line string) (Annotation, error) {
	return dataset.ParseAnnotation(line)
}

// ConvertDOTA rewrites DOTA-format annotation files into YOLO-OBB label
// files, mapping class names through classIndex.
func ConvertDOTA(inDir, outDir string, classIndex map[string]int, logger *slog.Logger) (*ConvertReport, error) {
	return dataset.ConvertDOTA(inDir, outDir, classIndex, logger)
}

// NormalizeLabels rescales pixel corner coordinates to the [0,1] range using
// the matching image's dimensions.
func NormalizeLabels(imagesDir, labelsDir, outDir string, logger *slog.Logger) (*NormalizeReport, error) {
	return dataset.NormalizeLabels(imagesDir, labelsDir, outDir, logger)
}

// Split partitions an images+labels directory pair into train and val
// subsets with a seeded shuffle.
func Split(imagesDir, labelsDir, outDir string, trainRatio float64, seed uint64, logger *slog.Logger) (*SplitReport, error) {
	return dataset.Split(imagesDir, labelsDir, outDir, trainRatio, seed, logger)
}

// Dimensions returns the pixel width and height of an image without decoding
// the full pixel data.
func Dimensions(path string) (width, height int, err error) {
	return dataset.Dimensions(path)
}

// ResizeLonger rewrites an image so its longer side is at most maxSide
// pixels, preserving aspect ratio.
func ResizeLonger(path, outPath string, maxSide int) error {
	return dataset.ResizeLonger(path, outPath, maxSide)
}
