// Package dataset models YOLO-OBB oriented-detection datasets and provides
// the preparation tools that get raw DOTA-style annotations into trainable
// shape: class-name remapping, coordinate normalization and train/val
// splitting.
package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Example is one dataset entry: an image path and its annotations. The
// annotation list may be empty, which makes the example a background tile.
type Example struct {
	Image       string
	Annotations []Annotation
}

// Classes returns the class id of every annotated object, in annotation
// order. Repeated classes are kept; an example with no annotations returns an
// empty slice.
func (e Example) Classes() []int {
	classes := make([]int, len(e.Annotations))
	for i, ann := range e.Annotations {
		classes[i] = ann.Class
	}
	return classes
}

// Dataset is an ordered, indexable collection of examples. The index order is
// fixed at load time and is the index space samplers draw from.
type Dataset struct {
	examples []Example
	names    []string
}

// New wraps a slice of examples into a Dataset. classNames maps class ids to
// human-readable names and may be nil.
func New(examples []Example, classNames []string) *Dataset {
	return &Dataset{examples: examples, names: classNames}
}

// Len returns the number of examples.
func (d *Dataset) Len() int { return len(d.examples) }

// Example returns the example at index i.
func (d *Dataset) Example(i int) Example { return d.examples[i] }

// ClassNames returns the class names by id, or nil when unknown.
func (d *Dataset) ClassNames() []string { return d.names }

// LabelSets returns the annotated class ids of every example, in index order.
// Position i holds the label set of example i.
func (d *Dataset) LabelSets() [][]int {
	sets := make([][]int, len(d.examples))
	for i, ex := range d.examples {
		sets[i] = ex.Classes()
	}
	return sets
}

// Load reads a YOLO-OBB dataset from an images directory and a labels
// directory. Every recognized image file becomes one example, ordered by
// filename; its annotations come from the label file with the same stem. An
// image with no label file, or an empty one, becomes a background example
// with an empty label set.
func Load(imagesDir, labelsDir string, classNames []string) (*Dataset, error) {
	entries, err := os.ReadDir(imagesDir)
	if err != nil {
		return nil, fmt.Errorf("dataset: read images dir: %w", err)
	}

	var examples []Example
	for _, entry := range entries {
		if entry.IsDir() || !isImage(entry.Name()) {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))

		anns, err := readLabelFile(filepath.Join(labelsDir, stem+".txt"))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}

		examples = append(examples, Example{
			Image:       filepath.Join(imagesDir, entry.Name()),
			Annotations: anns,
		})
	}

	if len(examples) == 0 {
		return nil, fmt.Errorf("dataset: no images found in %s", imagesDir)
	}
	return New(examples, classNames), nil
}

// readLabelFile parses one YOLO-OBB label file. A missing file surfaces as
// fs.ErrNotExist for the caller to treat as "no annotations".
func readLabelFile(path string) ([]Annotation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var anns []Annotation
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		ann, err := ParseAnnotation(line)
		if err != nil {
			return nil, fmt.Errorf("dataset: %s:%d: %w", path, lineNum, err)
		}
		anns = append(anns, ann)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", path, err)
	}
	return anns, nil
}
