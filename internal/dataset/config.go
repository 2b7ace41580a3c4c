package dataset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes a dataset the way the training and preparation tools
// consume it, mirroring the usual detection dataset YAML:
//
//	path: SAR/split
//	train: images/train
//	val: images/val
//	names:
//	  0: ship
//	  1: aircraft
//	weights:
//	  empty_label: 0.1
//	  classes:
//	    1: 3.5
type Config struct {
	Path  string         `yaml:"path"`  // dataset root directory
	Train string         `yaml:"train"` // train images subdirectory, relative to Path
	Val   string         `yaml:"val"`   // val images subdirectory, relative to Path
	Names map[int]string `yaml:"names"` // class names by id

	// Weights carries the sampling bias configuration consumed by the
	// weighted resampling injector. It is deployment configuration, not part
	// of the dataset itself, and may be absent.
	Weights WeightConfig `yaml:"weights"`
}

// WeightConfig is the class bias table and empty-label weight for weighted
// sampling.
type WeightConfig struct {
	Classes    map[int]float64 `yaml:"classes"`
	EmptyLabel float64         `yaml:"empty_label"`
}

// LoadConfig reads and validates a dataset YAML file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("dataset: parse config %s: %w", path, err)
	}
	if len(cfg.Names) == 0 {
		return nil, fmt.Errorf("dataset: config %s has no class names", path)
	}
	for id := range cfg.Names {
		if id < 0 {
			return nil, fmt.Errorf("dataset: config %s has negative class id %d", path, id)
		}
	}
	return &cfg, nil
}

// ClassIndex inverts Names for converting name-keyed annotation formats.
func (c *Config) ClassIndex() map[string]int {
	index := make(map[string]int, len(c.Names))
	for id, name := range c.Names {
		index[name] = id
	}
	return index
}

// ClassNames returns the names as a dense slice indexed by class id. Ids the
// config does not mention get an empty name.
func (c *Config) ClassNames() []string {
	maxID := -1
	for id := range c.Names {
		if id > maxID {
			maxID = id
		}
	}
	names := make([]string, maxID+1)
	for id, name := range c.Names {
		names[id] = name
	}
	return names
}
