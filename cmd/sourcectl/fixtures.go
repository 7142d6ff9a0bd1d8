package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Sourcing/internal/inventory"
	"github.com/MikeSquared-Agency/Sourcing/internal/scoring"
)

// ruleFile is the on-disk form of a rule.
type ruleFile struct {
	Name   string                `yaml:"name"`
	Config scoring.ScoringConfig `yaml:"config"`
}

type locationsFile struct {
	Locations []scoring.Location `yaml:"locations"`
}

// inventoryFile maps item ids to their per-location stock.
type inventoryFile struct {
	Items map[string][]scoring.InventoryRecord `yaml:"items"`
}

func readYAML(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func loadRule(path string) (*ruleFile, error) {
	var rf ruleFile
	if err := readYAML(path, &rf); err != nil {
		return nil, err
	}
	return &rf, nil
}

func loadLocations(path string) ([]scoring.Location, error) {
	var lf locationsFile
	if err := readYAML(path, &lf); err != nil {
		return nil, err
	}
	for i := range lf.Locations {
		if lf.Locations[i].ID <= 0 {
			return nil, fmt.Errorf("%s: location %d has no positive id", path, i)
		}
		if lf.Locations[i].Attributes == nil {
			lf.Locations[i].Attributes = map[string]string{}
		}
	}
	return lf.Locations, nil
}

// loadInventory returns an empty service when path is empty.
func loadInventory(path string) (inventory.StaticService, error) {
	if path == "" {
		return inventory.StaticService{}, nil
	}
	var inf inventoryFile
	if err := readYAML(path, &inf); err != nil {
		return nil, err
	}
	return inventory.StaticService(inf.Items), nil
}
