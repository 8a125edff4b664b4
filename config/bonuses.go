package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// bonusFile is the layout of BONUS_FILE:
//
//	bonuses:
//	  Antoine: 3
//	  Remy: 3
type bonusFile struct {
	Bonuses map[string]int `yaml:"bonuses"`
}

// LoadBonuses reads the per-participant bonus table. An empty path yields an
// empty table.
func LoadBonuses(path string) (map[string]int, error) {
	if path == "" {
		return map[string]int{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bonus file %s: %w", path, err)
	}

	var f bonusFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bonus file %s: %w", path, err)
	}
	if f.Bonuses == nil {
		return map[string]int{}, nil
	}
	for id, points := range f.Bonuses {
		if points < 0 {
			return nil, fmt.Errorf("bonus for %s must not be negative, got %d", id, points)
		}
	}
	return f.Bonuses, nil
}
