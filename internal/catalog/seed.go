package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SeedFile is the YAML layout consumed by `routinectl seed`:
//
//	tasks:
//	  "1":
//	    name: LPB
//	    deadline: "11:00"
//	    period: morning
//	    days: all
type SeedFile struct {
	Tasks map[string]Task `yaml:"tasks"`
}

// LoadSeedFile reads a YAML catalog seed from disk.
func LoadSeedFile(path string) (map[string]Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var f SeedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	if len(f.Tasks) == 0 {
		return nil, fmt.Errorf("seed file %s contains no tasks", path)
	}
	return f.Tasks, nil
}
