package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Budgets maps a department name to its yearly salary ceiling.
type Budgets map[string]float64

type budgetFile struct {
	Departments map[string]float64 `yaml:"departments"`
}

// LoadBudgets reads department ceilings from a YAML file of the form
//
//	departments:
//	  Engineering: 1500000
//	  Sales: 900000
//
// An empty path means no ceilings are configured.
func LoadBudgets(path string) (Budgets, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read budget file: %w", err)
	}
	return ParseBudgets(data)
}

func ParseBudgets(data []byte) (Budgets, error) {
	var file budgetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse budget file: %w", err)
	}
	out := make(Budgets, len(file.Departments))
	for dept, ceiling := range file.Departments {
		if math.IsNaN(ceiling) || ceiling <= 0 {
			return nil, fmt.Errorf("budget for %s must be a positive number", dept)
		}
		out[dept] = ceiling
	}
	return out, nil
}

// Ceiling returns the configured ceiling for dept.
func (b Budgets) Ceiling(dept string) (float64, bool) {
	ceiling, ok := b[dept]
	return ceiling, ok
}
