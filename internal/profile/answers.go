// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package profile

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// LoadAnswers reads a questionnaire answer bag from a YAML file. The file
// holds a flat mapping of answer keys to values, the same loosely typed
// shape the questionnaire UI submits (R1.1).
func LoadAnswers(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading answers file: %w", err)
	}
	var answers map[string]any
	if err := yaml.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("parsing answers file %s: %w", path, err)
	}
	if answers == nil {
		answers = map[string]any{}
	}
	return answers, nil
}
