package scenario

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// Scenario is a named, ordered group of steps run as a single check
type Scenario struct {
	Name  string `yaml:"name"`
	URL   string `yaml:"url,omitempty"`
	Steps []Step `yaml:"steps"`
}

// File is the on-disk layout of a scenario file:
//
//	scenarios:
//	  - name: Search workflow
//	    steps:
//	      - action: write
//	        selector: "input[name='q']"
//	        value: Ollama AI models
//	      - action: click
//	        selector: "button[type='submit']"
//	        delay: 1s
//	      - action: read
//	        selector: h1
//	        contains: Ollama
type File struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// LoadFile reads and validates a YAML scenario file
func LoadFile(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read scenario file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates scenario YAML. Action kinds are not checked
// here: an unknown action surfaces as an ERROR when the scenario runs.
func Parse(data []byte) ([]Scenario, error) {
	var f File
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("invalid scenario file: %w", err)
	}

	seen := make(map[string]bool, len(f.Scenarios))
	for i, sc := range f.Scenarios {
		name := strings.TrimSpace(sc.Name)
		if name == "" {
			return nil, fmt.Errorf("scenario %d: name is required", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("scenario %q: duplicate name", name)
		}
		seen[name] = true

		if len(sc.Steps) == 0 {
			return nil, fmt.Errorf("scenario %q: at least one step is required", name)
		}
		for j, step := range sc.Steps {
			if err := validateStep(step); err != nil {
				return nil, fmt.Errorf("scenario %q step %d: %w", name, j+1, err)
			}
		}
	}
	return f.Scenarios, nil
}

func validateStep(s Step) error {
	switch strings.ToLower(s.Expect) {
	case "", ExpectSuccess, ExpectFailure:
	default:
		return fmt.Errorf("expect must be %q or %q, got %q", ExpectSuccess, ExpectFailure, s.Expect)
	}

	if s.expectsFailure() && (s.Equals != nil || s.Contains != "") {
		return fmt.Errorf("equals/contains cannot be combined with expect: failure")
	}

	if s.Delay != "" {
		if _, err := time.ParseDuration(s.Delay); err != nil {
			return fmt.Errorf("invalid delay %q: %w", s.Delay, err)
		}
	}
	return nil
}
