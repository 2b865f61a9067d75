package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/fedeck/internal/deck"
)

// Scenario is one deck generation check.
type Scenario struct {
	// Name identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	Description string `yaml:"description"`

	// Model is the model file to compile. Relative paths are resolved
	// against the scenario file's directory by LoadScenario.
	Model string `yaml:"model"`

	// Target is the deck format to generate.
	Target string `yaml:"target"`

	Assertions []Assertion `yaml:"assertions"`
}

// Assertion checks one property of the generated deck.
type Assertion struct {
	// Type is one of deck_contains, deck_not_contains, line_count,
	// element_count or skipped_count.
	Type string `yaml:"type"`

	// Text is the substring for deck_contains and deck_not_contains.
	Text string `yaml:"text,omitempty"`

	// Count is the expected number for the *_count assertions.
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertDeckContains    = "deck_contains"
	AssertDeckNotContains = "deck_not_contains"
	AssertLineCount       = "line_count"
	AssertElementCount    = "element_count"
	AssertSkippedCount    = "skipped_count"
)

// LoadScenario reads and parses a scenario YAML file, resolving the model
// path relative to the file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath is LoadScenario with an explicit base directory
// for the model path.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Model != "" && !filepath.IsAbs(scenario.Model) && basePath != "" {
		scenario.Model = filepath.Join(basePath, scenario.Model)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Model == "" {
		return fmt.Errorf("model is required")
	}
	if s.Target == "" {
		return fmt.Errorf("target is required")
	}
	if _, err := deck.DefaultTraitsTable().Lookup(deck.Format(s.Target)); err != nil {
		return fmt.Errorf("target: %w", err)
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}
	if _, err := os.Stat(s.Model); os.IsNotExist(err) {
		return fmt.Errorf("model file not found: %s", s.Model)
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertDeckContains, AssertDeckNotContains:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for %s", index, a.Type)
		}
	case AssertLineCount, AssertElementCount, AssertSkippedCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
