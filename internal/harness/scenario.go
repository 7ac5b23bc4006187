package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultWatchID is the todo id the observer tracks when a scenario does
// not name one. Matches the demo sequence, which watches todo 2.
const DefaultWatchID = 2

// Scenario defines a dispatch test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario; also the golden file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Watch is the todo id whose done flag the registered observer
	// projects. Zero means DefaultWatchID.
	Watch int `yaml:"watch,omitempty"`

	// Steps are the actions to dispatch, in order.
	Steps []Step `yaml:"steps"`

	// Expect holds expectations evaluated after the last step.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Step is a single dispatch.
type Step struct {
	// Action is the codec name: add, update, remove, mark_done, change_text.
	Action string `yaml:"action"`

	// Args are the action arguments, matching the codec's argument map.
	Args map[string]any `yaml:"args"`

	// ExpectError, when non-empty, is a substring the dispatch error must
	// contain. A step with ExpectError must fail; one without must commit.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// Expect describes the required outcome of a scenario.
type Expect struct {
	// Order is the required final insertion order.
	Order []int `yaml:"order,omitempty"`

	// Todos are the required final entities, in insertion order.
	Todos []TodoSpec `yaml:"todos,omitempty"`

	// Observed are the required observer values, one per step, using the
	// trace forms "none", "true", "false".
	Observed []string `yaml:"observed,omitempty"`
}

// TodoSpec is the YAML form of an expected todo.
type TodoSpec struct {
	ID   int    `yaml:"id"`
	Task string `yaml:"task"`
	Done bool   `yaml:"done"`
}

// WatchID returns the effective observed todo id.
func (s *Scenario) WatchID() int {
	if s.Watch != 0 {
		return s.Watch
	}
	return DefaultWatchID
}

// LoadScenario reads, schema-validates, and decodes a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scenario: %w", err)
	}
	return ParseScenario(raw)
}

// ParseScenario schema-validates and decodes scenario YAML.
func ParseScenario(raw []byte) (*Scenario, error) {
	if err := ValidateScenarioYAML(raw); err != nil {
		return nil, err
	}

	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return &sc, nil
}
