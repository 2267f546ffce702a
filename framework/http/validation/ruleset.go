package validation

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrUnknownRuleSet is returned when a named rule set does not exist.
var ErrUnknownRuleSet = errors.New("validation: unknown rule set")

// RuleSet maps field names to rule strings (see Parse).
type RuleSet map[string]string

// Compile parses every rule string of the set.
func (s RuleSet) Compile() (Rules, error) {
	return ParseRules(s)
}

// RuleFile is a YAML document of named rule sets:
//
//	sets:
//	  signup:
//	    email: "required|email"
//	    password: "required|min_length:7|confirmed"
//	    birthday: "date|before:2010-01-01"
type RuleFile struct {
	Sets map[string]RuleSet `yaml:"sets"`
}

// ParseRuleFile decodes a rule file and checks that every set compiles.
func ParseRuleFile(data []byte) (*RuleFile, error) {
	var rf RuleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("decode rule file: %w", err)
	}
	for _, name := range rf.Names() {
		if _, err := rf.Sets[name].Compile(); err != nil {
			return nil, fmt.Errorf("rule set %s: %w", name, err)
		}
	}
	return &rf, nil
}

// LoadRuleFile reads and parses a rule file from disk.
func LoadRuleFile(path string) (*RuleFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule file %s: %w", path, err)
	}
	rf, err := ParseRuleFile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rf, nil
}

// Names returns the rule set names, sorted.
func (rf *RuleFile) Names() []string {
	return sortedKeys(rf.Sets)
}

// Rules compiles the named set. Builders are not shared between calls, so
// the result may be used by one validator at a time.
func (rf *RuleFile) Rules(name string) (Rules, error) {
	set, ok := rf.Sets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRuleSet, name)
	}
	return set.Compile()
}
