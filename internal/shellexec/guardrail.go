package shellexec

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// DenyRule describes one regex-based guardrail rule.
type DenyRule struct {
	Pattern string `yaml:"pattern"`
	Message string `yaml:"message"`
}

type rulesFile struct {
	Rules struct {
		DenyPatterns []DenyRule `yaml:"deny_patterns"`
	} `yaml:"rules"`
}

// BlockedError is returned when a command matches a deny rule; the shell is
// never spawned for a blocked command.
type BlockedError struct {
	Rule DenyRule
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("command blocked: %s", e.Rule.Message)
}

// Guardrail is a compiled denylist evaluated against the raw command line
// before it reaches the shell.
type Guardrail struct {
	patterns []compiledRule
}

type compiledRule struct {
	re   *regexp.Regexp
	rule DenyRule
}

// LoadGuardrail reads deny rules from a YAML file, falling back to the
// compiled-in defaults when the file is missing or lists no rules.
func LoadGuardrail(path string) (*Guardrail, error) {
	rules := defaultRules()
	data, err := os.ReadFile(path)
	if err == nil {
		var parsed rulesFile
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("error parsing guardrail rules: %v", err)
		}
		if len(parsed.Rules.DenyPatterns) > 0 {
			rules = parsed.Rules.DenyPatterns
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("error reading guardrail rules: %v", err)
	}

	var compiled []compiledRule
	for _, rule := range rules {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid guardrail pattern %q: %v", rule.Pattern, err)
		}
		compiled = append(compiled, compiledRule{re: re, rule: rule})
	}
	return &Guardrail{patterns: compiled}, nil
}

// Check returns a BlockedError for the first rule matching command.
func (g *Guardrail) Check(command string) error {
	for _, p := range g.patterns {
		if p.re.MatchString(command) {
			return &BlockedError{Rule: p.rule}
		}
	}
	return nil
}

func defaultRules() []DenyRule {
	return []DenyRule{
		{Pattern: `rm\s+-rf\s+/(\s|$)`, Message: "deleting root directory"},
		{Pattern: `rm\s+-rf\s+\$HOME`, Message: "deleting home directory"},
		{Pattern: `dd\s+if=`, Message: "raw disk writing"},
		{Pattern: `mkfs\.`, Message: "formatting filesystem"},
		{Pattern: `>\s*/dev/(sd[a-z]|nvme)`, Message: "writing to block device"},
		{Pattern: `:\(\)\{ :\|:& \};:`, Message: "fork bomb"},
	}
}
