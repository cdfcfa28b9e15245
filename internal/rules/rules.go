// Package rules evaluates file-type capture rules against file names.
package rules

import (
	"fmt"
	"strings"
)

// MatchMode selects how a rule pattern is compared against a file name.
type MatchMode string

const (
	// MatchModeSuffix matches when the file name ends with the pattern.
	MatchModeSuffix MatchMode = "endswith"
	// MatchModeExact matches when the file name equals the pattern exactly.
	MatchModeExact MatchMode = "equals"
)

// specifierSeparator separates mode and pattern in a flag value such as "endswith:.py".
const specifierSeparator = ":"

// Rule describes a single file-type capture rule.
type Rule struct {
	Pattern string
	Mode    MatchMode
}

// New validates the mode and pattern and returns the corresponding Rule.
func New(pattern string, mode string) (Rule, error) {
	trimmedPattern := strings.TrimSpace(pattern)
	if trimmedPattern == "" {
		return Rule{}, fmt.Errorf("file-type rule has an empty pattern")
	}
	switch MatchMode(mode) {
	case MatchModeSuffix, MatchModeExact:
		return Rule{Pattern: trimmedPattern, Mode: MatchMode(mode)}, nil
	default:
		return Rule{}, fmt.Errorf("unsupported match mode %q (expected %q or %q)", mode, MatchModeSuffix, MatchModeExact)
	}
}

// Parse converts a flag value such as "endswith:.py" or "equals:Dockerfile" into a Rule.
func Parse(specifier string) (Rule, error) {
	modeValue, patternValue, separatorFound := strings.Cut(specifier, specifierSeparator)
	if !separatorFound {
		return Rule{}, fmt.Errorf("file-type rule %q must have the form <mode>%s<pattern>", specifier, specifierSeparator)
	}
	return New(patternValue, strings.TrimSpace(modeValue))
}

// ParseAll converts a list of flag values into rules, failing on the first invalid entry.
func ParseAll(specifiers []string) ([]Rule, error) {
	parsedRules := make([]Rule, 0, len(specifiers))
	for _, specifier := range specifiers {
		parsedRule, parseError := Parse(specifier)
		if parseError != nil {
			return nil, parseError
		}
		parsedRules = append(parsedRules, parsedRule)
	}
	return parsedRules, nil
}

// Matches reports whether the rule accepts the given file name.
func (rule Rule) Matches(fileName string) bool {
	switch rule.Mode {
	case MatchModeSuffix:
		return strings.HasSuffix(fileName, rule.Pattern)
	case MatchModeExact:
		return fileName == rule.Pattern
	default:
		return false
	}
}

// String renders the rule in the flag specifier form.
func (rule Rule) String() string {
	return string(rule.Mode) + specifierSeparator + rule.Pattern
}

// AnyMatches reports whether at least one rule accepts the file name.
// An empty rule list accepts nothing.
func AnyMatches(ruleList []Rule, fileName string) bool {
	for _, candidateRule := range ruleList {
		if candidateRule.Matches(fileName) {
			return true
		}
	}
	return false
}
