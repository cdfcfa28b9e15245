package rules

import (
	"testing"
)

// TestParseValidSpecifiers verifies that flag specifiers parse into the expected rules.
func TestParseValidSpecifiers(testingHandle *testing.T) {
	testCases := []struct {
		specifier       string
		expectedPattern string
		expectedMode    MatchMode
	}{
		{"endswith:.py", ".py", MatchModeSuffix},
		{"endswith:.tar.gz", ".tar.gz", MatchModeSuffix},
		{"equals:Dockerfile", "Dockerfile", MatchModeExact},
		{"equals:Makefile", "Makefile", MatchModeExact},
	}
	for _, testCase := range testCases {
		parsedRule, parseError := Parse(testCase.specifier)
		if parseError != nil {
			testingHandle.Fatalf("Parse(%q) failed: %v", testCase.specifier, parseError)
		}
		if parsedRule.Pattern != testCase.expectedPattern {
			testingHandle.Errorf("Parse(%q) pattern: got %q want %q", testCase.specifier, parsedRule.Pattern, testCase.expectedPattern)
		}
		if parsedRule.Mode != testCase.expectedMode {
			testingHandle.Errorf("Parse(%q) mode: got %q want %q", testCase.specifier, parsedRule.Mode, testCase.expectedMode)
		}
	}
}

// TestParseInvalidSpecifiers verifies that malformed specifiers are rejected.
func TestParseInvalidSpecifiers(testingHandle *testing.T) {
	invalidSpecifiers := []string{
		"",
		".py",
		"contains:.py",
		"endswith:",
		"endswith:   ",
	}
	for _, specifier := range invalidSpecifiers {
		if _, parseError := Parse(specifier); parseError == nil {
			testingHandle.Errorf("Parse(%q) should have failed", specifier)
		}
	}
}

// TestRuleMatches verifies suffix and exact matching behavior.
func TestRuleMatches(testingHandle *testing.T) {
	testCases := []struct {
		rule     Rule
		fileName string
		expected bool
	}{
		{Rule{Pattern: ".py", Mode: MatchModeSuffix}, "main.py", true},
		{Rule{Pattern: ".py", Mode: MatchModeSuffix}, "main.pyc", false},
		{Rule{Pattern: ".py", Mode: MatchModeSuffix}, ".py", true},
		{Rule{Pattern: "Dockerfile", Mode: MatchModeExact}, "Dockerfile", true},
		{Rule{Pattern: "Dockerfile", Mode: MatchModeExact}, "Dockerfile.dev", false},
		{Rule{Pattern: "Dockerfile", Mode: MatchModeExact}, "sub.Dockerfile", false},
	}
	for _, testCase := range testCases {
		if matched := testCase.rule.Matches(testCase.fileName); matched != testCase.expected {
			testingHandle.Errorf("%s.Matches(%q): got %v want %v", testCase.rule, testCase.fileName, matched, testCase.expected)
		}
	}
}

// TestAnyMatches verifies the OR semantics across rules and the empty list.
func TestAnyMatches(testingHandle *testing.T) {
	ruleList := []Rule{
		{Pattern: ".py", Mode: MatchModeSuffix},
		{Pattern: ".json", Mode: MatchModeSuffix},
		{Pattern: "Dockerfile", Mode: MatchModeExact},
	}
	if !AnyMatches(ruleList, "settings.json") {
		testingHandle.Errorf("expected settings.json to match")
	}
	if !AnyMatches(ruleList, "Dockerfile") {
		testingHandle.Errorf("expected Dockerfile to match")
	}
	if AnyMatches(ruleList, "notes.txt") {
		testingHandle.Errorf("notes.txt should not match")
	}
	if AnyMatches(nil, "main.py") {
		testingHandle.Errorf("an empty rule list should accept nothing")
	}
}
