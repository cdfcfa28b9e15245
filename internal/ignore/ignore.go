// Package ignore implements gitignore-syntax pattern matching for path exclusion.
//
// Supported syntax: glob wildcards (* and ?), character classes ([ch],
// [!0-9]), double-star segments (**), negation lines (!pattern),
// directory-only patterns (trailing slash), and anchored patterns (leading
// slash or an interior slash). Evaluation follows gitignore semantics: the
// last matching pattern decides, so a negation line re-includes a path
// excluded by an earlier pattern.
package ignore

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Marker runes substituted for double-star forms and for wildcards inside
// character classes so the single-star conversion does not touch them.
const (
	leadingAnyDirsMarker       = "\x01"
	trailingAnyPathMarker      = "\x02"
	interiorAnyDirsMarker      = "\x03"
	classLiteralStarMarker     = "\x04"
	classLiteralQuestionMarker = "\x05"
)

// compiledPattern is one ignore-file line compiled for evaluation.
type compiledPattern struct {
	selfExpression       *regexp.Regexp
	descendantExpression *regexp.Regexp
	negated              bool
	directoryOnly        bool
	source               string
}

// Matcher evaluates gitignore-syntax patterns against root-relative paths.
type Matcher struct {
	patterns []compiledPattern
}

// NewMatcher compiles the provided pattern lines into a Matcher. Blank lines
// and comment lines are dropped. A pattern that cannot be compiled produces an
// error naming the offending line.
func NewMatcher(lines []string) (*Matcher, error) {
	matcher := &Matcher{}
	for lineIndex, line := range lines {
		pattern, patternPresent, compileError := compileLine(line)
		if compileError != nil {
			return nil, fmt.Errorf("ignore pattern on line %d (%q): %w", lineIndex+1, line, compileError)
		}
		if patternPresent {
			matcher.patterns = append(matcher.patterns, pattern)
		}
	}
	return matcher, nil
}

// LoadFile reads an ignore file and compiles its patterns. The caller decides
// whether a missing file is fatal; os.IsNotExist holds on the returned error
// in that case.
func LoadFile(ignoreFilePath string) (*Matcher, error) {
	fileHandle, openError := os.Open(ignoreFilePath)
	if openError != nil {
		return nil, openError
	}
	defer fileHandle.Close()

	var lines []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, fmt.Errorf("reading %s: %w", ignoreFilePath, scanError)
	}
	matcher, compileError := NewMatcher(lines)
	if compileError != nil {
		return nil, fmt.Errorf("parsing %s: %w", ignoreFilePath, compileError)
	}
	return matcher, nil
}

// PatternCount returns the number of compiled patterns.
func (matcher *Matcher) PatternCount() int {
	return len(matcher.patterns)
}

// Matches reports whether the root-relative path is excluded. isDir
// distinguishes directory-only patterns from file matches. The last matching
// pattern wins.
func (matcher *Matcher) Matches(relativePath string, isDir bool) bool {
	normalizedPath := filepath.ToSlash(relativePath)
	excluded := false
	for _, pattern := range matcher.patterns {
		if !pattern.applies(normalizedPath, isDir) {
			continue
		}
		excluded = !pattern.negated
	}
	return excluded
}

// applies reports whether the pattern matches the path, either directly or
// because the pattern names an ancestor directory of the path.
func (pattern compiledPattern) applies(normalizedPath string, isDir bool) bool {
	if pattern.descendantExpression.MatchString(normalizedPath) {
		return true
	}
	if !pattern.selfExpression.MatchString(normalizedPath) {
		return false
	}
	if pattern.directoryOnly && !isDir {
		return false
	}
	return true
}

// compileLine parses one ignore-file line. The second return value is false
// for blank and comment lines.
func compileLine(line string) (compiledPattern, bool, error) {
	trimmedLine := strings.TrimSpace(line)
	if trimmedLine == "" || strings.HasPrefix(trimmedLine, "#") {
		return compiledPattern{}, false, nil
	}

	body := trimmedLine
	negated := false
	if strings.HasPrefix(body, "!") {
		negated = true
		body = strings.TrimPrefix(body, "!")
	}
	if strings.HasPrefix(body, `\#`) || strings.HasPrefix(body, `\!`) {
		body = body[1:]
	}

	directoryOnly := strings.HasSuffix(body, "/")
	body = strings.TrimSuffix(body, "/")
	if body == "" {
		return compiledPattern{}, false, nil
	}

	anchored := strings.HasPrefix(body, "/")
	body = strings.TrimPrefix(body, "/")
	if strings.Contains(body, "/") {
		anchored = true
	}

	expressionBody := translateBody(body)
	anchorPrefix := `^(.*/)?`
	if anchored {
		anchorPrefix = `^`
	}

	selfExpression, selfCompileError := regexp.Compile(anchorPrefix + expressionBody + `$`)
	if selfCompileError != nil {
		return compiledPattern{}, false, selfCompileError
	}
	descendantExpression, descendantCompileError := regexp.Compile(anchorPrefix + expressionBody + `/.*$`)
	if descendantCompileError != nil {
		return compiledPattern{}, false, descendantCompileError
	}

	return compiledPattern{
		selfExpression:       selfExpression,
		descendantExpression: descendantExpression,
		negated:              negated,
		directoryOnly:        directoryOnly,
		source:               trimmedLine,
	}, true, nil
}

// translateBody converts a gitignore pattern body into a regular expression
// fragment. Double-star forms are replaced with markers first so the
// single-star conversion leaves them intact.
func translateBody(patternBody string) string {
	escaped := escapeRegexSpecials(patternBody)
	if strings.HasPrefix(escaped, "**/") {
		escaped = leadingAnyDirsMarker + strings.TrimPrefix(escaped, "**/")
	}
	if strings.HasSuffix(escaped, "/**") {
		escaped = strings.TrimSuffix(escaped, "/**") + trailingAnyPathMarker
	}
	escaped = strings.ReplaceAll(escaped, "/**/", interiorAnyDirsMarker)
	escaped = strings.ReplaceAll(escaped, "*", `[^/]*`)
	escaped = strings.ReplaceAll(escaped, "?", `[^/]`)
	escaped = strings.ReplaceAll(escaped, leadingAnyDirsMarker, `(.*/)?`)
	escaped = strings.ReplaceAll(escaped, trailingAnyPathMarker, `/.*`)
	escaped = strings.ReplaceAll(escaped, interiorAnyDirsMarker, `/(.*/)?`)
	escaped = strings.ReplaceAll(escaped, classLiteralStarMarker, `*`)
	escaped = strings.ReplaceAll(escaped, classLiteralQuestionMarker, `?`)
	return escaped
}

// escapeRegexSpecials escapes regular-expression metacharacters, keeping the
// wildcard characters * and ?, the path separator, and terminated character
// classes intact. An unterminated class becomes a literal bracket.
func escapeRegexSpecials(pattern string) string {
	const specialCharacters = `.+()|^$[]{}\`
	patternRunes := []rune(pattern)
	var builder strings.Builder
	for runeIndex := 0; runeIndex < len(patternRunes); runeIndex++ {
		character := patternRunes[runeIndex]
		if character == '[' {
			classExpression, consumedRunes, classTerminated := parseCharacterClass(patternRunes[runeIndex:])
			if classTerminated {
				builder.WriteString(classExpression)
				runeIndex += consumedRunes - 1
				continue
			}
		}
		if strings.ContainsRune(specialCharacters, character) {
			builder.WriteByte('\\')
		}
		builder.WriteRune(character)
	}
	return builder.String()
}

// parseCharacterClass converts a leading fnmatch character class such as
// "[ch]" or "[!0-9]" into a regular-expression class. A "]" directly after the
// opening bracket (or the "!") is a class member, not the terminator.
// consumedRunes counts the runes of the source class including both brackets;
// terminated is false when no closing bracket follows.
func parseCharacterClass(patternRunes []rune) (classExpression string, consumedRunes int, terminated bool) {
	var classBody strings.Builder
	classBody.WriteString("[")
	scanIndex := 1
	if scanIndex < len(patternRunes) && patternRunes[scanIndex] == '!' {
		classBody.WriteString("^")
		scanIndex++
	}
	firstMember := true
	for ; scanIndex < len(patternRunes); scanIndex++ {
		character := patternRunes[scanIndex]
		if character == ']' && !firstMember {
			classBody.WriteString("]")
			return classBody.String(), scanIndex + 1, true
		}
		firstMember = false
		switch character {
		case '\\':
			classBody.WriteString(`\\`)
		case '*':
			classBody.WriteString(classLiteralStarMarker)
		case '?':
			classBody.WriteString(classLiteralQuestionMarker)
		default:
			classBody.WriteRune(character)
		}
	}
	return "", 0, false
}
