// Package utils contains general helper functions used across the repodoc tool.
package utils

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// File name constants used across the project.
const (
	// GitIgnoreFileName is the name of the Git ignore file consulted by default.
	GitIgnoreFileName = ".gitignore"
	// GitDirectoryName is the name of the Git repository directory.
	GitDirectoryName = ".git"
	// ConfigFileName is the name of the application configuration file.
	ConfigFileName = "repodoc.yaml"
	// GlobalConfigDirectoryName is the directory under the user home holding global configuration.
	GlobalConfigDirectoryName = ".repodoc"
	// DefaultLogFileName is the log file written when no explicit path is configured.
	DefaultLogFileName = "repodoc.log"
	// DefaultOutputFileName is the combined document written when no explicit path is configured.
	DefaultOutputFileName = "combined_docs.txt"
)

// DeduplicateStrings removes duplicate values from a slice while preserving order.
// The first occurrence of each unique value is kept.
func DeduplicateStrings(values []string) []string {
	encounteredValues := make(map[string]struct{})
	result := make([]string, 0, len(values))
	for _, value := range values {
		if _, exists := encounteredValues[value]; !exists {
			encounteredValues[value] = struct{}{}
			result = append(result, value)
		}
	}
	return result
}

// ContainsString reports whether a slice of strings contains the target string.
func ContainsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}

// RelativePathOrSelf calculates the forward-slash relative path from root to
// fullPath. It returns the cleaned fullPath when the relative calculation
// fails and "." when both arguments resolve to the same directory.
func RelativePathOrSelf(fullPath string, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, absoluteRootError := filepath.Abs(root)
	if absoluteRootError != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)
	if cleanPath == cleanAbsoluteRoot {
		return "."
	}
	relativePath, relativePathError := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relativePathError != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}

// FormatFileSize renders a byte count with a compact lower-case unit suffix.
// Values below ten units keep one decimal place; a trailing ".0" is trimmed so
// round values stay short.
func FormatFileSize(sizeBytes int64) string {
	if sizeBytes < 0 {
		return "0b"
	}
	const unitStep = 1024
	unitSuffixes := []string{"b", "kb", "mb", "gb", "tb", "pb"}
	scaledValue := float64(sizeBytes)
	suffixIndex := 0
	for scaledValue >= unitStep && suffixIndex < len(unitSuffixes)-1 {
		scaledValue /= unitStep
		suffixIndex++
	}
	if suffixIndex == 0 {
		return strconv.FormatInt(sizeBytes, 10) + "b"
	}
	if scaledValue < 10 {
		return strings.TrimSuffix(fmt.Sprintf("%.1f", scaledValue), ".0") + unitSuffixes[suffixIndex]
	}
	return fmt.Sprintf("%.0f%s", scaledValue, unitSuffixes[suffixIndex])
}
