package utils

import (
	"unicode/utf8"
)

// IsBinary reports whether the provided byte slice appears to contain binary
// data. Content with NUL bytes or invalid UTF-8 sequences is treated as binary
// and excluded from the combined document.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if !utf8.Valid(data) {
		return true
	}
	for _, byteValue := range data {
		if byteValue == 0 {
			return true
		}
	}
	return false
}
