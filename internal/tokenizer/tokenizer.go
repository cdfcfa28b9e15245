// Package tokenizer provides deterministic token counting for text content.
package tokenizer

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates token counts for text content. Implementations must be
// pure: the same input always yields the same count.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

// DefaultEncodingName is the byte-pair encoding used when no model is requested.
const DefaultEncodingName = "cl100k_base"

// NewCounter returns a Counter for the requested model or encoding name along
// with the resolved name. The name may be an OpenAI model (resolved through
// tiktoken's model table) or a tiktoken encoding name; anything unresolvable
// falls back to the default encoding so counts stay reproducible.
func NewCounter(modelName string) (Counter, string, error) {
	requestedName := strings.TrimSpace(modelName)
	if requestedName == "" {
		requestedName = DefaultEncodingName
	}
	lowerName := strings.ToLower(requestedName)

	if encoding, modelLookupError := tiktoken.EncodingForModel(lowerName); modelLookupError == nil && encoding != nil {
		return encodingCounter{encoding: encoding, name: lowerName}, lowerName, nil
	}
	if encoding, encodingLookupError := tiktoken.GetEncoding(lowerName); encodingLookupError == nil && encoding != nil {
		return encodingCounter{encoding: encoding, name: lowerName}, lowerName, nil
	}

	fallbackEncoding, fallbackError := tiktoken.GetEncoding(DefaultEncodingName)
	if fallbackError != nil {
		return nil, "", fmt.Errorf("initialize fallback tokenizer: %w", fallbackError)
	}
	return encodingCounter{encoding: fallbackEncoding, name: DefaultEncodingName}, DefaultEncodingName, nil
}

// encodingCounter counts tokens with a tiktoken byte-pair encoding.
type encodingCounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

func (counter encodingCounter) Name() string {
	return counter.name
}

func (counter encodingCounter) CountString(input string) (int, error) {
	if counter.encoding == nil {
		return 0, fmt.Errorf("nil tiktoken encoder")
	}
	tokenIdentifiers := counter.encoding.Encode(input, nil, nil)
	return len(tokenIdentifiers), nil
}
