package tokenizer

import (
	"errors"

	"github.com/temirov/repodoc/internal/utils"
)

// CountResult captures the outcome of counting a byte slice. Counted is false
// when the data was rejected as binary rather than counted.
type CountResult struct {
	Tokens  int
	Counted bool
}

// CountBytes estimates tokens for the provided data using counter. Binary
// content is not counted; empty content counts as zero tokens.
func CountBytes(counter Counter, data []byte) (CountResult, error) {
	if counter == nil {
		return CountResult{}, errors.New("nil tokenizer counter")
	}
	if len(data) == 0 {
		return CountResult{Tokens: 0, Counted: true}, nil
	}
	if utils.IsBinary(data) {
		return CountResult{Counted: false}, nil
	}
	tokens, countError := counter.CountString(string(data))
	if countError != nil {
		return CountResult{}, countError
	}
	return CountResult{Tokens: tokens, Counted: true}, nil
}
