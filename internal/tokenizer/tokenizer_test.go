package tokenizer

import "testing"

type runeCounter struct{}

func (runeCounter) Name() string { return "stub" }

func (runeCounter) CountString(input string) (int, error) { return len([]rune(input)), nil }

// TestCountBytesText verifies text content is counted.
func TestCountBytesText(testingHandle *testing.T) {
	result, countError := CountBytes(runeCounter{}, []byte("hello"))
	if countError != nil {
		testingHandle.Fatalf("CountBytes error: %v", countError)
	}
	if !result.Counted {
		testingHandle.Fatalf("expected counted result")
	}
	if result.Tokens != 5 {
		testingHandle.Fatalf("expected 5 tokens, got %d", result.Tokens)
	}
}

// TestCountBytesEmpty verifies empty content counts as zero tokens.
func TestCountBytesEmpty(testingHandle *testing.T) {
	result, countError := CountBytes(runeCounter{}, nil)
	if countError != nil {
		testingHandle.Fatalf("CountBytes error: %v", countError)
	}
	if !result.Counted {
		testingHandle.Fatalf("expected empty content to be counted")
	}
	if result.Tokens != 0 {
		testingHandle.Fatalf("expected 0 tokens, got %d", result.Tokens)
	}
}

// TestCountBytesBinary verifies binary content is rejected rather than counted.
func TestCountBytesBinary(testingHandle *testing.T) {
	result, countError := CountBytes(runeCounter{}, []byte{0x00, 0x01, 0x02})
	if countError != nil {
		testingHandle.Fatalf("CountBytes error: %v", countError)
	}
	if result.Counted {
		testingHandle.Fatalf("expected binary data to be skipped")
	}
}

// TestCountBytesNilCounter verifies a nil counter is an error.
func TestCountBytesNilCounter(testingHandle *testing.T) {
	if _, countError := CountBytes(nil, []byte("hello")); countError == nil {
		testingHandle.Fatalf("expected error for nil counter")
	}
}

// TestNewCounterDefaultEncoding verifies the default encoding resolves and
// produces stable counts across invocations.
func TestNewCounterDefaultEncoding(testingHandle *testing.T) {
	counter, resolvedName, counterError := NewCounter("")
	if counterError != nil {
		testingHandle.Skipf("encoding unavailable: %v", counterError)
	}
	if resolvedName != DefaultEncodingName {
		testingHandle.Fatalf("expected encoding %q, got %q", DefaultEncodingName, resolvedName)
	}

	const fixedInput = "the quick brown fox jumps over the lazy dog"
	firstCount, firstError := counter.CountString(fixedInput)
	if firstError != nil {
		testingHandle.Fatalf("CountString error: %v", firstError)
	}
	if firstCount <= 0 {
		testingHandle.Fatalf("expected positive token count, got %d", firstCount)
	}
	secondCount, secondError := counter.CountString(fixedInput)
	if secondError != nil {
		testingHandle.Fatalf("CountString error: %v", secondError)
	}
	if firstCount != secondCount {
		testingHandle.Fatalf("token count not deterministic: %d then %d", firstCount, secondCount)
	}
}

// TestNewCounterUnknownNameFallsBack verifies an unresolvable name falls back
// to the default encoding instead of failing.
func TestNewCounterUnknownNameFallsBack(testingHandle *testing.T) {
	counter, resolvedName, counterError := NewCounter("no-such-model")
	if counterError != nil {
		testingHandle.Skipf("encoding unavailable: %v", counterError)
	}
	if counter == nil {
		testingHandle.Fatalf("expected non-nil counter")
	}
	if resolvedName != DefaultEncodingName {
		testingHandle.Fatalf("expected fallback to %q, got %q", DefaultEncodingName, resolvedName)
	}
}
