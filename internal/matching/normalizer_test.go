package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrectOCRText_DollarTokens(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Currency amount is preserved",
			input:    "Total due $1,234.56 today",
			expected: "Total due $1,234.56 today",
		},
		{
			name:     "Short all-digit token is preserved",
			input:    "Fee $123456",
			expected: "Fee $123456",
		},
		{
			name:     "Reference starting with zero and eight chars is rewritten",
			input:    "Seal $0AB12345",
			expected: "Seal S0AB12345",
		},
		{
			name:     "Token containing a letter is rewritten",
			input:    "Booking $TANK99",
			expected: "Booking STANK99",
		},
		{
			name:     "Ten or more digits is rewritten",
			input:    "Ref $1234567890",
			expected: "Ref S1234567890",
		},
		{
			name:     "Small decimal amount is preserved",
			input:    "Charge $0.50 applies",
			expected: "Charge $0.50 applies",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CorrectOCRText(tt.input))
		})
	}
}

func TestCorrectOCRText_CharacterConfusions(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Leading zero before letters becomes O",
			input:    "0CEAN Freight",
			expected: "OCEAN Freight",
		},
		{
			name:     "Zero inside a number is untouched",
			input:    "Weight 1040 kg",
			expected: "Weight 1040 kg",
		},
		{
			name:     "Lowercase l before digits becomes I",
			input:    "Invoice l2345",
			expected: "Invoice I2345",
		},
		{
			name:     "Lowercase l before letters is untouched",
			input:    "lorry details",
			expected: "lorry details",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CorrectOCRText(tt.input))
		})
	}
}

func TestCorrectOCRText_Idempotent(t *testing.T) {
	inputs := []string{
		"Seal $0AB12345 and $1,234.56 plus 0CEAN and l234",
		"$0ABCD123 $TANK99 $1234567890",
		"plain text with no artifacts",
		"",
	}

	for _, input := range inputs {
		once := CorrectOCRText(input)
		twice := CorrectOCRText(once)
		assert.Equal(t, once, twice, "correcting twice must equal correcting once for %q", input)
	}
}
