package utils_test

import (
	"testing"

	"github.com/dibekkz/dibek/internal/core/utils"
	"github.com/stretchr/testify/assert"
)

func TestValidateBIN(t *testing.T) {
	type binTest struct {
		name  string
		bin   string
		valid bool
	}

	tests := []binTest{
		{
			// Halyk Bank, control digit from the first weighting pass.
			name:  "valid first pass",
			bin:   "940140000385",
			valid: true,
		},
		{
			// IDIA Market, first pass sums to 10 so the repeat pass decides.
			name:  "valid repeat pass",
			bin:   "100340000179",
			valid: true,
		},
		{
			name:  "valid constructed",
			bin:   "210440012348",
			valid: true,
		},
		{
			name:  "valid constructed 2",
			bin:   "120940000016",
			valid: true,
		},
		{
			name:  "surrounding whitespace ignored",
			bin:   "  940140000385\n",
			valid: true,
		},
		{
			name:  "wrong control digit",
			bin:   "940140000384",
			valid: false,
		},
		{
			name:  "repeat pass mismatch",
			bin:   "123456789012",
			valid: false,
		},
		{
			name:  "empty",
			bin:   "",
			valid: false,
		},
		{
			name:  "too short",
			bin:   "94014000038",
			valid: false,
		},
		{
			name:  "too long",
			bin:   "9401400003850",
			valid: false,
		},
		{
			name:  "letter inside",
			bin:   "94014000038x",
			valid: false,
		},
		{
			name:  "inner whitespace",
			bin:   "940140 00385",
			valid: false,
		},
		{
			name:  "non ascii digits",
			bin:   "９４０１４０００３８５９",
			valid: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.valid, utils.ValidateBIN(test.bin))
		})
	}
}

func TestValidateBIN_Idempotent(t *testing.T) {
	for _, bin := range []string{"940140000385", "940140000384", "", "not a bin"} {
		first := utils.ValidateBIN(bin)
		assert.Equal(t, first, utils.ValidateBIN(bin), bin)
	}
}

// Both weighting passes of 40000000052x sum to 10, so no twelfth digit can
// complete it.
func TestValidateBIN_NoControlDigitExists(t *testing.T) {
	const prefix = "40000000052"

	assert.Equal(t, -1, utils.BINCheckDigit(prefix))
	for d := '0'; d <= '9'; d++ {
		assert.False(t, utils.ValidateBIN(prefix+string(d)))
	}
}

func TestBINCheckDigit(t *testing.T) {
	assert.Equal(t, 5, utils.BINCheckDigit("94014000038"))
	assert.Equal(t, 9, utils.BINCheckDigit("10034000017"))
	assert.Equal(t, -1, utils.BINCheckDigit(""))
	assert.Equal(t, -1, utils.BINCheckDigit("940140000385"))
	assert.Equal(t, -1, utils.BINCheckDigit("9401400003a"))
}

// Every valid BIN must re-derive its own last digit, and flipping that
// digit must always break validation.
func TestBINCheckDigit_Rederivation(t *testing.T) {
	valid := []string{
		"940140000385",
		"100340000179",
		"210440012348",
		"120940000016",
	}

	for _, bin := range valid {
		check := utils.BINCheckDigit(bin[:11])
		assert.Equal(t, int(bin[11]-'0'), check, bin)

		for d := '0'; d <= '9'; d++ {
			mutated := bin[:11] + string(d)
			assert.Equal(t, mutated == bin, utils.ValidateBIN(mutated), mutated)
		}
	}
}
