package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinel(t *testing.T) {
	s, err := Parse("*")
	require.NoError(t, err)
	assert.Equal(t, float64(MinScore), s)

	assert.Equal(t, 0.0, FromHMMER2(s, 0.25))
	assert.Equal(t, 0.0, FromHMMER3(s))
	assert.Equal(t, "*", FormatHMMER2(s))
	assert.Equal(t, "*", FormatHMMER3(s))

	// Encoding zero probability and anything below the floor comes
	// back as the sentinel too.
	assert.Equal(t, "*", FormatHMMER2(ToHMMER2(0, 0.25)))
	assert.Equal(t, "*", FormatHMMER3(ToHMMER3(0)))
	assert.Equal(t, "*", FormatHMMER2(MinScore-42))
}

func TestInvalidToken(t *testing.T) {
	for _, tok := range []string{"x12", "--", "1.2.3", ""} {
		_, err := Parse(tok)
		require.Error(t, err, "token %q", tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestHMMER2KnownScore(t *testing.T) {
	// Null emission score 595 over the uniform amino background
	// decodes to 0.07552 at five decimals.
	assert.InDelta(t, 0.07552, FromHMMER2(595, 1.0/20), 1e-5)
}

func TestHMMER2RoundTrip(t *testing.T) {
	probs := []float64{0.5, 0.25, 0.125, 0.07552, 0.001}
	for _, bg := range []float64{1.0, 0.25, 1.0 / 20} {
		for _, p := range probs {
			s := ToHMMER2(p, bg)
			back := FromHMMER2(s, bg)
			// Rounding to integer score space costs at most a factor
			// of 2^(1/2000) in probability.
			assert.InDelta(t, p, back, p*7e-4)
			// Integer scores re-encode exactly.
			assert.Equal(t, s, ToHMMER2(back, bg))
		}
	}
}

func TestHMMER3RoundTrip(t *testing.T) {
	for _, p := range []float64{1, 0.5, 0.25, 0.07552, 1e-4} {
		s := ToHMMER3(p)
		assert.InDelta(t, p, FromHMMER3(s), 1e-12)

		tok := FormatHMMER3(s)
		s2, err := Parse(tok)
		require.NoError(t, err)
		assert.InDelta(t, s, s2, 1e-5)
	}
	// -log(1) must not print as negative zero.
	assert.Equal(t, "0.00000", FormatHMMER3(ToHMMER3(1)))
}
