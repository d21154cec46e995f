// Package score converts between emission/transition probabilities and
// the two score encodings used by profile HMM files: HMMER2's integer
// log-odds scores (1000 * log2(p / background), rounded) and HMMER3's
// negated natural logs (-ln p, printed with five decimals).
//
// Both encodings share the textual sentinel '*' for zero probability.
package score

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// MinScore is the score-space stand-in for zero probability. The value
// is HMMER's own "impossible score" constant. It originated as the
// integer floor of the HMMER2 fixed-point encoding and is kept
// verbatim as the HMMER3 sentinel too, so that '*' round-trips exactly
// across both generations.
const MinScore = -987654321

// scale is the fixed-point multiplier of the HMMER2 encoding.
const scale = 1000.0

// ErrInvalidToken is returned for a token that is neither a number nor
// the '*' sentinel.
var ErrInvalidToken = errors.New("score: invalid token")

// Parse reads a single score token. The sentinel '*' maps to MinScore.
// Integer tokens (HMMER2) and decimal tokens (HMMER3) are both
// accepted; the caller knows which generation it is decoding.
func Parse(tok string) (float64, error) {
	if tok == "*" {
		return MinScore, nil
	}
	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidToken, tok)
	}
	return f, nil
}

// FromHMMER2 decodes a HMMER2 integer score into a probability,
// relative to the given background probability.
func FromHMMER2(s, background float64) float64 {
	if s <= MinScore {
		return 0
	}
	return background * math.Exp2(s/scale)
}

// ToHMMER2 encodes a probability as a HMMER2 integer score relative to
// the given background probability. Zero probability encodes as
// MinScore.
func ToHMMER2(p, background float64) float64 {
	if p <= 0 {
		return MinScore
	}
	return math.Floor(0.5 + scale*math.Log2(p/background))
}

// FormatHMMER2 renders a HMMER2 score as it appears in a file. Any
// score at or below MinScore renders as the '*' sentinel.
func FormatHMMER2(s float64) string {
	if s <= MinScore {
		return "*"
	}
	return strconv.Itoa(int(s))
}

// FromHMMER3 decodes a HMMER3 score (-ln p) into a probability. The
// sentinel decodes to exactly 0; exp(-MinScore) would otherwise
// overflow to +Inf and leak into probability space.
func FromHMMER3(s float64) float64 {
	if s <= MinScore {
		return 0
	}
	return math.Exp(-s)
}

// ToHMMER3 encodes a probability as a HMMER3 score. Zero probability
// encodes as MinScore.
func ToHMMER3(p float64) float64 {
	if p <= 0 {
		return MinScore
	}
	return -math.Log(p)
}

// FormatHMMER3 renders a HMMER3 score with the format's fixed five
// decimals, or '*' for the sentinel.
func FormatHMMER3(s float64) string {
	if s <= MinScore {
		return "*"
	}
	if s == 0 {
		s = 0 // normalize -0 from -math.Log(1)
	}
	return strconv.FormatFloat(s, 'f', 5, 64)
}
