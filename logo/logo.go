/*
Package logo computes the numeric layout a sequence logo is drawn
from: per-column widths from a forward hitting-probability recurrence,
and per-symbol letter heights from the information content of each
emission distribution. Rendering itself (fonts, colors, rasterization)
is someone else's problem; a Layout is the entire interface to it.

Columns are laid out on a doubled axis: even indices are match states,
odd indices the insert state that follows them.
*/
package logo

import (
	"errors"
	"fmt"
	"math"

	"github.com/DaGaMs/Logomat/hmm"
)

// Policy selects how a column's information content is divided among
// its letters.
type Policy int

const (
	// EmissionWeighted apportions the column's relative entropy by
	// native emission probability. The default.
	EmissionWeighted Policy = iota

	// LogOddsWeighted apportions it only among over-represented
	// symbols, weighted by their renormalized positive log-odds.
	LogOddsWeighted
)

// minLetterHeight is the smallest stack contribution still worth
// drawing; anything below it is marked absent rather than measured as
// a sliver.
const minLetterHeight = 1e-4

// ErrStartTransitionArity is returned when the start-transition vector
// is neither the 3-wide nor the 7-wide form.
var ErrStartTransitionArity = errors.New("logo: start transition vector must have 3 or 7 entries")

// A Letter is one symbol's slot in a column stack. Present
// distinguishes "no contribution, draw nothing" from a measured zero;
// absent letters must be skipped entirely by the renderer, not drawn
// as empty glyphs.
type Letter struct {
	Height  float64
	Present bool
}

// A Layout is the flattened geometry of one profile's logo. Widths and
// Heights run over the doubled column axis, so both have 2*Length
// entries; Heights rows are ordered like the profile's alphabet.
// MaxHeight is the largest summed column stack, used by the renderer
// to scale the vertical axis.
type Layout struct {
	Widths    []float64
	Heights   [][]Letter
	MaxHeight float64
}

// Compute derives the logo layout for a profile under the given height
// policy.
func Compute(prof *hmm.Profile, policy Policy) (*Layout, error) {
	match, insert, _, err := HittingProbabilities(prof)
	if err != nil {
		return nil, err
	}

	lay := &Layout{
		Widths:  make([]float64, 2*prof.Length),
		Heights: make([][]Letter, 2*prof.Length),
	}
	for i := 0; i < prof.Length; i++ {
		lay.Widths[2*i] = match[i]
		lay.Widths[2*i+1] = insertWidth(insert[i], prof.Transitions[i][hmm.TII])
		lay.Heights[2*i] = stack(prof.MatchEmit[i], prof.Null, policy)
		lay.Heights[2*i+1] = stack(prof.InsertEmit[i], prof.Null, policy)
	}

	for _, col := range lay.Heights {
		total := 0.0
		for _, l := range col {
			if l.Present {
				total += l.Height
			}
		}
		if total > lay.MaxHeight {
			lay.MaxHeight = total
		}
	}
	return lay, nil
}

// HittingProbabilities runs the forward recurrence over the profile,
// returning per column the probability of occupying the match, insert
// and delete state. The recurrence is seeded from the leading three
// start-transition slots (begin->match, begin->insert0, begin->delete)
// of either the 3-wide or the 7-wide start vector.
func HittingProbabilities(prof *hmm.Profile) (match, insert, del []float64, err error) {
	if len(prof.Start) != 3 && len(prof.Start) != 7 {
		return nil, nil, nil, fmt.Errorf("%w: got %d", ErrStartTransitionArity, len(prof.Start))
	}
	n := prof.Length
	match = make([]float64, n)
	insert = make([]float64, n)
	del = make([]float64, n)
	if n == 0 {
		return match, insert, del, nil
	}

	t := prof.Transitions
	match[0] = prof.Start[0]
	del[0] = prof.Start[2]
	insert[0] = match[0] * t[0][hmm.TMI]
	for i := 1; i < n; i++ {
		match[i] = insert[i-1] + match[i-1]*t[i-1][hmm.TMM] + del[i-1]*t[i-1][hmm.TDM]
		insert[i] = match[i] * t[i][hmm.TMI]
		del[i] = match[i-1]*t[i-1][hmm.TMD] + del[i-1]*t[i-1][hmm.TDD]
	}
	return match, insert, del, nil
}

// insertWidth scales the insert hitting probability by the state's
// expected dwell length, 1/(1 - P(I->I)). A non-finite result (the
// dwell is undefined) is clamped to exactly 0 so nothing downstream
// sees an Inf or NaN.
func insertWidth(hit, pII float64) float64 {
	w := hit / (1 - pII)
	if math.IsInf(w, 0) || math.IsNaN(w) {
		return 0
	}
	return w
}

// stack builds one column's letter stack: per-symbol log-odds against
// the null model, the column's relative entropy as the total stack
// height, and the policy's apportionment of that total.
func stack(emit, null []float64, policy Policy) []Letter {
	k := len(emit)
	odds := make([]float64, k)
	relent := 0.0
	for s := 0; s < k; s++ {
		if emit[s] > 0 && null[s] > 0 {
			odds[s] = math.Log2(emit[s] / null[s])
			relent += emit[s] * odds[s]
		} else {
			odds[s] = math.Inf(-1)
		}
	}

	letters := make([]Letter, k)
	switch policy {
	case LogOddsWeighted:
		pos := 0.0
		for s := 0; s < k; s++ {
			if odds[s] > 0 {
				pos += odds[s]
			}
		}
		if pos <= 0 {
			return letters
		}
		for s := 0; s < k; s++ {
			if odds[s] <= 0 {
				continue
			}
			if h := relent * odds[s] / pos; h >= minLetterHeight {
				letters[s] = Letter{Height: h, Present: true}
			}
		}
	default:
		for s := 0; s < k; s++ {
			if h := emit[s] * relent; h >= minLetterHeight {
				letters[s] = Letter{Height: h, Present: true}
			}
		}
	}
	return letters
}
