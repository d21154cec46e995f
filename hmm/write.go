package hmm

import (
	"fmt"
	"io"
	"strings"
)

// Write serializes prof in its native generation's text format. The
// score plane is written verbatim, so a profile that came from Read
// reproduces its scores exactly.
func Write(w io.Writer, prof *Profile) error {
	switch prof.Generation {
	case HMMER2:
		return writeHMMER2(w, prof)
	case HMMER3:
		return writeHMMER3(w, prof)
	}
	return fmt.Errorf("%w: generation %d", ErrUnsupportedVersion, prof.Generation)
}

// alphClass returns the ALPH header value, deriving one from the
// alphabet size when the profile has none recorded.
func alphClass(prof *Profile) string {
	if len(prof.AlphClass) > 0 {
		return prof.AlphClass
	}
	if len(prof.Alphabet) == 4 {
		return "Nucleic"
	}
	return "Amino"
}

func joinScores(ss []float64, format func(float64) string, width int) string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fmt.Sprintf("%*s", width, format(s))
	}
	return strings.Join(out, " ")
}

func joinSymbols(alphabet []byte, width int) string {
	out := make([]string, len(alphabet))
	for i, r := range alphabet {
		out[i] = fmt.Sprintf("%*c", width, r)
	}
	return strings.Join(out, " ")
}
