package hmm

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/DaGaMs/Logomat/score"
)

// Read parses a profile HMM from r. The whole input is buffered before
// parsing begins; there is no streaming mode.
func Read(r io.Reader) (*Profile, error) {
	bs, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("hmm: error reading input: %s", err)
	}
	return Parse(bs)
}

// Parse parses a profile HMM from a complete text buffer. The version
// token on the first line selects one of the two format generations;
// each generation is handled by its own self-contained grammar.
func Parse(text []byte) (*Profile, error) {
	lr := newLineReader(text)
	first, ok := lr.next()
	if !ok {
		return nil, fmt.Errorf("%w: empty input", ErrHeaderMalformed)
	}
	switch {
	case hasPrefix(first, "HMMER3"):
		return readHMMER3(lr, str(first))
	case hasPrefix(first, "HMMER2"):
		return readHMMER2(lr, str(first))
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, str(first))
}

// lineReader walks the buffered input one trimmed, non-empty line at a
// time.
type lineReader struct {
	lines [][]byte
	pos   int
}

func newLineReader(text []byte) *lineReader {
	return &lineReader{lines: bytes.Split(text, []byte{'\n'})}
}

func (lr *lineReader) next() ([]byte, bool) {
	for lr.pos < len(lr.lines) {
		line := trim(lr.lines[lr.pos])
		lr.pos++
		if len(line) > 0 {
			return line, true
		}
	}
	return nil, false
}

// demand returns the next line, or a RowError naming what was expected
// when the input ends early.
func (lr *lineReader) demand(what string) ([]byte, error) {
	line, ok := lr.next()
	if !ok {
		return nil, &RowError{Line: fmt.Sprintf("unexpected EOF (expected %s)", what)}
	}
	return line, nil
}

// modelLine reports whether a header-section line begins the model
// section, i.e. the "HMM" marker followed by the alphabet tokens.
func modelLine(line []byte) bool {
	return len(line) > 3 && line[0] == 'H' && line[1] == 'M' && line[2] == 'M' &&
		(line[3] == ' ' || line[3] == '\t')
}

// parseScores reads every token as a score. A bad token surfaces as a
// RowError carrying the whole line.
func parseScores(fields []string, line []byte) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		s, err := score.Parse(f)
		if err != nil {
			return nil, &RowError{Line: str(line)}
		}
		out[i] = s
	}
	return out, nil
}

func hasPrefix(bs []byte, prefix string) bool {
	return bytes.HasPrefix(bs, []byte(prefix))
}

func trim(bs []byte) []byte {
	return bytes.TrimSpace(bs)
}

func str(bs []byte) string {
	return string(bytes.TrimSpace(bs))
}

func tokens(line []byte) []string {
	return strings.Fields(string(line))
}
