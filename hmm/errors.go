package hmm

import (
	"errors"
	"fmt"
)

var (
	// ErrHeaderMalformed is returned when a required header field
	// (name, accession, length) is missing or unreadable, or when the
	// model section never begins.
	ErrHeaderMalformed = errors.New("hmm: malformed header")

	// ErrUnsupportedVersion is returned when the version token on the
	// first line names neither format generation.
	ErrUnsupportedVersion = errors.New("hmm: unsupported format version")
)

// A RowError is returned for a model-section line whose token count
// matches neither an emission row nor the generation's transition
// arity, or whose tokens cannot be decoded. It carries the offending
// line verbatim. A RowError aborts the parse; no partial model is
// returned.
type RowError struct {
	Line string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("hmm: malformed row %q", e.Line)
}
