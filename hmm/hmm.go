package hmm

// Generation identifies which of the two incompatible file format
// generations a Profile was read from.
type Generation int

const (
	HMMER2 Generation = 2
	HMMER3 Generation = 3
)

// Transition row indices. Both generations order the leading seven
// transitions identically; HMMER2 rows carry two extra trailing
// entries for the begin and end states.
const (
	TMM = iota
	TMI
	TMD
	TIM
	TII
	TDM
	TDD
	TBM // HMMER2 only
	TME // HMMER2 only
)

const (
	arityHMMER2 = 9
	arityHMMER3 = 7
)

// A Profile is one profile HMM. Matrices indexed by column are L long,
// where L = Length. Emission rows are ordered like Alphabet.
type Profile struct {
	Name string
	Acc  string
	Desc string

	// Version is the complete first line of the file, e.g.
	// "HMMER3/f [3.1b2 | February 2015]".
	Version    string
	Generation Generation

	// SubVersion is the HMMER3 sub-format letter following the slash
	// ("b", "f"). Empty for HMMER2.
	SubVersion string

	// AlphClass is the ALPH header value as written ("Nucleic",
	// "amino", "DNA", ...). Alphabet is the ordered symbol list from
	// the model section header, which is authoritative for matrix
	// dimensions.
	AlphClass string
	Alphabet  []byte

	Length  int
	NumSeqs int
	Date    string

	// Probability plane.
	MatchEmit   [][]float64 // L x |Alphabet|
	InsertEmit  [][]float64 // L x |Alphabet|
	Transitions [][]float64 // L x 9 (HMMER2) or L x 7 (HMMER3)
	Null        []float64   // |Alphabet|
	Start       []float64   // 3 (HMMER2) or 7 (HMMER3)

	// Score plane, parallel to the probability plane above. Write
	// serializes from here, so scores survive a read/write round trip
	// exactly.
	MatchScore  [][]float64
	InsertScore [][]float64
	TransScore  [][]float64
	NullScore   []float64
	StartScore  []float64

	NullTrans []float64 // HMMER2 NULT line, 2 entries
	Special   []float64 // HMMER2 XT line (N/E/C/J state pairs), 8 entries
	CompoNull []float64 // HMMER3 COMPO line, if present

	// EVD calibration (HMMER2). Valid only when HasEvd is set.
	EvdLambda float64
	EvdNu     float64
	HasEvd    bool

	// Map relates a 1-based match state index to the column of the
	// original alignment the state was built from. Only states that
	// carried a map annotation have entries.
	Map map[int]int

	// Per-column annotation symbols from HMMER3 match lines.
	// Consensus is only present for sub-formats that carry it.
	Consensus []byte
	RefAnnot  []byte
	CaseAnnot []byte
}

// TransitionArity returns the width of a transition row for the
// profile's generation.
func (p *Profile) TransitionArity() int {
	if p.Generation == HMMER2 {
		return arityHMMER2
	}
	return arityHMMER3
}

// Slice derives the column range [start, end) as a new, independent
// Profile. The original is not modified and shares no storage with the
// result. Start transitions and null vectors are copied verbatim; map
// entries are re-keyed to the sliced state numbering.
func (p *Profile) Slice(start, end int) *Profile {
	if start < 0 {
		start = 0
	}
	if end > p.Length {
		end = p.Length
	}
	if start > end {
		start = end
	}

	s := *p
	s.Length = end - start

	s.MatchEmit = copyMatrix(p.MatchEmit[start:end])
	s.InsertEmit = copyMatrix(p.InsertEmit[start:end])
	s.Transitions = copyMatrix(p.Transitions[start:end])
	s.MatchScore = copyMatrix(p.MatchScore[start:end])
	s.InsertScore = copyMatrix(p.InsertScore[start:end])
	s.TransScore = copyMatrix(p.TransScore[start:end])

	s.Alphabet = copyVector(p.Alphabet)
	s.Null = copyFloats(p.Null)
	s.NullScore = copyFloats(p.NullScore)
	s.Start = copyFloats(p.Start)
	s.StartScore = copyFloats(p.StartScore)
	s.NullTrans = copyFloats(p.NullTrans)
	s.Special = copyFloats(p.Special)
	s.CompoNull = copyFloats(p.CompoNull)

	if p.Consensus != nil {
		s.Consensus = copyVector(p.Consensus[start:end])
	}
	if p.RefAnnot != nil {
		s.RefAnnot = copyVector(p.RefAnnot[start:end])
	}
	if p.CaseAnnot != nil {
		s.CaseAnnot = copyVector(p.CaseAnnot[start:end])
	}

	s.Map = nil
	if p.Map != nil {
		s.Map = make(map[int]int)
		for state, col := range p.Map {
			if state > start && state <= end {
				s.Map[state-start] = col
			}
		}
	}
	return &s
}

func copyMatrix(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = copyFloats(row)
	}
	return out
}

func copyFloats(v []float64) []float64 {
	if v == nil {
		return nil
	}
	out := make([]float64, len(v))
	copy(out, v)
	return out
}

func copyVector(v []byte) []byte {
	if v == nil {
		return nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out
}
