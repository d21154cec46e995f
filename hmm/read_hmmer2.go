package hmm

import (
	"fmt"
	"strconv"

	"github.com/DaGaMs/Logomat/internal/logger"
	"github.com/DaGaMs/Logomat/score"
)

// readHMMER2 parses the second-generation grammar: a tagged header,
// then the model section introduced by the alphabet line, one
// transition-name line, one 3-wide start-transition line, and a
// triplet of lines per column until the '//' terminator.
func readHMMER2(lr *lineReader, version string) (*Profile, error) {
	prof := &Profile{
		Version:    version,
		Generation: HMMER2,
	}

	// The NULE line appears before the alphabet is known, so its
	// fields are held raw and decoded once the model section begins.
	var nullFields []string
	declared := -1

	var alphaLine []byte
	for {
		line, ok := lr.next()
		if !ok {
			return nil, fmt.Errorf("%w: no model section", ErrHeaderMalformed)
		}
		if modelLine(line) {
			alphaLine = line
			break
		}
		switch {
		case hasPrefix(line, "NAME"):
			prof.Name = str(line[4:])
		case hasPrefix(line, "ACC"):
			prof.Acc = str(line[3:])
		case hasPrefix(line, "DESC"):
			prof.Desc = str(line[4:])
		case hasPrefix(line, "LENG"):
			n, err := strconv.Atoi(str(line[4:]))
			if err != nil {
				return nil, fmt.Errorf("%w: bad length %q", ErrHeaderMalformed, str(line[4:]))
			}
			declared = n
		case hasPrefix(line, "ALPH"):
			prof.AlphClass = str(line[4:])
		case hasPrefix(line, "NSEQ"):
			// Not fatal if unreadable; the field is informational.
			prof.NumSeqs, _ = strconv.Atoi(str(line[4:]))
		case hasPrefix(line, "DATE"):
			prof.Date = str(line[4:])
		case hasPrefix(line, "XT"):
			ss, err := parseScores(tokens(line[2:]), line)
			if err != nil {
				return nil, fmt.Errorf("%w: bad XT line", ErrHeaderMalformed)
			}
			if len(ss) != 8 {
				return nil, fmt.Errorf("%w: XT needs 8 fields, got %d", ErrHeaderMalformed, len(ss))
			}
			prof.Special = probsFromHMMER2(ss, nil)
		case hasPrefix(line, "NULT"):
			ss, err := parseScores(tokens(line[4:]), line)
			if err != nil || len(ss) != 2 {
				return nil, fmt.Errorf("%w: bad NULT line", ErrHeaderMalformed)
			}
			prof.NullTrans = probsFromHMMER2(ss, nil)
		case hasPrefix(line, "NULE"):
			nullFields = tokens(line[4:])
		case hasPrefix(line, "EVD"):
			fields := tokens(line[3:])
			if len(fields) != 2 {
				return nil, fmt.Errorf("%w: EVD needs 2 fields, got %d", ErrHeaderMalformed, len(fields))
			}
			lambda, err1 := strconv.ParseFloat(fields[0], 64)
			nu, err2 := strconv.ParseFloat(fields[1], 64)
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("%w: bad EVD line", ErrHeaderMalformed)
			}
			prof.EvdLambda, prof.EvdNu, prof.HasEvd = lambda, nu, true
		}
	}

	if len(prof.Name) == 0 || len(prof.Acc) == 0 || declared < 0 {
		return nil, fmt.Errorf("%w: name, accession and length are required", ErrHeaderMalformed)
	}

	for _, tok := range tokens(alphaLine[3:]) {
		prof.Alphabet = append(prof.Alphabet, tok[0])
	}
	k := len(prof.Alphabet)

	// The null model's background is uniform over the alphabet. A
	// missing NULE line falls back to the uniform model itself.
	if nullFields == nil {
		logger.Logger.Warn("no NULE line; defaulting to uniform null model",
			"name", prof.Name)
		prof.Null = make([]float64, k)
		prof.NullScore = make([]float64, k)
		for i := range prof.Null {
			prof.Null[i] = 1.0 / float64(k)
		}
	} else {
		if len(nullFields) != k {
			return nil, fmt.Errorf("%w: NULE needs %d fields, got %d",
				ErrHeaderMalformed, k, len(nullFields))
		}
		ss, err := parseScores(nullFields, alphaLine)
		if err != nil {
			return nil, fmt.Errorf("%w: bad NULE line", ErrHeaderMalformed)
		}
		prof.NullScore = ss
		prof.Null = make([]float64, k)
		for i, s := range ss {
			prof.Null[i] = score.FromHMMER2(s, 1.0/float64(k))
		}
	}

	// Transition-name line: a section marker only, recognized by its
	// arrow tokens, then the begin-state transitions
	// (b->m1, b->i0, b->d1).
	line, err := lr.demand("transition name line")
	if err != nil {
		return nil, fmt.Errorf("%w: missing transition name line", ErrHeaderMalformed)
	}
	if !hasArrow(line) {
		return nil, fmt.Errorf("%w: expected transition name line, got %q",
			ErrHeaderMalformed, str(line))
	}
	line, err = lr.demand("start transitions")
	if err != nil {
		return nil, err
	}
	ss, err := parseScores(tokens(line), line)
	if err != nil {
		return nil, err
	}
	if len(ss) != 3 {
		return nil, &RowError{Line: str(line)}
	}
	prof.StartScore = ss
	prof.Start = probsFromHMMER2(ss, nil)

	for {
		line, ok := lr.next()
		if !ok || hasPrefix(line, "//") {
			break
		}
		if err := readHMMER2Node(lr, prof, line, k); err != nil {
			return nil, err
		}
	}

	rows := len(prof.MatchEmit)
	if declared != rows {
		logger.Logger.Warn("declared length disagrees with parsed columns; using parsed count",
			"name", prof.Name, "declared", declared, "parsed", rows)
	}
	prof.Length = rows
	return prof, nil
}

// readHMMER2Node reads one column triplet. matchLine is the already
// consumed first line of the triplet.
func readHMMER2Node(lr *lineReader, prof *Profile, matchLine []byte, k int) error {
	fields := tokens(matchLine)

	// Match emission line: 1-based state index, |alphabet| scores,
	// and optionally one alignment-column integer.
	if len(fields) != k+1 && len(fields) != k+2 {
		return &RowError{Line: str(matchLine)}
	}
	state, err := strconv.Atoi(fields[0])
	if err != nil {
		return &RowError{Line: str(matchLine)}
	}
	ss, err := parseScores(fields[1:k+1], matchLine)
	if err != nil {
		return err
	}
	prof.MatchScore = append(prof.MatchScore, ss)
	prof.MatchEmit = append(prof.MatchEmit, probsFromHMMER2(ss, prof.Null))
	if len(fields) == k+2 {
		col, err := strconv.Atoi(fields[k+1])
		if err != nil {
			return &RowError{Line: str(matchLine)}
		}
		if prof.Map == nil {
			prof.Map = make(map[int]int)
		}
		prof.Map[state] = col
	}

	// Insert emission line: placeholder marker, |alphabet| scores.
	line, err := lr.demand("insert emissions")
	if err != nil {
		return err
	}
	fields = tokens(line)
	if len(fields) != k+1 || fields[0] != "-" {
		return &RowError{Line: str(line)}
	}
	ss, err = parseScores(fields[1:], line)
	if err != nil {
		return err
	}
	prof.InsertScore = append(prof.InsertScore, ss)
	prof.InsertEmit = append(prof.InsertEmit, probsFromHMMER2(ss, prof.Null))

	// Transition line: distinguished from an emission line purely by
	// carrying exactly the 9-wide transition arity.
	line, err = lr.demand("transitions")
	if err != nil {
		return err
	}
	fields = tokens(line)
	if len(fields) != arityHMMER2+1 || fields[0] != "-" {
		return &RowError{Line: str(line)}
	}
	ss, err = parseScores(fields[1:], line)
	if err != nil {
		return err
	}
	prof.TransScore = append(prof.TransScore, ss)
	prof.Transitions = append(prof.Transitions, probsFromHMMER2(ss, nil))
	return nil
}

// probsFromHMMER2 decodes a score vector. backgrounds supplies a
// per-entry background probability; nil means 1 (transition scores).
func probsFromHMMER2(ss, backgrounds []float64) []float64 {
	out := make([]float64, len(ss))
	for i, s := range ss {
		bg := 1.0
		if backgrounds != nil {
			bg = backgrounds[i]
		}
		out[i] = score.FromHMMER2(s, bg)
	}
	return out
}

func hasArrow(line []byte) bool {
	for i := 0; i+1 < len(line); i++ {
		if line[i] == '-' && line[i+1] == '>' {
			return true
		}
	}
	return false
}
