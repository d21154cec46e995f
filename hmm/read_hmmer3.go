package hmm

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/DaGaMs/Logomat/internal/logger"
	"github.com/DaGaMs/Logomat/score"
)

// readHMMER3 parses the third-generation grammar: a reduced header
// (this generation has no special or null transitions), the alphabet
// line, a sanity-check line naming the transitions, an optional
// composite-background line, a mandatory null-emission line, a 7-wide
// start-transition line, and a triplet of lines per column until the
// '//' terminator.
func readHMMER3(lr *lineReader, version string) (*Profile, error) {
	prof := &Profile{
		Version:    version,
		Generation: HMMER3,
	}
	if i := strings.Index(version, "/"); i >= 0 && i+1 < len(version) {
		prof.SubVersion = version[i+1 : i+2]
	}

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
			prof.NumSeqs, _ = strconv.Atoi(str(line[4:]))
		case hasPrefix(line, "DATE"):
			prof.Date = str(line[4:])
		}
	}

	if len(prof.Name) == 0 || len(prof.Acc) == 0 || declared < 0 {
		return nil, fmt.Errorf("%w: name, accession and length are required", ErrHeaderMalformed)
	}

	for _, tok := range tokens(alphaLine[3:]) {
		prof.Alphabet = append(prof.Alphabet, tok[0])
	}
	k := len(prof.Alphabet)

	// Sanity check: the line after the alphabet names the canonical
	// transition ordering.
	line, err := lr.demand("transition name line")
	if err != nil {
		return nil, fmt.Errorf("%w: missing transition name line", ErrHeaderMalformed)
	}
	if !bytes.Contains(line, []byte("m->m")) {
		return nil, fmt.Errorf("%w: expected transition name line, got %q",
			ErrHeaderMalformed, str(line))
	}

	line, err = lr.demand("null emissions")
	if err != nil {
		return nil, err
	}
	if hasPrefix(line, "COMPO") {
		ss, perr := parseScores(tokens(line[5:]), line)
		if perr != nil {
			return nil, perr
		}
		if len(ss) != k {
			return nil, &RowError{Line: str(line)}
		}
		prof.CompoNull = probsFromHMMER3(ss)
		line, err = lr.demand("null emissions")
		if err != nil {
			return nil, err
		}
	}

	// Insert-state background emissions double as the null model.
	ss, err := parseScores(tokens(line), line)
	if err != nil {
		return nil, err
	}
	if len(ss) != k {
		return nil, &RowError{Line: str(line)}
	}
	prof.NullScore = ss
	prof.Null = probsFromHMMER3(ss)

	line, err = lr.demand("start transitions")
	if err != nil {
		return nil, err
	}
	ss, err = parseScores(tokens(line), line)
	if err != nil {
		return nil, err
	}
	if len(ss) != arityHMMER3 {
		return nil, &RowError{Line: str(line)}
	}
	prof.StartScore = ss
	prof.Start = probsFromHMMER3(ss)

	for {
		line, ok := lr.next()
		if !ok || hasPrefix(line, "//") {
			break
		}
		if err := readHMMER3Node(lr, prof, line, k); err != nil {
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

// readHMMER3Node reads one column triplet. The match line's trailing
// fields vary by sub-format: alignment-column token, then a consensus
// symbol in formats that carry one, then the reference-annotation and
// case-sensitivity symbols. The variants are told apart by token
// count, never by the header flags.
func readHMMER3Node(lr *lineReader, prof *Profile, matchLine []byte, k int) error {
	fields := tokens(matchLine)
	trailing := len(fields) - 1 - k
	if trailing != 3 && trailing != 4 {
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
	prof.MatchEmit = append(prof.MatchEmit, probsFromHMMER3(ss))

	rest := fields[k+1:]
	if rest[0] != "-" {
		col, err := strconv.Atoi(rest[0])
		if err != nil {
			return &RowError{Line: str(matchLine)}
		}
		if prof.Map == nil {
			prof.Map = make(map[int]int)
		}
		prof.Map[state] = col
	}
	if trailing == 4 {
		prof.Consensus = append(prof.Consensus, rest[1][0])
		rest = rest[1:]
	}
	prof.RefAnnot = append(prof.RefAnnot, rest[1][0])
	prof.CaseAnnot = append(prof.CaseAnnot, rest[2][0])

	line, err := lr.demand("insert emissions")
	if err != nil {
		return err
	}
	fields = tokens(line)
	if len(fields) != k {
		return &RowError{Line: str(line)}
	}
	ss, err = parseScores(fields, line)
	if err != nil {
		return err
	}
	prof.InsertScore = append(prof.InsertScore, ss)
	prof.InsertEmit = append(prof.InsertEmit, probsFromHMMER3(ss))

	line, err = lr.demand("transitions")
	if err != nil {
		return err
	}
	fields = tokens(line)
	if len(fields) != arityHMMER3 {
		return &RowError{Line: str(line)}
	}
	ss, err = parseScores(fields, line)
	if err != nil {
		return err
	}
	prof.TransScore = append(prof.TransScore, ss)
	prof.Transitions = append(prof.Transitions, probsFromHMMER3(ss))
	return nil
}

func probsFromHMMER3(ss []float64) []float64 {
	out := make([]float64, len(ss))
	for i, s := range ss {
		out[i] = score.FromHMMER3(s)
	}
	return out
}
