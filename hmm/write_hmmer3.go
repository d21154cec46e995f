package hmm

import (
	"bufio"
	"fmt"
	"io"

	"github.com/DaGaMs/Logomat/score"
)

func writeHMMER3(out io.Writer, prof *Profile) (err error) {
	defer func() {
		if r := recover(); r != nil {
			var ok bool
			if err, ok = r.(error); ok {
				return
			}
			panic(r)
		}
	}()
	buf := bufio.NewWriter(out)
	w := func(format string, v ...interface{}) {
		s := fmt.Sprintf(format+"\n", v...)
		if _, err := buf.WriteString(s); err != nil {
			panic(err)
		}
	}

	f3 := score.FormatHMMER3
	w("%s", prof.Version)
	w("NAME  %s", prof.Name)
	w("ACC   %s", prof.Acc)
	if len(prof.Desc) > 0 {
		w("DESC  %s", prof.Desc)
	}
	w("LENG  %d", prof.Length)
	w("ALPH  %s", alphClass(prof))
	if prof.Map != nil {
		w("MAP   yes")
	}
	if prof.Consensus != nil {
		w("CONS  yes")
	}
	if len(prof.Date) > 0 {
		w("DATE  %s", prof.Date)
	}
	if prof.NumSeqs > 0 {
		w("NSEQ  %d", prof.NumSeqs)
	}

	w("HMM   %s", joinSymbols(prof.Alphabet, 8))
	w("      %s", "    m->m     m->i     m->d     i->m     i->i     d->m     d->d")
	if prof.CompoNull != nil {
		w("  COMPO %s", joinScores(encodeHMMER3(prof.CompoNull), f3, 8))
	}
	w("        %s", joinScores(prof.NullScore, f3, 8))
	w("        %s", joinScores(prof.StartScore, f3, 8))
	for i := 0; i < prof.Length; i++ {
		state := i + 1
		mapTok := "-"
		if col, ok := prof.Map[state]; ok {
			mapTok = fmt.Sprintf("%d", col)
		}
		annot := fmt.Sprintf("%6s %c %c", mapTok, annotAt(prof.RefAnnot, i), annotAt(prof.CaseAnnot, i))
		if prof.Consensus != nil {
			annot = fmt.Sprintf("%6s %c %c %c", mapTok, prof.Consensus[i],
				annotAt(prof.RefAnnot, i), annotAt(prof.CaseAnnot, i))
		}
		w("%7d %s %s", state, joinScores(prof.MatchScore[i], f3, 8), annot)
		w("        %s", joinScores(prof.InsertScore[i], f3, 8))
		w("        %s", joinScores(prof.TransScore[i], f3, 8))
	}
	w("//")
	return buf.Flush()
}

// encodeHMMER3 re-encodes a probability vector that has no stored
// score plane (COMPO).
func encodeHMMER3(ps []float64) []float64 {
	out := make([]float64, len(ps))
	for i, p := range ps {
		out[i] = score.ToHMMER3(p)
	}
	return out
}

func annotAt(v []byte, i int) byte {
	if i < len(v) {
		return v[i]
	}
	return '-'
}
