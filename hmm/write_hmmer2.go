package hmm

import (
	"bufio"
	"fmt"
	"io"

	"github.com/DaGaMs/Logomat/score"
)

func writeHMMER2(out io.Writer, prof *Profile) (err error) {
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

	f2 := score.FormatHMMER2
	w("%s", prof.Version)
	w("NAME  %s", prof.Name)
	w("ACC   %s", prof.Acc)
	if len(prof.Desc) > 0 {
		w("DESC  %s", prof.Desc)
	}
	w("LENG  %d", prof.Length)
	w("ALPH  %s", alphClass(prof))
	if prof.NumSeqs > 0 {
		w("NSEQ  %d", prof.NumSeqs)
	}
	if len(prof.Date) > 0 {
		w("DATE  %s", prof.Date)
	}
	if prof.Map != nil {
		w("MAP   yes")
	}
	if prof.Special != nil {
		w("XT    %s", joinScores(encodeHMMER2(prof.Special, nil), f2, 6))
	}
	if prof.NullTrans != nil {
		w("NULT  %s", joinScores(encodeHMMER2(prof.NullTrans, nil), f2, 6))
	}
	w("NULE  %s", joinScores(prof.NullScore, f2, 6))
	if prof.HasEvd {
		w("EVD   %.4f  %.4f", prof.EvdLambda, prof.EvdNu)
	}

	w("HMM   %s", joinSymbols(prof.Alphabet, 6))
	w("      %s", "  m->m   m->i   m->d   i->m   i->i   d->m   d->d   b->m   m->e")
	w("      %s", joinScores(prof.StartScore, f2, 6))
	for i := 0; i < prof.Length; i++ {
		state := i + 1
		if col, ok := prof.Map[state]; ok {
			w("%6d %s %6d", state, joinScores(prof.MatchScore[i], f2, 6), col)
		} else {
			w("%6d %s", state, joinScores(prof.MatchScore[i], f2, 6))
		}
		w("     - %s", joinScores(prof.InsertScore[i], f2, 6))
		w("     - %s", joinScores(prof.TransScore[i], f2, 6))
	}
	w("//")
	return buf.Flush()
}

// encodeHMMER2 re-encodes a probability vector that has no stored
// score plane (XT, NULT). backgrounds as in probsFromHMMER2.
func encodeHMMER2(ps, backgrounds []float64) []float64 {
	out := make([]float64, len(ps))
	for i, p := range ps {
		bg := 1.0
		if backgrounds != nil {
			bg = backgrounds[i]
		}
		out[i] = score.ToHMMER2(p, bg)
	}
	return out
}
