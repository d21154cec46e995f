package hmm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMMER2WriteRead(t *testing.T) {
	p1, err := Parse([]byte(hmmer2Toy))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, p1))

	p2, err := Parse(buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, p1.Name, p2.Name)
	assert.Equal(t, p1.Acc, p2.Acc)
	assert.Equal(t, p1.Length, p2.Length)
	assert.Equal(t, p1.Alphabet, p2.Alphabet)

	// Write serializes the score plane verbatim, so scores survive
	// the round trip exactly, sentinels included.
	assert.Equal(t, p1.MatchScore, p2.MatchScore)
	assert.Equal(t, p1.InsertScore, p2.InsertScore)
	assert.Equal(t, p1.TransScore, p2.TransScore)
	assert.Equal(t, p1.NullScore, p2.NullScore)
	assert.Equal(t, p1.StartScore, p2.StartScore)
	assert.Equal(t, p1.Map, p2.Map)

	// XT and NULT are re-encoded from probabilities; integer scores
	// are exact under the rounding codec, so these match too.
	require.Len(t, p2.Special, len(p1.Special))
	for i := range p1.Special {
		assert.InDelta(t, p1.Special[i], p2.Special[i], 1e-9)
	}
	require.Len(t, p2.NullTrans, len(p1.NullTrans))
	for i := range p1.NullTrans {
		assert.InDelta(t, p1.NullTrans[i], p2.NullTrans[i], 1e-9)
	}
}

func TestHMMER3WriteRead(t *testing.T) {
	p1, err := Parse([]byte(hmmer3Toy))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, p1))

	p2, err := Parse(buf.Bytes())
	require.NoError(t, err)

	assert.Equal(t, p1.Name, p2.Name)
	assert.Equal(t, p1.SubVersion, p2.SubVersion)
	assert.Equal(t, p1.Length, p2.Length)
	assert.Equal(t, p1.Alphabet, p2.Alphabet)
	assert.Equal(t, p1.MatchScore, p2.MatchScore)
	assert.Equal(t, p1.InsertScore, p2.InsertScore)
	assert.Equal(t, p1.TransScore, p2.TransScore)
	assert.Equal(t, p1.NullScore, p2.NullScore)
	assert.Equal(t, p1.StartScore, p2.StartScore)
	assert.Equal(t, p1.Map, p2.Map)
	assert.Equal(t, p1.Consensus, p2.Consensus)
	assert.Equal(t, p1.RefAnnot, p2.RefAnnot)
	assert.Equal(t, p1.CaseAnnot, p2.CaseAnnot)

	require.Len(t, p2.CompoNull, len(p1.CompoNull))
	for i := range p1.CompoNull {
		assert.InDelta(t, p1.CompoNull[i], p2.CompoNull[i], 1e-9)
	}
}

func TestWriteUnknownGeneration(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, &Profile{})
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}
