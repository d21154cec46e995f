package hmm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlice(t *testing.T) {
	p, err := Parse([]byte(hmmer2Toy))
	require.NoError(t, err)

	s := p.Slice(1, 3)
	assert.Equal(t, 2, s.Length)
	assert.Equal(t, p.Alphabet, s.Alphabet)
	assert.Equal(t, p.MatchEmit[1], s.MatchEmit[0])
	assert.Equal(t, p.Transitions[2], s.Transitions[1])
	assert.Equal(t, p.MatchScore[1], s.MatchScore[0])

	// Map entries are re-keyed to the sliced state numbering but keep
	// their alignment columns.
	assert.Equal(t, map[int]int{1: 3, 2: 4}, s.Map)
}

func TestSliceIndependent(t *testing.T) {
	p, err := Parse([]byte(hmmer2Toy))
	require.NoError(t, err)

	s := p.Slice(0, 2)
	s.MatchEmit[0][0] = 0.99
	s.Transitions[1][TMM] = 0.99
	s.Null[0] = 0.99
	s.Map[1] = 99

	assert.InDelta(t, 0.5, p.MatchEmit[0][0], 1e-12)
	assert.InDelta(t, 0.5, p.Transitions[1][TMM], 1e-12)
	assert.InDelta(t, 0.25, p.Null[0], 1e-12)
	assert.Equal(t, 1, p.Map[1])
}

func TestSliceClamped(t *testing.T) {
	p, err := Parse([]byte(hmmer2Toy))
	require.NoError(t, err)

	s := p.Slice(-5, 99)
	assert.Equal(t, p.Length, s.Length)

	empty := p.Slice(2, 1)
	assert.Equal(t, 0, empty.Length)
	assert.Empty(t, empty.MatchEmit)
}
