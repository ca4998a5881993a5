package backtrans

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitbucket.org/Davydov/peploc/gcode"
)

// FVC is encoded twice: TTCGTATGC at 3 and TTTGTTTGC at 15. TTT
// (phenylalanine) first occurs at 15.
const locateSeq = "AAA" + "TTCGTATGC" + "AAA" + "TTTGTTTGC" + "AA"

func TestLocatePeptideOrder(t *testing.T) {
	st := gcode.Standard()
	idx, err := LocatePeptide(locateSeq, "FVC", 3, st)
	require.NoError(t, err)
	// TTT... comes before TTC... in product order
	assert.Equal(t, 15, idx)

	p, err := st.Translate(locateSeq[idx : idx+9])
	require.NoError(t, err)
	assert.Equal(t, "FVC", p)

	hits, err := LocateAll(locateSeq, "FVC", 3, st)
	require.NoError(t, err)
	assert.Equal(t, []Hit{{"TTTGTTTGC", 15}, {"TTCGTATGC", 3}}, hits)
}

func TestLocatePeptidePrefix(t *testing.T) {
	st := gcode.Standard()
	cases := []struct {
		protein string
		k       int
		want    int
	}{
		{"FVC", 1, 15},
		{"FV", 2, 15},
		{"VC", 2, 18},
		{"FVCW", 3, 15},
		{"FVCW", 4, NotFound},
		{"FVC", 10, 15},
		{"FVC", 0, NotFound},
		{"FVC", -1, NotFound},
		{"", 3, NotFound},
		{"WWW", 3, NotFound},
	}
	for _, c := range cases {
		idx, err := LocatePeptide(locateSeq, c.protein, c.k, st)
		require.NoError(t, err, "%s/%d", c.protein, c.k)
		assert.Equal(t, c.want, idx, "%s/%d", c.protein, c.k)
	}
}

func TestLocatePeptideUnknownResidue(t *testing.T) {
	st := gcode.Standard()
	_, err := LocatePeptide(locateSeq, "FJC", 3, st)
	var ure *UnknownResidueError
	require.True(t, errors.As(err, &ure))
	assert.Equal(t, byte('J'), ure.Symbol)
	assert.Equal(t, 1, ure.Position)

	// residues after the prefix are not back-translated
	idx, err := LocatePeptide(locateSeq, "FVCX", 3, st)
	require.NoError(t, err)
	assert.Equal(t, 15, idx)
}

func TestLocatePeptideOtherCode(t *testing.T) {
	vm, err := gcode.Lookup(gcode.CodeID{Family: gcode.UnambiguousDNA, Species: "Vertebrate Mitochondrial"})
	require.NoError(t, err)
	seq := "CCCTGAAAA"
	idx, err := LocatePeptide(seq, "WK", 2, vm)
	require.NoError(t, err)
	assert.Equal(t, 3, idx)

	idx, err = LocatePeptide(seq, "WK", 2, gcode.Standard())
	require.NoError(t, err)
	assert.Equal(t, NotFound, idx)
}

func TestLocator(t *testing.T) {
	l := NewLocator(gcode.Standard(), 0)
	assert.Equal(t, DefaultMaxPrefix, l.MaxPrefix)

	idx, err := l.Locate(locateSeq, "FVC", 3)
	require.NoError(t, err)
	assert.Equal(t, 15, idx)

	hit, err := l.LocateHit(locateSeq, "FV", 2)
	require.NoError(t, err)
	assert.Equal(t, Hit{"TTTGTT", 15}, hit)

	_, err = l.Locate(locateSeq, "FVCW", 4)
	var pe *PrefixTooLongError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 4, pe.Length)

	hit, err = l.LocateHit(locateSeq, "FVC", 0)
	require.NoError(t, err)
	assert.Equal(t, NotFound, hit.Index)
}

func BenchmarkLocatePeptide(b *testing.B) {
	st := gcode.Standard()
	seq := strings.Repeat("ACGT", 10000) + "CTGAGCCGA"
	l := NewLocator(st, 3)
	for i := 0; i < b.N; i++ {
		if _, err := l.Locate(seq, "LSR", 3); err != nil {
			b.Fatal(err)
		}
	}
}
