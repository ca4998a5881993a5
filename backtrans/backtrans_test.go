package backtrans

import (
	"errors"
	"math/big"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bitbucket.org/Davydov/peploc/gcode"
)

const allResidues = "ACDEFGHIKLMNPQRSTVWY*"

func TestInvertCoversTable(t *testing.T) {
	st := gcode.Standard()
	bt := Invert(st)
	total := 0
	for _, codons := range bt {
		total += len(codons)
	}
	assert.Equal(t, 64, total)

	for _, codon := range st.Codons() {
		aa, _ := st.Symbol(codon)
		cands, err := BackTranslate(string(aa), st)
		require.NoError(t, err)
		assert.Contains(t, cands[0], codon)
	}
	assert.Equal(t, []string{"TTT", "TTC"}, bt['F'])
	assert.Equal(t, []string{"TTA", "TTG", "CTT", "CTC", "CTA", "CTG"}, bt['L'])
}

func TestInvertAmbiguousFamily(t *testing.T) {
	for _, f := range []gcode.Family{gcode.AmbiguousDNA, gcode.AmbiguousRNA, gcode.AmbiguousGeneric} {
		at, err := gcode.Lookup(gcode.CodeID{Family: f, Species: "Standard"})
		require.NoError(t, err)
		require.Greater(t, at.Len(), 64)

		bt := Invert(at)
		total := 0
		for _, codons := range bt {
			total += len(codons)
		}
		assert.Equal(t, 64, total, "family %s", f)
		assert.Equal(t, []string{"TTT", "TTC"}, bt['F'])

		n, err := CountPermutations(allResidues, at)
		require.NoError(t, err)
		assert.Equal(t, "1019215872", n.String())

		for _, aa := range "BZJ" {
			_, err = BackTranslate(string(aa), at)
			var ure *UnknownResidueError
			require.True(t, errors.As(err, &ure), "symbol %c", aa)
			assert.Equal(t, byte(aa), ure.Symbol)
			assert.Equal(t, 0, ure.Position)
		}

		idx, err := LocatePeptide(locateSeq, "FVC", 3, at)
		require.NoError(t, err)
		assert.Equal(t, 15, idx)
	}
}

func TestCountPermutations(t *testing.T) {
	st := gcode.Standard()
	n, err := CountPermutations(allResidues, st)
	require.NoError(t, err)
	assert.Equal(t, "1019215872", n.String())

	n, err = CountWith(allResidues, Collapse(st))
	require.NoError(t, err)
	assert.Equal(t, int64(16), n.Int64())

	n, err = CountPermutations("", st)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n.Int64())

	long := strings.Repeat("LRS", 20)
	n, err = CountPermutations(long, st)
	require.NoError(t, err)
	assert.False(t, n.IsInt64())
	want := new(big.Int).Exp(big.NewInt(6), big.NewInt(60), nil)
	assert.Zero(t, want.Cmp(n))
}

func TestBackTranslateUnknownResidue(t *testing.T) {
	_, err := BackTranslate("MKXW", gcode.Standard())
	var ure *UnknownResidueError
	require.True(t, errors.As(err, &ure))
	assert.Equal(t, byte('X'), ure.Symbol)
	assert.Equal(t, 2, ure.Position)

	_, err = CountPermutations("MB", gcode.Standard())
	require.True(t, errors.As(err, &ure))
	assert.Equal(t, 1, ure.Position)
}

func TestEnumerateFVC(t *testing.T) {
	cands, err := BackTranslate("FVC", gcode.Standard())
	require.NoError(t, err)
	seqs := Enumerate(cands)
	assert.Len(t, seqs, 16)
	assert.Equal(t, "TTTGTTTGT", seqs[0])
	assert.Equal(t, "TTTGTTTGC", seqs[1])
	assert.Equal(t, "TTCGTGTGC", seqs[15])

	for _, s := range seqs {
		p, err := gcode.Standard().Translate(s)
		require.NoError(t, err)
		assert.Equal(t, "FVC", p)
	}
}

func TestProduct(t *testing.T) {
	p := NewProduct(nil)
	assert.False(t, p.Next())

	p = NewProduct([][]string{{"A"}, {}})
	assert.False(t, p.Next())

	var got []string
	for p = NewProduct([][]string{{"a", "b"}, {"1", "2", "3"}}); p.Next(); {
		got = append(got, p.String())
	}
	assert.Equal(t, []string{"a1", "a2", "a3", "b1", "b2", "b3"}, got)
	assert.False(t, p.Next())
}

func TestCollapseStandard(t *testing.T) {
	at := Collapse(gcode.Standard())
	want := map[byte][]string{
		'A': {"GCN"}, 'C': {"TGY"}, 'D': {"GAY"}, 'E': {"GAR"},
		'F': {"TTY"}, 'G': {"GGN"}, 'H': {"CAY"}, 'I': {"ATH"},
		'K': {"AAR"}, 'L': {"TTR", "CTN"}, 'M': {"ATG"}, 'N': {"AAY"},
		'P': {"CCN"}, 'Q': {"CAR"}, 'R': {"CGN", "AGR"}, 'S': {"TCN", "AGY"},
		'T': {"ACN"}, 'V': {"GTN"}, 'W': {"TGG"}, 'Y': {"TAY"},
		'*': {"TAR", "TGA"},
	}
	assert.Equal(t, AmbiguousTable(want), at)
	assert.Len(t, at.Symbols(), 21)
}

// The override symbols are exactly those for which the plain column
// collapse is wider than the codon family.
func TestCollapseColumnsCoverage(t *testing.T) {
	st := gcode.Standard()
	bt := Invert(st)
	naive := collapseColumns(st)
	overridden := make(map[byte]bool)
	for _, o := range Overrides {
		overridden[o.Symbol] = true
	}

	for aa, codons := range bt {
		require.Len(t, naive[aa], 1)
		expanded := naive.Expand(aa)
		for _, c := range codons {
			assert.Contains(t, expanded, c, "symbol %c", aa)
		}
		if overridden[aa] {
			assert.Greater(t, len(expanded), len(codons), "symbol %c", aa)
		} else {
			assert.Len(t, expanded, len(codons), "symbol %c", aa)
		}
	}
	assert.Equal(t, []string{"YTN"}, naive['L'])
	assert.Equal(t, []string{"TRR"}, naive['*'])
}

func TestCollapseOverridesExact(t *testing.T) {
	st := gcode.Standard()
	bt := Invert(st)
	at := Collapse(st)
	for _, o := range Overrides {
		got := at.Expand(o.Symbol)
		want := append([]string(nil), bt[o.Symbol]...)
		sort.Strings(got)
		sort.Strings(want)
		assert.Equal(t, want, got, "symbol %c", o.Symbol)
	}
}

func TestCollapseSkipsAbsentOverrides(t *testing.T) {
	// no stop codons in the Karyorelict code
	kar, err := gcode.Lookup(gcode.CodeID{Family: gcode.UnambiguousDNA, Species: "Karyorelict Nuclear"})
	require.NoError(t, err)
	at := Collapse(kar)
	_, ok := at['*']
	assert.False(t, ok)
	assert.Equal(t, []string{"TTR", "CTN"}, at['L'])
}

func TestReversedBases(t *testing.T) {
	rev := ReversedBases()
	require.Len(t, rev, 15)
	for sym, bases := range rev {
		assert.Equal(t, sym, gcode.AmbiguityCode(gcode.BaseSetOf([]byte(strings.Join(bases, ""))...)))
	}
	assert.Equal(t, []string{"A", "G"}, rev['R'])
}

func TestDisambiguate(t *testing.T) {
	const dna = "ACGTRYSWKMBDHVN"
	n, err := CountWith(dna, ReversedBases())
	require.NoError(t, err)
	assert.Equal(t, int64(20736), n.Int64())

	seqs, err := Disambiguate(dna)
	require.NoError(t, err)
	assert.Len(t, seqs, 20736)

	seqs, err = Disambiguate("AR")
	require.NoError(t, err)
	assert.Equal(t, []string{"AA", "AG"}, seqs)

	_, err = Disambiguate("ACZ")
	var ure *UnknownResidueError
	require.True(t, errors.As(err, &ure))
	assert.Equal(t, 2, ure.Position)
}

func TestCheckEnumerable(t *testing.T) {
	st := gcode.Standard()
	cands, err := BackTranslate("FVC", st)
	require.NoError(t, err)
	assert.NoError(t, CheckEnumerable(cands))

	cands, err = BackTranslate(strings.Repeat("L", 40), st)
	require.NoError(t, err)
	var ee *EnumerationError
	require.True(t, errors.As(CheckEnumerable(cands), &ee))
	assert.Equal(t, 1, ee.Bytes.Cmp(ee.Count))
}

func TestConcurrentUse(t *testing.T) {
	st := gcode.Standard()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := CountPermutations(allResidues, st)
			assert.NoError(t, err)
			assert.Equal(t, int64(1019215872), n.Int64())
			idx, err := LocatePeptide(locateSeq, "FVC", 3, st)
			assert.NoError(t, err)
			assert.Equal(t, 15, idx)
		}()
	}
	wg.Wait()
}
