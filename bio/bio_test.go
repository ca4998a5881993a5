package bio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fasta = `>seq1 [transl_table=2] mitochondrion
acgt acgu
TTTT
; comment
>seq2
GGCC
`

func TestParseFasta(t *testing.T) {
	seqs, err := ParseFasta(strings.NewReader(fasta))
	require.NoError(t, err)
	require.Len(t, seqs, 2)
	assert.Equal(t, "ACGTACGTTTTT", seqs[0].Sequence)
	assert.Equal(t, 2, seqs[0].TranslTable())
	assert.Equal(t, 0, seqs[1].TranslTable())
	assert.Equal(t, ">seq2\nGGCC\n", seqs[1].String())

	_, err = ParseFasta(strings.NewReader("ACGT\n"))
	assert.Error(t, err)
	_, err = ParseFasta(strings.NewReader(""))
	assert.Error(t, err)
}

func TestClean(t *testing.T) {
	assert.Equal(t, "ACGTT", Clean(" ac\tgu T\r\n"))
	assert.Equal(t, map[byte]int{'N': 2, 'X': 1}, BadChars("ANCGNX"))
	assert.Empty(t, BadChars("ACGT"))
}

func TestWrap(t *testing.T) {
	assert.Equal(t, "AC\nGT\nA\n", Wrap("ACGTA", 2))
}

func writeFile(t *testing.T, name string, data []byte) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestReadSequence(t *testing.T) {
	path := writeFile(t, "in.fst", []byte(fasta))
	seq, gc, err := ReadSequence(path)
	require.NoError(t, err)
	assert.Equal(t, "ACGTACGTTTTT", seq)
	assert.Equal(t, 2, gc)
}

func TestReadSequenceGzip(t *testing.T) {
	var buf bytes.Buffer
	zw := pgzip.NewWriter(&buf)
	_, err := zw.Write([]byte(fasta))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := writeFile(t, "in.fst.gz", buf.Bytes())
	seqs, err := ReadSequences(path)
	require.NoError(t, err)
	assert.Len(t, seqs, 2)
	assert.Equal(t, "GGCC", seqs[1].Sequence)
}

func TestSequenceLoadError(t *testing.T) {
	_, _, err := ReadSequence(filepath.Join(t.TempDir(), "missing.fst"))
	var sle *SequenceLoadError
	require.True(t, errors.As(err, &sle))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	path := writeFile(t, "bad.fst", []byte("ACGT\n"))
	_, _, err = ReadSequence(path)
	require.True(t, errors.As(err, &sle))
	assert.Equal(t, path, sle.Path)
}

func TestStats(t *testing.T) {
	top := TopNGrams("AAAAT", 3, 0)
	assert.Equal(t, []NGram{{"AAA", 2}, {"AAT", 1}}, top)
	assert.Len(t, TopNGrams("ACGTACGTAC", 3, 2), 2)
	assert.Empty(t, NGrams("AC", 3))

	assert.InDelta(t, 0.5, GCContent("AACCGGTT"), 1e-9)
	assert.Zero(t, GCContent(""))
	assert.InDelta(t, 0.25, Frequencies("ACGT")['G'], 1e-9)

	assert.Equal(t, "ACGGT", ReverseComplement("ACCGT"))
}
