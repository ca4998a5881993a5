// Package backtrans implements back-translation of peptides into
// candidate codons, the collapse of synonymous codons into IUPAC
// ambiguity patterns and the search of a peptide in a nucleotide
// sequence by enumerating its back-translations.
//
// All the functions are pure; tables from the gcode package are
// immutable, so everything here is safe to call concurrently.
package backtrans

import (
	"fmt"
	"math/big"

	"github.com/op/go-logging"

	"bitbucket.org/Davydov/peploc/gcode"
)

var log = logging.MustGetLogger("backtrans")

// BackTable maps an amino acid symbol to all the codons encoding it,
// in the order the codons appear in the forward table.
type BackTable map[byte][]string

// UnknownResidueError is returned when a symbol has no codons in the
// table.
type UnknownResidueError struct {
	Symbol   byte
	Position int
}

func (e *UnknownResidueError) Error() string {
	return fmt.Sprintf("residue %q at position %d has no codons in the table", e.Symbol, e.Position)
}

// Invert builds the back-translation table of a forward table. Only
// concrete codons are used, so the IUPAC patterns of the ambiguous
// families and their B, Z and J symbols never appear in it.
func Invert(t *gcode.Table) BackTable {
	bt := make(BackTable, 25)
	for _, codon := range t.ConcreteCodons() {
		aa, _ := t.Symbol(codon)
		bt[aa] = append(bt[aa], codon)
	}
	return bt
}

// Candidates maps every symbol of seq to its alternatives. It works
// for any symbol table: back-translation tables, ambiguous codon tables
// or the reversed IUPAC table.
func Candidates(seq string, alt map[byte][]string) ([][]string, error) {
	res := make([][]string, len(seq))
	for i := 0; i < len(seq); i++ {
		a, ok := alt[seq[i]]
		if !ok || len(a) == 0 {
			return nil, &UnknownResidueError{Symbol: seq[i], Position: i}
		}
		res[i] = a
	}
	return res, nil
}

// BackTranslate returns the list of candidate codons for every residue
// of the protein. The table is inverted once per call.
func BackTranslate(protein string, t *gcode.Table) ([][]string, error) {
	return Candidates(protein, Invert(t))
}

// CountWith returns the number of distinct sequences seq can be
// expanded to with the symbol table. The number is a product of the
// alternative counts and grows exponentially with the length.
func CountWith(seq string, alt map[byte][]string) (*big.Int, error) {
	cands, err := Candidates(seq, alt)
	if err != nil {
		return nil, err
	}
	return countCandidates(cands), nil
}

// CountPermutations returns the number of nucleotide sequences the
// protein back-translates to.
func CountPermutations(protein string, t *gcode.Table) (*big.Int, error) {
	return CountWith(protein, Invert(t))
}

func countCandidates(cands [][]string) *big.Int {
	n := big.NewInt(1)
	var f big.Int
	for _, c := range cands {
		n.Mul(n, f.SetInt64(int64(len(c))))
	}
	return n
}
