package gcode

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// Table is a forward codon table: it maps every codon to a single
// amino acid symbol. Codons are stored with T; RNA families only differ
// in Format.
type Table struct {
	Code   *GeneticCode
	Family Family

	// codons in the order they were added; the concrete 64 codons come
	// first in the NCBI order.
	codons  []string
	symbols map[string]byte
	nconc   int
}

func newTable(gc *GeneticCode, f Family) *Table {
	t := &Table{
		Code:    gc,
		Family:  f,
		codons:  make([]string, 0, 64),
		symbols: make(map[string]byte, 64),
	}
	i := 0
	for _, b1 := range []byte(ncbiOrder) {
		for _, b2 := range []byte(ncbiOrder) {
			for _, b3 := range []byte(ncbiOrder) {
				t.add(string([]byte{b1, b2, b3}), gc.Ncbieaa[i])
				i++
			}
		}
	}
	t.nconc = len(t.codons)
	if f.Ambiguous() {
		addPatterns(t)
	}
	return t
}

func (t *Table) add(codon string, aa byte) {
	t.codons = append(t.codons, codon)
	t.symbols[codon] = aa
}

// Name returns a human readable table name.
func (t *Table) Name() string {
	return fmt.Sprintf("%s: %s (id=%d)", t.Family, t.Code.Name, t.Code.ID)
}

// Len returns the number of codons (or codon patterns) in the table.
func (t *Table) Len() int {
	return len(t.codons)
}

// Codons returns codons in the table order. Concrete codons come
// first, followed by ambiguity patterns for the ambiguous families.
func (t *Table) Codons() []string {
	return t.codons
}

// ConcreteCodons returns the 64 unambiguous codons.
func (t *Table) ConcreteCodons() []string {
	return t.codons[:t.nconc]
}

// Symbol returns the amino acid encoded by a codon. Lower case and U
// are accepted.
func (t *Table) Symbol(codon string) (byte, bool) {
	aa, ok := t.symbols[normalizeCodon(codon)]
	return aa, ok
}

// IsStopCodon tests if the codon is a stop codon in this table.
func (t *Table) IsStopCodon(codon string) bool {
	aa, ok := t.Symbol(codon)
	return ok && aa == StopSymbol
}

// Format writes the codon in the alphabet of the table family.
func (t *Table) Format(codon string) string {
	if t.Family.RNA() {
		return strings.Replace(codon, "T", "U", -1)
	}
	return codon
}

// Translate translates a nucleotide sequence codon by codon. Stop
// codons are written as '*'. Error is returned if the sequence length
// doesn't divide by three or a codon is not in the table.
func (t *Table) Translate(nseq string) (string, error) {
	var buffer bytes.Buffer

	if len(nseq)%3 != 0 {
		return "", errors.New("sequence length doesn't divide by 3")
	}

	for i := 0; i < len(nseq); i += 3 {
		aa, ok := t.Symbol(nseq[i : i+3])
		if !ok {
			return buffer.String(), fmt.Errorf("unknown codon %s at position %d", nseq[i:i+3], i)
		}
		buffer.WriteByte(aa)
	}
	return buffer.String(), nil
}

func normalizeCodon(codon string) string {
	for i := 0; i < len(codon); i++ {
		c := codon[i]
		if c == 'U' || c == 'u' || (c >= 'a' && c <= 'z') {
			return strings.Replace(strings.ToUpper(codon), "U", "T", -1)
		}
	}
	return codon
}
