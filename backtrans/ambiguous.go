package backtrans

import (
	"sort"

	"bitbucket.org/Davydov/peploc/gcode"
)

// AmbiguousTable maps an amino acid symbol to IUPAC codon patterns
// covering its codons.
type AmbiguousTable map[byte][]string

// Override is a hand-written replacement for the per-column collapse
// of an amino acid whose codons form two separate blocks.
type Override struct {
	Symbol   byte
	Patterns []string
	Reason   string
}

// Overrides are applied after the per-column collapse, only for symbols
// present in the table. They describe the standard code.
var Overrides = []Override{
	{'L', []string{"TTR", "CTN"}, "TTA/TTG and CTN differ in two positions"},
	{'R', []string{"CGN", "AGR"}, "CGN and AGA/AGG differ in two positions"},
	{'S', []string{"TCN", "AGY"}, "TCN and AGT/AGC differ in all positions"},
	{'*', []string{"TAR", "TGA"}, "TAA/TAG and TGA, TGG is tryptophan"},
}

// collapseColumns builds a single pattern per symbol: every position
// gets the IUPAC code of all the bases seen at it. This over-covers
// symbols whose codons aren't a product of per-position base sets.
func collapseColumns(t *gcode.Table) AmbiguousTable {
	sets := make(map[byte]*[3]gcode.BaseSet)
	var order []byte
	for _, codon := range t.ConcreteCodons() {
		aa, _ := t.Symbol(codon)
		s, ok := sets[aa]
		if !ok {
			s = &[3]gcode.BaseSet{}
			sets[aa] = s
			order = append(order, aa)
		}
		for i := 0; i < 3; i++ {
			s[i] |= gcode.BaseSetOf(codon[i])
		}
	}

	at := make(AmbiguousTable, len(order))
	for _, aa := range order {
		s := sets[aa]
		pattern := []byte{
			gcode.AmbiguityCode(s[0]),
			gcode.AmbiguityCode(s[1]),
			gcode.AmbiguityCode(s[2]),
		}
		at[aa] = []string{string(pattern)}
	}
	return at
}

// Collapse derives the ambiguous codon table of a forward table. Only
// the concrete codons are used, so ambiguous families give the same
// result as their unambiguous counterparts.
func Collapse(t *gcode.Table) AmbiguousTable {
	at := collapseColumns(t)
	for _, o := range Overrides {
		if _, ok := at[o.Symbol]; ok {
			at[o.Symbol] = o.Patterns
		}
	}
	return at
}

// Symbols returns the table symbols in sorted order.
func (at AmbiguousTable) Symbols() []byte {
	res := make([]byte, 0, len(at))
	for aa := range at {
		res = append(res, aa)
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}

// Expand returns all concrete codons covered by the patterns of a
// symbol.
func (at AmbiguousTable) Expand(aa byte) []string {
	var res []string
	for _, p := range at[aa] {
		res = append(res, gcode.ExpandPattern(p)...)
	}
	return res
}

// ReversedBases maps every IUPAC nucleotide symbol to the sorted list
// of bases it stands for.
func ReversedBases() map[byte][]string {
	res := make(map[byte][]string, len(gcode.AmbiguitySymbols))
	for i := 0; i < len(gcode.AmbiguitySymbols); i++ {
		s := gcode.AmbiguitySymbols[i]
		for _, b := range gcode.AmbiguityBases(s).Bases() {
			res[s] = append(res[s], string(b))
		}
	}
	return res
}

// Disambiguate expands ambiguous DNA into every concrete sequence it
// stands for.
func Disambiguate(dna string) ([]string, error) {
	cands, err := Candidates(dna, ReversedBases())
	if err != nil {
		return nil, err
	}
	return Enumerate(cands), nil
}
