package gcode

// Ambiguous amino acid symbols assigned to codon patterns whose
// expansions encode one of two similar residues.
var ambiguousResidues = []struct {
	symbol byte
	pair   [2]byte
}{
	{'B', [2]byte{'D', 'N'}},
	{'Z', [2]byte{'E', 'Q'}},
	{'J', [2]byte{'I', 'L'}},
}

// ExpandPattern returns all concrete codons matched by a pattern of
// IUPAC symbols. Codons are generated with the last position changing
// fastest, bases in alphabetical order.
func ExpandPattern(pattern string) []string {
	res := []string{""}
	for i := 0; i < len(pattern); i++ {
		bases := AmbiguityBases(pattern[i]).Bases()
		if len(bases) == 0 {
			return nil
		}
		next := make([]string, 0, len(res)*len(bases))
		for _, prefix := range res {
			for _, b := range bases {
				next = append(next, prefix+string(b))
			}
		}
		res = next
	}
	return res
}

// patternSymbol returns the symbol for an ambiguity pattern using only
// the concrete codons of the table.
func (t *Table) patternSymbol(pattern string) (byte, bool) {
	var seen [256]bool
	var symbols []byte
	for _, codon := range ExpandPattern(pattern) {
		aa := t.symbols[codon]
		if !seen[aa] {
			seen[aa] = true
			symbols = append(symbols, aa)
		}
	}
	switch len(symbols) {
	case 1:
		return symbols[0], true
	case 2:
		for _, r := range ambiguousResidues {
			if seen[r.pair[0]] && seen[r.pair[1]] {
				return r.symbol, true
			}
		}
	}
	return 0, false
}

// addPatterns appends every codon pattern with at least one ambiguous
// position whose expansions agree on a symbol. Mixed stop and sense
// patterns are left out.
func addPatterns(t *Table) {
	buf := make([]byte, 3)
	for i := 0; i < len(AmbiguitySymbols); i++ {
		for j := 0; j < len(AmbiguitySymbols); j++ {
			for k := 0; k < len(AmbiguitySymbols); k++ {
				buf[0], buf[1], buf[2] = AmbiguitySymbols[i], AmbiguitySymbols[j], AmbiguitySymbols[k]
				pattern := string(buf)
				if _, ok := t.symbols[pattern]; ok {
					continue
				}
				if aa, ok := t.patternSymbol(pattern); ok {
					t.add(pattern, aa)
				}
			}
		}
	}
}
