package gcode

// Family is a kind of codon table: nucleic acid alphabet, ambiguity
// and whether the species has to be given.
type Family string

const (
	StandardDNA      Family = "standard_dna_table"
	StandardRNA      Family = "standard_rna_table"
	UnambiguousDNA   Family = "unambiguous_dna_by_name"
	UnambiguousRNA   Family = "unambiguous_rna_by_name"
	AmbiguousDNA     Family = "ambiguous_dna_by_name"
	AmbiguousRNA     Family = "ambiguous_rna_by_name"
	AmbiguousGeneric Family = "ambiguous_generic_by_name"
	Generic          Family = "generic_by_name"
)

type familyFlags struct {
	standard  bool
	rna       bool
	ambiguous bool
}

var families = map[Family]familyFlags{
	StandardDNA:      {standard: true},
	StandardRNA:      {standard: true, rna: true},
	UnambiguousDNA:   {},
	UnambiguousRNA:   {rna: true},
	AmbiguousDNA:     {ambiguous: true},
	AmbiguousRNA:     {ambiguous: true, rna: true},
	AmbiguousGeneric: {ambiguous: true},
	Generic:          {},
}

// Families lists all the families in a stable order.
var Families = []Family{
	AmbiguousDNA, AmbiguousGeneric, AmbiguousRNA, Generic,
	StandardDNA, StandardRNA, UnambiguousDNA, UnambiguousRNA,
}

// Valid tests if the family is known.
func (f Family) Valid() bool {
	_, ok := families[f]
	return ok
}

// Standard is true for families which don't need a species.
func (f Family) Standard() bool {
	return families[f].standard
}

// RNA is true if codons are written with U.
func (f Family) RNA() bool {
	return families[f].rna
}

// Ambiguous is true if the table also holds IUPAC codon patterns.
func (f Family) Ambiguous() bool {
	return families[f].ambiguous
}
