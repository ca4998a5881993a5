package gcode

// BaseSet is a set of concrete nucleotides stored as a bit mask
// (bit0=A, bit1=C, bit2=G, bit3=T).
type BaseSet uint8

const (
	BaseA BaseSet = 1 << iota
	BaseC
	BaseG
	BaseT

	// AllBases is the set matched by N.
	AllBases = BaseA | BaseC | BaseG | BaseT
)

// AmbiguitySymbols lists all 15 IUPAC nucleotide symbols: the four
// concrete bases first, then the ambiguity codes.
const AmbiguitySymbols = "ACGTRYSWKMBDHVN"

// concreteBases in alphabetical order, which is also the bit order.
const concreteBases = "ACGT"

var (
	// codeOfSet maps a base set to its IUPAC symbol.
	codeOfSet = [16]byte{
		0, 'A', 'C', 'M', 'G', 'R', 'S', 'V',
		'T', 'W', 'Y', 'H', 'K', 'D', 'B', 'N',
	}
	// setOfCode is the reverse of codeOfSet; U is read as T.
	setOfCode [256]BaseSet
)

func init() {
	for set, code := range codeOfSet {
		if code != 0 {
			setOfCode[code] = BaseSet(set)
		}
	}
	setOfCode['U'] = BaseT
}

// AmbiguityCode returns the IUPAC symbol for the set of bases, or zero
// for the empty set.
func AmbiguityCode(s BaseSet) byte {
	return codeOfSet[s&AllBases]
}

// AmbiguityBases returns the set of concrete bases an IUPAC symbol
// stands for. Unknown symbols give the empty set.
func AmbiguityBases(symbol byte) BaseSet {
	return setOfCode[symbol]
}

// BaseSetOf builds a set from concrete bases.
func BaseSetOf(bases ...byte) (s BaseSet) {
	for _, b := range bases {
		s |= setOfCode[b] & baseBit(b)
	}
	return
}

// baseBit is the mask for a concrete base (T and U share a bit).
func baseBit(b byte) BaseSet {
	switch b {
	case 'A':
		return BaseA
	case 'C':
		return BaseC
	case 'G':
		return BaseG
	case 'T', 'U':
		return BaseT
	}
	return 0
}

// Bases returns the members of the set in alphabetical order.
func (s BaseSet) Bases() []byte {
	res := make([]byte, 0, 4)
	for i := 0; i < len(concreteBases); i++ {
		if s&(1<<uint(i)) != 0 {
			res = append(res, concreteBases[i])
		}
	}
	return res
}

// Len returns the number of bases in the set.
func (s BaseSet) Len() (n int) {
	for s = s & AllBases; s != 0; s &= s - 1 {
		n++
	}
	return
}

// Contains tests if the concrete base is a member of the set.
func (s BaseSet) Contains(b byte) bool {
	bit := baseBit(b)
	return bit != 0 && s&bit != 0
}

func (s BaseSet) String() string {
	return string(s.Bases())
}
