package backtrans

import (
	"fmt"
	"strings"

	"bitbucket.org/Davydov/peploc/gcode"
)

// NotFound is returned by the locate functions when no candidate occurs
// in the sequence.
const NotFound = -1

// DefaultMaxPrefix bounds the prefix length used by Locator.
const DefaultMaxPrefix = 3

// Hit is a candidate back-translation found in a sequence.
type Hit struct {
	Candidate string `json:"candidate"`
	Index     int    `json:"index"`
}

// PrefixTooLongError is returned by Locator for prefixes above its
// bound.
type PrefixTooLongError struct {
	Length, Max int
}

func (e *PrefixTooLongError) Error() string {
	return fmt.Sprintf("prefix length %d is above the maximum of %d", e.Length, e.Max)
}

func prefix(protein string, k int) string {
	if k < len(protein) {
		return protein[:k]
	}
	return protein
}

// firstHit tries the candidates in product order and returns the
// first one occurring in nuc.
func firstHit(nuc string, cands [][]string) (Hit, int) {
	tried := 0
	for p := NewProduct(cands); p.Next(); {
		tried++
		s := p.String()
		if i := strings.Index(nuc, s); i >= 0 {
			return Hit{Candidate: s, Index: i}, tried
		}
	}
	return Hit{Index: NotFound}, tried
}

func allHits(nuc string, cands [][]string) (hits []Hit) {
	for p := NewProduct(cands); p.Next(); {
		s := p.String()
		if i := strings.Index(nuc, s); i >= 0 {
			hits = append(hits, Hit{Candidate: s, Index: i})
		}
	}
	return
}

// LocatePeptide searches for the first k residues of protein in a
// nucleotide sequence (upper case, T not U). Back-translations of the
// prefix are tried in product order (last residue fastest) and the
// leftmost occurrence of the first candidate found is returned. This is
// not necessarily the leftmost occurrence of any candidate.
//
// The search space grows exponentially with k, callers must keep it
// small. NotFound is returned for k <= 0. Only the prefix is
// back-translated: residues after position k are never checked, so an
// unknown residue there does not cause an error.
func LocatePeptide(nuc, protein string, k int, t *gcode.Table) (int, error) {
	return locateWith(nuc, protein, k, Invert(t))
}

func locateWith(nuc, protein string, k int, bt BackTable) (int, error) {
	if k <= 0 {
		return NotFound, nil
	}
	cands, err := Candidates(prefix(protein, k), bt)
	if err != nil {
		return NotFound, err
	}
	hit, tried := firstHit(nuc, cands)
	log.Debugf("tried %d of %v candidates for %s", tried, countCandidates(cands), prefix(protein, k))
	return hit.Index, nil
}

// LocateAll returns the first occurrence of every back-translation of
// the prefix present in nuc, in product order.
func LocateAll(nuc, protein string, k int, t *gcode.Table) ([]Hit, error) {
	if k <= 0 {
		return nil, nil
	}
	cands, err := Candidates(prefix(protein, k), Invert(t))
	if err != nil {
		return nil, err
	}
	return allHits(nuc, cands), nil
}

// Locator keeps the back-translation table of one forward table. A new
// Locator is needed when the genetic code changes.
type Locator struct {
	Table     *gcode.Table
	MaxPrefix int
	back      BackTable
}

// NewLocator creates a locator; maxPrefix <= 0 means DefaultMaxPrefix.
func NewLocator(t *gcode.Table, maxPrefix int) *Locator {
	if maxPrefix <= 0 {
		maxPrefix = DefaultMaxPrefix
	}
	return &Locator{
		Table:     t,
		MaxPrefix: maxPrefix,
		back:      Invert(t),
	}
}

// CheckPrefix returns PrefixTooLongError if k exceeds MaxPrefix.
func (l *Locator) CheckPrefix(k int) error {
	if k > l.MaxPrefix {
		return &PrefixTooLongError{Length: k, Max: l.MaxPrefix}
	}
	return nil
}

// Locate is LocatePeptide with the bound on k.
func (l *Locator) Locate(nuc, protein string, k int) (int, error) {
	if err := l.CheckPrefix(k); err != nil {
		return NotFound, err
	}
	return locateWith(nuc, protein, k, l.back)
}

// LocateHit is like Locate, but also returns the matching candidate.
func (l *Locator) LocateHit(nuc, protein string, k int) (Hit, error) {
	if err := l.CheckPrefix(k); err != nil {
		return Hit{Index: NotFound}, err
	}
	if k <= 0 {
		return Hit{Index: NotFound}, nil
	}
	cands, err := Candidates(prefix(protein, k), l.back)
	if err != nil {
		return Hit{Index: NotFound}, err
	}
	hit, _ := firstHit(nuc, cands)
	return hit, nil
}

// BackTranslate returns candidate codons using the cached table.
func (l *Locator) BackTranslate(protein string) ([][]string, error) {
	return Candidates(protein, l.back)
}
