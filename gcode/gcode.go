// Package gcode provides the catalogue of genetic codes and the
// forward codon tables (codon to amino acid) derived from it.
//
// The catalogue is an NCBI gc.prt file embedded into the binary and
// parsed once at start-up. Tables are selected by a family (DNA or
// RNA, ambiguous or not, standard or species specific) and a species
// or organelle name:
//
//	t, err := gcode.Lookup(gcode.CodeID{
//		Family:  gcode.UnambiguousDNA,
//		Species: "Vertebrate Mitochondrial",
//	})
//
// Tables never change after construction and may be shared between
// goroutines.
package gcode

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("gcode")

//go:embed gc.prt
var catalogueData string

// StopSymbol is the amino acid symbol used for stop codons.
const StopSymbol = '*'

// StandardID is the NCBI id of the standard genetic code.
const StandardID = 1

// nucleotide order of the ncbieaa strings.
const ncbiOrder = "TCAG"

// GeneticCode is a single entry of the catalogue.
type GeneticCode struct {
	// ID is the NCBI genetic code id.
	ID int
	// Name is the long name, possibly listing several organisms
	// separated by "; ".
	Name string
	// ShortName is the SGC alias, if any.
	ShortName string
	// Ncbieaa holds 64 amino acid symbols in the NCBI codon order.
	Ncbieaa string
	// Sncbieaa marks start codons, if present in the catalogue.
	Sncbieaa string
}

// Aliases returns all the species names the code is known by.
func (gc *GeneticCode) Aliases() (names []string) {
	parts := []string{gc.Name}
	for _, sep := range []string{"; ", ", ", " and "} {
		var next []string
		for _, p := range parts {
			next = append(next, strings.Split(p, sep)...)
		}
		parts = next
	}
	names = append(names, gc.Name)
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" && p != gc.Name {
			names = append(names, p)
		}
	}
	if gc.ShortName != "" {
		names = append(names, gc.ShortName)
	}
	return
}

// Key identifies the code by its id and its translation, so that two
// catalogues defining the same id differently never share a key.
func (gc *GeneticCode) Key() string {
	return fmt.Sprintf("%d:%s", gc.ID, gc.Ncbieaa)
}

func (gc *GeneticCode) String() string {
	return fmt.Sprintf("<GC: Name=\"%s\", ShortName=\"%s\", Id=%d>", gc.Name, gc.ShortName, gc.ID)
}

// CodeID selects a table from the catalogue.
type CodeID struct {
	Family  Family
	Species string
}

func (id CodeID) String() string {
	if id.Species == "" {
		return string(id.Family)
	}
	return string(id.Family) + "/" + id.Species
}

// Catalogue is a read-only registry of genetic codes.
type Catalogue struct {
	codes   map[int]*GeneticCode
	species map[string]*GeneticCode

	mu     sync.Mutex
	tables map[tableKey]*Table
}

type tableKey struct {
	family Family
	id     int
}

// Default is the catalogue embedded into the binary.
var Default *Catalogue

func init() {
	codes, err := ParseCatalogue(strings.NewReader(catalogueData))
	if err != nil {
		panic("embedded genetic code catalogue: " + err.Error())
	}
	Default, err = NewCatalogue(codes)
	if err != nil {
		panic("embedded genetic code catalogue: " + err.Error())
	}
}

// NewCatalogue creates a catalogue from parsed genetic codes. Ids and
// species names must be unique.
func NewCatalogue(codes []*GeneticCode) (*Catalogue, error) {
	c := &Catalogue{
		codes:   make(map[int]*GeneticCode, len(codes)),
		species: make(map[string]*GeneticCode, 2*len(codes)),
		tables:  make(map[tableKey]*Table),
	}
	for _, gc := range codes {
		if len(gc.Ncbieaa) != 64 {
			return nil, fmt.Errorf("genetic code %d has no ncbieaa string", gc.ID)
		}
		if _, ok := c.codes[gc.ID]; ok {
			return nil, fmt.Errorf("duplicate genetic code id %d", gc.ID)
		}
		c.codes[gc.ID] = gc
		for _, name := range gc.Aliases() {
			if other, ok := c.species[name]; ok {
				return nil, fmt.Errorf("species %q is used by genetic codes %d and %d", name, other.ID, gc.ID)
			}
			c.species[name] = gc
		}
	}
	if _, ok := c.codes[StandardID]; !ok {
		return nil, fmt.Errorf("catalogue has no standard genetic code (id=%d)", StandardID)
	}
	return c, nil
}

// Species returns sorted species names known to the catalogue.
func (c *Catalogue) Species() []string {
	names := make([]string, 0, len(c.species))
	for name := range c.species {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Codes returns the genetic codes sorted by id.
func (c *Catalogue) Codes() []*GeneticCode {
	res := make([]*GeneticCode, 0, len(c.codes))
	for _, gc := range c.codes {
		res = append(res, gc)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res
}

// Lookup returns the forward table for a family and species.
func (c *Catalogue) Lookup(id CodeID) (*Table, error) {
	if !id.Family.Valid() {
		return nil, &UnknownCodeError{Family: id.Family, Species: id.Species}
	}
	if id.Family.Standard() {
		return c.table(id.Family, c.codes[StandardID]), nil
	}
	if id.Species == "" {
		return nil, &MissingSpeciesError{Family: id.Family}
	}
	gc, ok := c.species[id.Species]
	if !ok {
		return nil, &UnknownCodeError{Family: id.Family, Species: id.Species}
	}
	return c.table(id.Family, gc), nil
}

// ByID returns the table of a family for the NCBI genetic code id.
func (c *Catalogue) ByID(f Family, n int) (*Table, error) {
	gc, ok := c.codes[n]
	if !ok || !f.Valid() {
		return nil, &UnknownCodeError{Family: f, ID: n}
	}
	return c.table(f, gc), nil
}

// table builds a table once and caches it.
func (c *Catalogue) table(f Family, gc *GeneticCode) *Table {
	key := tableKey{f, gc.ID}
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.tables[key]; ok {
		return t
	}
	t := newTable(gc, f)
	log.Debugf("built %s table for genetic code %d (%d codons)", f, gc.ID, t.Len())
	c.tables[key] = t
	return t
}

// Lookup returns a table from the default catalogue.
func Lookup(id CodeID) (*Table, error) {
	return Default.Lookup(id)
}

// Standard returns the unambiguous DNA standard table.
func Standard() *Table {
	t, _ := Default.Lookup(CodeID{Family: StandardDNA})
	return t
}
