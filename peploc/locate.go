package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/bebop/poly/seqhash"
	"github.com/fatih/color"
	"golang.org/x/sync/errgroup"

	"bitbucket.org/Davydov/peploc/backtrans"
	"bitbucket.org/Davydov/peploc/bio"
	"bitbucket.org/Davydov/peploc/gcode"
	"bitbucket.org/Davydov/peploc/store"
)

// locateSettings stores the locate options.
type locateSettings struct {
	seqFile   string
	protein   string
	prefix    int
	maxPrefix int
	both      bool
	all       bool
	cache     string
	threads   int

	family  gcode.Family
	species string
	gcodeID int
}

// newLocateSettings creates locateSettings from the command line
// parameters (global variables).
func newLocateSettings() *locateSettings {
	return &locateSettings{
		seqFile:   *locSeqFile,
		protein:   strings.ToUpper(*locProtein),
		prefix:    *locPrefix,
		maxPrefix: *locMaxPrefix,
		both:      *locBoth,
		all:       *locAll,
		cache:     *locCache,
		threads:   *locThreads,

		family:  gcode.Family(*family),
		species: *species,
		gcodeID: *gcodeID,
	}
}

// recordTable picks the table for a record: explicit options first,
// then the defline genetic code, then the standard code.
func (s *locateSettings) recordTable(cat *gcode.Catalogue, seq bio.Sequence) (*gcode.Table, error) {
	if s.gcodeID <= 0 && s.species == "" && s.family.Standard() {
		if id := seq.TranslTable(); id > 0 {
			log.Infof("%s: using genetic code %d from the defline", seq.Name, id)
			return selectTable(cat, s.family, "", id)
		}
	}
	return selectTable(cat, s.family, s.species, s.gcodeID)
}

// searchStrand locates the peptide in one strand of a record, using
// the cache when it has the answer.
func (s *locateSettings) searchStrand(l *backtrans.Locator, st *store.Store, name, strand, nuc string) (LocateResult, error) {
	res := LocateResult{Record: name, Table: l.Table.Name(), Strand: strand, Index: backtrans.NotFound}
	if err := l.CheckPrefix(s.prefix); err != nil {
		return res, err
	}

	var key []byte
	if hash, err := seqhash.Hash(nuc, "DNA", false, false); err == nil {
		key = store.LocationKey(hash, l.Table.Code.Key(), s.protein, s.prefix)
	} else {
		log.Debugf("%s: not caching, %v", name, err)
	}

	if key != nil && !s.all {
		loc, err := st.GetLocation(key)
		if err != nil {
			return res, err
		}
		if loc != nil {
			res.Index, res.Candidate, res.Cached = loc.Index, loc.Candidate, true
			return res, nil
		}
	}

	hit, err := l.LocateHit(nuc, s.protein, s.prefix)
	if err != nil {
		return res, err
	}
	res.Index, res.Candidate = hit.Index, hit.Candidate

	if s.all {
		res.All, err = backtrans.LocateAll(nuc, s.protein, s.prefix, l.Table)
		if err != nil {
			return res, err
		}
	}

	if key != nil {
		err = st.SaveLocation(key, &store.Location{
			Record:    name,
			Peptide:   s.protein,
			Prefix:    s.prefix,
			Strand:    strand,
			Index:     res.Index,
			Candidate: res.Candidate,
		})
	}
	return res, err
}

// locateRecords searches all records in parallel; results keep the
// record order, forward strand first.
func locateRecords(cat *gcode.Catalogue, st *store.Store, s *locateSettings, seqs bio.Sequences) ([]LocateResult, error) {
	nstrands := 1
	if s.both {
		nstrands = 2
	}
	results := make([]LocateResult, len(seqs)*nstrands)

	var g errgroup.Group
	if s.threads > 0 {
		g.SetLimit(s.threads)
	}
	for i, seq := range seqs {
		i, seq := i, seq
		g.Go(func() error {
			t, err := s.recordTable(cat, seq)
			if err != nil {
				return err
			}
			l := backtrans.NewLocator(t, s.maxPrefix)
			results[i*nstrands], err = s.searchStrand(l, st, seq.Name, "+", seq.Sequence)
			if err != nil {
				return fmt.Errorf("%s: %w", seq.Name, err)
			}
			if s.both {
				rc := bio.ReverseComplement(seq.Sequence)
				results[i*nstrands+1], err = s.searchStrand(l, st, seq.Name, "-", rc)
				if err != nil {
					return fmt.Errorf("%s: %w", seq.Name, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func printLocations(w io.Writer, results []LocateResult) {
	hl := color.New(color.FgGreen, color.Bold).SprintFunc()
	for _, r := range results {
		if r.Index == backtrans.NotFound {
			fmt.Fprintf(w, "%s\t%s\tnot found\n", r.Record, r.Strand)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", r.Record, r.Strand, r.Index, hl(r.Candidate))
		for _, h := range r.All {
			fmt.Fprintf(w, "\t\t%d\t%s\n", h.Index, h.Candidate)
		}
	}
}

func runLocate(w io.Writer, cat *gcode.Catalogue, s *locateSettings) (*LocateSummary, error) {
	seqs, err := bio.ReadSequences(s.seqFile)
	if err != nil {
		return nil, err
	}
	log.Infof("Searching %s for %s (prefix %d)", plural(len(seqs), "record"), s.protein, s.prefix)

	st, err := openStore(s.cache)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	results, err := locateRecords(cat, st, s, seqs)
	if err != nil {
		return nil, err
	}
	printLocations(w, results)

	found := 0
	for _, r := range results {
		if r.Index != backtrans.NotFound {
			found++
		}
	}
	log.Noticef("Found in %s of %d", plural(found, "search"), len(results))

	return &LocateSummary{
		Protein: s.protein,
		Prefix:  s.prefix,
		Results: results,
	}, nil
}
