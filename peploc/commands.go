package main

import (
	"fmt"
	"io"
	"strings"

	"bitbucket.org/Davydov/peploc/backtrans"
	"bitbucket.org/Davydov/peploc/bio"
	"bitbucket.org/Davydov/peploc/chart"
	"bitbucket.org/Davydov/peploc/gcode"
	"bitbucket.org/Davydov/peploc/store"
)

// printTables lists the families and the genetic codes with their
// species names.
func printTables(w io.Writer, cat *gcode.Catalogue) {
	fmt.Fprintln(w, "Families:")
	for _, f := range gcode.Families {
		note := ""
		if !f.Standard() {
			note = " (requires --species or --gcode)"
		}
		fmt.Fprintf(w, "  %s%s\n", f, note)
	}
	fmt.Fprintln(w, "Genetic codes:")
	for _, gc := range cat.Codes() {
		fmt.Fprintf(w, "  %2d: %s\n", gc.ID, strings.Join(gc.Aliases(), " | "))
	}
}

// formatCodons renders codons in the table alphabet.
func formatCodons(t *gcode.Table, codons []string) []string {
	res := make([]string, len(codons))
	for i, c := range codons {
		res[i] = t.Format(c)
	}
	return res
}

func runBackTranslate(w io.Writer, t *gcode.Table, protein string) (*BackTranslateSummary, error) {
	protein = strings.ToUpper(protein)
	cands, err := backtrans.BackTranslate(protein, t)
	if err != nil {
		return nil, err
	}
	sum := &BackTranslateSummary{
		Table:   t.Name(),
		Protein: protein,
		Codons:  make([][]string, len(cands)),
	}
	for i, c := range cands {
		sum.Codons[i] = formatCodons(t, c)
		fmt.Fprintf(w, "%d\t%c\t%s\n", i+1, protein[i], strings.Join(sum.Codons[i], " "))
	}
	n, err := backtrans.CountPermutations(protein, t)
	if err != nil {
		return nil, err
	}
	sum.Permutations = n.String()
	log.Noticef("%s back-translated sequences (%d digits)", n, len(n.String()))
	return sum, nil
}

func runCount(w io.Writer, t *gcode.Table, protein string) (*CountSummary, error) {
	protein = strings.ToUpper(protein)
	concrete, err := backtrans.CountPermutations(protein, t)
	if err != nil {
		return nil, err
	}
	ambiguous, err := backtrans.CountWith(protein, backtrans.Collapse(t))
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "concrete\t%s\nambiguous\t%s\n", concrete, ambiguous)
	return &CountSummary{
		Protein:   protein,
		Concrete:  concrete.String(),
		Ambiguous: ambiguous.String(),
	}, nil
}

// ambiguousTable collapses the table, using the cache if possible.
func ambiguousTable(t *gcode.Table, st *store.Store) (backtrans.AmbiguousTable, error) {
	key := t.Code.Key()
	cached, err := st.GetAmbiguous(key)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		log.Infof("Using cached ambiguous table for genetic code %d", t.Code.ID)
		return backtrans.AmbiguousTable(cached), nil
	}
	at := backtrans.Collapse(t)
	if err = st.SaveAmbiguous(key, at); err != nil {
		log.Warning("Couldn't cache ambiguous table:", err)
	}
	return at, nil
}

func openStore(path string) (*store.Store, error) {
	if path == "" {
		return store.New(nil), nil
	}
	return store.Open(path)
}

func runAmbiguous(w io.Writer, t *gcode.Table, cache string) (map[string][]string, error) {
	st, err := openStore(cache)
	if err != nil {
		return nil, err
	}
	defer st.Close()

	at, err := ambiguousTable(t, st)
	if err != nil {
		return nil, err
	}
	res := make(map[string][]string, len(at))
	for _, aa := range at.Symbols() {
		patterns := formatCodons(t, at[aa])
		res[string(aa)] = patterns
		fmt.Fprintf(w, "%c\t%s\n", aa, strings.Join(patterns, " "))
	}
	return res, nil
}

// printAll enumerates the product after checking it fits into memory.
func printAll(w io.Writer, cands [][]string, format func(string) string) error {
	if err := backtrans.CheckEnumerable(cands); err != nil {
		return err
	}
	seqs := backtrans.Enumerate(cands)
	for _, s := range seqs {
		fmt.Fprintln(w, format(s))
	}
	log.Infof("Printed %s", plural(len(seqs), "sequence"))
	return nil
}

func runExpand(w io.Writer, t *gcode.Table, protein string) error {
	cands, err := backtrans.BackTranslate(strings.ToUpper(protein), t)
	if err != nil {
		return err
	}
	return printAll(w, cands, t.Format)
}

func runDisambiguate(w io.Writer, dna string) error {
	cands, err := backtrans.Candidates(bio.Clean(dna), backtrans.ReversedBases())
	if err != nil {
		return err
	}
	return printAll(w, cands, func(s string) string { return s })
}

func runStats(w io.Writer, path string, top int, image string) ([]StatsSummary, error) {
	seqs, err := bio.ReadSequences(path)
	if err != nil {
		return nil, err
	}
	res := make([]StatsSummary, 0, len(seqs))
	for _, seq := range seqs {
		s := StatsSummary{
			Record:    seq.Name,
			Length:    len(seq.Sequence),
			GC:        bio.GCContent(seq.Sequence),
			Frequency: make(map[string]float64),
			Trigrams:  bio.TopNGrams(seq.Sequence, 3, top),
		}
		for b, f := range bio.Frequencies(seq.Sequence) {
			s.Frequency[string(b)] = f
		}
		if bad := bio.BadChars(seq.Sequence); len(bad) > 0 {
			s.BadChars = make(map[string]int, len(bad))
			for b, n := range bad {
				s.BadChars[string(b)] = n
			}
			log.Warningf("%s: %s other than ACGT", seq.Name, plural(len(bad), "character"))
		}
		fmt.Fprintf(w, ">%s\nlength\t%d\ngc\t%.4f\n", s.Record, s.Length, s.GC)
		for _, g := range s.Trigrams {
			fmt.Fprintf(w, "%s\t%d\n", g.Seq, g.Count)
		}
		res = append(res, s)
	}

	if image != "" {
		p, err := chart.Trigrams(seqs[0].Sequence, top)
		if err != nil {
			return nil, err
		}
		if err = chart.Save(p, image); err != nil {
			return nil, err
		}
		log.Infof("Trigram histogram of %s written to %s", seqs[0].Name, image)
	}
	return res, nil
}

func runPlot(t *gcode.Table, protein, out string) error {
	protein = strings.ToUpper(protein)
	cands, err := backtrans.BackTranslate(protein, t)
	if err != nil {
		return err
	}
	p, err := chart.Candidates(protein, cands)
	if err != nil {
		return err
	}
	return chart.Save(p, out)
}
