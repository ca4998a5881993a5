/*

Peploc back-translates peptides into codons and finds peptides in
nucleotide sequences by searching for their back-translations.

The basic usage looks like this:

	peploc locate genome.fst MKVLAA

, this will search for the first three residues of the peptide under
the standard genetic code. A different genetic code is chosen with a
family and a species:

	peploc --family unambiguous_dna_by_name --species "Vertebrate Mitochondrial" locate mt.fst MW

To see all the commands and options run:

	peploc --help

*/
package main

import (
	"encoding/json"
	"os"
	"strconv"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/gedex/inflector"
	"github.com/op/go-logging"

	"bitbucket.org/Davydov/peploc/gcode"
)

// These three variables are set during the compilation.
var githash = ""
var gitbranch = ""
var buildstamp = ""
var version = "branch: " + gitbranch + ", revision: " + githash + ", build time: " + buildstamp

// Logger settings.
var log = logging.MustGetLogger("peploc")
var formatter = logging.MustStringFormatter(`%{message}`)

func familyNames() []string {
	res := make([]string, len(gcode.Families))
	for i, f := range gcode.Families {
		res[i] = string(f)
	}
	return res
}

// command-line options
var (
	// application
	app = kingpin.New("peploc", "peptide back-translation and locator").Version(version)

	// genetic code
	family = app.Flag("family", "codon table family").
		Default(string(gcode.StandardDNA)).
		Enum(familyNames()...)
	species = app.Flag("species", "species or organelle of the genetic code (see 'tables')").String()
	gcodeID = app.Flag("gcode", "NCBI genetic code id, overrides --species").Int()
	gcFile  = app.Flag("gcfile", "genetic code catalogue in NCBI gc.prt format").ExistingFile()

	// input/output
	outLogF  = app.Flag("log", "write log to a file").String()
	jsonF    = app.Flag("json", "write json output to a file").String()
	logLevel = app.Flag("loglevel", "set loglevel "+
		"('critical', 'error', 'warning', 'notice', 'info', 'debug')").
		Default("notice").
		Enum("critical", "error", "warning", "notice", "info", "debug")

	// tables
	tablesCmd = app.Command("tables", "list codon table families and species")

	// backtranslate
	btCmd     = app.Command("backtranslate", "print candidate codons for every residue")
	btProtein = btCmd.Arg("protein", "protein sequence").Required().String()

	// count
	countCmd     = app.Command("count", "count back-translated sequences")
	countProtein = countCmd.Arg("protein", "protein sequence").Required().String()

	// ambiguous
	ambCmd   = app.Command("ambiguous", "print the ambiguous codon table")
	ambCache = ambCmd.Flag("cache", "result cache database").String()

	// expand
	expandCmd     = app.Command("expand", "print every back-translated sequence")
	expandProtein = expandCmd.Arg("protein", "protein sequence").Required().String()

	// disambiguate
	disCmd = app.Command("disambiguate", "print every sequence an ambiguous DNA stands for")
	disDNA = disCmd.Arg("dna", "DNA with IUPAC ambiguity codes").Required().String()

	// locate
	locCmd       = app.Command("locate", "locate a peptide in nucleotide sequences")
	locSeqFile   = locCmd.Arg("sequences", "FASTA file, may be gzip compressed").Required().ExistingFile()
	locProtein   = locCmd.Arg("protein", "protein sequence").Required().String()
	locPrefix    = locCmd.Flag("prefix", "number of residues to search for").Default("3").Int()
	locMaxPrefix = locCmd.Flag("maxprefix", "maximum allowed prefix length").Default("3").Int()
	locBoth      = locCmd.Flag("both", "also search the reverse complement").Bool()
	locAll       = locCmd.Flag("all", "report every candidate found").Bool()
	locCache     = locCmd.Flag("cache", "result cache database").String()
	locThreads   = locCmd.Flag("nt", "number of records searched in parallel").Default("4").Int()

	// stats
	statsCmd     = app.Command("stats", "nucleotide statistics of a sequence")
	statsSeqFile = statsCmd.Arg("sequences", "FASTA file, may be gzip compressed").Required().ExistingFile()
	statsTop     = statsCmd.Flag("top", "number of trigrams to report").Default("20").Int()
	statsImage   = statsCmd.Flag("image", "write trigram histogram to a file (png, svg, pdf)").String()

	// plot
	plotCmd     = app.Command("plot", "plot candidate codon counts of a protein")
	plotProtein = plotCmd.Arg("protein", "protein sequence").Required().String()
	plotOut     = plotCmd.Flag("out", "output image").Default("candidates.png").String()
)

// plural returns "n word" with the word pluralized if needed.
func plural(n int, word string) string {
	if n != 1 {
		word = inflector.Pluralize(word)
	}
	return strconv.Itoa(n) + " " + word
}

// catalogue returns the default catalogue or the one from --gcfile.
func catalogue() (*gcode.Catalogue, error) {
	if *gcFile == "" {
		return gcode.Default, nil
	}
	f, err := os.Open(*gcFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	codes, err := gcode.ParseCatalogue(f)
	if err != nil {
		return nil, err
	}
	log.Infof("Read %s from %s", plural(len(codes), "genetic code"), *gcFile)
	return gcode.NewCatalogue(codes)
}

// selectTable returns a forward table for the family, species and
// genetic code id. A positive id wins over the species; for the
// standard families it switches to the unambiguous family of the same
// alphabet.
func selectTable(cat *gcode.Catalogue, f gcode.Family, sp string, id int) (*gcode.Table, error) {
	if id > 0 {
		if f.Standard() {
			if f.RNA() {
				f = gcode.UnambiguousRNA
			} else {
				f = gcode.UnambiguousDNA
			}
		}
		return cat.ByID(f, id)
	}
	return cat.Lookup(gcode.CodeID{Family: f, Species: sp})
}

// saveJSON writes the summary if requested.
func saveJSON(summary interface{}) {
	if *jsonF == "" {
		return
	}
	j, err := json.Marshal(summary)
	if err != nil {
		log.Error(err)
		return
	}
	log.Debug(string(j))
	f, err := os.Create(*jsonF)
	if err != nil {
		log.Error("Error creating json output file:", err)
		return
	}
	defer f.Close()
	if _, err = f.Write(j); err != nil {
		log.Error("Error writing json output file:", err)
	}
}

func setupLogging() (closer func()) {
	logging.SetFormatter(formatter)

	closer = func() {}
	var backend *logging.LogBackend
	if *outLogF != "" {
		f, err := os.OpenFile(*outLogF, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatal("Error creating log file:", err)
		}
		closer = func() { f.Close() }
		backend = logging.NewLogBackend(f, "", 0)
	} else {
		backend = logging.NewLogBackend(os.Stderr, "", 0)
	}
	logging.SetBackend(backend)

	level, err := logging.LogLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	for _, module := range []string{"peploc", "gcode", "backtrans", "bio", "store"} {
		logging.SetLevel(level, module)
	}
	return
}

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	closeLog := setupLogging()
	defer closeLog()

	// print revision
	log.Info(version)

	// print commandline
	log.Info("Command line:", os.Args)

	startTime := time.Now()

	cat, err := catalogue()
	if err != nil {
		log.Fatal("Error reading genetic code catalogue:", err)
	}

	// tables are only needed by some commands, and locate may take the
	// genetic code from the sequence file
	table := func() *gcode.Table {
		t, err := selectTable(cat, gcode.Family(*family), *species, *gcodeID)
		if err != nil {
			log.Fatal(err)
		}
		log.Infof("Genetic code: %s", t.Name())
		return t
	}

	summary := &CallSummary{
		Version:     version,
		CommandLine: os.Args,
		Command:     command,
	}

	switch command {
	case tablesCmd.FullCommand():
		printTables(os.Stdout, cat)
	case btCmd.FullCommand():
		summary.Result, err = runBackTranslate(os.Stdout, table(), *btProtein)
	case countCmd.FullCommand():
		summary.Result, err = runCount(os.Stdout, table(), *countProtein)
	case ambCmd.FullCommand():
		summary.Result, err = runAmbiguous(os.Stdout, table(), *ambCache)
	case expandCmd.FullCommand():
		err = runExpand(os.Stdout, table(), *expandProtein)
	case disCmd.FullCommand():
		err = runDisambiguate(os.Stdout, *disDNA)
	case locCmd.FullCommand():
		summary.Result, err = runLocate(os.Stdout, cat, newLocateSettings())
	case statsCmd.FullCommand():
		summary.Result, err = runStats(os.Stdout, *statsSeqFile, *statsTop, *statsImage)
	case plotCmd.FullCommand():
		err = runPlot(table(), *plotProtein, *plotOut)
	}
	if err != nil {
		log.Fatal(err)
	}

	summary.Time = time.Since(startTime).Seconds()
	log.Noticef("Running time: %v", time.Since(startTime))
	saveJSON(summary)
}
