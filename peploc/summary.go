package main

import (
	"bitbucket.org/Davydov/peploc/backtrans"
	"bitbucket.org/Davydov/peploc/bio"
)

// CallSummary is the JSON output of a peploc run.
type CallSummary struct {
	// Version stores peploc version.
	Version string `json:"version"`
	// CommandLine is an array storing binary name and all command-line parameters.
	CommandLine []string `json:"commandLine"`
	// Command is the subcommand run.
	Command string `json:"command"`
	// Time is the running time in seconds.
	Time float64 `json:"time"`
	// Result is the command specific result.
	Result interface{} `json:"result,omitempty"`
}

// BackTranslateSummary lists candidate codons per residue.
type BackTranslateSummary struct {
	Table        string     `json:"table"`
	Protein      string     `json:"protein"`
	Codons       [][]string `json:"codons"`
	Permutations string     `json:"permutations"`
}

// CountSummary stores permutation counts.
type CountSummary struct {
	Protein   string `json:"protein"`
	Concrete  string `json:"concrete"`
	Ambiguous string `json:"ambiguous"`
}

// LocateResult is the search result for one record and strand.
type LocateResult struct {
	Record    string `json:"record"`
	Table     string `json:"table"`
	Strand    string `json:"strand"`
	Index     int    `json:"index"`
	Candidate string `json:"candidate,omitempty"`
	Cached    bool   `json:"cached,omitempty"`
	// All is filled with --all.
	All []backtrans.Hit `json:"all,omitempty"`
}

// LocateSummary is the result of the locate command.
type LocateSummary struct {
	Protein string         `json:"protein"`
	Prefix  int            `json:"prefix"`
	Results []LocateResult `json:"results"`
}

// StatsSummary stores statistics of one record.
type StatsSummary struct {
	Record    string             `json:"record"`
	Length    int                `json:"length"`
	GC        float64            `json:"gc"`
	BadChars  map[string]int     `json:"badChars,omitempty"`
	Frequency map[string]float64 `json:"frequency"`
	Trigrams  []bio.NGram        `json:"trigrams"`
}
