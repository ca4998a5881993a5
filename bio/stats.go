package bio

import (
	"sort"

	"github.com/bebop/poly/checks"
	"github.com/bebop/poly/transform"
)

// NGram is a substring with its count.
type NGram struct {
	Seq   string `json:"seq"`
	Count int    `json:"count"`
}

// NGrams counts overlapping substrings of length n.
func NGrams(seq string, n int) map[string]int {
	res := make(map[string]int)
	for i := 0; i+n <= len(seq); i++ {
		res[seq[i:i+n]]++
	}
	return res
}

// TopNGrams returns the most common n-grams, ties broken
// alphabetically. All of them are returned if top <= 0.
func TopNGrams(seq string, n, top int) []NGram {
	counts := NGrams(seq, n)
	res := make([]NGram, 0, len(counts))
	for s, c := range counts {
		res = append(res, NGram{s, c})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Count != res[j].Count {
			return res[i].Count > res[j].Count
		}
		return res[i].Seq < res[j].Seq
	})
	if top > 0 && len(res) > top {
		res = res[:top]
	}
	return res
}

// Frequencies returns the fraction of each of A, C, G and T.
func Frequencies(seq string) map[byte]float64 {
	res := map[byte]float64{'A': 0, 'C': 0, 'G': 0, 'T': 0}
	if len(seq) == 0 {
		return res
	}
	for i := 0; i < len(seq); i++ {
		if _, ok := res[seq[i]]; ok {
			res[seq[i]]++
		}
	}
	for b := range res {
		res[b] /= float64(len(seq))
	}
	return res
}

// GCContent returns the fraction of G and C in the sequence.
func GCContent(seq string) float64 {
	if len(seq) == 0 {
		return 0
	}
	return checks.GcContent(seq)
}

// ReverseComplement returns the reverse complement of a DNA sequence.
func ReverseComplement(seq string) string {
	return transform.ReverseComplement(seq)
}
