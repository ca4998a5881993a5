// Package bio provides reading and basic handling of nucleotide
// sequences.
package bio

import (
	"bufio"
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Sequence is a type which is intended for storing nucleotide or
// protein sequence with it's name.
type Sequence struct {
	Name     string
	Sequence string
}

// Sequences stores multiple sequences, e.g. records of a FASTA file.
type Sequences []Sequence

// translTableRe matches NCBI FASTA defline modifiers selecting the
// genetic code.
var translTableRe = regexp.MustCompile(`\[(?:transl_table|gcode)=(\d+)\]`)

// TranslTable returns the genetic code id given in the defline as
// [transl_table=N] or [gcode=N], or zero.
func (seq Sequence) TranslTable() int {
	m := translTableRe.FindStringSubmatch(seq.Name)
	if m == nil {
		return 0
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return id
}

// ParseFasta parses FASTA sequences from a reader. Sequences are
// cleaned with Clean.
func ParseFasta(rd io.Reader) (seqs Sequences, err error) {
	seqs = make(Sequences, 0, 10)
	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<26)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == ';' {
			continue
		}
		if line[0] == '>' {
			seq := Sequence{Name: strings.TrimSpace(line[1:])}
			seqs = append(seqs, seq)
		} else {
			if len(seqs) == 0 {
				return nil, errors.New("sequence w/o prefix")
			}
			seqs[len(seqs)-1].Sequence += Clean(line)
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, err
	}
	if len(seqs) == 0 {
		return nil, errors.New("no sequences found")
	}
	return
}

// Clean removes white space, converts to upper case and replaces U
// with T.
func Clean(seq string) string {
	s := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, seq)
	return strings.Replace(strings.ToUpper(s), "U", "T", -1)
}

// BadChars counts characters other than A, C, G and T.
func BadChars(seq string) map[byte]int {
	bad := make(map[byte]int)
	for i := 0; i < len(seq); i++ {
		switch seq[i] {
		case 'A', 'C', 'G', 'T':
		default:
			bad[seq[i]]++
		}
	}
	return bad
}

// Wrap inputs a string and wraps it so string length is n characters
// or less.
func Wrap(seq string, n int) string {
	var b strings.Builder
	for i := 0; i < len(seq); i += n {
		end := i + n
		if end > len(seq) {
			end = len(seq)
		}
		b.WriteString(seq[i:end])
		b.WriteByte('\n')
	}
	return b.String()
}

// String returns a sequence in FASTA format.
func (seq Sequence) String() string {
	return ">" + seq.Name + "\n" + Wrap(seq.Sequence, 80)
}

// String returns sequences in FASTA format.
func (seqs Sequences) String() string {
	var b strings.Builder
	for _, seq := range seqs {
		b.WriteString(seq.String())
	}
	return strings.TrimSuffix(b.String(), "\n")
}
