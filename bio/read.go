package bio

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/pgzip"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("bio")

// SequenceLoadError wraps any error from opening or parsing a sequence
// file. The underlying error is available with errors.Unwrap.
type SequenceLoadError struct {
	Path string
	Err  error
}

func (e *SequenceLoadError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Path, e.Err)
}

func (e *SequenceLoadError) Unwrap() error {
	return e.Err
}

// gzipMagic are the first bytes of a gzip stream.
var gzipMagic = []byte{0x1f, 0x8b}

// openReader returns a reader for a plain or gzip compressed stream.
func openReader(rd io.Reader) (io.Reader, func() error, error) {
	brd := bufio.NewReader(rd)
	head, err := brd.Peek(2)
	if err != nil && err != io.EOF {
		return nil, nil, err
	}
	if len(head) == 2 && head[0] == gzipMagic[0] && head[1] == gzipMagic[1] {
		zrd, err := pgzip.NewReader(brd)
		if err != nil {
			return nil, nil, err
		}
		return zrd, zrd.Close, nil
	}
	return brd, func() error { return nil }, nil
}

// ReadFasta reads all the records from a FASTA stream, which may be
// gzip compressed.
func ReadFasta(rd io.Reader) (Sequences, error) {
	r, closer, err := openReader(rd)
	if err != nil {
		return nil, err
	}
	defer closer()
	return ParseFasta(r)
}

// ReadSequences reads all the records of a FASTA file.
func ReadSequences(path string) (Sequences, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &SequenceLoadError{Path: path, Err: err}
	}
	defer f.Close()

	seqs, err := ReadFasta(f)
	if err != nil {
		return nil, &SequenceLoadError{Path: path, Err: err}
	}
	log.Debugf("read %d records from %s", len(seqs), path)
	return seqs, nil
}

// ReadSequence returns the nucleotides of the first record of a FASTA
// file and the genetic code id from its defline (zero if absent).
func ReadSequence(path string) (string, int, error) {
	seqs, err := ReadSequences(path)
	if err != nil {
		return "", 0, err
	}
	if len(seqs) > 1 {
		log.Infof("%s has %d records, using the first one", path, len(seqs))
	}
	return seqs[0].Sequence, seqs[0].TranslTable(), nil
}
