package gcode

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// parserState is the position of the catalogue parser inside the
// Genetic-code-table structure.
type parserState int

const (
	stHeader parserState = iota
	stAssign
	stOpen
	stList
	stField
	stValue
	stAfterValue
	stAfterEntry
	stDone
)

// isWordByte reports if b can be a part of an identifier or a number.
func isWordByte(b byte) bool {
	r := rune(b)
	return r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// splitASN1 is a bufio.SplitFunc for the gc.prt subset of ASN.1. It
// yields comments (starting with "--"), "::=", quoted strings, braces,
// commas and words.
func splitASN1(data []byte, atEOF bool) (int, []byte, error) {
	skip := 0
	for skip < len(data) && unicode.IsSpace(rune(data[skip])) {
		skip++
	}
	data = data[skip:]
	if len(data) == 0 {
		return skip, nil, nil
	}

	more := func() (int, []byte, error) {
		if atEOF {
			return 0, nil, io.ErrUnexpectedEOF
		}
		return skip, nil, nil
	}

	switch c := data[0]; {
	case c == '-' && len(data) < 2:
		return more()
	case c == '-' && data[1] == '-':
		adv, tok, err := bufio.ScanLines(data, atEOF)
		return adv + skip, tok, err
	case c == ':':
		if len(data) < 3 {
			return more()
		}
		if data[1] != ':' || data[2] != '=' {
			return 0, nil, errors.New("unexpected character after ':'")
		}
		return skip + 3, data[:3], nil
	case c == '"':
		if i := strings.IndexByte(string(data[1:]), '"'); i >= 0 {
			return skip + i + 2, data[:i+2], nil
		}
		return more()
	case c == '{' || c == '}' || c == ',':
		return skip + 1, data[:1], nil
	case isWordByte(c):
		i := 1
		for i < len(data) && isWordByte(data[i]) {
			i++
		}
		if i == len(data) && !atEOF {
			return skip, nil, nil
		}
		return skip + i, data[:i], nil
	}
	return 0, nil, fmt.Errorf("unknown token starting with %q", data[0])
}

func unquote(s string) (string, error) {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", fmt.Errorf("expecting quoted string, got %s", s)
	}
	return strings.Replace(s[1:len(s)-1], "\n", "", -1), nil
}

// ParseCatalogue parses genetic codes in the NCBI gc.prt format
// (ftp://ftp.ncbi.nih.gov/entrez/misc/data/gc.prt).
func ParseCatalogue(rd io.Reader) (codes []*GeneticCode, err error) {
	scanner := bufio.NewScanner(rd)
	scanner.Split(splitASN1)

	state := stHeader
	var gc *GeneticCode
	var field string

	expect := func(tok, want string, next parserState) error {
		if tok != want {
			return fmt.Errorf("expecting '%s', got '%s'", want, tok)
		}
		state = next
		return nil
	}

	for scanner.Scan() {
		tok := scanner.Text()
		if strings.HasPrefix(tok, "--") {
			continue
		}

		switch state {
		case stHeader:
			err = expect(tok, "Genetic-code-table", stAssign)
		case stAssign:
			err = expect(tok, "::=", stOpen)
		case stOpen:
			err = expect(tok, "{", stList)
		case stList:
			switch tok {
			case "{":
				gc = &GeneticCode{}
				state = stField
			case "}":
				state = stDone
			default:
				err = fmt.Errorf("expecting '{' or '}', got '%s'", tok)
			}
		case stField:
			field = tok
			state = stValue
		case stValue:
			err = gc.setField(field, tok)
			state = stAfterValue
		case stAfterValue:
			switch tok {
			case ",":
				state = stField
			case "}":
				codes = append(codes, gc)
				state = stAfterEntry
			default:
				err = fmt.Errorf("expecting ',' or '}' after %s", field)
			}
		case stAfterEntry:
			switch tok {
			case ",":
				state = stList
			case "}":
				state = stDone
			default:
				err = fmt.Errorf("expecting ',' or '}', got '%s'", tok)
			}
		case stDone:
			err = errors.New("unexpected symbols at the end of catalogue")
		}
		if err != nil {
			return nil, err
		}
	}

	if err = scanner.Err(); err != nil {
		return nil, err
	}
	if state != stDone {
		return nil, io.ErrUnexpectedEOF
	}
	return codes, nil
}

// setField stores a single parsed gc.prt value. Unknown fields are
// ignored.
func (gc *GeneticCode) setField(field, value string) (err error) {
	switch field {
	case "name":
		var name string
		if name, err = unquote(value); err != nil {
			return
		}
		if gc.Name == "" {
			gc.Name = name
		} else {
			gc.ShortName = name
		}
	case "id":
		gc.ID, err = strconv.Atoi(value)
	case "ncbieaa":
		gc.Ncbieaa, err = unquote(value)
		if err == nil && len(gc.Ncbieaa) != 64 {
			err = fmt.Errorf("genetic code %d: ncbieaa must have 64 symbols, got %d",
				gc.ID, len(gc.Ncbieaa))
		}
	case "sncbieaa":
		gc.Sncbieaa, err = unquote(value)
	}
	return
}
