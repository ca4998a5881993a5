package backtrans

import (
	"fmt"
	"math/big"

	"github.com/pbnjay/memory"
)

// Product iterates over the Cartesian product of candidate lists. The
// last position changes fastest and every list keeps its own order,
// so the first tuple takes the first candidate everywhere.
//
// A product of zero lists is empty.
type Product struct {
	lists [][]string
	idx   []int
	done  bool
	first bool
}

// NewProduct creates an iterator over the lists.
func NewProduct(lists [][]string) *Product {
	p := &Product{
		lists: lists,
		idx:   make([]int, len(lists)),
		done:  len(lists) == 0,
		first: true,
	}
	for _, l := range lists {
		if len(l) == 0 {
			p.done = true
		}
	}
	return p
}

// Next advances to the next tuple. It returns false when the product is
// exhausted.
func (p *Product) Next() bool {
	if p.done {
		return false
	}
	if p.first {
		p.first = false
		return true
	}
	for i := len(p.idx) - 1; i >= 0; i-- {
		p.idx[i]++
		if p.idx[i] < len(p.lists[i]) {
			return true
		}
		p.idx[i] = 0
	}
	p.done = true
	return false
}

// String returns the current tuple concatenated.
func (p *Product) String() string {
	n := 0
	for i, j := range p.idx {
		n += len(p.lists[i][j])
	}
	buf := make([]byte, 0, n)
	for i, j := range p.idx {
		buf = append(buf, p.lists[i][j]...)
	}
	return string(buf)
}

// Enumerate returns every concatenated tuple of the product.
func Enumerate(lists [][]string) []string {
	size := 0
	if n := countCandidates(lists); n.IsInt64() && n.Int64() < 1<<20 {
		size = int(n.Int64())
	}
	res := make([]string, 0, size)
	for p := NewProduct(lists); p.Next(); {
		res = append(res, p.String())
	}
	return res
}

// EnumerationError is returned when an enumeration wouldn't fit into
// the memory.
type EnumerationError struct {
	Count *big.Int
	Bytes *big.Int
	Limit uint64
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("%v sequences need about %v bytes, limit is %d", e.Count, e.Bytes, e.Limit)
}

// fallbackLimit is used when the total memory can't be detected.
const fallbackLimit = 1 << 30

// CheckEnumerable tests if all the tuples of the product can be held in
// a quarter of the system memory.
func CheckEnumerable(lists [][]string) error {
	limit := memory.TotalMemory() / 4
	if limit == 0 {
		limit = fallbackLimit
	}
	count := countCandidates(lists)
	if len(lists) == 0 {
		count.SetInt64(0)
	}
	seqLen := 0
	for _, l := range lists {
		if len(l) > 0 {
			seqLen += len(l[0])
		}
	}
	// string header plus the data
	bytes := new(big.Int).Mul(count, big.NewInt(int64(seqLen+16)))
	if bytes.Cmp(new(big.Int).SetUint64(limit)) > 0 {
		return &EnumerationError{Count: count, Bytes: bytes, Limit: limit}
	}
	return nil
}
