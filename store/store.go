// Package store keeps computed results (peptide locations and
// ambiguous codon tables) in a bolt database, so repeated runs over the
// same input don't redo the search.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/op/go-logging"

	bolt "go.etcd.io/bbolt"
)

// log is the global logging variable.
var log = logging.MustGetLogger("store")

var (
	// LOCATIONS is the bucket for peptide search results.
	LOCATIONS = []byte("locations")
	// AMBIGUOUS is the bucket for ambiguous codon tables.
	AMBIGUOUS = []byte("ambiguous")
)

// Location is a stored peptide search result.
type Location struct {
	Record    string    `json:"record"`
	Peptide   string    `json:"peptide"`
	Prefix    int       `json:"prefix"`
	Strand    string    `json:"strand,omitempty"`
	Index     int       `json:"index"`
	Candidate string    `json:"candidate,omitempty"`
	Saved     time.Time `json:"saved"`
}

// LocationKey identifies a search: the sequence (by its hash), the
// genetic code, the peptide and the prefix length.
func LocationKey(seqHash, code, peptide string, prefix int) []byte {
	return []byte(fmt.Sprintf("%s|%s|%s|%d", seqHash, code, peptide, prefix))
}

// Store wraps a bolt database. A nil database turns all operations
// into no-ops, so callers don't have to check if caching is enabled.
type Store struct {
	db *bolt.DB
}

// Open opens or creates the database file.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// New wraps an open database; db may be nil.
func New(db *bolt.DB) *Store {
	return &Store{db: db}
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveLocation stores a search result.
func (s *Store) SaveLocation(key []byte, loc *Location) error {
	loc.Saved = time.Now()
	return s.saveJSON(LOCATIONS, key, loc)
}

// GetLocation returns a stored search result or nil.
func (s *Store) GetLocation(key []byte) (*Location, error) {
	var loc *Location
	found, err := s.loadJSON(LOCATIONS, key, &loc)
	if err != nil || !found {
		return nil, err
	}
	log.Debugf("Found stored location for %s (index=%d)", key, loc.Index)
	return loc, nil
}

// SaveAmbiguous stores an ambiguous codon table under a genetic code
// name. Symbols are stored as strings to keep the JSON readable.
func (s *Store) SaveAmbiguous(code string, table map[byte][]string) error {
	m := make(map[string][]string, len(table))
	for aa, patterns := range table {
		m[string(aa)] = patterns
	}
	return s.saveJSON(AMBIGUOUS, []byte(code), m)
}

// GetAmbiguous returns a stored ambiguous codon table or nil.
func (s *Store) GetAmbiguous(code string) (map[byte][]string, error) {
	var m map[string][]string
	found, err := s.loadJSON(AMBIGUOUS, []byte(code), &m)
	if err != nil || !found {
		return nil, err
	}
	table := make(map[byte][]string, len(m))
	for aa, patterns := range m {
		if len(aa) != 1 {
			return nil, fmt.Errorf("bad amino acid key %q in stored table %s", aa, code)
		}
		table[aa[0]] = patterns
	}
	return table, nil
}

func (s *Store) saveJSON(bucket, key []byte, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error("Error serializing", string(key), err)
		return err
	}
	err = SaveData(s.db, bucket, key, data)
	if err != nil {
		log.Error("Error saving", string(key), err)
	}
	return err
}

func (s *Store) loadJSON(bucket, key []byte, v interface{}) (bool, error) {
	b, err := LoadData(s.db, bucket, key)
	if err != nil || b == nil {
		return false, err
	}
	if err = json.Unmarshal(b, v); err != nil {
		return false, err
	}
	return true, nil
}

// SaveData saves values in bolt database.
func SaveData(db *bolt.DB, bucket, key, data []byte) error {
	if db == nil {
		return nil
	}
	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucket)
		if err != nil {
			return err
		}
		return b.Put(key, data)
	})
}

// LoadData loads data from bolt database. Nil is returned for missing
// keys.
func LoadData(db *bolt.DB, bucket, key []byte) ([]byte, error) {
	var data []byte
	if db == nil {
		return nil, nil
	}
	err := db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		// the value is only valid inside the transaction
		if v := b.Get(key); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}
