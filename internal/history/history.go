// Package history persists reduced casting records. Only line values,
// hexagram numbers and the method cross this boundary, never the full
// catalog entries.
package history

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/AnyUserName/hexcast-cli/internal/divine"
)

// Record is the persisted shape of one casting.
type Record struct {
	CastAt              string `json:"cast_at"`
	Lines               [6]int `json:"lines"`
	PrimaryHexagram     int    `json:"primaryHexagram"`
	ChangingLines       []int  `json:"changingLines"`
	TransformedHexagram *int   `json:"transformedHexagram"`
	Method              string `json:"method"`
}

// NewRecord reduces a casting result to its persisted form.
func NewRecord(res divine.Result) Record {
	rec := Record{
		CastAt:          time.Now().UTC().Format(time.RFC3339),
		PrimaryHexagram: res.Primary.Number,
		ChangingLines:   append([]int(nil), res.ChangingLines...),
		Method:          string(res.Method),
	}
	for i, s := range res.Lines {
		rec.Lines[i] = int(s.Value)
	}
	if res.Transformed != nil {
		n := res.Transformed.Number
		rec.TransformedHexagram = &n
	}
	return rec
}

// Store writes records as JSON files named by content digest.
type Store struct {
	Dir string
}

// Save writes rec into the store directory and returns the file path.
// Filenames are content-addressed (xxhash64 of the payload), so saving
// the same reading twice is idempotent.
func (s Store) Save(rec Record) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create history dir: %w", err)
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", err
	}
	data = append(data, '\n')

	sum := xxhash.Sum64(data)
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(sum >> (56 - 8*i))
	}
	name := fmt.Sprintf("cast-%s.json", hex.EncodeToString(buf[:]))

	path := filepath.Join(s.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write record: %w", err)
	}
	return path, nil
}

// List loads every record in the store, oldest first.
func (s Store) List() ([]Record, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history dir: %w", err)
	}

	var records []Record
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.Dir, e.Name()))
		if err != nil {
			return nil, err
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("parse record %s: %w", e.Name(), err)
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].CastAt < records[j].CastAt })
	return records, nil
}
