package hexagram

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
)

//go:embed data/hexagrams.json
var catalogFS embed.FS

const catalogPath = "data/hexagrams.json"

// Catalog loads the embedded hexagram dataset once and serves lookups.
type Catalog struct {
	once   sync.Once
	byNum  [65]*Hexagram // index 1..64
	loaded []Hexagram
	err    error
}

// NewCatalog returns an unloaded catalog; the dataset is parsed on
// first use.
func NewCatalog() *Catalog {
	return &Catalog{}
}

func (c *Catalog) init() {
	raw, err := catalogFS.ReadFile(catalogPath)
	if err != nil {
		c.err = fmt.Errorf("read embedded catalog: %w", err)
		return
	}
	var entries []Hexagram
	if err := json.Unmarshal(raw, &entries); err != nil {
		c.err = fmt.Errorf("parse embedded catalog: %w", err)
		return
	}
	if len(entries) != 64 {
		c.err = fmt.Errorf("embedded catalog has %d entries, want 64", len(entries))
		return
	}
	for i := range entries {
		h := &entries[i]
		if h.Number < 1 || h.Number > 64 || c.byNum[h.Number] != nil {
			c.err = fmt.Errorf("embedded catalog: bad or duplicate number %d", h.Number)
			return
		}
		c.byNum[h.Number] = h
	}
	c.loaded = entries
}

// Err reports whether the embedded dataset failed to load.
func (c *Catalog) Err() error {
	c.once.Do(c.init)
	return c.err
}

// ByNumber returns the hexagram for n, or ok=false for numbers outside
// [1, 64] or a broken dataset.
func (c *Catalog) ByNumber(n int) (Hexagram, bool) {
	c.once.Do(c.init)
	if c.err != nil || n < 1 || n > 64 {
		return Hexagram{}, false
	}
	return *c.byNum[n], true
}

// ByLines resolves six line polarities (index 0 = bottom, true = yang)
// through the King Wen table to a full catalog entry.
func (c *Catalog) ByLines(yang [6]bool) (Hexagram, bool) {
	n, ok := NumberForPattern(Pattern(yang))
	if !ok {
		return Hexagram{}, false
	}
	return c.ByNumber(n)
}

// All returns every entry in catalog order. The slice is shared;
// callers must not mutate it.
func (c *Catalog) All() []Hexagram {
	c.once.Do(c.init)
	return c.loaded
}

// Digest returns the xxhash64 of the embedded dataset bytes, for
// integrity reporting.
func Digest() (uint64, error) {
	raw, err := catalogFS.ReadFile(catalogPath)
	if err != nil {
		return 0, fmt.Errorf("read embedded catalog: %w", err)
	}
	return xxhash.Sum64(raw), nil
}
