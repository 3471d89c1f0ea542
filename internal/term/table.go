// Package term implements the term table (component B) and the term
// reconciler (component C).
package term

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/cemento-go/cemento/internal/rdfterm"
)

// keyEntry records a search key's canonical term and its insertion index,
// so that Fuzzy's tie-break ("first insertion wins", spec §4.B) is
// deterministic regardless of Go's randomized map iteration order.
type keyEntry struct {
	key   string
	term  rdfterm.IRI
	order int
}

// Table is the lexicon of known terms: search keys (prefix:localname or
// prefix:label) mapped to canonical IRIs.
type Table struct {
	entries []keyEntry
	exactIx map[string]int // search key -> index into entries, last writer wins for Exact
}

// New returns an empty Table.
func New() *Table {
	return &Table{exactIx: make(map[string]int)}
}

// Add registers a search key pointing at term. A term may have many search
// keys; within a single key, the most recently added term wins Exact
// lookups, but Fuzzy always breaks ties by original insertion order.
func (t *Table) Add(key string, term rdfterm.IRI) {
	idx := len(t.entries)
	t.entries = append(t.entries, keyEntry{key: key, term: term, order: idx})
	t.exactIx[key] = idx
}

// Exact returns the term bound to key, if any.
func (t *Table) Exact(key string) (rdfterm.IRI, bool) {
	idx, ok := t.exactIx[key]
	if !ok {
		return "", false
	}
	return t.entries[idx].term, true
}

// Fuzzy takes an ordered list of candidate keys and returns the term of the
// best-scoring registered search key across all candidates, provided the
// best score is >= cutoff. Ties (equal scores) are broken by the order in
// which the winning search keys were originally registered — first
// insertion wins, per spec §4.B.
func (t *Table) Fuzzy(keys []string, cutoff int) (rdfterm.IRI, bool) {
	bestScore := -1
	bestOrder := -1
	var bestTerm rdfterm.IRI
	found := false
	for _, candidate := range keys {
		for _, e := range t.entries {
			score := fuzzy.TokenSortRatio(candidate, e.key)
			if score < cutoff {
				continue
			}
			if score > bestScore || (score == bestScore && e.order < bestOrder) {
				bestScore = score
				bestOrder = e.order
				bestTerm = e.term
				found = true
			}
		}
	}
	return bestTerm, found
}

// Len reports the number of registered search keys.
func (t *Table) Len() int { return len(t.entries) }
