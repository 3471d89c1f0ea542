package term

import (
	"github.com/cemento-go/cemento/internal/prefix"
	"github.com/cemento-go/cemento/internal/rdfterm"
	"github.com/cemento-go/cemento/internal/triplestore"
)

// Populate builds a Table from (a) the default vocabulary, (b) every IRI
// appearing in the reference triple store, and (c) the rdfs:label /
// skos:altLabel values attached to those IRIs — spec §4.B's term-table
// population steps, in that order so that later, more specific keys (a
// label that happens to collide with a default-vocabulary prefixed name)
// still win Exact lookups, matching Table.Add's "last writer wins" Exact
// semantics while preserving insertion order for Fuzzy's tie-break.
func Populate(registry *prefix.Registry, store *triplestore.Store) (*Table, error) {
	tbl := New()

	for key, iri := range DefaultVocabularyTerms {
		tbl.Add(key, iri)
	}

	seen := map[rdfterm.IRI]bool{}
	addIRIKey := func(iri rdfterm.IRI) {
		if seen[iri] {
			return
		}
		seen[iri] = true
		if key, err := registry.Shorten(string(iri)); err == nil {
			tbl.Add(key, iri)
		}
	}

	for _, t := range store.Triples() {
		addIRIKey(t.Subj)
		addIRIKey(t.Pred)
		if objIRI, ok := t.Obj.(rdfterm.IRI); ok {
			addIRIKey(objIRI)
		}
	}

	for _, t := range store.Triples() {
		if t.Pred != rdfterm.RDFSlabel && t.Pred != rdfterm.SKOSaltLabel {
			continue
		}
		lit, ok := t.Obj.(rdfterm.Literal)
		if !ok {
			continue
		}
		if key, err := registry.Shorten(string(t.Subj)); err == nil {
			tbl.Add(key, t.Subj)
			tbl.Add(lit.Value, t.Subj)
			tbl.Add(keyPrefix(key) + ":" + lit.Value, t.Subj)
		}
	}

	return tbl, nil
}

func keyPrefix(key string) string {
	for i, r := range key {
		if r == ':' {
			return key[:i]
		}
	}
	return ""
}
