package rdfconv

import (
	"strings"

	"github.com/google/uuid"

	"github.com/cemento-go/cemento/internal/rdfterm"
	"github.com/cemento-go/cemento/internal/triplestore"
)

// literalIDPrefix introduces the per-occurrence uniquification token
// prepended to a literal's lexical form by Uniquify, spec §3 "Literal
// identity".
const literalIDPrefix = "literal_id-"

// Uniquify rewrites every literal object in store to a fresh
// "literal_id-<uuid>:<value>" lexical form, preserving language tag and
// datatype, so that repeated occurrences of the same value are not merged
// into a single graph node by the translator's node-identity-by-value
// logic. It returns a new store; the input is left untouched.
func Uniquify(store *triplestore.Store) *triplestore.Store {
	out := triplestore.New()
	for p, ns := range store.Prefixes {
		out.Prefixes[p] = ns
	}
	for _, t := range store.Triples() {
		if lit, ok := t.Obj.(rdfterm.Literal); ok {
			t.Obj = rdfterm.Literal{
				Value:    literalIDPrefix + uuid.NewString() + ":" + lit.Value,
				Lang:     lit.Lang,
				Datatype: lit.Datatype,
			}
		}
		out.Insert(t)
	}
	return out
}

// StripUniqueID removes a literal_id-<uuid>: prefix from a lexical form, if
// present, restoring the original value for emission (spec §3).
func StripUniqueID(value string) string {
	if !strings.HasPrefix(value, literalIDPrefix) {
		return value
	}
	rest := value[len(literalIDPrefix):]
	if i := strings.Index(rest, ":"); i >= 0 {
		return rest[i+1:]
	}
	return value
}
