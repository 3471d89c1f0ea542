// Package triplestore is an in-memory RDF triple store, the input to the
// RDF→graph translator. It is the flattened analogue of the teacher's
// rdf.Graph: subject -> predicate -> set of objects.
package triplestore

import (
	"sort"

	"github.com/cemento-go/cemento/internal/rdfterm"
)

// Triple is a RDF statement.
type Triple struct {
	Subj rdfterm.IRI
	Pred rdfterm.IRI
	Obj  rdfterm.Term
}

// Store holds a set of triples and the prefix bindings declared alongside
// them (e.g. by a Turtle file's @prefix directives).
type Store struct {
	bySubj map[rdfterm.IRI]map[rdfterm.IRI][]rdfterm.Term
	Prefixes map[string]string // prefix -> namespace IRI, as declared in the source
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		bySubj:   make(map[rdfterm.IRI]map[rdfterm.IRI][]rdfterm.Term),
		Prefixes: make(map[string]string),
	}
}

// Insert adds a triple to the store. It is a no-op if the exact triple is
// already present.
func (s *Store) Insert(t Triple) {
	preds, ok := s.bySubj[t.Subj]
	if !ok {
		preds = make(map[rdfterm.IRI][]rdfterm.Term)
		s.bySubj[t.Subj] = preds
	}
	for _, existing := range preds[t.Pred] {
		if existing == t.Obj {
			return
		}
	}
	preds[t.Pred] = append(preds[t.Pred], t.Obj)
}

// Remove deletes a triple, if present.
func (s *Store) Remove(t Triple) {
	preds, ok := s.bySubj[t.Subj]
	if !ok {
		return
	}
	objs := preds[t.Pred]
	for i, existing := range objs {
		if existing == t.Obj {
			preds[t.Pred] = append(objs[:i], objs[i+1:]...)
			break
		}
	}
	if len(preds[t.Pred]) == 0 {
		delete(preds, t.Pred)
	}
	if len(preds) == 0 {
		delete(s.bySubj, t.Subj)
	}
}

// Objects returns the objects of (subj, pred).
func (s *Store) Objects(subj, pred rdfterm.IRI) []rdfterm.Term {
	return s.bySubj[subj][pred]
}

// Size returns the number of triples in the store.
func (s *Store) Size() int {
	n := 0
	for _, preds := range s.bySubj {
		for _, objs := range preds {
			n += len(objs)
		}
	}
	return n
}

// Triples returns all triples, sorted for deterministic iteration.
func (s *Store) Triples() []Triple {
	out := make([]Triple, 0, s.Size())
	for subj, preds := range s.bySubj {
		for pred, objs := range preds {
			for _, obj := range objs {
				out = append(out, Triple{Subj: subj, Pred: pred, Obj: obj})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Subj != out[j].Subj {
			return out[i].Subj < out[j].Subj
		}
		if out[i].Pred != out[j].Pred {
			return out[i].Pred < out[j].Pred
		}
		return out[i].Obj.String() < out[j].Obj.String()
	})
	return out
}

// SubjectsWithPredicate returns the distinct subjects that have at least one
// triple with the given predicate.
func (s *Store) SubjectsWithPredicate(pred rdfterm.IRI) []rdfterm.IRI {
	var out []rdfterm.IRI
	for subj, preds := range s.bySubj {
		if _, ok := preds[pred]; ok {
			out = append(out, subj)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Merge copies all triples and prefix bindings of other into s.
func (s *Store) Merge(other *Store) {
	for _, t := range other.Triples() {
		s.Insert(t)
	}
	for p, ns := range other.Prefixes {
		s.Prefixes[p] = ns
	}
}
