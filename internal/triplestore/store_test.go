package triplestore

import (
	"testing"

	"github.com/cemento-go/cemento/internal/rdfterm"
)

func TestInsertDeduplicatesExactTriple(t *testing.T) {
	s := New()
	tr := Triple{Subj: "http://ex/a", Pred: "http://ex/p", Obj: rdfterm.IRI("http://ex/b")}
	s.Insert(tr)
	s.Insert(tr)
	if s.Size() != 1 {
		t.Fatalf("got size %d, want 1", s.Size())
	}
}

func TestRemoveDeletesEmptyPredAndSubjEntries(t *testing.T) {
	s := New()
	tr := Triple{Subj: "http://ex/a", Pred: "http://ex/p", Obj: rdfterm.IRI("http://ex/b")}
	s.Insert(tr)
	s.Remove(tr)
	if s.Size() != 0 {
		t.Fatalf("got size %d, want 0", s.Size())
	}
	if len(s.Objects("http://ex/a", "http://ex/p")) != 0 {
		t.Fatalf("expected no objects left for removed (subj,pred)")
	}
}

func TestTriplesSortedDeterministically(t *testing.T) {
	s := New()
	s.Insert(Triple{Subj: "http://ex/b", Pred: "http://ex/p", Obj: rdfterm.IRI("http://ex/z")})
	s.Insert(Triple{Subj: "http://ex/a", Pred: "http://ex/q", Obj: rdfterm.IRI("http://ex/y")})
	s.Insert(Triple{Subj: "http://ex/a", Pred: "http://ex/p", Obj: rdfterm.IRI("http://ex/x")})

	got := s.Triples()
	if len(got) != 3 {
		t.Fatalf("got %d triples, want 3", len(got))
	}
	want := []Triple{
		{Subj: "http://ex/a", Pred: "http://ex/p", Obj: rdfterm.IRI("http://ex/x")},
		{Subj: "http://ex/a", Pred: "http://ex/q", Obj: rdfterm.IRI("http://ex/y")},
		{Subj: "http://ex/b", Pred: "http://ex/p", Obj: rdfterm.IRI("http://ex/z")},
	}
	for i, tr := range want {
		if got[i] != tr {
			t.Fatalf("triple %d: got %+v, want %+v", i, got[i], tr)
		}
	}
}

func TestSubjectsWithPredicate(t *testing.T) {
	s := New()
	s.Insert(Triple{Subj: "http://ex/a", Pred: "http://ex/p", Obj: rdfterm.IRI("http://ex/x")})
	s.Insert(Triple{Subj: "http://ex/b", Pred: "http://ex/q", Obj: rdfterm.IRI("http://ex/y")})

	got := s.SubjectsWithPredicate("http://ex/p")
	if len(got) != 1 || got[0] != "http://ex/a" {
		t.Fatalf("got %v, want [http://ex/a]", got)
	}
}

func TestMergeCopiesTriplesAndPrefixes(t *testing.T) {
	a := New()
	a.Prefixes["ex"] = "http://ex/"
	b := New()
	b.Prefixes["xs"] = "http://www.w3.org/2001/XMLSchema#"
	b.Insert(Triple{Subj: "http://ex/a", Pred: "http://ex/p", Obj: rdfterm.IRI("http://ex/b")})

	a.Merge(b)
	if a.Size() != 1 {
		t.Fatalf("got size %d, want 1", a.Size())
	}
	if a.Prefixes["xs"] != "http://www.w3.org/2001/XMLSchema#" {
		t.Fatalf("expected xs prefix merged in")
	}
	if a.Prefixes["ex"] != "http://ex/" {
		t.Fatalf("expected original ex prefix preserved")
	}
}
