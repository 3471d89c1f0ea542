package ttl

import (
	"strings"
	"testing"

	"github.com/cemento-go/cemento/internal/rdfterm"
	"github.com/cemento-go/cemento/internal/triplestore"
)

func decode(t *testing.T, src string) *triplestore.Store {
	t.Helper()
	d, err := NewDecoder(strings.NewReader(src))
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	store, err := d.DecodeAll()
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	return store
}

func TestDecodePrefixDirectiveAndSimpleTriple(t *testing.T) {
	store := decode(t, `
@prefix ex: <http://ex.org/> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
ex:Dog rdfs:subClassOf ex:Animal .
`)
	if store.Prefixes["ex"] != "http://ex.org/" {
		t.Fatalf("got ex prefix %q, want http://ex.org/", store.Prefixes["ex"])
	}
}

func TestDecodeSemicolonSharesSubject(t *testing.T) {
	store := decode(t, `
@prefix ex: <http://ex.org/> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
ex:Dog rdfs:subClassOf ex:Animal ;
       rdfs:label "Dog" .
`)
	objs := store.Objects("http://ex.org/Dog", "http://www.w3.org/2000/01/rdf-schema#subClassOf")
	if len(objs) != 1 || objs[0] != rdfterm.IRI("http://ex.org/Animal") {
		t.Fatalf("got %v, want [http://ex.org/Animal]", objs)
	}
	labels := store.Objects("http://ex.org/Dog", "http://www.w3.org/2000/01/rdf-schema#label")
	if len(labels) != 1 {
		t.Fatalf("got %d labels, want 1", len(labels))
	}
}

func TestDecodeCommaSharesSubjectAndPredicate(t *testing.T) {
	store := decode(t, `
@prefix ex: <http://ex.org/> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
ex:Dog rdfs:subClassOf ex:Animal, ex:Pet .
`)
	objs := store.Objects("http://ex.org/Dog", "http://www.w3.org/2000/01/rdf-schema#subClassOf")
	if len(objs) != 2 {
		t.Fatalf("got %d objects, want 2", len(objs))
	}
}

func TestDecodeTypedAndLangLiteral(t *testing.T) {
	store := decode(t, `
@prefix ex: <http://ex.org/> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
ex:Dog ex:age "3"^^xsd:integer .
ex:Dog ex:label "chien"@fr .
`)
	ageObjs := store.Objects("http://ex.org/Dog", "http://ex.org/age")
	lit := ageObjs[0].(rdfterm.Literal)
	if lit.Datatype != "http://www.w3.org/2001/XMLSchema#integer" {
		t.Fatalf("got datatype %q, want xsd:integer", lit.Datatype)
	}

	labelObjs := store.Objects("http://ex.org/Dog", "http://ex.org/label")
	langLit := labelObjs[0].(rdfterm.Literal)
	if langLit.Lang != "fr" {
		t.Fatalf("got lang %q, want fr", langLit.Lang)
	}
}

func TestDecodeRdfTypeShorthand(t *testing.T) {
	store := decode(t, `
@prefix ex: <http://ex.org/> .
ex:fido a ex:Dog .
`)
	objs := store.Objects("http://ex.org/fido", rdfterm.RDFtype)
	if len(objs) != 1 || objs[0] != rdfterm.IRI("http://ex.org/Dog") {
		t.Fatalf("got %v, want [http://ex.org/Dog]", objs)
	}
}

func TestDecodeUnboundPrefixErrors(t *testing.T) {
	d, err := NewDecoder(strings.NewReader(`missing:Dog missing:p missing:Animal .`))
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	if _, err := d.DecodeAll(); err == nil {
		t.Fatalf("expected an error for an unbound prefix")
	}
}
