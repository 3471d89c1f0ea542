package serialize

import (
	"strings"
	"testing"

	"github.com/cemento-go/cemento/internal/core"
	"github.com/cemento-go/cemento/internal/prefix"
	"github.com/cemento-go/cemento/internal/rdfterm"
)

func newRegistry() *prefix.Registry {
	r := prefix.New()
	r.Bind("ex", "http://example.org/ns#")
	return r
}

func TestSerializeTypesClassesAndPredicates(t *testing.T) {
	g := core.New()
	cls := g.AddNode(core.NodeAttrs{Label: "http://example.org/ns#Widget", IsClass: true})
	inst := g.AddNode(core.NodeAttrs{Label: "http://example.org/ns#w1", IsInstance: true})
	g.AddEdge(inst, cls, core.EdgeAttrs{Label: "http://www.w3.org/1999/02/22-rdf-syntax-ns#type", IsPredicate: true})

	s := New(newRegistry(), nil)
	store := s.Serialize(g)

	objs := store.Objects(rdfterm.IRI("http://example.org/ns#Widget"), rdfterm.RDFtype)
	found := false
	for _, o := range objs {
		if o == rdfterm.OWLclass {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Widget typed owl:Class, got %v", objs)
	}
}

func TestSerializeUnionDomainForMultiValuedPredicate(t *testing.T) {
	g := core.New()
	a := g.AddNode(core.NodeAttrs{Label: "http://example.org/ns#A", IsClass: true})
	b := g.AddNode(core.NodeAttrs{Label: "http://example.org/ns#B", IsClass: true})
	c := g.AddNode(core.NodeAttrs{Label: "http://example.org/ns#C", IsClass: true})
	g.AddEdge(a, c, core.EdgeAttrs{Label: "http://example.org/ns#rel", IsPredicate: true})
	g.AddEdge(b, c, core.EdgeAttrs{Label: "http://example.org/ns#rel", IsPredicate: true})

	s := New(newRegistry(), nil)
	store := s.Serialize(g)

	domainObjs := store.Objects(rdfterm.IRI("http://example.org/ns#rel"), rdfterm.RDFSdomain)
	if len(domainObjs) != 1 {
		t.Fatalf("expected exactly one rdfs:domain object (the union blank node), got %v", domainObjs)
	}
	union, ok := domainObjs[0].(rdfterm.IRI)
	if !ok || !isBlankIRI(union) {
		t.Fatalf("expected domain object to be a blank-node union, got %#v", domainObjs[0])
	}

	unionOf := store.Objects(union, rdfterm.OWLunionOf)
	if len(unionOf) != 1 {
		t.Fatalf("expected one owl:unionOf head, got %v", unionOf)
	}
}

func TestSerializeSingleDomainNotReified(t *testing.T) {
	g := core.New()
	a := g.AddNode(core.NodeAttrs{Label: "http://example.org/ns#A", IsClass: true})
	c := g.AddNode(core.NodeAttrs{Label: "http://example.org/ns#C", IsClass: true})
	g.AddEdge(a, c, core.EdgeAttrs{Label: "http://example.org/ns#rel", IsPredicate: true})

	s := New(newRegistry(), nil)
	store := s.Serialize(g)

	domainObjs := store.Objects(rdfterm.IRI("http://example.org/ns#rel"), rdfterm.RDFSdomain)
	if len(domainObjs) != 1 {
		t.Fatalf("expected one domain object, got %v", domainObjs)
	}
	if domainObjs[0] != rdfterm.IRI("http://example.org/ns#A") {
		t.Fatalf("expected domain to point directly at A (no reification for a single value), got %v", domainObjs[0])
	}
}

func TestSerializeExactMatchForSubstitutedNodes(t *testing.T) {
	g := core.New()
	n := g.AddNode(core.NodeAttrs{Label: "http://example.org/ns#Widget", IsClass: true})

	s := New(newRegistry(), map[core.NodeID]bool{n: true})
	store := s.Serialize(g)

	matches := store.Objects(rdfterm.IRI("http://example.org/ns#Widget"), rdfterm.SKOSexactMatch)
	if len(matches) != 1 || matches[0] != rdfterm.IRI("http://example.org/ns#Widget") {
		t.Fatalf("expected skos:exactMatch self for substituted node, got %v", matches)
	}
}

func TestTextRendersUnknownNamespaceAsFullIRI(t *testing.T) {
	g := core.New()
	n := g.AddNode(core.NodeAttrs{Label: "http://unbound.example/ns#Widget", IsClass: true})
	_ = n

	s := New(prefix.New(), nil)
	store := s.Serialize(g)
	text := Text(store, prefix.New())

	if !strings.Contains(text, "<http://unbound.example/ns#Widget>") {
		t.Fatalf("expected unbound namespace rendered as a full IRI, got:\n%s", text)
	}
}

func TestTextUsesShortenedPrefixedNames(t *testing.T) {
	g := core.New()
	g.AddNode(core.NodeAttrs{Label: "http://example.org/ns#Widget", IsClass: true})

	registry := newRegistry()
	s := New(registry, nil)
	store := s.Serialize(g)
	text := Text(store, registry)

	if !strings.Contains(text, "ex:Widget") {
		t.Fatalf("expected prefixed name ex:Widget in output, got:\n%s", text)
	}
	if !strings.Contains(text, "@prefix ex:") {
		t.Fatalf("expected @prefix ex: declaration, got:\n%s", text)
	}
}
