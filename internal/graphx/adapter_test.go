package graphx

import (
	"testing"

	"github.com/cemento-go/cemento/internal/core"
)

func TestAdapterNodesAndFrom(t *testing.T) {
	g := core.New()
	a := g.AddNode(core.NodeAttrs{Label: "a"})
	b := g.AddNode(core.NodeAttrs{Label: "b"})
	c := g.AddNode(core.NodeAttrs{Label: "c"})
	g.AddEdge(a, b, core.EdgeAttrs{Label: "p"})
	g.AddEdge(a, c, core.EdgeAttrs{Label: "p"})

	ad := New(g)
	if ad.Nodes().Len() != 3 {
		t.Fatalf("got %d nodes, want 3", ad.Nodes().Len())
	}
	if ad.From(int64(a)).Len() != 2 {
		t.Fatalf("got %d successors of a, want 2", ad.From(int64(a)).Len())
	}
	if ad.From(int64(b)).Len() != 0 {
		t.Fatalf("got %d successors of b, want 0", ad.From(int64(b)).Len())
	}
}

func TestAdapterHasEdgeFromToAndBetween(t *testing.T) {
	g := core.New()
	a := g.AddNode(core.NodeAttrs{Label: "a"})
	b := g.AddNode(core.NodeAttrs{Label: "b"})
	g.AddEdge(a, b, core.EdgeAttrs{Label: "p"})

	ad := New(g)
	if !ad.HasEdgeFromTo(int64(a), int64(b)) {
		t.Fatalf("expected edge a->b")
	}
	if ad.HasEdgeFromTo(int64(b), int64(a)) {
		t.Fatalf("did not expect edge b->a")
	}
	if !ad.HasEdgeBetween(int64(b), int64(a)) {
		t.Fatalf("expected undirected HasEdgeBetween to ignore direction")
	}
}

func TestAdapterNodeMissingReturnsNil(t *testing.T) {
	g := core.New()
	a := g.AddNode(core.NodeAttrs{Label: "a"})
	g.RemoveNode(a)

	ad := New(g)
	if ad.Node(int64(a)) != nil {
		t.Fatalf("expected nil for removed node id")
	}
}

func TestAdapterEdgeBetweenChecksBothDirections(t *testing.T) {
	g := core.New()
	a := g.AddNode(core.NodeAttrs{Label: "a"})
	b := g.AddNode(core.NodeAttrs{Label: "b"})
	g.AddEdge(b, a, core.EdgeAttrs{Label: "p"})

	ad := New(g)
	e := ad.EdgeBetween(int64(a), int64(b))
	if e == nil {
		t.Fatalf("expected EdgeBetween to find the reverse-direction edge")
	}
}
