package decompose

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cemento-go/cemento/internal/core"
)

func build(edges [][3]interface{}, labels []string) *core.Graph {
	g := core.New()
	ids := make([]core.NodeID, len(labels))
	for i, l := range labels {
		ids[i] = g.AddNode(core.NodeAttrs{Label: l})
	}
	for _, e := range edges {
		src := ids[e[0].(int)]
		dst := ids[e[1].(int)]
		g.AddEdge(src, dst, core.EdgeAttrs{Label: e[2].(string), IsStrat: true})
	}
	return g
}

func TestDecomposeSingleTree(t *testing.T) {
	// 0 -> 1, 0 -> 2 : already a tree, nothing should be severed.
	g := build([][3]interface{}{
		{0, 1, "p"},
		{0, 2, "p"},
	}, []string{"root", "a", "b"})

	forest, err := Decompose(g)
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	if len(forest.Severed) != 0 {
		t.Fatalf("expected no severed edges, got %v", forest.Severed)
	}
	if len(forest.Trees) != 1 {
		t.Fatalf("got %d trees, want 1", len(forest.Trees))
	}
	if len(forest.Trees[0].Nodes) != 3 {
		t.Fatalf("got %d nodes in tree, want 3", len(forest.Trees[0].Nodes))
	}
}

func TestDecomposeSeversMultiParent(t *testing.T) {
	// 0 -> 2, 1 -> 2 : node 2 has two parents, one edge must be severed.
	g := build([][3]interface{}{
		{0, 2, "p"},
		{1, 2, "p"},
	}, []string{"rootA", "rootB", "shared"})

	forest, err := Decompose(g)
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	if len(forest.Severed) != 1 {
		t.Fatalf("got %d severed edges, want 1: %v", len(forest.Severed), forest.Severed)
	}
	totalTreeEdges := 0
	for _, tree := range forest.Trees {
		totalTreeEdges += len(tree.Edges)
	}
	if totalTreeEdges != 1 {
		t.Fatalf("got %d kept tree edges, want 1", totalTreeEdges)
	}
}

// TestDecomposeMultipleComponentsKeepsOriginalNodeIDs guards the bug fixed in
// decomposeComponent: it used to run each component through Graph.Subgraph,
// which reindexes node ids from zero, corrupting every id the caller needs
// once more than one component is present.
func TestDecomposeMultipleComponentsKeepsOriginalNodeIDs(t *testing.T) {
	g := build([][3]interface{}{
		{0, 1, "p"}, // component one: nodes 0,1
		{2, 3, "p"}, // component two: nodes 2,3
	}, []string{"a0", "a1", "b0", "b1"})

	forest, err := Decompose(g)
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	if len(forest.Trees) != 2 {
		t.Fatalf("got %d trees, want 2", len(forest.Trees))
	}

	seen := map[core.NodeID]bool{}
	for _, tree := range forest.Trees {
		for _, n := range tree.Nodes {
			seen[n] = true
		}
	}
	var got []core.NodeID
	for n := range seen {
		got = append(got, n)
	}
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })

	// The four original node ids (0..3) must all appear verbatim; a
	// reindexing bug would instead produce two trees each using ids 0 and 1.
	want := []core.NodeID{0, 1, 2, 3}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output forest node ids mismatch (-want +got):\n%s", diff)
	}
}

func TestStratSubgraphMapsBackToOriginalIDs(t *testing.T) {
	g := core.New()
	a := g.AddNode(core.NodeAttrs{Label: "a"})
	b := g.AddNode(core.NodeAttrs{Label: "b"})
	c := g.AddNode(core.NodeAttrs{Label: "c"})
	g.AddEdge(a, b, core.EdgeAttrs{Label: "rank", IsStrat: true})
	g.AddEdge(a, c, core.EdgeAttrs{Label: "other", IsStrat: false})

	sub, toOrig := StratSubgraph(g)
	if len(sub.Edges()) != 1 {
		t.Fatalf("expected only the strat edge kept, got %d edges", len(sub.Edges()))
	}
	for _, n := range sub.Nodes() {
		orig, ok := toOrig[n]
		if !ok {
			t.Fatalf("missing toOrig mapping for subgraph node %d", n)
		}
		if g.Node(orig).Label != sub.Node(n).Label {
			t.Fatalf("mapped node %d (-> %d) label mismatch: %q vs %q", n, orig, sub.Node(n).Label, g.Node(orig).Label)
		}
	}
}

// TestStratSubgraphReversesEdgeDirection guards the fix for a missing
// reversal: the original write_diagram.py calls `ranked_graph.reverse
// (copy=True)` right after extracting the ranked subgraph, so a strat edge
// stored subject(subclass) -> object(superclass) comes back out of
// StratSubgraph pointing superclass -> subclass, the direction the tree
// decomposer roots trees from (zero in-degree) and layout/connector.go's
// forceBottomTop assumes.
func TestStratSubgraphReversesEdgeDirection(t *testing.T) {
	g := core.New()
	sub := g.AddNode(core.NodeAttrs{Label: "A"}) // rdf subject, e.g. :A subClassOf :X
	super := g.AddNode(core.NodeAttrs{Label: "X"})
	g.AddEdge(sub, super, core.EdgeAttrs{Label: "subClassOf", IsStrat: true})

	out, toOrig := StratSubgraph(g)
	edges := out.Edges()
	if len(edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(edges))
	}
	a := out.Edge(edges[0])
	if toOrig[a.Source] != super || toOrig[a.Target] != sub {
		t.Fatalf("edge direction not reversed: got source %d target %d (orig labels %q -> %q), want source=X target=A",
			a.Source, a.Target, g.Node(toOrig[a.Source]).Label, g.Node(toOrig[a.Target]).Label)
	}
}

// TestDecomposeDiamondSeversBothPaths exercises the diamond described in
// spec §8 scenario 4 (A->B, A->C, B->D, C->D). Before the diamond-head
// fix, only the fork's extra in-edge got severed (1 edge total, all 4
// nodes left in one tree); the correct result severs one edge on each of
// the diamond's two branches, the fork's (C->D) and the diamond head's
// (A->C) — which also strips C of every remaining edge, so it ends up its
// own single-node tree alongside the surviving A->B->D chain.
func TestDecomposeDiamondSeversBothPaths(t *testing.T) {
	g := build([][3]interface{}{
		{0, 1, "p"}, // A -> B
		{0, 2, "p"}, // A -> C
		{1, 3, "p"}, // B -> D
		{2, 3, "p"}, // C -> D
	}, []string{"A", "B", "C", "D"})

	forest, err := Decompose(g)
	if err != nil {
		t.Fatalf("Decompose: %v", err)
	}
	if len(forest.Severed) != 2 {
		t.Fatalf("got %d severed edges, want 2: %v", len(forest.Severed), forest.Severed)
	}
	totalNodes := 0
	for _, tree := range forest.Trees {
		totalNodes += len(tree.Nodes)
	}
	if totalNodes != 4 {
		t.Fatalf("got %d total nodes across trees, want 4", totalNodes)
	}
}
