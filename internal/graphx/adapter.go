// Package graphx adapts internal/core.Graph to gonum's graph.Directed and
// graph.Undirected interfaces so that gonum's algorithm packages (such as
// gonum/graph/topo and gonum/graph/traverse) can run over a core graph,
// without making the core graph's storage a general graph library. The tree
// decomposer and layout engine do not use this package; they walk
// core.Graph directly — per
// spec.md §9 Design Notes the storage stays the explicit array-backed
// structure in internal/core; gonum is used purely as an algorithms
// library layered on top, the same relationship the teacher's sibling
// packages have to single-purpose helper libraries rather than frameworks.
package graphx

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"

	"github.com/cemento-go/cemento/internal/core"
)

// node implements graph.Node over a core.NodeID.
type node core.NodeID

func (n node) ID() int64 { return int64(n) }

// edge implements graph.Edge over a core.Graph edge.
type edge struct {
	from, to node
}

func (e edge) From() graph.Node         { return e.from }
func (e edge) To() graph.Node           { return e.to }
func (e edge) ReversedEdge() graph.Edge { return edge{from: e.to, to: e.from} }

// Adapter presents a core.Graph as a read-only gonum graph.Directed and
// graph.Undirected.
type Adapter struct {
	g *core.Graph
}

// New returns an Adapter over g.
func New(g *core.Graph) *Adapter { return &Adapter{g: g} }

// Node returns the node with the given ID if it exists in the graph, and nil
// otherwise.
func (a *Adapter) Node(id int64) graph.Node {
	n := core.NodeID(id)
	if !a.g.HasNode(n) {
		return nil
	}
	return node(n)
}

// Nodes returns all the nodes in the graph.
func (a *Adapter) Nodes() graph.Nodes {
	ids := a.g.Nodes()
	nodes := make([]graph.Node, len(ids))
	for i, id := range ids {
		nodes[i] = node(id)
	}
	return iterator.NewOrderedNodes(nodes)
}

// From returns all nodes reachable directly from the node with the given ID.
func (a *Adapter) From(id int64) graph.Nodes {
	succ := a.g.Successors(core.NodeID(id))
	nodes := make([]graph.Node, len(succ))
	for i, s := range succ {
		nodes[i] = node(s)
	}
	return iterator.NewOrderedNodes(nodes)
}

// To returns all nodes that can reach directly to the node with the given ID.
func (a *Adapter) To(id int64) graph.Nodes {
	pred := a.g.Predecessors(core.NodeID(id))
	nodes := make([]graph.Node, len(pred))
	for i, p := range pred {
		nodes[i] = node(p)
	}
	return iterator.NewOrderedNodes(nodes)
}

// HasEdgeBetween reports whether an edge exists between x and y, ignoring
// direction.
func (a *Adapter) HasEdgeBetween(xid, yid int64) bool {
	return a.HasEdgeFromTo(xid, yid) || a.HasEdgeFromTo(yid, xid)
}

// HasEdgeFromTo reports whether an edge exists from u to v.
func (a *Adapter) HasEdgeFromTo(uid, vid int64) bool {
	for _, s := range a.g.Successors(core.NodeID(uid)) {
		if int64(s) == vid {
			return true
		}
	}
	return false
}

// Edge returns the edge from u to v, or nil if none exists.
func (a *Adapter) Edge(uid, vid int64) graph.Edge {
	if !a.HasEdgeFromTo(uid, vid) {
		return nil
	}
	return edge{from: node(uid), to: node(vid)}
}

// EdgeBetween returns an edge between x and y, checking both directions.
func (a *Adapter) EdgeBetween(xid, yid int64) graph.Edge {
	if a.HasEdgeFromTo(xid, yid) {
		return edge{from: node(xid), to: node(yid)}
	}
	if a.HasEdgeFromTo(yid, xid) {
		return edge{from: node(yid), to: node(xid)}
	}
	return nil
}
