// Package core implements the labelled directed multigraph (component D)
// that every other component builds, transforms or serializes. Per spec.md
// §9 Design Notes it is an explicit adjacency structure over two arrays
// (one of node attribute structs, one of edge attribute structs) addressed
// by stable integer ids, not a general-purpose graph library — the teacher's
// own rdf.Graph is itself a from-scratch structure rather than an import of
// one.
package core

import "sort"

// NodeID is a stable integer id indexing Graph.nodes.
type NodeID int

// EdgeID is a stable integer id indexing Graph.edges.
type EdgeID int

// NodeAttrs holds the fixed, spec-defined attributes of a node (§3).
type NodeAttrs struct {
	Label        string // prefixed name or literal lexical form, display form
	IsClass      bool
	IsInstance   bool
	IsLiteral    bool
	IsAxiom      bool
	IsCollection bool
	IsInDiagram  bool
	Aliases      []string // rdfs:label / skos:altLabel candidates
}

// EdgeAttrs holds the fixed, spec-defined attributes of an edge (§3).
type EdgeAttrs struct {
	// Label is the predicate. The RDF→graph translator emits it already in
	// prefixed form (for the layout/diagram-writer consumers downstream of
	// it); the diagram→graph translator emits the full IRI instead, since
	// its consumer is the Turtle serializer, which needs a real IRI to
	// re-shorten (or leave untouched) at emission time.
	Label       string
	Source      NodeID
	Target      NodeID
	IsPredicate bool
	IsRank      bool
	IsStrat     bool
}

type edgeSlot struct {
	attrs EdgeAttrs
	live  bool
}

type nodeSlot struct {
	attrs NodeAttrs
	live  bool
}

// Graph is a labelled directed multigraph. The zero value is not usable;
// construct with New.
type Graph struct {
	nodes []nodeSlot
	edges []edgeSlot

	// out[n] holds the edge ids leaving n, in[n] the edge ids entering n.
	out map[NodeID][]EdgeID
	in  map[NodeID][]EdgeID

	// Diagnostic holds extra, non-spec fields per node/edge id — the
	// "separate parallel map keyed by node/edge id" of §9 Design Notes.
	Diagnostic map[interface{}]map[string]interface{}
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		out:        make(map[NodeID][]EdgeID),
		in:         make(map[NodeID][]EdgeID),
		Diagnostic: make(map[interface{}]map[string]interface{}),
	}
}

// AddNode appends a new node and returns its id.
func (g *Graph) AddNode(attrs NodeAttrs) NodeID {
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, nodeSlot{attrs: attrs, live: true})
	return id
}

// RemoveNode deletes a node and every edge touching it.
func (g *Graph) RemoveNode(n NodeID) {
	if !g.nodeLive(n) {
		return
	}
	for _, e := range append([]EdgeID{}, g.out[n]...) {
		g.RemoveEdge(e)
	}
	for _, e := range append([]EdgeID{}, g.in[n]...) {
		g.RemoveEdge(e)
	}
	g.nodes[n].live = false
	delete(g.out, n)
	delete(g.in, n)
}

func (g *Graph) nodeLive(n NodeID) bool {
	return int(n) >= 0 && int(n) < len(g.nodes) && g.nodes[n].live
}

// Node returns the attributes of n.
func (g *Graph) Node(n NodeID) NodeAttrs { return g.nodes[n].attrs }

// SetNode overwrites the attributes of n.
func (g *Graph) SetNode(n NodeID, attrs NodeAttrs) { g.nodes[n].attrs = attrs }

// HasNode reports whether n is a live node id.
func (g *Graph) HasNode(n NodeID) bool { return g.nodeLive(n) }

// Nodes returns every live node id in ascending order.
func (g *Graph) Nodes() []NodeID {
	out := make([]NodeID, 0, len(g.nodes))
	for i, slot := range g.nodes {
		if slot.live {
			out = append(out, NodeID(i))
		}
	}
	return out
}

// AddEdge appends a new edge and returns its id. It does not de-duplicate;
// callers enforce the no-duplicate-(source,target,label) invariant (§3)
// before calling AddEdge, since only they know whether a duplicate would be
// semantically meaningful (e.g. translators re-running on the same triple).
func (g *Graph) AddEdge(source, target NodeID, attrs EdgeAttrs) EdgeID {
	attrs.Source, attrs.Target = source, target
	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, edgeSlot{attrs: attrs, live: true})
	g.out[source] = append(g.out[source], id)
	g.in[target] = append(g.in[target], id)
	return id
}

// HasEdge reports whether an edge with the exact (source, target, label)
// already exists.
func (g *Graph) HasEdge(source, target NodeID, label string) bool {
	for _, e := range g.out[source] {
		a := g.edges[e].attrs
		if a.Target == target && a.Label == label {
			return true
		}
	}
	return false
}

// RemoveEdge deletes an edge.
func (g *Graph) RemoveEdge(e EdgeID) {
	if !g.edgeLive(e) {
		return
	}
	attrs := g.edges[e].attrs
	g.edges[e].live = false
	g.out[attrs.Source] = removeID(g.out[attrs.Source], e)
	g.in[attrs.Target] = removeID(g.in[attrs.Target], e)
}

func removeID(ids []EdgeID, target EdgeID) []EdgeID {
	for i, id := range ids {
		if id == target {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func (g *Graph) edgeLive(e EdgeID) bool {
	return int(e) >= 0 && int(e) < len(g.edges) && g.edges[e].live
}

// Edge returns the attributes of e.
func (g *Graph) Edge(e EdgeID) EdgeAttrs { return g.edges[e].attrs }

// SetEdge overwrites the attributes of e, preserving source/target.
func (g *Graph) SetEdge(e EdgeID, attrs EdgeAttrs) {
	attrs.Source, attrs.Target = g.edges[e].attrs.Source, g.edges[e].attrs.Target
	g.edges[e].attrs = attrs
}

// Edges returns every live edge id.
func (g *Graph) Edges() []EdgeID {
	out := make([]EdgeID, 0, len(g.edges))
	for i, slot := range g.edges {
		if slot.live {
			out = append(out, EdgeID(i))
		}
	}
	return out
}

// Out returns the outgoing edge ids of n.
func (g *Graph) Out(n NodeID) []EdgeID { return append([]EdgeID{}, g.out[n]...) }

// In returns the incoming edge ids of n.
func (g *Graph) In(n NodeID) []EdgeID { return append([]EdgeID{}, g.in[n]...) }

// Successors returns the distinct target node ids reachable by one outgoing
// edge from n.
func (g *Graph) Successors(n NodeID) []NodeID {
	seen := map[NodeID]bool{}
	var out []NodeID
	for _, e := range g.out[n] {
		t := g.edges[e].attrs.Target
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// Predecessors returns the distinct source node ids with an outgoing edge
// into n.
func (g *Graph) Predecessors(n NodeID) []NodeID {
	seen := map[NodeID]bool{}
	var out []NodeID
	for _, e := range g.in[n] {
		s := g.edges[e].attrs.Source
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// InDegree returns the number of incoming edges of n.
func (g *Graph) InDegree(n NodeID) int { return len(g.in[n]) }

// OutDegree returns the number of outgoing edges of n.
func (g *Graph) OutDegree(n NodeID) int { return len(g.out[n]) }

// WeaklyConnectedComponents partitions the live nodes into components
// connected when edge direction is ignored.
func (g *Graph) WeaklyConnectedComponents() [][]NodeID {
	visited := map[NodeID]bool{}
	var comps [][]NodeID
	for _, n := range g.Nodes() {
		if visited[n] {
			continue
		}
		var comp []NodeID
		stack := []NodeID{n}
		visited[n] = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, cur)
			for _, nb := range append(g.Successors(cur), g.Predecessors(cur)...) {
				if !visited[nb] {
					visited[nb] = true
					stack = append(stack, nb)
				}
			}
		}
		sort.Slice(comp, func(i, j int) bool { return comp[i] < comp[j] })
		comps = append(comps, comp)
	}
	return comps
}

// Relabel returns a new Graph with every node's Label attribute rewritten
// by fn. Edge labels are left untouched — relabelling nodes (IRI to
// prefixed-name form, say) is orthogonal to relabelling predicates.
func (g *Graph) Relabel(fn func(NodeID, NodeAttrs) NodeAttrs) *Graph {
	out := New()
	mapping := make(map[NodeID]NodeID, len(g.nodes))
	for _, n := range g.Nodes() {
		mapping[n] = out.AddNode(fn(n, g.Node(n)))
	}
	for _, e := range g.Edges() {
		a := g.Edge(e)
		out.AddEdge(mapping[a.Source], mapping[a.Target], a)
	}
	return out
}

// Subgraph returns a new Graph induced by keep: every node in keep, and
// every edge whose source and target are both in keep.
func (g *Graph) Subgraph(keep []NodeID) *Graph {
	keepSet := make(map[NodeID]bool, len(keep))
	for _, n := range keep {
		keepSet[n] = true
	}
	out := New()
	mapping := make(map[NodeID]NodeID, len(keep))
	for _, n := range keep {
		mapping[n] = out.AddNode(g.Node(n))
	}
	for _, e := range g.Edges() {
		a := g.Edge(e)
		if keepSet[a.Source] && keepSet[a.Target] {
			out.AddEdge(mapping[a.Source], mapping[a.Target], a)
		}
	}
	return out
}

// Reverse returns a new Graph with source and target swapped on every edge.
func (g *Graph) Reverse() *Graph {
	out := New()
	mapping := make(map[NodeID]NodeID, len(g.nodes))
	for _, n := range g.Nodes() {
		mapping[n] = out.AddNode(g.Node(n))
	}
	for _, e := range g.Edges() {
		a := g.Edge(e)
		out.AddEdge(mapping[a.Target], mapping[a.Source], a)
	}
	return out
}
