// Package decompose implements the tree decomposer (component G): splitting
// a weakly-connected rank/strat subgraph into a forest of single-parent
// trees, recording whatever edges had to be severed to get there.
package decompose

import (
	"sort"

	"github.com/cemento-go/cemento/internal/core"
)

// SeveredEdge is an edge the decomposer had to cut, in terms of the caller's
// original node ids.
type SeveredEdge struct {
	Source core.NodeID
	Target core.NodeID
	Label  string
}

// Tree is one single-parent tree of the output forest.
type Tree struct {
	Root  core.NodeID
	Nodes []core.NodeID
	Edges []SeveredEdge // the kept tree edges, same shape as SeveredEdge for convenience
}

// Forest is the result of decomposing one input graph.
type Forest struct {
	Trees     []Tree
	Severed   []SeveredEdge
	SelfLoops []SeveredEdge // removed before decomposition; the caller keeps these as-is in the original model
}

// StratSubgraph returns the induced subgraph of g containing only strat
// edges, keeping every node id stable, as the input Decompose expects
// (spec §4.G: "a directed graph containing only rank/strat edges, others
// removed or redirected"). The second return value maps each subgraph node
// id back to its id in g, since the forest Decompose later produces is
// expressed in subgraph ids.
//
// Edges come back reversed from how rdfconv/drawioconv stored them (object
// before subject, superclass before subclass): the original write_diagram.py
// extracts the ranked subgraph and immediately calls `.reverse(copy=True)`
// before splitting it into subtrees, so that the general/root end of a
// rank chain is the zero-in-degree node the decomposer roots each tree at,
// rather than the most specific leaf class.
func StratSubgraph(g *core.Graph) (*core.Graph, map[core.NodeID]core.NodeID) {
	out := core.New()
	toSub := make(map[core.NodeID]core.NodeID, len(g.Nodes()))
	toOrig := make(map[core.NodeID]core.NodeID, len(g.Nodes()))
	for _, n := range g.Nodes() {
		sub := out.AddNode(g.Node(n))
		toSub[n] = sub
		toOrig[sub] = n
	}
	for _, e := range g.Edges() {
		a := g.Edge(e)
		if a.IsStrat {
			out.AddEdge(toSub[a.Target], toSub[a.Source], a)
		}
	}
	return out, toOrig
}

// Decompose splits g (expected to contain only rank/strat edges) into a
// forest, per spec §4.G.
func Decompose(g *core.Graph) (Forest, error) {
	work, selfLoops := stripSelfLoops(g)

	var forest Forest
	forest.SelfLoops = selfLoops

	for _, comp := range work.WeaklyConnectedComponents() {
		trees, severed, err := decomposeComponent(work, comp)
		if err != nil {
			return Forest{}, err
		}
		forest.Trees = append(forest.Trees, trees...)
		forest.Severed = append(forest.Severed, severed...)
	}
	return forest, nil
}

// stripSelfLoops returns a copy of g with every (n,n) edge removed, plus the
// list of what was removed.
func stripSelfLoops(g *core.Graph) (*core.Graph, []SeveredEdge) {
	work := core.New()
	mapping := make(map[core.NodeID]core.NodeID, len(g.Nodes()))
	for _, n := range g.Nodes() {
		mapping[n] = work.AddNode(g.Node(n))
	}
	var loops []SeveredEdge
	for _, e := range g.Edges() {
		a := g.Edge(e)
		if a.Source == a.Target {
			loops = append(loops, SeveredEdge{Source: mapping[a.Source], Target: mapping[a.Target], Label: a.Label})
			continue
		}
		work.AddEdge(mapping[a.Source], mapping[a.Target], a)
	}
	return work, loops
}

// decomposeComponent runs the dummy-anchor / fork-severing algorithm of
// spec §4.G on one weakly-connected component of work, identified by its
// node id set comp. It mutates work directly rather than copying out a
// reindexed subgraph: components are node- and edge-disjoint, so operating
// in place is safe, and it keeps every id work's caller already knows about
// (ultimately the original input graph's ids, via Decompose's identity-
// preserving stripSelfLoops copy) stable all the way through.
func decomposeComponent(work *core.Graph, comp []core.NodeID) ([]Tree, []SeveredEdge, error) {
	roots := zeroInDegreeNodes(work, comp)
	if len(roots) == 0 {
		// every node has an incoming edge: a pure cycle with no entry
		// point, which the fork and diamond rules cannot turn into a tree.
		return nil, nil, core.ErrCycleInRankSubgraph
	}

	dummy := work.AddNode(core.NodeAttrs{Label: "__dummy__"})
	for _, r := range roots {
		work.AddEdge(dummy, r, core.EdgeAttrs{Label: "__dummy__", IsPredicate: true})
	}

	forks := forkNodesPostOrder(work, dummy)
	var severed []SeveredEdge
	if len(forks) > 0 {
		depth := bfsDepth(work, dummy)
		sort.SliceStable(forks, func(i, j int) bool { return depth[forks[i]] < depth[forks[j]] })

		// Diamond heads (step 5) must be found before fork in-edges are
		// severed (step 6): severing a fork's extra incoming edges first
		// would collapse a root/fork pair down to a single path, erasing
		// the very multi-path evidence step 5 needs to see.
		diamondHeads := diamondHeads(work, dummy, roots, forks)

		for _, fork := range forks {
			in := work.In(fork)
			if len(in) <= 1 {
				continue
			}
			for _, e := range in[1:] {
				a := work.Edge(e)
				severed = append(severed, SeveredEdge{Source: a.Source, Target: a.Target, Label: a.Label})
				work.RemoveEdge(e)
			}
		}

		for _, head := range diamondHeads {
			out := work.Out(head)
			if len(out) <= 1 {
				continue
			}
			for _, e := range out[1:] {
				a := work.Edge(e)
				severed = append(severed, SeveredEdge{Source: a.Source, Target: a.Target, Label: a.Label})
				work.RemoveEdge(e)
			}
		}
	}

	work.RemoveNode(dummy)
	return finalizeTree(work, comp), severed, nil
}

// finalizeTree returns comp's remaining weakly connected components (after
// dummy removal and fork/diamond severing) as trees. It cannot use
// Graph.WeaklyConnectedComponents directly: that walks every live node in
// work, which also holds every other component Decompose has processed or
// will process. localComponents restricts the walk to comp.
func finalizeTree(work *core.Graph, comp []core.NodeID) []Tree {
	var trees []Tree
	for _, wc := range localComponents(work, comp) {
		if len(wc) == 0 {
			continue
		}
		root := treeRoot(work, wc)
		keep := nodeSet(wc)
		var edges []SeveredEdge
		for _, n := range wc {
			for _, e := range work.Out(n) {
				a := work.Edge(e)
				if keep[a.Target] {
					edges = append(edges, SeveredEdge{Source: a.Source, Target: a.Target, Label: a.Label})
				}
			}
		}
		trees = append(trees, Tree{Root: root, Nodes: wc, Edges: edges})
	}
	return trees
}

func nodeSet(ids []core.NodeID) map[core.NodeID]bool {
	m := make(map[core.NodeID]bool, len(ids))
	for _, n := range ids {
		m[n] = true
	}
	return m
}

// localComponents partitions nodes into weakly connected components,
// considering only edges whose endpoints are both members of nodes — the
// rest of the graph (other components work also holds) is invisible to it.
func localComponents(g *core.Graph, nodes []core.NodeID) [][]core.NodeID {
	allowed := nodeSet(nodes)
	visited := map[core.NodeID]bool{}
	var comps [][]core.NodeID
	for _, n := range nodes {
		if visited[n] {
			continue
		}
		var comp []core.NodeID
		stack := []core.NodeID{n}
		visited[n] = true
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			comp = append(comp, cur)
			for _, nb := range append(g.Successors(cur), g.Predecessors(cur)...) {
				if allowed[nb] && !visited[nb] {
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

func treeRoot(g *core.Graph, nodes []core.NodeID) core.NodeID {
	for _, n := range nodes {
		if g.InDegree(n) == 0 {
			return n
		}
	}
	return nodes[0]
}

// zeroInDegreeNodes returns the members of nodes with no incoming edge.
// Restricting to nodes (rather than scanning every live node of g) matters
// once g holds more than one component: InDegree itself never crosses
// component boundaries, but Graph.Nodes() would still offer up every other
// component's roots too.
func zeroInDegreeNodes(g *core.Graph, nodes []core.NodeID) []core.NodeID {
	var out []core.NodeID
	for _, n := range nodes {
		if g.InDegree(n) == 0 {
			out = append(out, n)
		}
	}
	return out
}

// forkNodesPostOrder collects nodes with more than one predecessor, visited
// in DFS post-order from root, per spec §4.G step 3.
func forkNodesPostOrder(g *core.Graph, root core.NodeID) []core.NodeID {
	visited := map[core.NodeID]bool{}
	var order []core.NodeID
	var visit func(core.NodeID)
	visit = func(n core.NodeID) {
		if visited[n] {
			return
		}
		visited[n] = true
		for _, s := range g.Successors(n) {
			visit(s)
		}
		order = append(order, n)
	}
	visit(root)

	var forks []core.NodeID
	for _, n := range order {
		if g.InDegree(n) > 1 {
			forks = append(forks, n)
		}
	}
	return forks
}

// bfsDepth returns shortest-path distance (edge count) from root to every
// reachable node.
func bfsDepth(g *core.Graph, root core.NodeID) map[core.NodeID]int {
	depth := map[core.NodeID]int{root: 0}
	queue := []core.NodeID{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, s := range g.Successors(n) {
			if _, ok := depth[s]; ok {
				continue
			}
			depth[s] = depth[n] + 1
			queue = append(queue, s)
		}
	}
	return depth
}

// diamondHeads finds every root with more than one simple path to some
// fork, per spec §4.G step 5: "a diamond head is a node from which more
// than one simple path reaches the same fork" — the node the paths
// diverge FROM, i.e. root itself, not the node one hop past it.
// simplePaths' returned paths start right after src, so root is never a
// member of them; it is the pair's root argument that gets recorded as
// the head, not anything read out of the paths themselves. Path
// enumeration is bounded: it only needs to distinguish "more than one"
// from "at most one", so it stops counting at two.
func diamondHeads(g *core.Graph, dummy core.NodeID, roots, forks []core.NodeID) []core.NodeID {
	var heads []core.NodeID
	seen := map[core.NodeID]bool{}
	for _, root := range roots {
		for _, fork := range forks {
			paths := simplePaths(g, root, fork, 2)
			if len(paths) > 1 && !seen[root] {
				seen[root] = true
				heads = append(heads, root)
			}
		}
	}
	return heads
}

// simplePaths enumerates up to limit simple paths from src to dst (DFS,
// node-disjoint-per-path), each returned as the ordered node list starting
// right after src.
func simplePaths(g *core.Graph, src, dst core.NodeID, limit int) [][]core.NodeID {
	var results [][]core.NodeID
	visited := map[core.NodeID]bool{src: true}
	var path []core.NodeID
	var walk func(core.NodeID)
	walk = func(n core.NodeID) {
		if len(results) >= limit {
			return
		}
		for _, s := range g.Successors(n) {
			if len(results) >= limit {
				return
			}
			if s == dst {
				cp := append([]core.NodeID{}, path...)
				cp = append(cp, s)
				results = append(results, cp)
				continue
			}
			if visited[s] {
				continue
			}
			visited[s] = true
			path = append(path, s)
			walk(s)
			path = path[:len(path)-1]
			visited[s] = false
		}
	}
	walk(src)
	return results
}
