// Package layout implements the hierarchical grid layout engine (component
// H) and connector attachment geometry (component I).
package layout

import (
	"sort"

	"github.com/cemento-go/cemento/internal/config"
	"github.com/cemento-go/cemento/internal/core"
	"github.com/cemento-go/cemento/internal/decompose"
)

// Default box geometry and padding, in pixels; spec §4.H names the formula
// but not the constants, so these are a fixed, documented choice rather
// than something derived from the diagram format.
const (
	BoxWidth   = 160.0
	BoxHeight  = 40.0
	PaddingX   = 40.0
	PaddingY   = 40.0
)

// Position is one node's grid cell and pixel coordinates.
type Position struct {
	GridX, GridY   int
	ReservedX, ReservedY int
	PixelX, PixelY float64
}

type adjacency struct {
	children map[core.NodeID][]core.NodeID
}

func buildAdjacency(t decompose.Tree) adjacency {
	adj := adjacency{children: make(map[core.NodeID][]core.NodeID, len(t.Nodes))}
	for _, e := range t.Edges {
		adj.children[e.Source] = append(adj.children[e.Source], e.Target)
	}
	return adj
}

// Layout assigns grid and pixel positions to every node of tree, per spec
// §4.H. treeOffset is this tree's cumulative offset along the
// concatenation axis (x in vertical mode, y in horizontal mode), in grid
// cells, computed by the caller from earlier trees' reserved widths. It
// also returns the tree's total reserved width, for the caller to chain
// into the next tree's offset.
func Layout(t decompose.Tree, cfg *config.Pipeline, treeOffset int) (map[core.NodeID]Position, int) {
	adj := buildAdjacency(t)

	reservedX := map[core.NodeID]int{}
	reservedY := map[core.NodeID]int{}
	computeReserved(t.Root, adj, reservedX, reservedY)

	drawX := map[core.NodeID]int{}
	drawY := map[core.NodeID]int{}
	depth := map[core.NodeID]int{t.Root: 0}
	assignDrawPositions(t.Root, adj, reservedX, treeOffset, drawX, drawY, depth)

	positions := make(map[core.NodeID]Position, len(t.Nodes))
	for _, n := range t.Nodes {
		x, y := drawX[n], drawY[n]
		if cfg.HorizontalTree {
			x, y = y, x
		}
		positions[n] = Position{
			GridX:     x,
			GridY:     y,
			ReservedX: reservedX[n],
			ReservedY: reservedY[n],
			PixelX:    float64(x) * (2*BoxWidth + PaddingX),
			PixelY:    float64(y) * (2*BoxHeight + PaddingY),
		}
	}
	return positions, reservedX[t.Root]
}

// computeReserved is the bottom-up grid-allocation pass: reserved_x(node) =
// sum of children's reserved_x (1 for a leaf); reserved_y(node) = 1 + max
// of children's reserved_y (1 for a leaf).
func computeReserved(n core.NodeID, adj adjacency, rx, ry map[core.NodeID]int) {
	children := sortedChildren(adj, n)
	if len(children) == 0 {
		rx[n], ry[n] = 1, 1
		return
	}
	sumX, maxY := 0, 0
	for _, c := range children {
		computeReserved(c, adj, rx, ry)
		sumX += rx[c]
		if ry[c] > maxY {
			maxY = ry[c]
		}
	}
	rx[n] = sumX
	ry[n] = maxY + 1
}

// assignDrawPositions is the top-down draw-position pass: draw_y is the BFS
// layer index from the root; draw_x walks a left-to-right cursor over each
// node's children, centring each child under its reserved width.
func assignDrawPositions(root core.NodeID, adj adjacency, rx map[core.NodeID]int, treeOffset int, drawX, drawY, depth map[core.NodeID]int) {
	type frame struct {
		node    core.NodeID
		cursorX int
	}
	drawY[root] = 0
	stack := []frame{{node: root, cursorX: treeOffset}}
	drawX[root] = treeOffset + rx[root]/2

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		children := sortedChildren(adj, f.node)
		cursor := f.cursorX
		for _, c := range children {
			drawY[c] = depth[f.node] + 1
			depth[c] = depth[f.node] + 1
			drawX[c] = cursor + rx[c]/2
			stack = append(stack, frame{node: c, cursorX: cursor})
			cursor += rx[c]
		}
	}
}

// sortedChildren returns a node's children in a fixed, deterministic order
// (ascending id, matching insertion order into the tree edge list).
func sortedChildren(adj adjacency, n core.NodeID) []core.NodeID {
	children := append([]core.NodeID{}, adj.children[n]...)
	sort.Slice(children, func(i, j int) bool { return children[i] < children[j] })
	return children
}

// LayoutForest lays out every tree of a forest, concatenating tree offsets
// along the axis named by spec §4.H (x in vertical mode, y in horizontal
// mode — the flip in Layout already applies per tree, so chaining the
// pre-flip reserved width here keeps every tree's offset in the same grid
// units regardless of orientation).
func LayoutForest(trees []decompose.Tree, cfg *config.Pipeline) map[core.NodeID]Position {
	all := make(map[core.NodeID]Position)
	offset := 0
	for _, t := range trees {
		positions, width := Layout(t, cfg, offset)
		for n, p := range positions {
			all[n] = p
		}
		offset += width
	}
	return all
}
