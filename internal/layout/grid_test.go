package layout

import (
	"testing"

	"github.com/cemento-go/cemento/internal/config"
	"github.com/cemento-go/cemento/internal/core"
	"github.com/cemento-go/cemento/internal/decompose"
)

func tree(root core.NodeID, nodes []core.NodeID, edges [][2]core.NodeID) decompose.Tree {
	se := make([]decompose.SeveredEdge, len(edges))
	for i, e := range edges {
		se[i] = decompose.SeveredEdge{Source: e[0], Target: e[1], Label: "p"}
	}
	return decompose.Tree{Root: root, Nodes: nodes, Edges: se}
}

func TestLayoutReservedWidthIsSumOfChildren(t *testing.T) {
	// root has two leaf children: reserved_x(root) = 1 + 1 = 2.
	tr := tree(0, []core.NodeID{0, 1, 2}, [][2]core.NodeID{{0, 1}, {0, 2}})
	cfg := config.New()

	positions, width := Layout(tr, cfg, 0)
	if width != 2 {
		t.Fatalf("got reserved width %d, want 2", width)
	}
	if positions[0].ReservedX != 2 {
		t.Fatalf("root ReservedX = %d, want 2", positions[0].ReservedX)
	}
	if positions[1].ReservedX != 1 || positions[2].ReservedX != 1 {
		t.Fatalf("leaf ReservedX should be 1 each, got %d and %d", positions[1].ReservedX, positions[2].ReservedX)
	}
}

func TestLayoutChildrenCenteredUnderParent(t *testing.T) {
	tr := tree(0, []core.NodeID{0, 1, 2}, [][2]core.NodeID{{0, 1}, {0, 2}})
	cfg := config.New()

	positions, _ := Layout(tr, cfg, 0)
	if positions[0].GridY != 0 {
		t.Fatalf("root GridY = %d, want 0", positions[0].GridY)
	}
	if positions[1].GridY != 1 || positions[2].GridY != 1 {
		t.Fatalf("children GridY should be 1, got %d and %d", positions[1].GridY, positions[2].GridY)
	}
	if positions[1].GridX >= positions[2].GridX {
		t.Fatalf("expected child 1 drawn left of child 2, got GridX %d and %d", positions[1].GridX, positions[2].GridX)
	}
}

func TestLayoutHorizontalSwapsAxes(t *testing.T) {
	tr := tree(0, []core.NodeID{0, 1}, [][2]core.NodeID{{0, 1}})
	cfg := config.New()
	cfg.HorizontalTree = true

	positions, _ := Layout(tr, cfg, 0)
	// In horizontal mode the BFS-layer axis (depth) becomes GridX, not GridY.
	if positions[0].GridX != 0 || positions[1].GridX != 1 {
		t.Fatalf("expected depth on GridX in horizontal mode, got root %d child %d", positions[0].GridX, positions[1].GridX)
	}
}

func TestLayoutForestChainsOffsets(t *testing.T) {
	t1 := tree(0, []core.NodeID{0, 1, 2}, [][2]core.NodeID{{0, 1}, {0, 2}}) // reserved width 2
	t2 := tree(3, []core.NodeID{3}, nil)                                   // reserved width 1
	cfg := config.New()

	positions := LayoutForest([]decompose.Tree{t1, t2}, cfg)
	if positions[3].GridX < positions[0].GridX+1 {
		t.Fatalf("expected second tree offset past the first tree's reserved width, got root0 GridX=%d root1 GridX=%d", positions[0].GridX, positions[3].GridX)
	}
}
