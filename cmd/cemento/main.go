// Command cemento bridges diagrams and RDF/Turtle ontologies, per
// spec.md §6: drawio_ttl lifts a diagram into Turtle, ttl_drawio projects a
// Turtle ontology back into a laid-out diagram.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/cemento-go/cemento/internal/config"
	"github.com/cemento-go/cemento/internal/core"
	"github.com/cemento-go/cemento/internal/decompose"
	"github.com/cemento-go/cemento/internal/drawio"
	"github.com/cemento-go/cemento/internal/drawioconv"
	"github.com/cemento-go/cemento/internal/layout"
	"github.com/cemento-go/cemento/internal/prefix"
	"github.com/cemento-go/cemento/internal/rdfconv"
	"github.com/cemento-go/cemento/internal/refstore"
	"github.com/cemento-go/cemento/internal/serialize"
	"github.com/cemento-go/cemento/internal/term"
	"github.com/cemento-go/cemento/internal/triplestore"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("cemento: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "drawio_ttl":
		err = runDrawioTTL(os.Args[2:])
	case "ttl_drawio":
		err = runTTLDrawio(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: cemento drawio_ttl <input> <output> [-r refs] [-d defaults] [-p prefixes]")
	fmt.Fprintln(os.Stderr, "       cemento ttl_drawio <input> <output> [-hz] [-dct] [-nul]")
}

func buildRegistryAndTable(refsDir, defaultsDir, prefixesFile string) (*prefix.Registry, *term.Table, *config.Pipeline, error) {
	registry := prefix.New()
	cfg := config.New()

	if prefixesFile != "" {
		bindings, err := config.LoadPrefixesFile(prefixesFile)
		if err != nil {
			return nil, nil, nil, err
		}
		for p, ns := range bindings {
			registry.Bind(p, ns)
		}
	}

	merged := triplestore.New()

	if defaultsDir != "" {
		defaults, err := refstore.Load(defaultsDir)
		if err != nil {
			return nil, nil, nil, err
		}
		defaults.BindInto(registry)
		defaultsStore := defaults.Merged()
		merged.Merge(defaultsStore)
		for _, t := range defaultsStore.Triples() {
			cfg.RankPredicates[string(t.Subj)] = true
			cfg.StratPredicates[string(t.Subj)] = true
		}
	}

	if refsDir != "" {
		refs, err := refstore.Load(refsDir)
		if err != nil {
			return nil, nil, nil, err
		}
		refs.BindInto(registry)
		merged.Merge(refs.Merged())
	}

	table, err := term.Populate(registry, merged)
	if err != nil {
		return nil, nil, nil, err
	}
	return registry, table, cfg, nil
}

func runDrawioTTL(args []string) error {
	fs := flag.NewFlagSet("drawio_ttl", flag.ExitOnError)
	refsDir := fs.String("r", "", "reference ontologies folder")
	defaultsDir := fs.String("d", "", "defaults folder (rank property family)")
	prefixesFile := fs.String("p", "", "prefixes JSON file")
	fs.Parse(args)

	if fs.NArg() < 2 {
		usage()
		os.Exit(1)
	}
	input, output := fs.Arg(0), fs.Arg(1)

	registry, table, cfg, err := buildRegistryAndTable(*refsDir, *defaultsDir, *prefixesFile)
	if err != nil {
		return err
	}

	doc, err := drawio.Read(input)
	if err != nil {
		return err
	}

	reconciler := term.NewReconciler(registry, table, term.ReconcilerConfig{
		DefaultPrefix: cfg.DefaultPrefix,
		Cutoff:        cfg.FuzzyCutoffUser,
	})
	translator := drawioconv.New(reconciler, cfg)
	g, substituted, err := translator.Translate(doc)
	if err != nil {
		return err
	}

	serializer := serialize.New(registry, substituted)
	store := serializer.Serialize(g)
	text := serialize.Text(store, registry)

	return os.WriteFile(output, []byte(text), 0o644)
}

func runTTLDrawio(args []string) error {
	fs := flag.NewFlagSet("ttl_drawio", flag.ExitOnError)
	horizontal := fs.Bool("hz", false, "horizontal tree layout")
	classesOnly := fs.Bool("dct", false, "classes-only mode (recorded in config; no structural validation is run)")
	uniqueLiterals := fs.Bool("nul", false, "assign unique ids to repeated literal values")
	fs.Parse(args)

	if fs.NArg() < 2 {
		usage()
		os.Exit(1)
	}
	input, output := fs.Arg(0), fs.Arg(1)

	registry := prefix.New()
	cfg := config.New()
	cfg.HorizontalTree = *horizontal
	cfg.ClassesOnly = *classesOnly
	cfg.SetUniqueLiterals = *uniqueLiterals

	store, err := refstore.LoadFile(input)
	if err != nil {
		return err
	}
	if cfg.SetUniqueLiterals {
		store = rdfconv.Uniquify(store)
	}

	table, err := term.Populate(registry, store)
	if err != nil {
		return err
	}

	translator := rdfconv.New(registry, table, cfg)
	g, err := translator.Translate(store)
	if err != nil {
		return err
	}

	doc, err := buildDiagram(g, cfg)
	if err != nil {
		return err
	}
	return doc.Write(output)
}

// buildDiagram runs the tree decomposer and layout engine over g's rank
// subgraph and materialises the result as a diagram document, per the
// reverse data flow of spec §2 (E → D → G → H → I → diagram writer).
func buildDiagram(g *core.Graph, cfg *config.Pipeline) (*drawio.Document, error) {
	sub, toOrig := decompose.StratSubgraph(g)
	forest, err := decompose.Decompose(sub)
	if err != nil {
		return nil, err
	}

	positions := layout.LayoutForest(forest.Trees, cfg)

	doc := drawio.New()
	// Cell ids are diagram_uid values (uuid.New, as the original
	// write_diagram.py mints them) rather than the node's own NodeID, so a
	// diagram re-generated from an unchanged graph doesn't accidentally
	// collide with ids a human has since hand-edited into the same file.
	cellIDs := make(map[core.NodeID]string)
	cellID := func(n core.NodeID) string {
		if id, ok := cellIDs[n]; ok {
			return id
		}
		id := uuid.New().String()
		cellIDs[n] = id
		return id
	}

	origPositions := make(map[core.NodeID]layout.Position, len(positions))
	placed := map[core.NodeID]bool{}
	for subID, pos := range positions {
		origID := toOrig[subID]
		if placed[origID] {
			continue
		}
		placed[origID] = true
		origPositions[origID] = pos
		attrs := g.Node(origID)
		doc.AddCell(&drawio.Cell{
			ID:          cellID(origID),
			Parent:      "1",
			Value:       attrs.Label,
			X:           pos.PixelX,
			Y:           pos.PixelY,
			Width:       layout.BoxWidth,
			Height:      layout.BoxHeight,
			HasGeometry: true,
		})
	}

	addEdge := func(srcOrig, dstOrig core.NodeID, label string, dashed, forceBottomTop bool) {
		style := map[string]string{}
		if dashed {
			style["dashed"] = "1"
		}
		if srcPos, ok := origPositions[srcOrig]; ok {
			if dstPos, ok := origPositions[dstOrig]; ok {
				a := layout.Attach(
					srcPos.PixelX+layout.BoxWidth/2, srcPos.PixelY+layout.BoxHeight/2,
					dstPos.PixelX+layout.BoxWidth/2, dstPos.PixelY+layout.BoxHeight/2,
					layout.BoxWidth, layout.BoxHeight, cfg.HorizontalTree, forceBottomTop)
				style["exitX"] = fmt.Sprintf("%.2f", a.StartX)
				style["exitY"] = fmt.Sprintf("%.2f", a.StartY)
				style["entryX"] = fmt.Sprintf("%.2f", a.EndX)
				style["entryY"] = fmt.Sprintf("%.2f", a.EndY)
			}
		}
		doc.AddCell(&drawio.Cell{
			ID:     uuid.New().String(),
			Parent: "1",
			Value:  label,
			Source: cellID(srcOrig),
			Target: cellID(dstOrig),
			IsEdge: true,
			Style:  style,
		})
	}

	for _, tree := range forest.Trees {
		for _, e := range tree.Edges {
			addEdge(toOrig[e.Source], toOrig[e.Target], e.Label, false, true)
		}
	}
	for _, s := range forest.Severed {
		addEdge(toOrig[s.Source], toOrig[s.Target], s.Label, true, false)
	}

	// Non-strat edges (plain object/datatype predicates, collection and
	// axiom edges) never entered the rank subgraph the decomposer and
	// layout engine work over; draw them directly between the positions
	// already assigned to their endpoints.
	for _, e := range g.Edges() {
		a := g.Edge(e)
		if a.IsStrat {
			continue
		}
		addEdge(a.Source, a.Target, a.Label, false, false)
	}

	return doc, nil
}
