// Package drawioconv implements the diagram→graph translator (component
// F): classifying diagram cells into terms and relationships, reconciling
// term labels, and identifying rank predicates by fuzzy match against the
// configured rank-term set.
package drawioconv

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/cemento-go/cemento/internal/config"
	"github.com/cemento-go/cemento/internal/core"
	"github.com/cemento-go/cemento/internal/drawio"
	"github.com/cemento-go/cemento/internal/term"
)

// Translator builds a core.Graph from a parsed diagram document.
type Translator struct {
	Reconciler *term.Reconciler
	Config     *config.Pipeline
}

// New returns a Translator.
func New(reconciler *term.Reconciler, cfg *config.Pipeline) *Translator {
	return &Translator{Reconciler: reconciler, Config: cfg}
}

// Translate classifies doc's cells per spec §4.F and builds the graph. It
// returns the graph and the set of nodes whose term came from a term-table
// match (for J's skos:exactMatch self-link emission).
func (tr *Translator) Translate(doc *drawio.Document) (*core.Graph, map[core.NodeID]bool, error) {
	promoteEdgeLabels(doc)

	g := core.New()
	nodeOf := make(map[string]core.NodeID, len(doc.Cells))
	substituted := make(map[core.NodeID]bool)

	for _, c := range doc.Cells {
		if !c.IsTerm() {
			continue
		}
		outcome, err := tr.Reconciler.Reconcile(c.Value, false)
		if err != nil {
			return nil, nil, err
		}
		id := g.AddNode(core.NodeAttrs{
			Label:       string(outcome.IRI),
			IsClass:     true,
			IsInDiagram: true,
			Aliases:     outcome.Aliases,
		})
		nodeOf[c.ID] = id
		if outcome.Substituted {
			substituted[id] = true
		}
	}

	for _, c := range doc.Cells {
		if !c.IsEdge || c.Source == "" || c.Target == "" {
			continue
		}
		srcID, ok := nodeOf[c.Source]
		if !ok {
			continue
		}
		dstID, ok := nodeOf[c.Target]
		if !ok {
			continue
		}

		label := strings.TrimSpace(c.Value)
		isRank := false
		if rankLabel, ok := tr.matchRankTerm(label); ok {
			label = rankLabel
			isRank = true
		} else {
			outcome, err := tr.Reconciler.Reconcile(label, true)
			if err != nil {
				return nil, nil, err
			}
			label = string(outcome.IRI)
		}

		if isRank && tr.Config.InvertRankArrows {
			srcID, dstID = dstID, srcID
		}

		g.AddEdge(srcID, dstID, core.EdgeAttrs{
			Label:       label,
			IsPredicate: true,
			IsRank:      isRank,
			IsStrat:     isRank,
		})
	}

	return g, substituted, nil
}

// promoteEdgeLabels copies an edgeLabel cell's value onto its parent edge
// cell, per spec §4.F.
func promoteEdgeLabels(doc *drawio.Document) {
	byID := make(map[string]*drawio.Cell, len(doc.Cells))
	for _, c := range doc.Cells {
		byID[c.ID] = c
	}
	for _, c := range doc.Cells {
		if !c.HasTag("edgeLabel") || c.Value == "" {
			continue
		}
		if parent, ok := byID[c.Parent]; ok {
			parent.Value = c.Value
		}
	}
}

// matchRankTerm fuzzy-matches label against the configured rank-predicate
// set; it returns the matched predicate IRI (as a string) if the best
// token-sort score exceeds the configured rank cutoff.
func (tr *Translator) matchRankTerm(label string) (string, bool) {
	best := -1
	bestPred := ""
	for pred := range tr.Config.RankPredicates {
		candidate := localName(pred)
		score := fuzzy.TokenSortRatio(label, candidate)
		if score > best {
			best = score
			bestPred = pred
		}
	}
	cutoff := tr.Config.FuzzyCutoffRank
	if cutoff == 0 {
		cutoff = config.DefaultFuzzyCutoffRank
	}
	if best > cutoff {
		return bestPred, true
	}
	return "", false
}

func localName(iri string) string {
	if i := strings.LastIndexAny(iri, "#/"); i >= 0 {
		return iri[i+1:]
	}
	return iri
}
