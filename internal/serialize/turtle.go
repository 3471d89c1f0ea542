// Package serialize implements the graph→triples serializer (component J):
// walking the core graph built by the diagram→graph translator, typing
// classes and predicates, reifying multi-valued domain/range as union
// collections, and emitting a Turtle document with every active prefix
// bound.
package serialize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cemento-go/cemento/internal/core"
	"github.com/cemento-go/cemento/internal/prefix"
	"github.com/cemento-go/cemento/internal/rdfconv"
	"github.com/cemento-go/cemento/internal/rdfterm"
	"github.com/cemento-go/cemento/internal/triplestore"
)

// Serializer builds the output triple store from a core graph produced by
// the diagram→graph translator.
type Serializer struct {
	Registry *prefix.Registry

	// Substituted marks nodes whose term came from a term-table match
	// rather than being freshly minted, per spec §4.J's
	// "skos:exactMatch self for every reconciled term".
	Substituted map[core.NodeID]bool
}

// New returns a Serializer over registry.
func New(registry *prefix.Registry, substituted map[core.NodeID]bool) *Serializer {
	return &Serializer{Registry: registry, Substituted: substituted}
}

// Serialize walks g and returns the emitted triple store.
func (s *Serializer) Serialize(g *core.Graph) *triplestore.Store {
	store := triplestore.New()
	for p, ns := range s.Registry.All() {
		store.Prefixes[p] = ns
	}

	termOf := func(n core.NodeID) rdfterm.Term {
		attrs := g.Node(n)
		if attrs.IsLiteral {
			return rdfterm.NewLiteral(rdfconv.StripUniqueID(attrs.Label))
		}
		return rdfterm.IRI(attrs.Label)
	}

	domains := map[string]map[rdfterm.Term]bool{}
	ranges := map[string]map[rdfterm.Term]bool{}

	for _, e := range g.Edges() {
		a := g.Edge(e)
		srcTerm := termOf(a.Source)
		dstTerm := termOf(a.Target)
		store.Insert(triplestore.Triple{
			Subj: srcTerm.(rdfterm.IRI),
			Pred: rdfterm.IRI(a.Label),
			Obj:  dstTerm,
		})

		if !a.IsPredicate {
			continue
		}
		srcAttrs := g.Node(a.Source)
		dstAttrs := g.Node(a.Target)
		if srcAttrs.IsClass {
			if domains[a.Label] == nil {
				domains[a.Label] = map[rdfterm.Term]bool{}
			}
			domains[a.Label][srcTerm] = true
		}
		if dstAttrs.IsClass {
			if ranges[a.Label] == nil {
				ranges[a.Label] = map[rdfterm.Term]bool{}
			}
			ranges[a.Label][dstTerm] = true
		}
	}

	predicates := map[string]bool{}
	for _, e := range g.Edges() {
		a := g.Edge(e)
		if a.IsPredicate {
			predicates[a.Label] = true
		}
	}
	for _, label := range sortedKeys(predicates) {
		store.Insert(triplestore.Triple{
			Subj: rdfterm.IRI(label),
			Pred: rdfterm.RDFtype,
			Obj:  rdfterm.OWLobjectProp,
		})
		s.attachUnionOrSingle(store, rdfterm.IRI(label), rdfterm.RDFSdomain, domains[label])
		s.attachUnionOrSingle(store, rdfterm.IRI(label), rdfterm.RDFSrange, ranges[label])
	}

	for _, n := range g.Nodes() {
		attrs := g.Node(n)
		if attrs.IsClass {
			store.Insert(triplestore.Triple{Subj: rdfterm.IRI(attrs.Label), Pred: rdfterm.RDFtype, Obj: rdfterm.OWLclass})
		}
		if !attrs.IsLiteral {
			s.attachLabels(store, rdfterm.IRI(attrs.Label), attrs.Aliases)
			if s.Substituted[n] {
				store.Insert(triplestore.Triple{
					Subj: rdfterm.IRI(attrs.Label),
					Pred: rdfterm.SKOSexactMatch,
					Obj:  rdfterm.IRI(attrs.Label),
				})
			}
		}
	}

	return store
}

func (s *Serializer) attachLabels(store *triplestore.Store, subj rdfterm.IRI, aliases []string) {
	if len(aliases) == 0 {
		return
	}
	store.Insert(triplestore.Triple{Subj: subj, Pred: rdfterm.RDFSlabel, Obj: rdfterm.NewLiteral(aliases[0])})
	for _, a := range aliases[1:] {
		store.Insert(triplestore.Triple{Subj: subj, Pred: rdfterm.SKOSaltLabel, Obj: rdfterm.NewLiteral(a)})
	}
}

// attachUnionOrSingle attaches values to subj via pred directly if there is
// exactly one, or as a blank-node owl:unionOf collection if there is more
// than one, per spec §4.J.
//
// Blank nodes are represented as synthetic "_:name" rdfterm.IRI values
// rather than rdfterm.BlankNode, since triplestore.Store (like the RDF
// model it mirrors) only takes IRI subjects; isBlankIRI/Text know to render
// them as bare blank-node labels instead of namespace-shortened names.
func (s *Serializer) attachUnionOrSingle(store *triplestore.Store, subj, pred rdfterm.IRI, values map[rdfterm.Term]bool) {
	if len(values) == 0 {
		return
	}
	if len(values) == 1 {
		for v := range values {
			store.Insert(triplestore.Triple{Subj: subj, Pred: pred, Obj: v})
		}
		return
	}

	ordered := make([]rdfterm.Term, 0, len(values))
	for v := range values {
		ordered = append(ordered, v)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].String() < ordered[j].String() })

	union := rdfterm.IRI(fmt.Sprintf("_:union_%s_%s", localOf(pred), localOf(subj)))
	store.Insert(triplestore.Triple{Subj: subj, Pred: pred, Obj: union})
	head := listNode(union, ordered, store)
	store.Insert(triplestore.Triple{Subj: union, Pred: rdfterm.OWLunionOf, Obj: head})
}

// listNode emits an rdf:first/rdf:rest list for items and returns its head.
func listNode(base rdfterm.IRI, items []rdfterm.Term, store *triplestore.Store) rdfterm.Term {
	if len(items) == 0 {
		return rdfterm.IRI(rdfterm.RDFnil)
	}
	var head rdfterm.IRI
	var prevCell rdfterm.IRI
	for i, item := range items {
		cell := rdfterm.IRI(fmt.Sprintf("%s_cell%d", base, i))
		if i == 0 {
			head = cell
		} else {
			store.Insert(triplestore.Triple{Subj: prevCell, Pred: rdfterm.RDFrest, Obj: cell})
		}
		store.Insert(triplestore.Triple{Subj: cell, Pred: rdfterm.RDFfirst, Obj: item})
		prevCell = cell
	}
	store.Insert(triplestore.Triple{Subj: prevCell, Pred: rdfterm.RDFrest, Obj: rdfterm.IRI(rdfterm.RDFnil)})
	return head
}

func isBlankIRI(iri rdfterm.IRI) bool {
	return strings.HasPrefix(string(iri), "_:")
}

func localOf(iri rdfterm.IRI) string {
	_, local := iri.Split()
	if local == "" {
		return string(iri)
	}
	return local
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Text renders store as Turtle, binding every prefix in registry that the
// store actually uses and grouping triples by subject with ';'/'，'-style
// predicate/object lists.
func Text(store *triplestore.Store, registry *prefix.Registry) string {
	var b strings.Builder

	usedPrefixes := map[string]bool{}
	shorten := func(iri rdfterm.IRI) string {
		if isBlankIRI(iri) {
			return string(iri)
		}
		if short, err := registry.Shorten(string(iri)); err == nil {
			if i := strings.IndexByte(short, ':'); i >= 0 {
				usedPrefixes[short[:i]] = true
			}
			return short
		}
		return "<" + string(iri) + ">"
	}

	triples := store.Triples()
	bySubj := map[string][]triplestore.Triple{}
	var subjOrder []string
	for _, t := range triples {
		key := string(t.Subj)
		if _, ok := bySubj[key]; !ok {
			subjOrder = append(subjOrder, key)
		}
		bySubj[key] = append(bySubj[key], t)
	}
	sort.Strings(subjOrder)

	var body strings.Builder
	for _, subjKey := range subjOrder {
		ts := bySubj[subjKey]
		subjTerm := ts[0].Subj
		body.WriteString(termText(subjTerm, shorten))
		byPred := map[string][]rdfterm.Term{}
		var predOrder []string
		for _, t := range ts {
			pKey := string(t.Pred)
			if _, ok := byPred[pKey]; !ok {
				predOrder = append(predOrder, pKey)
			}
			byPred[pKey] = append(byPred[pKey], t.Obj)
		}
		sort.Strings(predOrder)
		for pi, pKey := range predOrder {
			if pi == 0 {
				body.WriteString(" ")
			} else {
				body.WriteString(" ;\n    ")
			}
			body.WriteString(predText(rdfterm.IRI(pKey), shorten))
			body.WriteString(" ")
			objs := byPred[pKey]
			parts := make([]string, len(objs))
			for i, o := range objs {
				parts[i] = objTermText(o, shorten)
			}
			body.WriteString(strings.Join(parts, ", "))
		}
		body.WriteString(" .\n")
	}

	for _, p := range sortedPrefixKeys(usedPrefixes) {
		ns, _ := registry.Lookup(p)
		fmt.Fprintf(&b, "@prefix %s: <%s> .\n", p, ns)
	}
	b.WriteString("\n")
	b.WriteString(body.String())
	return b.String()
}

func sortedPrefixKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func predText(p rdfterm.IRI, shorten func(rdfterm.IRI) string) string {
	if p == rdfterm.RDFtype {
		return "a"
	}
	return shorten(p)
}

func termText(t rdfterm.Term, shorten func(rdfterm.IRI) string) string {
	switch v := t.(type) {
	case rdfterm.IRI:
		return shorten(v)
	case rdfterm.BlankNode:
		return v.String()
	default:
		return t.String()
	}
}

func objTermText(t rdfterm.Term, shorten func(rdfterm.IRI) string) string {
	switch v := t.(type) {
	case rdfterm.IRI:
		return shorten(v)
	case rdfterm.BlankNode:
		return v.String()
	case rdfterm.Literal:
		return v.String()
	default:
		return t.String()
	}
}
