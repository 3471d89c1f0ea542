// Package rdfconv implements the RDF→graph translator (component E):
// building the labelled directed multigraph of internal/core from a parsed
// triple store, classifying terms, handling literals, and extracting axiom
// and collection subgraphs, per spec.md §4.E.
package rdfconv

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cemento-go/cemento/internal/config"
	"github.com/cemento-go/cemento/internal/core"
	"github.com/cemento-go/cemento/internal/prefix"
	"github.com/cemento-go/cemento/internal/rdfterm"
	"github.com/cemento-go/cemento/internal/term"
	"github.com/cemento-go/cemento/internal/triplestore"
)

var propertyMetaClasses = []rdfterm.IRI{
	rdfterm.OWLannotationProp,
	rdfterm.OWLdatatypeProp,
	rdfterm.OWLobjectProp,
}

// Translator builds a core.Graph from a triplestore.Store.
type Translator struct {
	Registry *prefix.Registry
	Table    *term.Table
	Config   *config.Pipeline

	g         *core.Graph
	nodeOf    map[rdfterm.Term]core.NodeID
	termOf    map[core.NodeID]rdfterm.Term
	aliasesOf map[rdfterm.Term][]string
}

// New returns a Translator over the given registry, term table and config.
func New(registry *prefix.Registry, tbl *term.Table, cfg *config.Pipeline) *Translator {
	return &Translator{Registry: registry, Table: tbl, Config: cfg}
}

// Translate builds the core graph for store.
func (tr *Translator) Translate(store *triplestore.Store) (*core.Graph, error) {
	tr.g = core.New()
	tr.nodeOf = make(map[rdfterm.Term]core.NodeID)
	tr.termOf = make(map[core.NodeID]rdfterm.Term)
	tr.aliasesOf = make(map[rdfterm.Term][]string)

	// step 1: merge prefix bindings found in the file, synthesize residuals
	// for every namespace the triples actually use.
	for p, ns := range store.Prefixes {
		if _, ok := tr.Registry.Lookup(p); !ok {
			tr.Registry.Bind(p, ns)
		}
	}
	tr.Registry.SynthesizeResiduals(namespacesOf(store))

	classes := tr.enumerateClasses(store)
	instances := tr.enumerateInstances(store, classes)
	predicates := tr.enumeratePredicates(store)
	literals := tr.enumerateLiterals(store)

	display := unionTermSets(classes, instances, literals)

	// step 7-8: one edge per triple whose subject and object are both in
	// the display set and whose predicate is in the predicate set.
	for _, t := range store.Triples() {
		if !predicates[t.Pred] {
			continue
		}
		if !display[rdfterm.Term(t.Subj)] || !display[t.Obj] {
			continue
		}
		srcID := tr.nodeFor(t.Subj, classes, instances, literals)
		dstID := tr.nodeFor(t.Obj, classes, instances, literals)
		label := tr.shortenPredicate(t.Pred)
		if tr.g.HasEdge(srcID, dstID, label) {
			continue
		}
		isRank := tr.Config.RankPredicates[string(t.Pred)]
		isStrat := isRank || tr.Config.StratPredicates[string(t.Pred)]
		tr.g.AddEdge(srcID, dstID, core.EdgeAttrs{
			Label:       label,
			IsPredicate: true,
			IsRank:      isRank,
			IsStrat:     isStrat,
		})
	}

	// predicate terms are first-class nodes too (every predicate is also a
	// term, per spec §8's invariant that an edge's label appears as a node).
	for p := range predicates {
		tr.nodeForPredicate(p)
	}

	tr.extractAxioms(store, classes)
	tr.extractCollections(store)
	tr.applyMultiObjectSugar()

	return tr.relabel(), nil
}

// shortenPredicate renders a predicate IRI in prefixed form, matching
// core.EdgeAttrs.Label's documented contract; SynthesizeResiduals has
// already run over every namespace the store uses by the time this is
// called, so failure here would mean p's namespace was never observed in
// the store at all (can't happen for a predicate drawn from store.Triples
// itself) — the raw IRI fallback only guards that impossibility.
func (tr *Translator) shortenPredicate(p rdfterm.IRI) string {
	if short, err := tr.Registry.Shorten(string(p)); err == nil {
		return short
	}
	return string(p)
}

func namespacesOf(store *triplestore.Store) []string {
	seen := map[string]bool{}
	var out []string
	add := func(iri rdfterm.IRI) {
		ns, _ := iri.Split()
		if ns != "" && !seen[ns] {
			seen[ns] = true
			out = append(out, ns)
		}
	}
	for _, t := range store.Triples() {
		add(t.Subj)
		add(t.Pred)
		if iri, ok := t.Obj.(rdfterm.IRI); ok {
			add(iri)
		}
	}
	sort.Strings(out)
	return out
}

// enumerateClasses implements spec §4.E step 2.
func (tr *Translator) enumerateClasses(store *triplestore.Store) map[rdfterm.Term]bool {
	classes := map[rdfterm.Term]bool{}
	for _, t := range store.Triples() {
		switch t.Pred {
		case rdfterm.RDFSsubClassOf, rdfterm.RDFSsubPropOf:
			if !term.IsDefaultVocabularyIRI(t.Subj) {
				classes[rdfterm.Term(t.Subj)] = true
			}
			if obj, ok := t.Obj.(rdfterm.IRI); ok && !term.IsDefaultVocabularyIRI(obj) {
				classes[rdfterm.Term(obj)] = true
			}
		case rdfterm.RDFtype:
			if obj, ok := t.Obj.(rdfterm.IRI); ok && !term.IsDefaultVocabularyIRI(obj) {
				classes[rdfterm.Term(obj)] = true
			}
		}
	}
	return classes
}

// enumerateInstances implements spec §4.E step 3.
func (tr *Translator) enumerateInstances(store *triplestore.Store, classes map[rdfterm.Term]bool) map[rdfterm.Term]bool {
	instances := map[rdfterm.Term]bool{}
	for _, subj := range store.SubjectsWithPredicate(rdfterm.RDFtype) {
		if classes[rdfterm.Term(subj)] {
			continue
		}
		instances[rdfterm.Term(subj)] = true
	}
	return instances
}

// enumeratePredicates implements spec §4.E step 4: the transitive closure
// under rdf:type of the property meta-classes, unioned with the configured
// rank predicates, minus self-referential predicates and minus
// rdfs:label/skos:altLabel.
func (tr *Translator) enumeratePredicates(store *triplestore.Store) map[rdfterm.IRI]bool {
	preds := map[rdfterm.IRI]bool{}
	metaSet := map[rdfterm.IRI]bool{}
	for _, m := range propertyMetaClasses {
		metaSet[m] = true
	}
	// one level of rdf:type closure, then iterate until fixpoint so that
	// chained meta-classes (e.g. X typed owl:ObjectProperty, then used as
	// the rdf:type of Y) are also honored. Only rdf:type links are
	// followed; rdfs:subClassOf is not.
	changed := true
	for changed {
		changed = false
		for _, t := range store.Triples() {
			if t.Pred != rdfterm.RDFtype {
				continue
			}
			obj, ok := t.Obj.(rdfterm.IRI)
			if !ok || !metaSet[obj] {
				continue
			}
			if !preds[t.Subj] {
				preds[t.Subj] = true
				changed = true
			}
			if !metaSet[t.Subj] {
				metaSet[t.Subj] = true
			}
		}
	}
	for p := range tr.Config.RankPredicates {
		preds[rdfterm.IRI(p)] = true
	}
	for _, t := range store.Triples() {
		if string(t.Subj) == string(t.Pred) {
			delete(preds, t.Pred)
		}
	}
	delete(preds, rdfterm.RDFSlabel)
	delete(preds, rdfterm.SKOSaltLabel)
	return preds
}

// enumerateLiterals implements spec §4.E step 5 (uniquification already
// applied upstream by Uniquify when configured).
func (tr *Translator) enumerateLiterals(store *triplestore.Store) map[rdfterm.Term]bool {
	lits := map[rdfterm.Term]bool{}
	for _, t := range store.Triples() {
		if lit, ok := t.Obj.(rdfterm.Literal); ok {
			lits[lit] = true
		}
	}
	return lits
}

func unionTermSets(sets ...map[rdfterm.Term]bool) map[rdfterm.Term]bool {
	out := map[rdfterm.Term]bool{}
	for _, s := range sets {
		for t := range s {
			out[t] = true
		}
	}
	return out
}

// nodeFor returns the node id for t, creating it (with the right attribute
// flags) on first reference.
func (tr *Translator) nodeFor(t rdfterm.Term, classes, instances, literals map[rdfterm.Term]bool) core.NodeID {
	if id, ok := tr.nodeOf[t]; ok {
		return id
	}
	attrs := core.NodeAttrs{IsInDiagram: true}
	switch {
	case classes[t]:
		attrs.IsClass = true
		attrs.Label = t.String()
	case instances[t]:
		attrs.IsInstance = true
		attrs.Label = t.String()
	case literals[t]:
		attrs.IsLiteral = true
		lit := t.(rdfterm.Literal)
		attrs.Label = StripUniqueID(lit.Value)
	default:
		attrs.Label = t.String()
	}
	id := tr.g.AddNode(attrs)
	tr.nodeOf[t] = id
	tr.termOf[id] = t
	return id
}

func (tr *Translator) nodeForPredicate(p rdfterm.IRI) core.NodeID {
	t := rdfterm.Term(p)
	if id, ok := tr.nodeOf[t]; ok {
		return id
	}
	id := tr.g.AddNode(core.NodeAttrs{Label: p.String()})
	tr.nodeOf[t] = id
	tr.termOf[id] = t
	return id
}

// extractAxioms implements spec §4.E step 9: rdfs:domain/rdfs:range triples
// whose subject/object are not pure default vocabulary get parallel edges
// marked is_axiom on their endpoint nodes.
func (tr *Translator) extractAxioms(store *triplestore.Store, classes map[rdfterm.Term]bool) {
	for _, t := range store.Triples() {
		if t.Pred != rdfterm.RDFSdomain && t.Pred != rdfterm.RDFSrange {
			continue
		}
		objIRI, ok := t.Obj.(rdfterm.IRI)
		if !ok {
			continue
		}
		if term.IsDefaultVocabularyIRI(t.Subj) && term.IsDefaultVocabularyIRI(objIRI) {
			continue
		}
		srcID := tr.nodeForAxiomEndpoint(rdfterm.Term(t.Subj), classes)
		dstID := tr.nodeForAxiomEndpoint(rdfterm.Term(objIRI), classes)
		tr.g.AddEdge(srcID, dstID, core.EdgeAttrs{Label: tr.shortenPredicate(t.Pred), IsPredicate: true})
	}
}

func (tr *Translator) nodeForAxiomEndpoint(t rdfterm.Term, classes map[rdfterm.Term]bool) core.NodeID {
	id, existed := tr.nodeOf[t]
	if !existed {
		id = tr.g.AddNode(core.NodeAttrs{Label: t.String(), IsClass: classes[t]})
		tr.nodeOf[t] = id
		tr.termOf[id] = t
	}
	attrs := tr.g.Node(id)
	attrs.IsAxiom = true
	tr.g.SetNode(id, attrs)
	return id
}

// extractCollections implements spec §4.E step 10: walk each rdf:first/
// rdf:rest list and reify as mds:CollectionType -> head, head -> member.
func (tr *Translator) extractCollections(store *triplestore.Store) {
	for _, head := range store.SubjectsWithPredicate(rdfterm.RDFfirst) {
		members := tr.collectionMembers(store, head)
		if len(members) == 0 {
			continue
		}
		collType := tr.collectionType(store, head)
		headID := tr.nodeForCollectionHead(head)
		typeID := tr.g.AddNode(core.NodeAttrs{Label: collType, IsCollection: true})
		tr.g.AddEdge(typeID, headID, core.EdgeAttrs{Label: collType, IsPredicate: true})
		for _, m := range members {
			memberID := tr.nodeForAxiomEndpoint(m, map[rdfterm.Term]bool{})
			tr.g.AddEdge(headID, memberID, core.EdgeAttrs{Label: "mds:hasCollectionMember", IsPredicate: true})
		}
	}
}

func (tr *Translator) nodeForCollectionHead(head rdfterm.IRI) core.NodeID {
	t := rdfterm.Term(head)
	if id, ok := tr.nodeOf[t]; ok {
		return id
	}
	id := tr.g.AddNode(core.NodeAttrs{Label: head.String(), IsCollection: true})
	tr.nodeOf[t] = id
	tr.termOf[id] = t
	return id
}

// collectionMembers walks the rdf:first/rdf:rest chain starting at head.
func (tr *Translator) collectionMembers(store *triplestore.Store, head rdfterm.IRI) []rdfterm.Term {
	var members []rdfterm.Term
	cur := head
	for i := 0; i < 10000; i++ { // bounded: malformed cyclic lists must not hang
		firstObjs := store.Objects(cur, rdfterm.RDFfirst)
		if len(firstObjs) == 0 {
			break
		}
		members = append(members, firstObjs[0])
		restObjs := store.Objects(cur, rdfterm.RDFrest)
		if len(restObjs) == 0 {
			break
		}
		restIRI, ok := restObjs[0].(rdfterm.IRI)
		if !ok || restIRI == rdfterm.RDFnil {
			break
		}
		cur = restIRI
	}
	return members
}

// collectionType resolves the owl:unionOf / intersectionOf / complementOf
// predicate that points at head, if any, else falls back to the sugar type.
func (tr *Translator) collectionType(store *triplestore.Store, head rdfterm.IRI) string {
	for _, t := range store.Triples() {
		if obj, ok := t.Obj.(rdfterm.IRI); ok && obj == head {
			switch t.Pred {
			case rdfterm.OWLunionOf:
				return "owl:unionOf"
			case rdfterm.OWLintersectionOf:
				return "owl:intersectionOf"
			case rdfterm.OWLcomplementOf:
				return "owl:complementOf"
			}
		}
	}
	return "mds:Collection"
}

// applyMultiObjectSugar implements spec §4.E step 11: when a (subject,
// predicate) pair has more than one object, synthesize an anonymous
// mds:TripleSyntaxSugar collection node and replace the individual edges
// with one edge to the collection.
func (tr *Translator) applyMultiObjectSugar() {
	type key struct {
		subj  core.NodeID
		label string
	}
	bySubjPred := map[key][]core.EdgeID{}
	for _, e := range tr.g.Edges() {
		a := tr.g.Edge(e)
		if !a.IsPredicate {
			continue
		}
		k := key{subj: a.Source, label: a.Label}
		bySubjPred[k] = append(bySubjPred[k], e)
	}
	for k, edges := range bySubjPred {
		if len(edges) < 2 {
			continue
		}
		collID := tr.g.AddNode(core.NodeAttrs{Label: "mds:TripleSyntaxSugar", IsCollection: true})
		for _, e := range edges {
			target := tr.g.Edge(e).Target
			tr.g.AddEdge(collID, target, core.EdgeAttrs{Label: "mds:hasCollectionMember", IsPredicate: true})
			tr.g.RemoveEdge(e)
		}
		tr.g.AddEdge(k.subj, collID, core.EdgeAttrs{Label: k.label, IsPredicate: true})
	}
}

// relabel rewrites every node's Label from IRI to prefixed-name form,
// attaching aliases in parentheses for classes/instances or substituting
// the first alias for predicate names, per spec §4.E's closing paragraph.
func (tr *Translator) relabel() *core.Graph {
	return tr.g.Relabel(func(id core.NodeID, attrs core.NodeAttrs) core.NodeAttrs {
		t, ok := tr.termOf[id]
		if !ok {
			return attrs
		}
		iri, isIRI := t.(rdfterm.IRI)
		if !isIRI {
			return attrs
		}
		short, err := tr.Registry.Shorten(string(iri))
		if err != nil {
			return attrs
		}
		aliases := tr.aliasesOf[t]
		switch {
		case attrs.IsClass || attrs.IsInstance:
			if len(aliases) > 0 {
				attrs.Label = fmt.Sprintf("%s (%s)", short, strings.Join(aliases, ", "))
			} else {
				attrs.Label = short
			}
		case len(aliases) > 0:
			attrs.Label = aliases[0]
		default:
			attrs.Label = short
		}
		attrs.Aliases = aliases
		return attrs
	})
}

// AttachAliases records alias lists for terms in the map relabel reads.
// Translate itself does not call it.
func (tr *Translator) AttachAliases(aliases map[rdfterm.Term][]string) {
	for t, a := range aliases {
		tr.aliasesOf[t] = a
	}
}
