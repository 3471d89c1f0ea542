// Package config holds the single configuration record threaded through the
// pipeline, replacing the source project's file-level constants (§9 Design
// Notes, "Global in-module state").
package config

// Pipeline carries every tunable named by spec.md across the translators,
// reconciler, decomposer and layout engine.
type Pipeline struct {
	// DefaultPrefix is used for unprefixed user labels (§4.C step 2).
	DefaultPrefix string

	// RankPredicates is the configured rank property family; an edge whose
	// label is in this set gets IsRank=true. Populated from the defaults
	// folder (spec §6).
	RankPredicates map[string]bool

	// StratPredicates is RankPredicates plus any transitively user-declared
	// annotation/datatype property that should stratify the tree layout.
	StratPredicates map[string]bool

	// FuzzyCutoffUser is the token-sort-ratio cutoff (0-100) for resolving
	// free-form diagram labels against the term table. Default 75.
	FuzzyCutoffUser int

	// FuzzyCutoffDatatype is the cutoff for datatype/annotation property
	// matches. Default 90.
	FuzzyCutoffDatatype int

	// FuzzyCutoffRank is the cutoff for matching a relationship label
	// against the rank-term set in the diagram translator. Default 85.
	FuzzyCutoffRank int

	// SetUniqueLiterals enables literal_id-<hex> prefixing on RDF ingest so
	// that repeated occurrences of the same lexical value are not merged
	// into one graph node (§3 "Literal identity").
	SetUniqueLiterals bool

	// HorizontalTree swaps draw_x/draw_y at the end of the layout pass and
	// concatenates tree offsets along y instead of x.
	HorizontalTree bool

	// InvertRankArrows swaps source/target of rank edges recognised in a
	// diagram, to conform to the parent-to-child convention the layout
	// engine expects.
	InvertRankArrows bool

	// ClassesOnly records the ttl_drawio -dct flag. No stage of the
	// pipeline reads it and no structural diagram validation is run, so it
	// has no effect on the output.
	ClassesOnly bool
}

// Default cutoffs, named in spec §4.B and §4.F as "part of the public
// behavioural contract".
const (
	DefaultFuzzyCutoffUser     = 75
	DefaultFuzzyCutoffDatatype = 90
	DefaultFuzzyCutoffRank     = 85
)

// DefaultRankPredicates is the built-in rank property family, always
// present; a defaults folder adds to it rather than replacing it:
// rdfs:subClassOf and rdf:type, per the GLOSSARY entry for "Rank edge".
var DefaultRankPredicates = []string{
	"http://www.w3.org/2000/01/rdf-schema#subClassOf",
	"http://www.w3.org/1999/02/22-rdf-syntax-ns#type",
}

// New returns a Pipeline seeded with the documented defaults.
func New() *Pipeline {
	rank := make(map[string]bool, len(DefaultRankPredicates))
	strat := make(map[string]bool, len(DefaultRankPredicates))
	for _, p := range DefaultRankPredicates {
		rank[p] = true
		strat[p] = true
	}
	return &Pipeline{
		DefaultPrefix:       "mds",
		RankPredicates:      rank,
		StratPredicates:     strat,
		FuzzyCutoffUser:     DefaultFuzzyCutoffUser,
		FuzzyCutoffDatatype: DefaultFuzzyCutoffDatatype,
		FuzzyCutoffRank:     DefaultFuzzyCutoffRank,
	}
}

// AddStratPredicate declares pred as stratifying without making it a rank
// (hierarchy-arrow) predicate; is_rank stays the gate-subset of is_strat
// per spec §9 Open Questions.
func (p *Pipeline) AddStratPredicate(pred string) {
	p.StratPredicates[pred] = true
}
