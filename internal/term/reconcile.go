package term

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cemento-go/cemento/internal/core"
	"github.com/cemento-go/cemento/internal/prefix"
	"github.com/cemento-go/cemento/internal/rdfterm"
)

var titleCaser = cases.Title(language.Und)

// Outcome is the result of reconciling one free-form label.
type Outcome struct {
	IRI          rdfterm.IRI
	Substituted  bool // true if an existing term table entry was matched
	Aliases      []string
	SearchKeys   []string
}

var trailingParens = regexp.MustCompile(`\s*\(([^()]*)\)\s*$`)

// stripAliases removes a trailing "(alias, alias2)" suffix, returning the
// cleaned label and the aliases in source order (spec §4.C step 1).
func stripAliases(label string) (clean string, aliases []string) {
	m := trailingParens.FindStringSubmatchIndex(label)
	if m == nil {
		return strings.TrimSpace(label), nil
	}
	inner := label[m[2]:m[3]]
	clean = strings.TrimSpace(label[:m[0]])
	for _, a := range strings.Split(inner, ",") {
		a = strings.TrimSpace(a)
		if a != "" {
			aliases = append(aliases, a)
		}
	}
	return clean, aliases
}

// The original's camel-case splitter (`original_source/cemento/term_
// matching/transforms.py`) relies on a lookahead,
// `[A-Z]+(?=[A-Z][a-z]|\b)|[A-Z][a-z]+|[0-9]+`, to claim an acronym's
// letters without also consuming the capital that starts the next word.
// RE2 (and so Go's regexp) has no lookahead, so that can't translate
// directly — a non-capturing group in its place would consume those
// characters rather than merely assert them, corrupting any acronym-
// bearing label ("HTTPRequest" → "HTTPRe" + a dropped "quest"). Instead,
// splitCamelAndDigits inserts a space at each boundary RE2 can express
// without lookahead, then lets strings.Fields do the splitting.
var (
	acronymBoundary = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	wordBoundary    = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	digitBoundary   = regexp.MustCompile(`([A-Za-z])([0-9])`)
)

// splitCamelAndDigits splits s at acronym/word-start boundaries
// ("HTTPRequest" -> "HTTP", "Request") and digit runs ("Request123" ->
// "Request", "123"), undoing camel case without relying on lookahead.
func splitCamelAndDigits(s string) []string {
	s = acronymBoundary.ReplaceAllString(s, "$1 $2")
	s = wordBoundary.ReplaceAllString(s, "$1 $2")
	s = digitBoundary.ReplaceAllString(s, "$1 $2")
	return strings.Fields(s)
}

// normalizeLocal converts free text into upper camel case (for classes,
// instances, predicates-as-nouns) or lower camel case (predicates), per
// spec §4.C step 3. Predicates additionally have underscores converted to
// spaces before camel-casing.
func normalizeLocal(s string, isPredicate bool) string {
	if isPredicate {
		s = strings.ReplaceAll(s, "_", " ")
	}
	fields := splitIntoWords(s)
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	for i, f := range fields {
		titled := titleCaser.String(strings.ToLower(f))
		if i == 0 && isPredicate {
			titled = lowerFirst(titled)
		}
		b.WriteString(titled)
	}
	return b.String()
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// splitIntoWords splits on any run of non-alphanumeric characters and on
// existing camel-case / digit boundaries, so "has_part", "has part" and
// "HasPart" all yield ["has","part"] / ["Has","Part"].
func splitIntoWords(s string) []string {
	var words []string
	for _, chunk := range regexp.MustCompile(`[^A-Za-z0-9]+`).Split(s, -1) {
		if chunk == "" {
			continue
		}
		if sub := splitCamelAndDigits(chunk); len(sub) > 0 {
			words = append(words, sub...)
		} else {
			words = append(words, chunk)
		}
	}
	return words
}

// Reconciler resolves free-form diagram labels to canonical terms, per
// spec §4.C.
type Reconciler struct {
	Prefixes *prefix.Registry
	Table    *Table
	Config   ReconcilerConfig
}

// ReconcilerConfig holds the cutoff and default-prefix knobs (kept separate
// from internal/config.Pipeline to avoid an import cycle; the pipeline
// wires the two together at construction time).
type ReconcilerConfig struct {
	DefaultPrefix string
	Cutoff        int
}

// NewReconciler returns a Reconciler over the given registry and table.
func NewReconciler(p *prefix.Registry, tbl *Table, cfg ReconcilerConfig) *Reconciler {
	return &Reconciler{Prefixes: p, Table: tbl, Config: cfg}
}

// ErrUnknownPrefix is returned when a label uses a prefix the registry does
// not know about.
type ErrUnknownPrefix struct{ Prefix string }

func (e *ErrUnknownPrefix) Error() string {
	return fmt.Sprintf("unknown prefix: %s", e.Prefix)
}

// Is reports whether target is core.ErrUnknownPrefix, so callers can test
// for the error kind with errors.Is.
func (e *ErrUnknownPrefix) Is(target error) bool { return target == core.ErrUnknownPrefix }

// Reconcile resolves label to a canonical term.
func (r *Reconciler) Reconcile(label string, isPredicate bool) (Outcome, error) {
	clean, aliases := stripAliases(label)

	prefixPart := r.Config.DefaultPrefix
	localPart := clean
	if i := strings.Index(clean, ":"); i > 0 {
		prefixPart = clean[:i]
		localPart = clean[i+1:]
	}

	namespace, ok := r.Prefixes.Lookup(prefixPart)
	if !ok {
		return Outcome{}, &ErrUnknownPrefix{Prefix: prefixPart}
	}

	normalized := normalizeLocal(localPart, isPredicate)

	searchKeys := []string{
		clean,
		prefixPart + ":" + normalized,
	}
	if words := splitIntoWords(normalized); len(words) > 0 {
		searchKeys = append(searchKeys, prefixPart+":"+strings.Join(words, " "))
	}

	cutoff := r.Config.Cutoff
	if cutoff == 0 {
		cutoff = 75
	}

	if matched, ok := r.Table.Fuzzy(searchKeys, cutoff); ok {
		return Outcome{IRI: matched, Substituted: true, Aliases: aliases, SearchKeys: searchKeys}, nil
	}

	minted := rdfterm.IRI(namespace + normalized)
	return Outcome{IRI: minted, Substituted: false, Aliases: aliases, SearchKeys: searchKeys}, nil
}
