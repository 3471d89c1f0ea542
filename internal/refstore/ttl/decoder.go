package ttl

import (
	"fmt"
	"io"
	"strings"

	"github.com/cemento-go/cemento/internal/rdfterm"
	"github.com/cemento-go/cemento/internal/triplestore"
)

// Decoder reads Turtle statements into a triplestore.Store, adapted from the
// teacher's rdf.Decoder but extended to actually resolve @prefix directives
// and prefixed names, which the teacher's decoder stubbed out.
type Decoder struct {
	sc   *scanner
	base string
	ns   map[string]string
}

// NewDecoder returns a Decoder reading Turtle from r.
func NewDecoder(r io.Reader) (*Decoder, error) {
	sc, err := newScanner(r)
	if err != nil {
		return nil, err
	}
	return &Decoder{sc: sc, ns: make(map[string]string)}, nil
}

// DecodeAll parses the entire stream into a Store. Parsed @prefix bindings
// are recorded on Store.Prefixes.
func (d *Decoder) DecodeAll() (*triplestore.Store, error) {
	store := triplestore.New()
	for {
		done, err := d.statement(store)
		if err != nil {
			return nil, err
		}
		if done {
			return store, nil
		}
	}
}

// statement parses one directive or triple block. It returns done=true at
// EOF.
func (d *Decoder) statement(store *triplestore.Store) (done bool, err error) {
	tok, err := d.sc.Scan()
	if err != nil {
		return false, err
	}
	switch tok.Type {
	case tokenEOF:
		return true, nil
	case tokenAt:
		return false, d.directive(tok.Text, store)
	default:
		return false, d.triples(tok, store)
	}
}

func (d *Decoder) directive(keyword string, store *triplestore.Store) error {
	switch keyword {
	case "prefix":
		p, err := d.sc.Scan()
		if err != nil {
			return err
		}
		if p.Type != tokenPrefixed {
			return fmt.Errorf("ttl: expected prefix name after @prefix")
		}
		prefixName := strings.TrimSuffix(p.Text, ":")
		u, err := d.expectURI()
		if err != nil {
			return err
		}
		if err := d.expectDot(); err != nil {
			return err
		}
		d.ns[prefixName] = u
		store.Prefixes[prefixName] = u
		return nil
	case "base":
		u, err := d.expectURI()
		if err != nil {
			return err
		}
		d.base = u
		return d.expectDot()
	default:
		return fmt.Errorf("ttl: unknown directive @%s", keyword)
	}
}

func (d *Decoder) expectURI() (string, error) {
	tok, err := d.sc.Scan()
	if err != nil {
		return "", err
	}
	if tok.Type != tokenURI {
		return "", fmt.Errorf("ttl: expected URI, got %v", tok.Type)
	}
	return tok.Text, nil
}

func (d *Decoder) expectDot() error {
	tok, err := d.sc.Scan()
	if err != nil {
		return err
	}
	if tok.Type != tokenDot {
		return fmt.Errorf("ttl: expected '.'")
	}
	return nil
}

// triples parses: subject predicateObjectList '.'
func (d *Decoder) triples(subjTok token, store *triplestore.Store) error {
	subj, err := d.resolveSubjectOrObject(subjTok)
	if err != nil {
		return err
	}
	subjIRI, ok := subj.(rdfterm.IRI)
	if !ok {
		return fmt.Errorf("ttl: subject must be an IRI or blank node, got literal")
	}

	for {
		predTok, err := d.sc.Scan()
		if err != nil {
			return err
		}
		pred, err := d.resolvePredicate(predTok)
		if err != nil {
			return err
		}
		if err := d.objectList(store, subjIRI, pred); err != nil {
			return err
		}

		next, err := d.sc.Scan()
		if err != nil {
			return err
		}
		switch next.Type {
		case tokenSemicolon:
			continue
		case tokenDot:
			return nil
		default:
			return fmt.Errorf("ttl: expected ';' or '.' after predicate-object list")
		}
	}
}

// objectList parses: object (',' object)*
func (d *Decoder) objectList(store *triplestore.Store, subj, pred rdfterm.IRI) error {
	for {
		objTok, err := d.sc.Scan()
		if err != nil {
			return err
		}
		obj, err := d.resolveSubjectOrObject(objTok)
		if err != nil {
			return err
		}
		if lit, ok := obj.(rdfterm.Literal); ok {
			lit, err = d.literalSuffix(lit)
			if err != nil {
				return err
			}
			obj = lit
		}
		store.Insert(triplestore.Triple{Subj: subj, Pred: pred, Obj: obj})

		// peek for a comma to continue the object list; anything else is
		// left for the caller (triples/directive) to consume.
		save := *d.sc
		peekTok, err := d.sc.Scan()
		if err != nil {
			return err
		}
		if peekTok.Type == tokenComma {
			continue
		}
		*d.sc = save
		return nil
	}
}

// literalSuffix consumes an optional ^^datatype or @lang following a literal.
func (d *Decoder) literalSuffix(lit rdfterm.Literal) (rdfterm.Literal, error) {
	save := *d.sc
	marker, err := d.sc.ScanTypeMarkerOrLangTag()
	if err != nil {
		return lit, err
	}
	switch marker.Type {
	case tokenTypeMarker:
		tok, err := d.sc.Scan()
		if err != nil {
			return lit, err
		}
		dt, err := d.resolveIRIToken(tok)
		if err != nil {
			return lit, err
		}
		return rdfterm.NewTypedLiteral(lit.Value, dt), nil
	case tokenLangTag:
		return rdfterm.NewLangLiteral(lit.Value, marker.Text), nil
	default:
		*d.sc = save
		return lit, nil
	}
}

func (d *Decoder) resolvePredicate(tok token) (rdfterm.IRI, error) {
	if tok.Type == tokenPrefixed && tok.Text == "a" {
		return rdfterm.RDFtype, nil
	}
	return d.resolveIRIToken(tok)
}

func (d *Decoder) resolveIRIToken(tok token) (rdfterm.IRI, error) {
	switch tok.Type {
	case tokenURI:
		return rdfterm.IRI(tok.Text), nil
	case tokenPrefixed:
		return d.expandPrefixed(tok.Text)
	default:
		return "", fmt.Errorf("ttl: expected IRI, got %v", tok.Type)
	}
}

func (d *Decoder) resolveSubjectOrObject(tok token) (rdfterm.Term, error) {
	switch tok.Type {
	case tokenURI:
		return rdfterm.IRI(tok.Text), nil
	case tokenPrefixed:
		if tok.Text == "a" {
			return rdfterm.RDFtype, nil
		}
		iri, err := d.expandPrefixed(tok.Text)
		if err != nil {
			return nil, err
		}
		return iri, nil
	case tokenBlank:
		return rdfterm.IRI("_:" + tok.Text), nil
	case tokenLiteral:
		return rdfterm.NewLiteral(tok.Text), nil
	default:
		return nil, fmt.Errorf("ttl: unexpected token %v in term position", tok.Type)
	}
}

func (d *Decoder) expandPrefixed(s string) (rdfterm.IRI, error) {
	i := strings.Index(s, ":")
	if i < 0 {
		return "", fmt.Errorf("ttl: malformed prefixed name %q", s)
	}
	p, local := s[:i], s[i+1:]
	ns, ok := d.ns[p]
	if !ok {
		return "", fmt.Errorf("ttl: unbound prefix %q", p)
	}
	return rdfterm.IRI(ns + local), nil
}
