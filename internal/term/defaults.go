package term

import "github.com/cemento-go/cemento/internal/rdfterm"

// DefaultVocabularyTerms is the "default namespace member terms" of spec
// §4.B's term-table population step (a): the fixed RDF/RDFS/OWL/SKOS/
// dcterms vocabulary, keyed by prefixed name exactly as a user would type it
// in a diagram label.
var DefaultVocabularyTerms = map[string]rdfterm.IRI{
	"rdf:type":              rdfterm.RDFtype,
	"rdf:first":             rdfterm.RDFfirst,
	"rdf:rest":              rdfterm.RDFrest,
	"rdf:nil":               rdfterm.RDFnil,
	"rdfs:subClassOf":       rdfterm.RDFSsubClassOf,
	"rdfs:subPropertyOf":    rdfterm.RDFSsubPropOf,
	"rdfs:domain":           rdfterm.RDFSdomain,
	"rdfs:range":            rdfterm.RDFSrange,
	"rdfs:label":            rdfterm.RDFSlabel,
	"owl:Class":             rdfterm.OWLclass,
	"owl:ObjectProperty":    rdfterm.OWLobjectProp,
	"owl:DatatypeProperty":  rdfterm.OWLdatatypeProp,
	"owl:AnnotationProperty": rdfterm.OWLannotationProp,
	"owl:unionOf":           rdfterm.OWLunionOf,
	"owl:intersectionOf":    rdfterm.OWLintersectionOf,
	"owl:complementOf":      rdfterm.OWLcomplementOf,
	"skos:altLabel":         rdfterm.SKOSaltLabel,
	"skos:exactMatch":       rdfterm.SKOSexactMatch,
}

// IsDefaultVocabularyIRI reports whether iri belongs to the fixed default
// vocabulary (rdf:/rdfs:/owl:/skos: well-known terms), used by the RDF→graph
// translator to exclude pure-vocabulary terms from the class/instance/
// display sets (spec §4.E steps 2, 6).
func IsDefaultVocabularyIRI(iri rdfterm.IRI) bool {
	for _, v := range DefaultVocabularyTerms {
		if v == iri {
			return true
		}
	}
	return false
}
