// Package refstore loads the reference-ontology and defaults folders named
// by spec.md §6: directories of .ttl files that seed the prefix registry and
// term table. This is collaborator infrastructure around the core (the
// Turtle grammar itself is out of scope per spec §1) but it is what makes
// the rest of the pipeline runnable end to end.
package refstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cemento-go/cemento/internal/prefix"
	"github.com/cemento-go/cemento/internal/rdfterm"
	"github.com/cemento-go/cemento/internal/refstore/ttl"
	"github.com/cemento-go/cemento/internal/triplestore"
)

// Folder is a loaded reference-ontology or defaults directory: one merged
// triple store per file (kept separate so term-table population can track
// provenance) plus the union of namespaces observed, for residual prefix
// synthesis.
type Folder struct {
	Files      map[string]*triplestore.Store // file path -> its triples
	Namespaces []string
}

// Load reads every *.ttl file directly inside dir (non-recursive, matching
// a flat reference-ontology folder) and returns the per-file stores plus
// the namespace set to synthesize residual prefixes for.
//
// Per spec §5, file iteration order must be fixed for determinism; Load
// sorts file names before parsing, so a map-reduce parallel implementation
// (parsing files concurrently, as the concurrency model explicitly
// permits) can still merge deterministically by replaying in this order.
func Load(dir string) (*Folder, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("refstore: %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".ttl" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	folder := &Folder{Files: make(map[string]*triplestore.Store, len(names))}
	nsSeen := map[string]bool{}
	for _, name := range names {
		path := filepath.Join(dir, name)
		store, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		folder.Files[path] = store
		for _, ns := range store.Prefixes {
			if !nsSeen[ns] {
				nsSeen[ns] = true
				folder.Namespaces = append(folder.Namespaces, ns)
			}
		}
		for _, t := range store.Triples() {
			iris := []rdfterm.IRI{t.Subj, t.Pred}
			if o, ok := t.Obj.(rdfterm.IRI); ok {
				iris = append(iris, o)
			}
			for _, iri := range iris {
				if ns, _ := iri.Split(); ns != "" && !strings.HasPrefix(ns, "_:") && !nsSeen[ns] {
					nsSeen[ns] = true
					folder.Namespaces = append(folder.Namespaces, ns)
				}
			}
		}
	}
	sort.Strings(folder.Namespaces)
	return folder, nil
}

// LoadFile parses a single Turtle file, for the main ontology input of the
// RDF→diagram direction (as opposed to a reference-ontology folder).
func LoadFile(path string) (*triplestore.Store, error) {
	return loadFile(path)
}

func loadFile(path string) (*triplestore.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("refstore: %s: %w", path, err)
	}
	defer f.Close()

	dec, err := ttl.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf("refstore: %s: %w", path, err)
	}
	store, err := dec.DecodeAll()
	if err != nil {
		return nil, fmt.Errorf("refstore: %s: %w", path, err)
	}
	return store, nil
}

// BindInto merges every file's prefix declarations into registry and
// synthesizes residuals for any namespace left unbound, per spec §3
// "extended by ... prefix declarations found in reference Turtle files ...
// and auto-generated prefixes for namespaces encountered but unbound".
func (f *Folder) BindInto(registry *prefix.Registry) {
	for _, store := range f.Files {
		for p, ns := range store.Prefixes {
			if _, ok := registry.Lookup(p); !ok {
				registry.Bind(p, ns)
			}
		}
	}
	registry.SynthesizeResiduals(f.Namespaces)
}

// Merged returns one triple store with every file's triples combined.
func (f *Folder) Merged() *triplestore.Store {
	out := triplestore.New()
	paths := make([]string, 0, len(f.Files))
	for p := range f.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		out.Merge(f.Files[p])
	}
	return out
}
