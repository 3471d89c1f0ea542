package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadPrefixesFile reads the prefixes JSON file named by spec §6: a flat
// object mapping prefix strings to namespace IRI strings.
func LoadPrefixesFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	var out map[string]string
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return out, nil
}

// RefsManifest is the optional refs.yaml recording which reference-ontology
// files seed the rank-property family, alongside the defaults folder.
type RefsManifest struct {
	RankFiles []string `yaml:"rank_files"`
}

// LoadRefsManifest reads refs.yaml, if present; a missing file is not an
// error, matching spec §7's "download failures of default ontologies are
// not fatal" posture for optional inputs.
func LoadRefsManifest(path string) (*RefsManifest, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &RefsManifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	var m RefsManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &m, nil
}
