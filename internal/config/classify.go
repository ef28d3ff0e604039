package config

import (
	"fmt"
	"os"

	"github.com/openparl/tally/classify"
)

const (
	EnvClassifyCatalogPath = "TALLY_CLASSIFY_CATALOG_PATH"
)

// ClassifyConfig controls the heuristic classification engine. The built-in
// policy catalog and indicator terms apply unless a catalog override file
// is configured. Bloc assignments are an explicit party-name enumeration;
// the defaults cover the federal Canadian parties.
type ClassifyConfig struct {
	CatalogPath string            `toml:"catalog_path"`
	Blocs       map[string]string `toml:"blocs"`
}

// Finalize applies environment variable overrides and validates bloc values.
func (c *ClassifyConfig) Finalize() error {
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ClassifyConfig) Merge(overlay *ClassifyConfig) {
	if overlay.CatalogPath != "" {
		c.CatalogPath = overlay.CatalogPath
	}
	if len(overlay.Blocs) > 0 {
		c.Blocs = overlay.Blocs
	}
}

// Build constructs the classification engine from this config.
func (c *ClassifyConfig) Build() (*classify.Classifier, error) {
	catalog := classify.DefaultCatalog()
	if c.CatalogPath != "" {
		loaded, err := classify.LoadCatalog(c.CatalogPath)
		if err != nil {
			return nil, err
		}
		catalog = loaded
	}

	blocs := classify.DefaultBlocMapping()
	if len(c.Blocs) > 0 {
		blocs = make(classify.BlocMapping, len(c.Blocs))
		for party, bloc := range c.Blocs {
			blocs[party] = classify.Bloc(bloc)
		}
		blocs = blocs.Normalize()
	}

	return classify.New(catalog, classify.DefaultTerms(), blocs), nil
}

func (c *ClassifyConfig) loadEnv() {
	if v := os.Getenv(EnvClassifyCatalogPath); v != "" {
		c.CatalogPath = v
	}
}

func (c *ClassifyConfig) validate() error {
	for party, bloc := range c.Blocs {
		switch classify.Bloc(bloc) {
		case classify.BlocConservative, classify.BlocLiberal, classify.BlocOther:
		default:
			return fmt.Errorf("party %q: unknown bloc %q", party, bloc)
		}
	}
	return nil
}
