package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog is the hand-maintained reference data for one data source: the
// canonical category list, the status markers, the manual item ordering and
// the assembly bill-of-materials sets. Loaded from a YAML file at startup so
// it can be updated without a rebuild.
type Catalog struct {
	Source     string        `yaml:"source"`
	Categories []string      `yaml:"categories"`
	RiskMarker string        `yaml:"risk_marker"`
	SafeMarker string        `yaml:"safe_marker"`
	ItemOrder  map[string]int `yaml:"item_order"`
	Assemblies []AssemblySet `yaml:"assemblies"`

	rank map[string]int
}

// AssemblySet is one named bill of materials. Baseline is the reference
// assembly quantity marker: nil means the set is known to be incomplete and
// feasibility is undefined regardless of stock.
type AssemblySet struct {
	ID         int      `yaml:"id"`
	Baseline   *int     `yaml:"baseline"`
	Components []string `yaml:"components"`
}

const unrankedCategory = 999

// Load reads and validates a catalog file. Reference data is required: a
// missing or malformed file is a hard error, not a degraded mode.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if len(c.Categories) == 0 {
		return nil, fmt.Errorf("catalog %s: no categories", path)
	}
	if c.RiskMarker == "" {
		return nil, fmt.Errorf("catalog %s: risk_marker is required", path)
	}
	if c.ItemOrder == nil {
		c.ItemOrder = map[string]int{}
	}
	for i, set := range c.Assemblies {
		if len(set.Components) == 0 {
			return nil, fmt.Errorf("catalog %s: assembly set %d has no components", path, set.ID)
		}
		if set.ID == 0 {
			c.Assemblies[i].ID = i + 1
		}
	}

	c.finalize()
	return &c, nil
}

// New builds an in-memory catalog without a backing file. The built-in
// fallback dataset uses this; file-backed catalogs go through Load.
func New(c Catalog) *Catalog {
	if c.ItemOrder == nil {
		c.ItemOrder = map[string]int{}
	}
	c.finalize()
	return &c
}

func (c *Catalog) finalize() {
	c.rank = make(map[string]int, len(c.Categories))
	for i, cat := range c.Categories {
		c.rank[strings.TrimSpace(cat)] = i + 1
	}
}

// CategoryRank returns the canonical position of a category, 1-based.
// Unknown categories sort after every canonical one.
func (c *Catalog) CategoryRank(category string) int {
	if r, ok := c.rank[strings.TrimSpace(category)]; ok {
		return r
	}
	return unrankedCategory
}

// ItemRank returns the manual ordering rank for an identity key. Keys absent
// from the table sort last.
func (c *Catalog) ItemRank(uniqueKey string) int {
	if r, ok := c.ItemOrder[uniqueKey]; ok {
		return r
	}
	return 999999
}

// IsKnownItem reports whether the identity key appears in the manual
// ordering table. The new-items view is the complement of this set.
func (c *Catalog) IsKnownItem(uniqueKey string) bool {
	_, ok := c.ItemOrder[uniqueKey]
	return ok
}
