package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/partsim/internal/values"
)

// Catalog resolves asset names used by effect files: texture regions and the
// effects that nested stages use as templates.
type Catalog struct {
	regions map[string]values.Region
	effects map[string]*EffectFile
}

func NewCatalog() *Catalog {
	return &Catalog{regions: map[string]values.Region{}, effects: map[string]*EffectFile{}}
}

// DefaultCatalog holds the built-in regions and every preset effect.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	for _, r := range DefaultRegions() {
		c.AddRegion(r)
	}
	for _, name := range ListPresets() {
		f, _ := GetPreset(name)
		c.AddEffect(f)
	}
	return c
}

func (c *Catalog) AddRegion(r values.Region) { c.regions[r.Name] = r }
func (c *Catalog) AddEffect(f *EffectFile)   { c.effects[f.Name] = f }

func (c *Catalog) HasEffect(name string) bool {
	_, ok := c.effects[name]
	return ok
}

func (c *Catalog) Region(name string) (values.Region, error) {
	r, ok := c.regions[name]
	if !ok {
		return values.Region{}, fmt.Errorf("%w: region %q", ErrAssetNotFound, name)
	}
	return r, nil
}

func (c *Catalog) Effect(name string) (*EffectFile, error) {
	f, ok := c.effects[name]
	if !ok {
		return nil, fmt.Errorf("%w: effect %q", ErrAssetNotFound, name)
	}
	return f, nil
}

// EffectNames lists the catalog's effects in name order.
func (c *Catalog) EffectNames() []string {
	names := make([]string, 0, len(c.effects))
	for n := range c.effects {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// CatalogFile is the on-disk catalog: extra regions plus effect files, with
// paths relative to the catalog file.
type CatalogFile struct {
	Regions []values.Region `yaml:"regions"`
	Effects []string        `yaml:"effects"`
}

// LoadCatalog extends the default catalog with the contents of a catalog file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cf CatalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := DefaultCatalog()
	for _, r := range cf.Regions {
		c.AddRegion(r)
	}
	dir := filepath.Dir(path)
	for _, p := range cf.Effects {
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		f, err := LoadEffect(p)
		if err != nil {
			return nil, fmt.Errorf("catalog effect %s: %w", p, err)
		}
		c.AddEffect(f)
	}
	return c, nil
}
