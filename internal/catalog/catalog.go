package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var embeddedTemplates []byte

// ErrNotFound is returned when a template id is not in the catalog.
var ErrNotFound = errors.New("template not found")

// Template is one narration template record.
type Template struct {
	ID          string `yaml:"id" json:"id"`
	Category    string `yaml:"category" json:"category"`
	SubCategory string `yaml:"sub_category" json:"sub_category"`
	Type        string `yaml:"type" json:"type"`
	Description string `yaml:"description" json:"description"`
}

type file struct {
	Templates []Template `yaml:"templates"`
}

// Catalog is the ordered, read-only list of templates. It is built once at
// start-up and never mutated, so it is safe to share between goroutines.
type Catalog struct {
	templates []Template
	byID      map[string]int
}

// Default returns the catalog shipped with the binary.
func Default() (*Catalog, error) {
	return Parse(embeddedTemplates)
}

// Load reads a catalog from a YAML file. An empty path loads the embedded catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes catalog YAML and validates template ids.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(f.Templates)
}

// New builds a catalog from templates in the given order. The slice is copied.
func New(templates []Template) (*Catalog, error) {
	c := &Catalog{
		templates: make([]Template, len(templates)),
		byID:      make(map[string]int, len(templates)),
	}
	copy(c.templates, templates)
	for i, t := range c.templates {
		if t.ID == "" {
			return nil, fmt.Errorf("template %d: missing id", i)
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("duplicate template id %q", t.ID)
		}
		c.byID[t.ID] = i
	}
	return c, nil
}

// All returns every template in catalog order.
func (c *Catalog) All() []Template {
	out := make([]Template, len(c.templates))
	copy(out, c.templates)
	return out
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	return len(c.templates)
}

// Get looks a template up by id.
func (c *Catalog) Get(id string) (Template, error) {
	i, ok := c.byID[id]
	if !ok {
		return Template{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c.templates[i], nil
}
