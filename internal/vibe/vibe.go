package vibe

import (
	"fmt"
	"sort"
	"strings"
)

// Vibe is a named presentation style a caller can request.
type Vibe struct {
	Name        string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Catalog keeps the known style vocabulary. Lookups are case-insensitive.
type Catalog struct {
	vibes map[string]Vibe
}

// NewCatalog builds an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{vibes: map[string]Vibe{}}
}

// Default returns the catalog offered by the application form.
func Default() *Catalog {
	c := NewCatalog()
	c.Register(Vibe{Name: "professional", Label: "Professional", Description: "Clean, corporate-style learning experience"})
	c.Register(Vibe{Name: "engaging", Label: "Engaging", Description: "Interactive, gamified approach"})
	c.Register(Vibe{Name: "minimalist", Label: "Minimalist", Description: "Simple, distraction-free design"})
	c.Register(Vibe{Name: "creative", Label: "Creative", Description: "Artistic, visually rich presentation"})
	c.Register(Vibe{Name: "academic", Label: "Academic", Description: "Formal, research-oriented style"})
	c.Register(Vibe{Name: "friendly", Label: "Friendly", Description: "Warm, approachable learning environment"})
	c.Register(Vibe{Name: "tech-forward", Label: "Tech-Forward", Description: "Modern, cutting-edge interface"})
	c.Register(Vibe{Name: "classic", Label: "Classic", Description: "Traditional, timeless design approach"})
	return c
}

// Register adds or replaces a vibe.
func (c *Catalog) Register(v Vibe) {
	if c.vibes == nil {
		c.vibes = map[string]Vibe{}
	}
	c.vibes[key(v.Name)] = v
}

// Resolve returns a vibe by name or an error if it is absent.
func (c *Catalog) Resolve(name string) (Vibe, error) {
	if c != nil {
		if v, ok := c.vibes[key(name)]; ok {
			return v, nil
		}
	}
	return Vibe{}, fmt.Errorf("vibe %q is not registered", name)
}

// List returns all vibes ordered by name.
func (c *Catalog) List() []Vibe {
	if c == nil {
		return nil
	}
	out := make([]Vibe, 0, len(c.vibes))
	for _, v := range c.vibes {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
