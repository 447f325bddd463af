// Package catalog loads the menu and the store's opening hours from YAML.
// The menu seeds food_items, which prices every placed line item.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Item is one menu entry.
type Item struct {
	Name  string `yaml:"name"`
	Price string `yaml:"price"`
}

// Hours is one day's opening window.
type Hours struct {
	Day   string `yaml:"day"`
	Open  string `yaml:"open"`
	Close string `yaml:"close"`
}

// Catalog is the parsed catalog file.
type Catalog struct {
	Menu  []Item  `yaml:"menu"`
	Hours []Hours `yaml:"hours"`

	prices map[string]decimal.Decimal
}

// YAMLLoader reads a catalog file, falling back to the embedded default.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads the catalog at path. An empty path selects the embedded default.
func (l *YAMLLoader) Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultCatalog)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Menu) == 0 {
		return errors.New("catalog menu is empty")
	}

	c.prices = make(map[string]decimal.Decimal, len(c.Menu))
	seen := make(map[string]bool, len(c.Menu))
	for i, item := range c.Menu {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return fmt.Errorf("menu item %d has no name", i)
		}
		key := strings.ToLower(name)
		if seen[key] {
			return fmt.Errorf("menu item %q is listed twice", name)
		}
		seen[key] = true

		price, err := decimal.NewFromString(strings.TrimSpace(item.Price))
		if err != nil {
			return fmt.Errorf("menu item %q: invalid price %q: %w", name, item.Price, err)
		}
		if !price.IsPositive() {
			return fmt.Errorf("menu item %q: price must be positive", name)
		}
		c.prices[name] = price
	}

	for i, h := range c.Hours {
		if strings.TrimSpace(h.Day) == "" || strings.TrimSpace(h.Open) == "" || strings.TrimSpace(h.Close) == "" {
			return fmt.Errorf("hours entry %d is incomplete", i)
		}
	}

	return nil
}

// Prices returns the menu keyed by item name.
func (c *Catalog) Prices() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(c.prices))
	for name, price := range c.prices {
		out[name] = price
	}
	return out
}

// HoursText renders the weekly schedule as the assistant's reply.
func (c *Catalog) HoursText() string {
	if len(c.Hours) == 0 {
		return "Sorry, the store hours are not available right now."
	}

	var b strings.Builder
	b.WriteString("Sure! The store hours are as follows:\n\n")
	for i, h := range c.Hours {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(h.Day)
		b.WriteString(": ")
		b.WriteString(h.Open)
		b.WriteString(" to ")
		b.WriteString(h.Close)
		b.WriteString("\n")
	}
	b.WriteString("\nLet us know if you need further details!")
	return b.String()
}
