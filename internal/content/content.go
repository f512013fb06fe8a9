// Package content provides the static ritual content: the Elder Futhark
// rune set, numerology readings and the wheel prize table. The catalog is
// built and validated once at startup and passed by injection; nothing in
// here is a lazily-initialized singleton.
package content

import (
	"fmt"

	"github.com/mysticarcade/backend/internal/seed"
)

// Rune is a single drawable rune
type Rune struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Meaning  string `json:"meaning"`
	Reversed string `json:"reversed,omitempty"`
}

// Reading is a numerology life-path reading
type Reading struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Text   string `json:"text"`
}

// Prize is one wheel segment. Weight is relative within the table.
type Prize struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Orbs   int    `json:"orbs"`
	XP     int    `json:"xp"`
	Weight int    `json:"-"`
}

// Catalog is the validated, immutable content lookup
type Catalog struct {
	runes       []Rune
	runesByKey  map[string]*Rune
	readings    []Reading
	prizes      []Prize
	totalWeight int
}

// NewCatalog builds and validates the catalog. Call once at process start.
func NewCatalog() (*Catalog, error) {
	c := &Catalog{
		runes:      elderFuthark,
		readings:   lifePathReadings,
		prizes:     wheelPrizes,
		runesByKey: make(map[string]*Rune, len(elderFuthark)),
	}

	for i := range c.runes {
		r := &c.runes[i]
		if r.Key == "" || r.Name == "" || r.Symbol == "" || r.Meaning == "" {
			return nil, fmt.Errorf("incomplete rune at index %d (%q)", i, r.Key)
		}
		if _, dup := c.runesByKey[r.Key]; dup {
			return nil, fmt.Errorf("duplicate rune key %q", r.Key)
		}
		c.runesByKey[r.Key] = r
	}

	seen := make(map[int]bool, len(c.readings))
	for _, rd := range c.readings {
		if rd.Title == "" || rd.Text == "" {
			return nil, fmt.Errorf("incomplete reading for number %d", rd.Number)
		}
		if seen[rd.Number] {
			return nil, fmt.Errorf("duplicate reading number %d", rd.Number)
		}
		seen[rd.Number] = true
	}

	for _, p := range c.prizes {
		if p.Weight <= 0 {
			return nil, fmt.Errorf("prize %q has non-positive weight", p.Key)
		}
		c.totalWeight += p.Weight
	}
	if c.totalWeight == 0 {
		return nil, fmt.Errorf("empty prize table")
	}

	return c, nil
}

// RuneCount returns the number of runes in the set
func (c *Catalog) RuneCount() int {
	return len(c.runes)
}

// RuneAt returns the rune at index i
func (c *Catalog) RuneAt(i int) Rune {
	return c.runes[i]
}

// RuneByKey looks up a rune by its key
func (c *Catalog) RuneByKey(key string) (Rune, bool) {
	r, ok := c.runesByKey[key]
	if !ok {
		return Rune{}, false
	}
	return *r, true
}

// PickRune deterministically selects a rune for the seed
func (c *Catalog) PickRune(s string) (Rune, error) {
	i, err := seed.Pick(s, len(c.runes))
	if err != nil {
		return Rune{}, err
	}
	return c.runes[i], nil
}

// PickReading deterministically selects a numerology reading for the seed
func (c *Catalog) PickReading(s string) (Reading, error) {
	i, err := seed.Pick(s, len(c.readings))
	if err != nil {
		return Reading{}, err
	}
	return c.readings[i], nil
}

// SpinPrize deterministically selects a weighted wheel prize for the seed
func (c *Catalog) SpinPrize(s string) Prize {
	target := int(seed.Fraction(s) * float64(c.totalWeight))
	acc := 0
	for _, p := range c.prizes {
		acc += p.Weight
		if target < acc {
			return p
		}
	}
	return c.prizes[len(c.prizes)-1]
}
