// Package currency holds the currency reference data used when building
// foreign income entries.
package currency

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultUnits is the quotation size used when an entry does not set one.
const DefaultUnits = 100

var (
	ErrUnknownCurrency = errors.New("currency: unknown currency")
	ErrInvalidEntry    = errors.New("currency: invalid entry")
)

//go:embed catalog.toml
var builtin []byte

// Currency describes one currency as the declaration program records it.
type Currency struct {
	Alpha   string `toml:"alpha"`
	Code    string `toml:"code"`
	Name    string `toml:"name"`
	Country string `toml:"country"`
	Units   int    `toml:"units"`
}

// Catalog stores currencies by upper-case alpha code.
type Catalog struct {
	items map[string]Currency
}

type catalogFile struct {
	Currency []Currency `toml:"currency"`
}

// Builtin returns a fresh catalog holding the embedded currency list.
func Builtin() (*Catalog, error) {
	var raw catalogFile
	if _, err := toml.Decode(string(builtin), &raw); err != nil {
		return nil, fmt.Errorf("currency: decode builtin catalog: %w", err)
	}
	c := &Catalog{items: make(map[string]Currency, len(raw.Currency))}
	for i, cur := range raw.Currency {
		if err := c.Add(cur); err != nil {
			return nil, fmt.Errorf("builtin currency[%d]: %w", i, err)
		}
	}
	return c, nil
}

// Validate checks the fields a declaration entry needs.
func Validate(cur Currency) error {
	alpha := strings.TrimSpace(cur.Alpha)
	if len(alpha) != 3 {
		return fmt.Errorf("%w: alpha code %q", ErrInvalidEntry, cur.Alpha)
	}
	if !isDigits(cur.Code, 3) {
		return fmt.Errorf("%w: %s numeric code %q", ErrInvalidEntry, alpha, cur.Code)
	}
	if !isDigits(cur.Country, 3) {
		return fmt.Errorf("%w: %s country code %q", ErrInvalidEntry, alpha, cur.Country)
	}
	if strings.TrimSpace(cur.Name) == "" {
		return fmt.Errorf("%w: %s name is required", ErrInvalidEntry, alpha)
	}
	if cur.Units < 0 {
		return fmt.Errorf("%w: %s units %d", ErrInvalidEntry, alpha, cur.Units)
	}
	return nil
}

// Add inserts or replaces cur.
func (c *Catalog) Add(cur Currency) error {
	if err := Validate(cur); err != nil {
		return err
	}
	cur.Alpha = strings.ToUpper(strings.TrimSpace(cur.Alpha))
	if cur.Units == 0 {
		cur.Units = DefaultUnits
	}
	c.items[cur.Alpha] = cur
	return nil
}

// Lookup finds a currency by alpha code, ignoring case.
func (c *Catalog) Lookup(alpha string) (Currency, error) {
	cur, ok := c.items[strings.ToUpper(strings.TrimSpace(alpha))]
	if !ok {
		return Currency{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, alpha)
	}
	return cur, nil
}

// List returns currencies ordered by alpha code.
func (c *Catalog) List() []Currency {
	list := make([]Currency, 0, len(c.items))
	for _, cur := range c.items {
		list = append(list, cur)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Alpha < list[j].Alpha
	})
	return list
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
