// Package catalog provides the built-in unit catalog: every unit group, its
// members, and their conversion factors relative to the group base unit.
package catalog

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/cockroachdb/apd/v3"

	"github.com/mesh-intelligence/unitto/pkg/types"
)

// Catalog is an immutable set of units indexed by ID and group.
type Catalog struct {
	units   map[string]types.Unit
	byGroup map[types.Group][]types.Unit
	groups  []types.Group
}

// builtInUnit describes one catalog entry. factor and offset are decimal
// text; factor may also be a fraction "n/d" for values without a finite
// decimal expansion. An empty factor marks a currency whose factor comes
// from a rate.
type builtInUnit struct {
	id     string
	symbol string
	factor string
	offset string
}

type builtInGroup struct {
	group types.Group
	units []builtInUnit
}

// factorPrecision is the number of significant digits kept for fractional
// factors such as 5/9.
const factorPrecision = 34

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := build(builtInGroups)
	if err != nil {
		panic(fmt.Sprintf("catalog: invalid built-in unit: %v", err))
	}
	return c
})

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog()
}

func build(groups []builtInGroup) (*Catalog, error) {
	c := &Catalog{
		units:   make(map[string]types.Unit),
		byGroup: make(map[types.Group][]types.Unit),
	}
	for _, g := range groups {
		c.groups = append(c.groups, g.group)
		for _, bu := range g.units {
			if _, dup := c.units[bu.id]; dup {
				return nil, fmt.Errorf("duplicate unit %s", bu.id)
			}
			u := types.Unit{ID: bu.id, Group: g.group, Symbol: bu.symbol}
			if bu.factor != "" {
				f, err := parseFactor(bu.factor)
				if err != nil {
					return nil, fmt.Errorf("%s factor: %w", bu.id, err)
				}
				u.Factor = f
			}
			if bu.offset != "" {
				o, _, err := apd.NewFromString(bu.offset)
				if err != nil {
					return nil, fmt.Errorf("%s offset: %w", bu.id, err)
				}
				u.Offset = o
			}
			c.units[u.ID] = u
			c.byGroup[g.group] = append(c.byGroup[g.group], u)
		}
	}
	return c, nil
}

func parseFactor(text string) (*apd.Decimal, error) {
	num, den, isFraction := strings.Cut(text, "/")
	n, _, err := apd.NewFromString(num)
	if err != nil {
		return nil, err
	}
	if !isFraction {
		return n, nil
	}
	d, _, err := apd.NewFromString(den)
	if err != nil {
		return nil, err
	}
	ctx := apd.BaseContext.WithPrecision(factorPrecision)
	ctx.Rounding = apd.RoundHalfEven
	out := new(apd.Decimal)
	if _, err := ctx.Quo(out, n, d); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns the unit with the given ID.
// Returns ErrUnitNotFound if no such unit exists.
func (c *Catalog) Get(id string) (types.Unit, error) {
	u, ok := c.units[strings.ToLower(id)]
	if !ok {
		return types.Unit{}, fmt.Errorf("%w: %s", types.ErrUnitNotFound, id)
	}
	return u, nil
}

// Group returns the units of g in catalog order, or nil for an unknown group.
func (c *Catalog) Group(g types.Group) []types.Unit {
	units := c.byGroup[g]
	if units == nil {
		return nil
	}
	out := make([]types.Unit, len(units))
	copy(out, units)
	return out
}

// Groups returns all groups in catalog order.
func (c *Catalog) Groups() []types.Group {
	out := make([]types.Group, len(c.groups))
	copy(out, c.groups)
	return out
}

// IDs returns every unit ID, sorted.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.units))
	for id := range c.units {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
