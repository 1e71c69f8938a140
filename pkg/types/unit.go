// Units, unit groups, and the persisted per-unit state.
package types

import (
	"errors"

	"github.com/cockroachdb/apd/v3"
)

// Group identifies a set of mutually convertible units.
type Group string

// Built-in unit groups.
const (
	GroupLength      Group = "length"
	GroupMass        Group = "mass"
	GroupTemperature Group = "temperature"
	GroupVolume      Group = "volume"
	GroupArea        Group = "area"
	GroupTime        Group = "time"
	GroupSpeed       Group = "speed"
	GroupData        Group = "data"
	GroupCurrency    Group = "currency"
)

// Unit is a single member of a unit group.
//
// A value v in this unit equals (v + Offset) * Factor base units of the
// group. Linear units leave Offset nil. Currency units have a nil Factor
// until a rate is injected at call time.
type Unit struct {
	ID     string
	Group  Group
	Symbol string
	Factor *apd.Decimal
	Offset *apd.Decimal
}

// Linear reports whether the unit converts by a plain factor.
func (u Unit) Linear() bool {
	return u.Offset == nil || u.Offset.IsZero()
}

// UnitState is the persisted, user-specific state of a unit: whether it is
// a favorite, the unit it was last paired with, and how often it was used.
type UnitState struct {
	// UnitID is the catalog ID of the unit; it is also the primary key.
	UnitID string

	IsFavorite bool

	// PairedUnitID is the unit last chosen on the other side of a
	// conversion; empty when the unit was never paired.
	PairedUnitID string

	Frequency int64
}

// Unit and conversion errors.
var (
	ErrUnitNotFound  = errors.New("unit not found")
	ErrGroupMismatch = errors.New("units belong to different groups")
	ErrFactorMissing = errors.New("unit has no conversion factor")
	ErrRateInvalid   = errors.New("rate must be a positive decimal")
	ErrInvalidInput  = errors.New("input is mathematically undefined")
	ErrNotCurrency   = errors.New("unit is not a currency")
)
