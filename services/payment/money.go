package payment

import "math"

// minorUnitFactor converts Naira to kobo. The domain stores decimal major
// units; only this boundary deals in minor units.
const minorUnitFactor = 100

// ToMinorUnits converts a major-unit amount to integer minor units.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * minorUnitFactor))
}

// FromMinorUnits converts integer minor units back to a major-unit amount.
func FromMinorUnits(amount int64) float64 {
	return float64(amount) / minorUnitFactor
}
