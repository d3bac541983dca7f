// Package energy holds consumption arithmetic shared by handlers.
package energy

import "math"

// DefaultRatePerKWh is the electricity price used when none is configured.
const DefaultRatePerKWh = 0.13

// EstimateMonthlyCost projects an appliance's monthly running cost from
// its power rating and daily usage, assuming a 30-day month. The result
// is rounded to cents.
func EstimateMonthlyCost(watts, hoursPerDay, ratePerKWh float64) float64 {
	kWhPerMonth := watts * hoursPerDay * 30 / 1000
	return math.Round(kWhPerMonth*ratePerKWh*100) / 100
}
