// Package battery models the microgrid's storage battery, including its
// monotonic health degradation over simulated time.
package battery

import "math"

const (
	hoursPerYear = 365 * 24

	// degradationRate drains health from 100% to 0% over two simulated years.
	degradationRate = 100.0 / (2 * 365 * 24)
)

// Pack holds the mutable state of the storage battery.
type Pack struct {
	Capacity float64 // kWh
	Level    float64 // kWh, always within [0, Capacity]
	Health   float64 // percent, non-increasing
	Age      float64 // years, non-decreasing
	Cycles   int     // times the pack reached full capacity from below
}

// New returns a Pack with the level clamped into the capacity range.
func New(capacity, level, health float64) *Pack {
	return &Pack{
		Capacity: capacity,
		Level:    math.Min(level, capacity),
		Health:   health,
	}
}

// Charge absorbs a surplus, derated by the pack's health. The caller must
// only invoke this when the pack is below capacity; a charge that lands the
// pack exactly at capacity counts one charge cycle.
func (p *Pack) Charge(surplus float64) {
	p.Level = math.Min(p.Capacity, p.Level+surplus*(p.Health/100))
	if p.Level == p.Capacity {
		p.Cycles++
	}
}

// Discharge covers a deficit, derated by the pack's health. If the pack is
// drained to exactly zero the deficit counts as unmet and is returned in
// full; otherwise the deficit was absorbed and zero is returned.
func (p *Pack) Discharge(deficit float64) float64 {
	p.Level = math.Max(0, p.Level-deficit*(p.Health/100))
	if p.Level == 0 {
		return deficit
	}
	return 0
}

// Degrade advances the pack's age by one simulated hour and reduces health
// accordingly. Health saturates at zero and never recovers.
func (p *Pack) Degrade() {
	p.Age += 1.0 / hoursPerYear
	p.Health = math.Max(0, p.Health-degradationRate)
}

// SetCapacity changes the pack's capacity, clamping the stored level down if
// it now exceeds the new capacity. No other field is touched.
func (p *Pack) SetCapacity(capacity float64) {
	p.Capacity = capacity
	p.Level = math.Min(p.Level, capacity)
}
