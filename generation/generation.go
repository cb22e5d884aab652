// Package generation converts weather inputs into per-source power outputs.
//
// The formulas are simplified heuristics rather than physical models. In
// particular the hydro formula multiplies a simulated flow rate directly by
// the installed capacity, which only produces sensible numbers because of the
// final clamp. This matches the behaviour the rest of the system was built
// around, so it is kept as-is.
package generation

import (
	"math"
	"math/rand"
	"time"
)

const (
	hydroEfficiency = 0.9
	solarEfficiency = 0.2
	windEfficiency  = 0.4

	gravity = 9.81

	minWaterFlow = 50  // m^3/s
	maxWaterFlow = 500 // m^3/s
)

// Model computes generation for the three renewable sources. The random
// source feeds the simulated hydro water flow.
type Model struct {
	rng *rand.Rand
}

// New returns a Model backed by the given random source. A nil source is
// seeded from the clock.
func New(rng *rand.Rand) *Model {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Model{rng: rng}
}

// Hydro simulates hydroelectric output for the tick. The water flow rate is
// drawn uniformly from [50, 500] m^3/s.
func (m *Model) Hydro(capacity float64, enabled bool) float64 {
	if !enabled {
		return 0
	}
	waterFlow := minWaterFlow + m.rng.Float64()*(maxWaterFlow-minWaterFlow)
	power := waterFlow * hydroEfficiency * gravity * capacity
	return clamp(power, capacity)
}

// Solar computes solar output from the given irradiance in W/m^2.
func (m *Model) Solar(solarRadiation, capacity float64, enabled bool) float64 {
	if !enabled {
		return 0
	}
	power := solarRadiation * solarEfficiency * capacity / 1000
	return clamp(power, capacity)
}

// Wind computes wind output from the given wind speed in m/s.
func (m *Model) Wind(windSpeed, capacity float64, enabled bool) float64 {
	if !enabled {
		return 0
	}
	power := math.Pow(windSpeed, 3) * windEfficiency * capacity / 1000
	return clamp(power, capacity)
}

// clamp limits a power output to [0, capacity].
func clamp(power, capacity float64) float64 {
	if power < 0 {
		return 0
	}
	return math.Min(power, capacity)
}
