// Package weather produces the simulated weather and consumer demand that
// drive the microgrid. The simulation heuristics are deliberately simple:
// seasonal temperature bands, more wind and sun during the day, and a demand
// surcharge in freezing or very hot weather.
package weather

import (
	"math/rand"
	"time"

	"github.com/powercity/simulator/telemetry"
)

// Sampler produces one weather and demand observation per tick. The
// controller depends only on this interface, so tests can inject a fixed
// sequence of samples.
type Sampler interface {
	Sample(t time.Time) telemetry.WeatherSample
}

const baseEnergyUsage = 1000 // kWh per tick before variation

// Simulated is the default Sampler, backed by a pseudo-random source.
type Simulated struct {
	rng *rand.Rand
}

// NewSimulated returns a Simulated sampler. A zero seed seeds from the clock.
func NewSimulated(seed int64) *Simulated {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Simulated{rng: rand.New(rand.NewSource(seed))}
}

func (s *Simulated) Sample(t time.Time) telemetry.WeatherSample {
	temperature := s.temperature(t.Month())
	windSpeed := s.windSpeed(t.Hour())
	solarRadiation := s.solarRadiation(t.Hour())

	return telemetry.WeatherSample{
		Temperature:    temperature,
		WindSpeed:      windSpeed,
		SolarRadiation: solarRadiation,
		EnergyDemand:   s.energyDemand(temperature),
	}
}

// temperature varies with the season.
func (s *Simulated) temperature(month time.Month) float64 {
	switch month {
	case time.December, time.January, time.February:
		return s.uniform(-5, 10)
	case time.March, time.April, time.May:
		return s.uniform(5, 20)
	case time.June, time.July, time.August:
		return s.uniform(15, 35)
	default:
		return s.uniform(5, 25)
	}
}

// windSpeed is higher during the day.
func (s *Simulated) windSpeed(hour int) float64 {
	if hour >= 6 && hour <= 18 {
		return s.uniform(0, 20)
	}
	return s.uniform(0, 10)
}

// solarRadiation is zero outside of daylight hours.
func (s *Simulated) solarRadiation(hour int) float64 {
	if hour >= 6 && hour <= 18 {
		return s.uniform(0, 1000)
	}
	return 0
}

// energyDemand adds a surcharge when heating or cooling would be running hard.
func (s *Simulated) energyDemand(temperature float64) float64 {
	variation := s.uniform(-200, 200)
	if temperature < 0 || temperature > 30 {
		variation += 200
	}
	return baseEnergyUsage + variation
}

func (s *Simulated) uniform(min, max float64) float64 {
	return min + s.rng.Float64()*(max-min)
}
