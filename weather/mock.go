package weather

import (
	"time"

	"github.com/powercity/simulator/telemetry"
)

// Mock replays a fixed sequence of samples, repeating the final sample once
// the sequence is exhausted. It exists to make controller tests deterministic.
type Mock struct {
	Samples []telemetry.WeatherSample
	next    int
}

func (m *Mock) Sample(t time.Time) telemetry.WeatherSample {
	if len(m.Samples) == 0 {
		return telemetry.WeatherSample{}
	}
	sample := m.Samples[m.next]
	if m.next < len(m.Samples)-1 {
		m.next++
	}
	return sample
}
