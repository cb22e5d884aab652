package telemetry

import (
	"time"

	"github.com/google/uuid"
)

// WeatherSample holds the simulated weather and consumer demand for one tick.
type WeatherSample struct {
	Temperature    float64 // degrees celsius
	WindSpeed      float64 // m/s
	SolarRadiation float64 // W/m^2
	EnergyDemand   float64 // kWh demanded by the city over the tick
}

// TickRecord holds the full output of one completed simulation tick.
type TickRecord struct {
	ID   uuid.UUID
	Time time.Time

	Temperature    float64
	WindSpeed      float64
	SolarRadiation float64
	EnergyUsage    float64

	HydroPower    float64 // kW
	SolarPower    float64 // kW
	WindPower     float64 // kW
	BatteryLevel  float64 // kWh
	GridUsage     float64 // kWh imported this tick
	BatteryHealth float64 // percent
	GridCostTotal float64 // cumulative cost of all grid imports so far
	Savings       float64 // savings for this tick only, not accumulated
}
