package controller

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/powercity/simulator/battery"
	"github.com/powercity/simulator/generation"
	"github.com/powercity/simulator/history"
	"github.com/powercity/simulator/telemetry"
	"github.com/powercity/simulator/weather"
)

// Controller runs the per-tick energy balance of the microgrid.
//
// Each tick it samples the weather/load provider, computes hydro, solar and
// wind generation, balances the result against demand using the battery and
// grid imports, degrades the battery, and appends a TickRecord to the live
// history. Completed records are also published on the `Records` channel for
// downstream consumers (data platform, websocket clients, metrics).
//
// All state mutation happens under a single mutex, so reconfiguration calls
// arriving from other goroutines are applied atomically between ticks.
type Controller struct {
	// Records carries every completed tick record. The channel is buffered;
	// if no consumer keeps up, records are dropped rather than stalling the
	// tick loop.
	Records chan telemetry.TickRecord

	sampler      weather.Sampler
	gen          *generation.Model
	live         *history.Ring
	tickInterval time.Duration

	mu sync.Mutex

	hydroCapacity float64
	solarCapacity float64
	windCapacity  float64
	gridPrice     float64

	hydroEnabled   bool
	solarEnabled   bool
	windEnabled    bool
	batteryEnabled bool

	pack *battery.Pack

	gridUsage     float64 // kWh imported on the most recent tick
	gridCostTotal float64 // cumulative cost of all imports
	savings       float64 // savings snapshot for the most recent tick

	running bool
}

type Config struct {
	HydroCapacity   float64
	SolarCapacity   float64
	WindCapacity    float64
	BatteryCapacity float64
	BatteryLevel    float64
	BatteryHealth   float64
	GridPricePerKWh float64

	HydroEnabled   bool
	SolarEnabled   bool
	WindEnabled    bool
	BatteryEnabled bool

	// TickInterval is the wall-clock period between ticks. Each tick advances
	// simulated time by one hour regardless of this interval.
	TickInterval time.Duration

	// LiveHistorySize bounds the rolling live-view buffer. Zero means the
	// default of 100 records.
	LiveHistorySize int

	Sampler weather.Sampler

	// Rand feeds the simulated hydro water-flow draws. Nil seeds from the
	// clock.
	Rand *rand.Rand
}

func New(config Config) *Controller {
	interval := config.TickInterval
	if interval <= 0 {
		interval = time.Second
	}
	return &Controller{
		Records:        make(chan telemetry.TickRecord, history.DefaultSize),
		sampler:        config.Sampler,
		gen:            generation.New(config.Rand),
		live:           history.NewRing(config.LiveHistorySize),
		tickInterval:   interval,
		hydroCapacity:  config.HydroCapacity,
		solarCapacity:  config.SolarCapacity,
		windCapacity:   config.WindCapacity,
		gridPrice:      config.GridPricePerKWh,
		hydroEnabled:   config.HydroEnabled,
		solarEnabled:   config.SolarEnabled,
		windEnabled:    config.WindEnabled,
		batteryEnabled: config.BatteryEnabled,
		pack:           battery.New(config.BatteryCapacity, config.BatteryLevel, config.BatteryHealth),
	}
}

// Run loops until the context is cancelled, advancing one tick per interval
// while the controller is started. Ticks are serialized: the next tick cannot
// begin before the previous tick's state mutation completes.
func (c *Controller) Run(ctx context.Context) {
	ticker := time.NewTicker(c.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			if !c.Running() {
				continue
			}
			c.Tick(t, c.sampler.Sample(t))
		}
	}
}

// Start enables tick processing. Starting an already-started controller is a
// no-op.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return
	}
	c.running = true
	slog.Info("Simulation started")
}

// Stop suspends tick processing. Stopping an already-stopped controller is a
// no-op.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	c.running = false
	slog.Info("Simulation stopped")
}

// Running reports whether ticks are currently being processed.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Live returns a copy of the bounded live history, oldest record first.
func (c *Controller) Live() []telemetry.TickRecord {
	return c.live.Snapshot()
}

// Tick advances the simulation by one step using the given weather/load
// sample. Any failure during the balance computation is logged and the tick
// is skipped, leaving all state exactly as it was before.
func (c *Controller) Tick(t time.Time, sample telemetry.WeatherSample) {
	c.mu.Lock()
	record, err := c.advance(t, sample)
	c.mu.Unlock()
	if err != nil {
		slog.Error("Tick skipped", "time", t, "error", err)
		return
	}

	c.live.Append(record)

	select {
	case c.Records <- record:
	default:
		slog.Warn("Record channel full, dropping tick record", "time", t)
	}

	slog.Debug(
		"Tick complete",
		"time", t,
		"energy_usage", record.EnergyUsage,
		"hydro_power", record.HydroPower,
		"solar_power", record.SolarPower,
		"wind_power", record.WindPower,
		"battery_level", record.BatteryLevel,
		"grid_usage", record.GridUsage,
		"battery_health", record.BatteryHealth,
		"grid_cost_total", record.GridCostTotal,
		"savings", record.Savings,
	)
}

// advance computes one energy-balance step. It works on copies of the
// mutable state and only commits once the resulting values have been
// validated, so a failed tick has no observable effect. Must be called with
// the mutex held.
func (c *Controller) advance(t time.Time, sample telemetry.WeatherSample) (record telemetry.TickRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("balance computation panicked: %v", r)
		}
	}()

	hydroPower := c.gen.Hydro(c.hydroCapacity, c.hydroEnabled)
	solarPower := c.gen.Solar(sample.SolarRadiation, c.solarCapacity, c.solarEnabled)
	windPower := c.gen.Wind(sample.WindSpeed, c.windCapacity, c.windEnabled)

	totalGeneration := hydroPower + solarPower + windPower
	netEnergy := totalGeneration - sample.EnergyDemand

	pack := *c.pack
	gridUsage := c.gridUsage
	gridCostTotal := c.gridCostTotal

	if c.batteryEnabled {
		switch {
		case netEnergy > 0 && pack.Level < pack.Capacity:
			pack.Charge(netEnergy)
			gridUsage = 0
		case netEnergy < 0:
			unmet := pack.Discharge(-netEnergy)
			if unmet > 0 {
				gridUsage = unmet
				gridCostTotal += gridUsage * c.gridPrice
			} else {
				gridUsage = 0
			}
		}
	} else {
		gridUsage = math.Max(0, -netEnergy)
		gridCostTotal += gridUsage * c.gridPrice
	}

	savings := (totalGeneration - gridUsage) * c.gridPrice

	// The battery ages every tick regardless of how it was used.
	pack.Degrade()

	record = telemetry.TickRecord{
		ID:             uuid.New(),
		Time:           t,
		Temperature:    sample.Temperature,
		WindSpeed:      sample.WindSpeed,
		SolarRadiation: sample.SolarRadiation,
		EnergyUsage:    sample.EnergyDemand,
		HydroPower:     hydroPower,
		SolarPower:     solarPower,
		WindPower:      windPower,
		BatteryLevel:   pack.Level,
		GridUsage:      gridUsage,
		BatteryHealth:  pack.Health,
		GridCostTotal:  gridCostTotal,
		Savings:        savings,
	}

	if err := validateRecord(record); err != nil {
		return record, err
	}

	*c.pack = pack
	c.gridUsage = gridUsage
	c.gridCostTotal = gridCostTotal
	c.savings = savings

	return record, nil
}

// validateRecord rejects non-finite numeric state so a corrupted input can
// never be committed or published.
func validateRecord(record telemetry.TickRecord) error {
	fields := map[string]float64{
		"temperature":     record.Temperature,
		"wind_speed":      record.WindSpeed,
		"solar_radiation": record.SolarRadiation,
		"energy_usage":    record.EnergyUsage,
		"hydro_power":     record.HydroPower,
		"solar_power":     record.SolarPower,
		"wind_power":      record.WindPower,
		"battery_level":   record.BatteryLevel,
		"grid_usage":      record.GridUsage,
		"battery_health":  record.BatteryHealth,
		"grid_cost_total": record.GridCostTotal,
		"savings":         record.Savings,
	}
	for name, value := range fields {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return fmt.Errorf("non-finite %s: %f", name, value)
		}
	}
	return nil
}
