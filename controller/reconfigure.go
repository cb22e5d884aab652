package controller

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
)

// Source identifies one of the switchable elements of the microgrid.
type Source string

const (
	SourceHydro   Source = "hydro"
	SourceSolar   Source = "solar"
	SourceWind    Source = "wind"
	SourceBattery Source = "battery"
)

// Update holds a reconfiguration request. Nil fields are left unchanged.
// Applying an update is all-or-nothing: if any field fails validation no
// state is mutated at all.
type Update struct {
	HydroCapacity   *float64
	SolarCapacity   *float64
	WindCapacity    *float64
	BatteryCapacity *float64
	GridPricePerKWh *float64
}

func (u Update) validate() error {
	fields := map[string]*float64{
		"hydro capacity":   u.HydroCapacity,
		"solar capacity":   u.SolarCapacity,
		"wind capacity":    u.WindCapacity,
		"battery capacity": u.BatteryCapacity,
		"grid price":       u.GridPricePerKWh,
	}
	for name, value := range fields {
		if value == nil {
			continue
		}
		if math.IsNaN(*value) || math.IsInf(*value, 0) || *value <= 0 {
			return fmt.Errorf("%s must be a positive number, got %f", name, *value)
		}
	}
	return nil
}

// ParseUpdate builds an Update from string-form user input, e.g. the values
// of a UI's capacity entry fields. Recognised keys are "hydro", "solar",
// "wind", "battery" and "gridPrice". A single unparsable value rejects the
// whole update.
func ParseUpdate(fields map[string]string) (Update, error) {
	var update Update

	targets := map[string]**float64{
		"hydro":     &update.HydroCapacity,
		"solar":     &update.SolarCapacity,
		"wind":      &update.WindCapacity,
		"battery":   &update.BatteryCapacity,
		"gridPrice": &update.GridPricePerKWh,
	}

	for key, raw := range fields {
		target, ok := targets[key]
		if !ok {
			return Update{}, fmt.Errorf("unknown setting %q", key)
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Update{}, fmt.Errorf("parse %s value %q: %w", key, raw, err)
		}
		*target = &value
	}

	return update, nil
}

// Reconfigure applies the given update atomically. The only cross-field
// effect is that a reduced battery capacity clamps the stored battery level
// down to the new capacity. History is never rewritten; only future ticks
// observe the new values.
func (c *Controller) Reconfigure(update Update) error {
	if err := update.validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if update.HydroCapacity != nil {
		c.hydroCapacity = *update.HydroCapacity
	}
	if update.SolarCapacity != nil {
		c.solarCapacity = *update.SolarCapacity
	}
	if update.WindCapacity != nil {
		c.windCapacity = *update.WindCapacity
	}
	if update.BatteryCapacity != nil {
		c.pack.SetCapacity(*update.BatteryCapacity)
	}
	if update.GridPricePerKWh != nil {
		c.gridPrice = *update.GridPricePerKWh
	}

	slog.Info(
		"Reconfigured",
		"hydro_capacity", c.hydroCapacity,
		"solar_capacity", c.solarCapacity,
		"wind_capacity", c.windCapacity,
		"battery_capacity", c.pack.Capacity,
		"battery_level", c.pack.Level,
		"grid_price", c.gridPrice,
	)

	return nil
}

// SetSourceEnabled toggles a generation source or the battery. The change
// takes effect on the next tick.
func (c *Controller) SetSourceEnabled(source Source, enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch source {
	case SourceHydro:
		c.hydroEnabled = enabled
	case SourceSolar:
		c.solarEnabled = enabled
	case SourceWind:
		c.windEnabled = enabled
	case SourceBattery:
		c.batteryEnabled = enabled
	default:
		return fmt.Errorf("unknown source %q", source)
	}
	return nil
}
