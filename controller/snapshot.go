package controller

// Snapshot is a read-only copy of the full simulation state at one instant.
type Snapshot struct {
	HydroCapacity   float64 `json:"hydroCapacity"`
	SolarCapacity   float64 `json:"solarCapacity"`
	WindCapacity    float64 `json:"windCapacity"`
	BatteryCapacity float64 `json:"batteryCapacity"`

	HydroEnabled   bool `json:"hydroEnabled"`
	SolarEnabled   bool `json:"solarEnabled"`
	WindEnabled    bool `json:"windEnabled"`
	BatteryEnabled bool `json:"batteryEnabled"`

	BatteryLevel  float64 `json:"batteryLevel"`
	BatteryHealth float64 `json:"batteryHealth"`
	BatteryAge    float64 `json:"batteryAge"`
	ChargeCycles  int     `json:"chargeCycles"`

	GridUsage       float64 `json:"gridUsage"`
	GridCostTotal   float64 `json:"gridCostTotal"`
	Savings         float64 `json:"savings"`
	GridPricePerKWh float64 `json:"gridPricePerKWh"`

	Running bool `json:"running"`
}

// State returns a consistent snapshot of the current simulation state.
func (c *Controller) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		HydroCapacity:   c.hydroCapacity,
		SolarCapacity:   c.solarCapacity,
		WindCapacity:    c.windCapacity,
		BatteryCapacity: c.pack.Capacity,
		HydroEnabled:    c.hydroEnabled,
		SolarEnabled:    c.solarEnabled,
		WindEnabled:     c.windEnabled,
		BatteryEnabled:  c.batteryEnabled,
		BatteryLevel:    c.pack.Level,
		BatteryHealth:   c.pack.Health,
		BatteryAge:      c.pack.Age,
		ChargeCycles:    c.pack.Cycles,
		GridUsage:       c.gridUsage,
		GridCostTotal:   c.gridCostTotal,
		Savings:         c.savings,
		GridPricePerKWh: c.gridPrice,
		Running:         c.running,
	}
}
