package supabase

import (
	"time"

	"github.com/google/uuid"
	"github.com/powercity/simulator/repository"
)

// supabaseTickRecord holds the json encoding schema for a tick record in supabase.
type supabaseTickRecord struct {
	ID             uuid.UUID `json:"id"`
	Time           time.Time `json:"time"`
	Temperature    float64   `json:"temperature"`
	WindSpeed      float64   `json:"wind_speed"`
	SolarRadiation float64   `json:"solar_radiation"`
	EnergyUsage    float64   `json:"energy_usage"`
	HydroPower     float64   `json:"hydro_power"`
	SolarPower     float64   `json:"solar_power"`
	WindPower      float64   `json:"wind_power"`
	BatteryLevel   float64   `json:"battery_level"`
	GridUsage      float64   `json:"grid_usage"`
	BatteryHealth  float64   `json:"battery_health"`
	GridCostTotal  float64   `json:"grid_cost_total"`
	Savings        float64   `json:"savings"`
}

func convertTickRecords(records []repository.StoredTickRecord) []supabaseTickRecord {
	var supabaseRecords []supabaseTickRecord
	for _, record := range records {
		supabaseRecords = append(supabaseRecords, supabaseTickRecord(record.TickRecord))
	}
	return supabaseRecords
}
