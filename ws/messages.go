package ws

import (
	"encoding/json"
	"time"

	"github.com/powercity/simulator/telemetry"
)

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message type constants
const (
	// Client -> Server
	TypeSimStart       = "sim:start"
	TypeSimStop        = "sim:stop"
	TypeSourceToggle   = "source:toggle"
	TypeConfigUpdate   = "config:update"
	TypeReportGenerate = "report:generate"

	// Server -> Client
	TypeSimState     = "sim:state"
	TypeTickRecord   = "tick:record"
	TypeLiveHistory  = "history:live"
	TypeReportResult = "report:result"
	TypeError        = "error"
)

// Client -> Server messages

type SourceTogglePayload struct {
	Source  string `json:"source"`
	Enabled bool   `json:"enabled"`
}

// ConfigUpdatePayload carries raw entry-field text; values are parsed and
// validated server-side so a bad field rejects the whole update.
type ConfigUpdatePayload struct {
	Hydro     string `json:"hydro,omitempty"`
	Solar     string `json:"solar,omitempty"`
	Wind      string `json:"wind,omitempty"`
	Battery   string `json:"battery,omitempty"`
	GridPrice string `json:"grid_price,omitempty"`
}

type ReportGeneratePayload struct {
	Window string `json:"window"`
}

// Server -> Client messages

type TickRecordPayload struct {
	Time           string  `json:"time"`
	Temperature    float64 `json:"temperature"`
	WindSpeed      float64 `json:"wind_speed"`
	SolarRadiation float64 `json:"solar_radiation"`
	EnergyUsage    float64 `json:"energy_usage"`
	HydroPower     float64 `json:"hydro_power"`
	SolarPower     float64 `json:"solar_power"`
	WindPower      float64 `json:"wind_power"`
	BatteryLevel   float64 `json:"battery_level"`
	GridUsage      float64 `json:"grid_usage"`
	BatteryHealth  float64 `json:"battery_health"`
	GridCostTotal  float64 `json:"grid_cost_total"`
	Savings        float64 `json:"savings"`
}

type LiveHistoryPayload struct {
	Records []TickRecordPayload `json:"records"`
}

type ReportResultPayload struct {
	Window string `json:"window"`
	Text   string `json:"text"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func NewEnvelope(msgType string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}

// TickRecordFromRecord converts a telemetry record into its wire form.
func TickRecordFromRecord(record telemetry.TickRecord) TickRecordPayload {
	return TickRecordPayload{
		Time:           record.Time.Format(time.RFC3339),
		Temperature:    record.Temperature,
		WindSpeed:      record.WindSpeed,
		SolarRadiation: record.SolarRadiation,
		EnergyUsage:    record.EnergyUsage,
		HydroPower:     record.HydroPower,
		SolarPower:     record.SolarPower,
		WindPower:      record.WindPower,
		BatteryLevel:   record.BatteryLevel,
		GridUsage:      record.GridUsage,
		BatteryHealth:  record.BatteryHealth,
		GridCostTotal:  record.GridCostTotal,
		Savings:        record.Savings,
	}
}

// updateFields flattens a config update payload into the string map consumed
// by controller.ParseUpdate, skipping fields the client left empty.
func updateFields(p ConfigUpdatePayload) map[string]string {
	fields := make(map[string]string)
	if p.Hydro != "" {
		fields["hydro"] = p.Hydro
	}
	if p.Solar != "" {
		fields["solar"] = p.Solar
	}
	if p.Wind != "" {
		fields["wind"] = p.Wind
	}
	if p.Battery != "" {
		fields["battery"] = p.Battery
	}
	if p.GridPrice != "" {
		fields["gridPrice"] = p.GridPrice
	}
	return fields
}
