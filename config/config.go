package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
)

// Defaults applied when no config file is given or a field is omitted.
const (
	DefaultHydroCapacity   = 1000 // kW
	DefaultSolarCapacity   = 1000 // kW
	DefaultWindCapacity    = 1000 // kW
	DefaultBatteryCapacity = 1000 // kWh
	DefaultBatteryLevel    = 500  // kWh
	DefaultBatteryHealth   = 100  // percent
	DefaultGridPricePerKWh = 0.15
)

type SimulationConfig struct {
	TickIntervalSecs int   `json:"tickIntervalSecs"`
	Seed             int64 `json:"seed"` // 0 means seed from the clock

	HydroCapacity   float64 `json:"hydroCapacity"`
	SolarCapacity   float64 `json:"solarCapacity"`
	WindCapacity    float64 `json:"windCapacity"`
	BatteryCapacity float64 `json:"batteryCapacity"`
	BatteryLevel    float64 `json:"batteryLevel"`
	BatteryHealth   float64 `json:"batteryHealth"`
	GridPricePerKWh float64 `json:"gridPricePerKWh"`

	HydroEnabled   bool `json:"hydroEnabled"`
	SolarEnabled   bool `json:"solarEnabled"`
	WindEnabled    bool `json:"windEnabled"`
	BatteryEnabled bool `json:"batteryEnabled"`
}

type ServerConfig struct {
	Addr string `json:"addr"`
}

type SupabaseConfig struct {
	Url string `json:"url"`
	// key is specified via env var
	Schema string `json:"schema"`
}

type DataPlatformConfig struct {
	UploadIntervalSecs int            `json:"uploadIntervalSecs"`
	RepositoryPath     string         `json:"repositoryPath"`
	Supabase           SupabaseConfig `json:"supabase"`
}

type Config struct {
	Simulation   SimulationConfig   `json:"simulation"`
	Server       ServerConfig       `json:"server"`
	DataPlatform DataPlatformConfig `json:"dataPlatform"`
}

// Default returns the documented default configuration.
func Default() Config {
	return Config{
		Simulation: SimulationConfig{
			TickIntervalSecs: 1,
			HydroCapacity:    DefaultHydroCapacity,
			SolarCapacity:    DefaultSolarCapacity,
			WindCapacity:     DefaultWindCapacity,
			BatteryCapacity:  DefaultBatteryCapacity,
			BatteryLevel:     DefaultBatteryLevel,
			BatteryHealth:    DefaultBatteryHealth,
			GridPricePerKWh:  DefaultGridPricePerKWh,
			HydroEnabled:     true,
			SolarEnabled:     true,
			WindEnabled:      true,
			BatteryEnabled:   true,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		DataPlatform: DataPlatformConfig{
			UploadIntervalSecs: 5,
			RepositoryPath:     "powercity.sqlite",
			Supabase: SupabaseConfig{
				Schema: "powercity",
			},
		},
	}
}

// Read loads configuration from the given JSON file. Fields that are omitted
// keep their default values. An empty or missing path falls back to the
// defaults entirely.
func Read(path string) (Config, error) {
	config := Default()

	if path == "" {
		return config, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("Config file not found, using default values", "path", path)
			return config, nil
		}
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	err = json.Unmarshal(content, &config)
	if err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	return config, nil
}
