package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(test *testing.T) {
	config := Default()

	if config.Simulation.HydroCapacity != 1000 {
		test.Errorf("Expected hydro capacity 1000, got %f", config.Simulation.HydroCapacity)
	}
	if config.Simulation.BatteryLevel != 500 {
		test.Errorf("Expected battery level 500, got %f", config.Simulation.BatteryLevel)
	}
	if config.Simulation.BatteryHealth != 100 {
		test.Errorf("Expected battery health 100, got %f", config.Simulation.BatteryHealth)
	}
	if config.Simulation.GridPricePerKWh != 0.15 {
		test.Errorf("Expected grid price 0.15, got %f", config.Simulation.GridPricePerKWh)
	}
	if !config.Simulation.BatteryEnabled {
		test.Errorf("Expected all sources enabled by default")
	}
	if config.Server.Addr != ":8080" {
		test.Errorf("Expected default addr :8080, got %s", config.Server.Addr)
	}
}

func TestReadEmptyPathFallsBackToDefaults(test *testing.T) {
	config, err := Read("")
	if err != nil {
		test.Fatalf("Unexpected error: %v", err)
	}
	if config != Default() {
		test.Errorf("Expected defaults, got %+v", config)
	}
}

func TestReadMissingFileFallsBackToDefaults(test *testing.T) {
	config, err := Read(filepath.Join(test.TempDir(), "nope.json"))
	if err != nil {
		test.Fatalf("Unexpected error: %v", err)
	}
	if config != Default() {
		test.Errorf("Expected defaults, got %+v", config)
	}
}

func TestReadOverridesOnlyGivenFields(test *testing.T) {
	path := filepath.Join(test.TempDir(), "config.json")
	content := `{
		"simulation": {
			"hydroCapacity": 2500,
			"seed": 7,
			"hydroEnabled": true,
			"solarEnabled": true,
			"windEnabled": true,
			"batteryEnabled": true
		},
		"server": {"addr": ":9000"}
	}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		test.Fatalf("Could not write config file: %v", err)
	}

	config, err := Read(path)
	if err != nil {
		test.Fatalf("Unexpected error: %v", err)
	}
	if config.Simulation.HydroCapacity != 2500 {
		test.Errorf("Expected hydro capacity 2500, got %f", config.Simulation.HydroCapacity)
	}
	if config.Simulation.Seed != 7 {
		test.Errorf("Expected seed 7, got %d", config.Simulation.Seed)
	}
	if config.Server.Addr != ":9000" {
		test.Errorf("Expected addr :9000, got %s", config.Server.Addr)
	}
	if config.DataPlatform.RepositoryPath != "powercity.sqlite" {
		test.Errorf("Expected default repository path, got %s", config.DataPlatform.RepositoryPath)
	}
}

func TestReadRejectsInvalidJSON(test *testing.T) {
	path := filepath.Join(test.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		test.Fatalf("Could not write config file: %v", err)
	}

	if _, err := Read(path); err == nil {
		test.Errorf("Expected an error for invalid JSON")
	}
}
