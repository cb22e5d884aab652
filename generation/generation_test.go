package generation

import (
	"math"
	"math/rand"
	"testing"
)

func TestHydro(test *testing.T) {
	model := New(rand.New(rand.NewSource(1)))

	// With any water flow in [50, 500] the raw output dwarfs the installed
	// capacity, so an enabled hydro plant always produces at its clamp.
	power := model.Hydro(1000, true)
	if power != 1000 {
		test.Errorf("Expected hydro output clamped to 1000, got %f", power)
	}

	if power := model.Hydro(1000, false); power != 0 {
		test.Errorf("Expected 0 from disabled hydro, got %f", power)
	}

	if power := model.Hydro(0, true); power != 0 {
		test.Errorf("Expected 0 from zero-capacity hydro, got %f", power)
	}
}

func TestSolar(test *testing.T) {
	model := New(rand.New(rand.NewSource(1)))

	type subTest struct {
		name           string
		solarRadiation float64
		capacity       float64
		enabled        bool
		expectedPower  float64
	}

	subTests := []subTest{
		{
			name:           "Half irradiance",
			solarRadiation: 500,
			capacity:       1000,
			enabled:        true,
			expectedPower:  100,
		},
		{
			name:           "Full irradiance",
			solarRadiation: 1000,
			capacity:       1000,
			enabled:        true,
			expectedPower:  200,
		},
		{
			name:           "Night",
			solarRadiation: 0,
			capacity:       1000,
			enabled:        true,
			expectedPower:  0,
		},
		{
			name:           "Disabled",
			solarRadiation: 1000,
			capacity:       1000,
			enabled:        false,
			expectedPower:  0,
		},
	}

	for _, subTest := range subTests {
		test.Run(subTest.name, func(test *testing.T) {
			power := model.Solar(subTest.solarRadiation, subTest.capacity, subTest.enabled)
			if math.Abs(power-subTest.expectedPower) > 1e-9 {
				test.Errorf("Expected %f, got %f", subTest.expectedPower, power)
			}
		})
	}
}

func TestWind(test *testing.T) {
	model := New(rand.New(rand.NewSource(1)))

	type subTest struct {
		name          string
		windSpeed     float64
		capacity      float64
		enabled       bool
		expectedPower float64
	}

	subTests := []subTest{
		{
			name:          "Moderate wind",
			windSpeed:     10,
			capacity:      1000,
			enabled:       true,
			expectedPower: 400,
		},
		{
			name:          "Strong wind clamps to capacity",
			windSpeed:     20,
			capacity:      1000,
			enabled:       true,
			expectedPower: 1000,
		},
		{
			name:          "Calm",
			windSpeed:     0,
			capacity:      1000,
			enabled:       true,
			expectedPower: 0,
		},
		{
			name:          "Disabled",
			windSpeed:     20,
			capacity:      1000,
			enabled:       false,
			expectedPower: 0,
		},
	}

	for _, subTest := range subTests {
		test.Run(subTest.name, func(test *testing.T) {
			power := model.Wind(subTest.windSpeed, subTest.capacity, subTest.enabled)
			if math.Abs(power-subTest.expectedPower) > 1e-9 {
				test.Errorf("Expected %f, got %f", subTest.expectedPower, power)
			}
		})
	}
}
