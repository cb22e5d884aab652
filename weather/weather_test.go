package weather

import (
	"testing"
	"time"

	"github.com/powercity/simulator/telemetry"
)

func TestSampleIsDeterministicForSeed(test *testing.T) {
	a := NewSimulated(42)
	b := NewSimulated(42)

	t := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		sampleA := a.Sample(t)
		sampleB := b.Sample(t)
		if sampleA != sampleB {
			test.Fatalf("Expected identical samples for the same seed, got %+v and %+v", sampleA, sampleB)
		}
		t = t.Add(time.Hour)
	}
}

func TestTemperatureFollowsSeason(test *testing.T) {

	type subTest struct {
		name    string
		month   time.Month
		minTemp float64
		maxTemp float64
	}

	subTests := []subTest{
		{name: "Winter", month: time.January, minTemp: -5, maxTemp: 10},
		{name: "Spring", month: time.April, minTemp: 5, maxTemp: 20},
		{name: "Summer", month: time.July, minTemp: 15, maxTemp: 35},
		{name: "Autumn", month: time.October, minTemp: 5, maxTemp: 25},
	}

	for _, subTest := range subTests {
		test.Run(subTest.name, func(test *testing.T) {
			sampler := NewSimulated(1)
			t := time.Date(2026, subTest.month, 10, 12, 0, 0, 0, time.UTC)
			for i := 0; i < 200; i++ {
				sample := sampler.Sample(t)
				if sample.Temperature < subTest.minTemp || sample.Temperature > subTest.maxTemp {
					test.Fatalf("Temperature %f outside [%f, %f]", sample.Temperature, subTest.minTemp, subTest.maxTemp)
				}
			}
		})
	}
}

func TestSolarRadiationIsZeroAtNight(test *testing.T) {
	sampler := NewSimulated(1)

	night := time.Date(2026, 6, 15, 3, 0, 0, 0, time.UTC)
	for i := 0; i < 50; i++ {
		if sample := sampler.Sample(night); sample.SolarRadiation != 0 {
			test.Fatalf("Expected 0 solar radiation at %v, got %f", night, sample.SolarRadiation)
		}
	}

	day := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	sawSun := false
	for i := 0; i < 50; i++ {
		sample := sampler.Sample(day)
		if sample.SolarRadiation < 0 || sample.SolarRadiation > 1000 {
			test.Fatalf("Solar radiation %f outside [0, 1000]", sample.SolarRadiation)
		}
		if sample.SolarRadiation > 0 {
			sawSun = true
		}
	}
	if !sawSun {
		test.Errorf("Expected some daytime solar radiation")
	}
}

func TestWindSpeedRanges(test *testing.T) {
	sampler := NewSimulated(1)

	night := time.Date(2026, 6, 15, 22, 0, 0, 0, time.UTC)
	for i := 0; i < 200; i++ {
		if sample := sampler.Sample(night); sample.WindSpeed < 0 || sample.WindSpeed > 10 {
			test.Fatalf("Night wind speed %f outside [0, 10]", sample.WindSpeed)
		}
	}

	day := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 200; i++ {
		if sample := sampler.Sample(day); sample.WindSpeed < 0 || sample.WindSpeed > 20 {
			test.Fatalf("Day wind speed %f outside [0, 20]", sample.WindSpeed)
		}
	}
}

func TestEnergyDemandSurcharge(test *testing.T) {
	sampler := NewSimulated(1)

	for i := 0; i < 500; i++ {
		// cycle through the year to hit both mild and extreme temperatures
		t := time.Date(2026, time.Month(i%12+1), 10, i%24, 0, 0, 0, time.UTC)
		sample := sampler.Sample(t)

		extreme := sample.Temperature < 0 || sample.Temperature > 30
		if extreme {
			if sample.EnergyDemand < 1000 || sample.EnergyDemand > 1400 {
				test.Fatalf("Extreme-weather demand %f outside [1000, 1400]", sample.EnergyDemand)
			}
		} else {
			if sample.EnergyDemand < 800 || sample.EnergyDemand > 1200 {
				test.Fatalf("Mild-weather demand %f outside [800, 1200]", sample.EnergyDemand)
			}
		}
	}
}

func TestMockReplaysAndRepeatsLast(test *testing.T) {
	mock := &Mock{Samples: []telemetry.WeatherSample{
		{Temperature: 1, WindSpeed: 3, SolarRadiation: 5, EnergyDemand: 7},
		{Temperature: 2, WindSpeed: 4, SolarRadiation: 6, EnergyDemand: 8},
	}}

	t := time.Now()
	first := mock.Sample(t)
	if first.Temperature != 1 || first.EnergyDemand != 7 {
		test.Errorf("Unexpected first sample %+v", first)
	}
	second := mock.Sample(t)
	if second.Temperature != 2 || second.EnergyDemand != 8 {
		test.Errorf("Unexpected second sample %+v", second)
	}
	third := mock.Sample(t)
	if third != second {
		test.Errorf("Expected the last sample to repeat, got %+v", third)
	}
}
