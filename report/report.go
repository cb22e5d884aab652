// Package report aggregates the full tick history into periodic textual
// reports for display.
package report

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/powercity/simulator/telemetry"
	timeutils "github.com/powercity/simulator/time_utils"
)

// ErrNoData is returned when the requested window contains no records. An
// empty window is not a zero-valued report.
var ErrNoData = errors.New("no data in report window")

// Window selects the reporting period and its bucketing granularity.
type Window int

const (
	Daily   Window = iota // last 24 hours, bucketed by hour
	Weekly                // last 7 days, bucketed by day
	Monthly               // last 30 days, bucketed by day
	Yearly                // last 365 days, bucketed by month
)

// ParseWindow maps a user-supplied window name onto a Window.
func ParseWindow(name string) (Window, error) {
	switch strings.ToLower(name) {
	case "daily":
		return Daily, nil
	case "weekly":
		return Weekly, nil
	case "monthly":
		return Monthly, nil
	case "yearly":
		return Yearly, nil
	default:
		return 0, fmt.Errorf("unknown report window %q", name)
	}
}

func (w Window) String() string {
	switch w {
	case Daily:
		return "Daily Report"
	case Weekly:
		return "Weekly Report"
	case Monthly:
		return "Monthly Report"
	case Yearly:
		return "Yearly Report"
	default:
		return fmt.Sprintf("Window(%d)", int(w))
	}
}

// Duration returns the length of the reporting window.
func (w Window) Duration() time.Duration {
	switch w {
	case Daily:
		return 24 * time.Hour
	case Weekly:
		return 7 * 24 * time.Hour
	case Monthly:
		return 30 * 24 * time.Hour
	default:
		return 365 * 24 * time.Hour
	}
}

// Span describes the window in prose, for "no data" messages.
func (w Window) Span() string {
	switch w {
	case Daily:
		return "the last 24 hours"
	case Weekly:
		return "the last 7 days"
	case Monthly:
		return "the last 30 days"
	default:
		return "the last 365 days"
	}
}

// bucketStart floors a record time to its bucket boundary for this window.
func (w Window) bucketStart(t time.Time) time.Time {
	switch w {
	case Daily:
		return timeutils.FloorHour(t)
	case Weekly, Monthly:
		return timeutils.FloorDay(t)
	default:
		return timeutils.FloorMonth(t)
	}
}

// bucketLabel formats a bucket boundary for display.
func (w Window) bucketLabel(t time.Time) string {
	switch w {
	case Daily:
		return "Hour: " + t.Format("15:04")
	case Weekly, Monthly:
		return "Day: " + t.Format("02 January")
	default:
		return "Month: " + t.Format("January 2006")
	}
}

// Capacities is the header block of installed capacities printed at the top
// of every report.
type Capacities struct {
	Hydro   float64
	Solar   float64
	Wind    float64
	Battery float64
}

// Bucket holds the aggregated values for one hour/day/month of history.
//
// The instantaneous quantities (usage, powers, battery level, grid usage)
// are arithmetic means. Battery health, grid cost and savings are summed per
// bucket even though health and cost are already cumulative in each record.
// That asymmetry is a long-standing property of these reports and consumers
// depend on the resulting figures, so it is preserved rather than corrected.
type Bucket struct {
	Start time.Time
	Count int

	AvgEnergyUsage  float64
	AvgHydroPower   float64
	AvgSolarPower   float64
	AvgWindPower    float64
	AvgBatteryLevel float64
	AvgGridUsage    float64

	BatteryHealthSum float64
	GridCostSum      float64
	SavingsSum       float64
}

// Report is the aggregated output for one window.
type Report struct {
	Window     Window
	Capacities Capacities
	Buckets    []Bucket

	// TotalSavings is the sum of the per-bucket aggregated savings.
	TotalSavings float64
}

// Generate filters the given records to the window ending at `now`, buckets
// them and aggregates each bucket. Records may be passed in any order.
// Returns ErrNoData when nothing falls inside the window.
func Generate(records []telemetry.TickRecord, capacities Capacities, now time.Time, window Window) (*Report, error) {
	period := timeutils.LastingUntil(now, window.Duration())

	buckets := make(map[time.Time]*Bucket)
	for _, record := range records {
		if record.Time.Before(period.Start) {
			continue
		}
		start := window.bucketStart(record.Time)
		bucket, ok := buckets[start]
		if !ok {
			bucket = &Bucket{Start: start}
			buckets[start] = bucket
		}
		bucket.Count++
		bucket.AvgEnergyUsage += record.EnergyUsage
		bucket.AvgHydroPower += record.HydroPower
		bucket.AvgSolarPower += record.SolarPower
		bucket.AvgWindPower += record.WindPower
		bucket.AvgBatteryLevel += record.BatteryLevel
		bucket.AvgGridUsage += record.GridUsage
		bucket.BatteryHealthSum += record.BatteryHealth
		bucket.GridCostSum += record.GridCostTotal
		bucket.SavingsSum += record.Savings
	}

	if len(buckets) == 0 {
		return nil, ErrNoData
	}

	report := &Report{
		Window:     window,
		Capacities: capacities,
	}
	for _, bucket := range buckets {
		n := float64(bucket.Count)
		bucket.AvgEnergyUsage /= n
		bucket.AvgHydroPower /= n
		bucket.AvgSolarPower /= n
		bucket.AvgWindPower /= n
		bucket.AvgBatteryLevel /= n
		bucket.AvgGridUsage /= n
		report.Buckets = append(report.Buckets, *bucket)
		report.TotalSavings += bucket.SavingsSum
	}
	sort.Slice(report.Buckets, func(i, j int) bool {
		return report.Buckets[i].Start.Before(report.Buckets[j].Start)
	})

	return report, nil
}

// Render formats the report as display text. Every aggregated line is
// labelled "Average ...", including the summed fields, matching the
// long-standing report layout.
func (r *Report) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n\n", r.Window)
	fmt.Fprintf(&b, "Current Capacities:\n")
	fmt.Fprintf(&b, "Hydro Capacity: %g kW\n", r.Capacities.Hydro)
	fmt.Fprintf(&b, "Solar Capacity: %g kW\n", r.Capacities.Solar)
	fmt.Fprintf(&b, "Wind Capacity: %g kW\n", r.Capacities.Wind)
	fmt.Fprintf(&b, "Battery Capacity: %g kWh\n\n", r.Capacities.Battery)

	for _, bucket := range r.Buckets {
		fmt.Fprintf(&b, "%s\n", r.Window.bucketLabel(bucket.Start))
		fmt.Fprintf(&b, "Average Energy Usage: %.2f kWh\n", bucket.AvgEnergyUsage)
		fmt.Fprintf(&b, "Average Hydro Power: %.2f kW\n", bucket.AvgHydroPower)
		fmt.Fprintf(&b, "Average Solar Power: %.2f kW\n", bucket.AvgSolarPower)
		fmt.Fprintf(&b, "Average Wind Power: %.2f kW\n", bucket.AvgWindPower)
		fmt.Fprintf(&b, "Average Battery Level: %.2f kWh\n", bucket.AvgBatteryLevel)
		fmt.Fprintf(&b, "Average Grid Usage: %.2f kWh\n", bucket.AvgGridUsage)
		fmt.Fprintf(&b, "Average Battery Health: %.2f%%\n", bucket.BatteryHealthSum)
		fmt.Fprintf(&b, "Average Grid Usage Cost: £%.2f\n", bucket.GridCostSum)
		fmt.Fprintf(&b, "Average Total Savings: £%.2f\n\n", bucket.SavingsSum)
	}

	fmt.Fprintf(&b, "Total Cost Savings: £%.2f\n", r.TotalSavings)

	return b.String()
}
