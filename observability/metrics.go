// Package observability exposes the simulator's Prometheus metrics.
package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/powercity/simulator/telemetry"
)

// Collector bundles the Prometheus metrics derived from completed ticks and
// provides the handler to serve them over HTTP.
type Collector struct {
	gatherer prometheus.Gatherer

	TicksTotal    prometheus.Counter
	BatteryLevel  prometheus.Gauge
	BatteryHealth prometheus.Gauge
	GridUsage     prometheus.Gauge
	GridCostTotal prometheus.Gauge
	Savings       prometheus.Gauge
	Generation    *prometheus.GaugeVec
}

// NewCollector registers the simulator metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{
		gatherer: gatherer,
		TicksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "powercity_ticks_total",
			Help: "Total number of completed simulation ticks.",
		}),
		BatteryLevel: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "powercity_battery_level_kwh",
			Help: "Current battery state of charge in kWh.",
		}),
		BatteryHealth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "powercity_battery_health_percent",
			Help: "Current battery health percentage.",
		}),
		GridUsage: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "powercity_grid_usage_kwh",
			Help: "Grid import for the most recent tick in kWh.",
		}),
		GridCostTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "powercity_grid_cost_total",
			Help: "Cumulative cost of all grid imports.",
		}),
		Savings: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "powercity_savings_last_tick",
			Help: "Savings for the most recent tick.",
		}),
		Generation: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "powercity_generation_kw",
			Help: "Generation output for the most recent tick, labeled by source.",
		}, []string{"source"}),
	}

	collectors := map[string]prometheus.Collector{
		"powercity_ticks_total":              c.TicksTotal,
		"powercity_battery_level_kwh":        c.BatteryLevel,
		"powercity_battery_health_percent":   c.BatteryHealth,
		"powercity_grid_usage_kwh":           c.GridUsage,
		"powercity_grid_cost_total":          c.GridCostTotal,
		"powercity_savings_last_tick":        c.Savings,
		"powercity_generation_kw":            c.Generation,
	}
	for name, collector := range collectors {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("register %s: %w", name, err)
		}
	}

	return c, nil
}

// ObserveTick updates all metrics from a completed tick record.
func (c *Collector) ObserveTick(record telemetry.TickRecord) {
	c.TicksTotal.Inc()
	c.BatteryLevel.Set(record.BatteryLevel)
	c.BatteryHealth.Set(record.BatteryHealth)
	c.GridUsage.Set(record.GridUsage)
	c.GridCostTotal.Set(record.GridCostTotal)
	c.Savings.Set(record.Savings)
	c.Generation.WithLabelValues("hydro").Set(record.HydroPower)
	c.Generation.WithLabelValues("solar").Set(record.SolarPower)
	c.Generation.WithLabelValues("wind").Set(record.WindPower)
}

// Handler returns the HTTP handler serving the registered metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}
