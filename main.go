package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/alexflint/go-arg"

	"github.com/powercity/simulator/config"
	"github.com/powercity/simulator/controller"
	dataplatform "github.com/powercity/simulator/data_platform"
	"github.com/powercity/simulator/observability"
	"github.com/powercity/simulator/report"
	"github.com/powercity/simulator/repository"
	"github.com/powercity/simulator/supabase"
	"github.com/powercity/simulator/weather"
	"github.com/powercity/simulator/ws"
)

const supabaseKeyEnvVar = "POWERCITY_SUPABASE_KEY"

type args struct {
	Config string `arg:"-c,--config" help:"path to JSON config file"`
	Addr   string `arg:"--addr" help:"listen address, overrides the config file"`
	Debug  bool   `arg:"--debug" help:"enable debug logging"`
}

func main() {
	var parsedArgs args
	arg.MustParse(&parsedArgs)

	level := slog.LevelInfo
	if parsedArgs.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	slog.Info("Starting simulator...")

	conf, err := config.Read(parsedArgs.Config)
	if err != nil {
		slog.Error("Failed to read config", "error", err)
		return
	}
	if parsedArgs.Addr != "" {
		conf.Server.Addr = parsedArgs.Addr
	}

	ctx, cancel := context.WithCancel(context.Background())

	var rng *rand.Rand
	if conf.Simulation.Seed != 0 {
		rng = rand.New(rand.NewSource(conf.Simulation.Seed))
	}

	ctrl := controller.New(controller.Config{
		HydroCapacity:   conf.Simulation.HydroCapacity,
		SolarCapacity:   conf.Simulation.SolarCapacity,
		WindCapacity:    conf.Simulation.WindCapacity,
		BatteryCapacity: conf.Simulation.BatteryCapacity,
		BatteryLevel:    conf.Simulation.BatteryLevel,
		BatteryHealth:   conf.Simulation.BatteryHealth,
		GridPricePerKWh: conf.Simulation.GridPricePerKWh,
		HydroEnabled:    conf.Simulation.HydroEnabled,
		SolarEnabled:    conf.Simulation.SolarEnabled,
		WindEnabled:     conf.Simulation.WindEnabled,
		BatteryEnabled:  conf.Simulation.BatteryEnabled,
		TickInterval:    time.Duration(conf.Simulation.TickIntervalSecs) * time.Second,
		Sampler:         weather.NewSimulated(conf.Simulation.Seed),
		Rand:            rng,
	})
	ctrl.Start()
	go ctrl.Run(ctx)

	repo, err := repository.New(conf.DataPlatform.RepositoryPath)
	if err != nil {
		slog.Error("Failed to create repository", "error", err)
		return
	}

	var supaClient *supabase.Client
	if conf.DataPlatform.Supabase.Url != "" {
		supaClient, err = supabase.New(
			conf.DataPlatform.Supabase.Url,
			os.Getenv(supabaseKeyEnvVar),
			conf.DataPlatform.Supabase.Schema,
		)
		if err != nil {
			slog.Error("Failed to create supabase client", "error", err)
			return
		}
	} else {
		slog.Info("No supabase URL configured, uploads disabled")
	}

	dataPlatform := dataplatform.New(
		repo,
		supaClient,
		time.Duration(conf.DataPlatform.UploadIntervalSecs)*time.Second,
	)
	go dataPlatform.Run(ctx)

	hub := ws.NewHub()
	bridge := ws.NewBridge(hub)
	go bridge.Run(ctx)

	collector, err := observability.NewCollector(nil)
	if err != nil {
		slog.Error("Failed to create metrics collector", "error", err)
		return
	}

	// completed tick records are fanned out to the data platform, the
	// websocket bridge and the metrics collector
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case record := <-ctrl.Records:
				dataPlatform.Records <- record
				bridge.Records <- record
				collector.ObserveTick(record)
			}
		}
	}()

	mux := http.NewServeMux()
	mux.Handle("/ws", ws.NewHandler(hub, ctrl, repo))
	mux.Handle("/metrics", collector.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ctrl.State())
	})
	mux.HandleFunc("/report", reportHandler(ctrl, repo))

	server := &http.Server{Addr: conf.Server.Addr, Handler: mux}
	go func() {
		slog.Info("Listening", "addr", conf.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server failed", "error", err)
		}
	}()

	// wait for a ctrl-c interrupt before exiting
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt)
	<-signalChan

	// cancel any open go-routines and give them up to 100ms to gracefully shutdown
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
	defer shutdownCancel()
	server.Shutdown(shutdownCtx)
	time.Sleep(time.Millisecond * 100)

	slog.Info("Exiting")
	os.Exit(0)
}

// reportHandler serves a plain-text report over the full persisted history,
// e.g. GET /report?window=weekly. The window defaults to daily.
func reportHandler(ctrl *controller.Controller, repo *repository.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		windowName := r.URL.Query().Get("window")
		if windowName == "" {
			windowName = "daily"
		}
		window, err := report.ParseWindow(windowName)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		now := time.Now()
		records, err := repo.RecordsSince(now.Add(-window.Duration()))
		if err != nil {
			http.Error(w, "query history: "+err.Error(), http.StatusInternalServerError)
			return
		}

		state := ctrl.State()
		rep, err := report.Generate(records, report.Capacities{
			Hydro:   state.HydroCapacity,
			Solar:   state.SolarCapacity,
			Wind:    state.WindCapacity,
			Battery: state.BatteryCapacity,
		}, now, window)

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err != nil {
			if errors.Is(err, report.ErrNoData) {
				w.Write([]byte("No data available for " + window.Span() + ".\n"))
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Write([]byte(rep.Render()))
	}
}
