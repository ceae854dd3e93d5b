package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/markusressel/ecfan/internal/api"
	"github.com/markusressel/ecfan/internal/configuration"
	"github.com/markusressel/ecfan/internal/hwmon"
	"github.com/markusressel/ecfan/internal/modules"
	"github.com/markusressel/ecfan/internal/persistence"
	"github.com/markusressel/ecfan/internal/sensors"
	"github.com/markusressel/ecfan/internal/statistics"
	"github.com/markusressel/ecfan/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sys/unix"
)

const shutdownTimeout = 5 * time.Second

func RunDaemon() {
	if unix.Geteuid() != 0 {
		ui.Fatal("Fan control requires root permissions to be able to modify fan speeds, please run ecfan as root")
	}

	config := &configuration.CurrentConfig

	board, err := CreateBoard(config, hwmon.GetChips())
	if err != nil {
		ui.Fatal("Unable to create board: %v", err)
	}

	statistics.Register(statistics.NewSensorCollector(board.Sensors))
	statistics.Register(statistics.NewFanCollector(board.Fans))
	statistics.Register(statistics.NewControllerCollector(board.Controller))
	statistics.Register(statistics.NewZoneCollector(board.Controller))

	if config.ThermalLog.Enabled {
		board.Controller.SetThermalLog(true)
	}

	var detector *modules.Detector
	if config.Modules.File != nil {
		source := modules.FileSource{Path: config.Modules.File.Path}
		detector = modules.NewDetector(source, board.Controller, config.Modules.Profiles)
	}

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		if config.Statistics.Enabled {
			// === Prometheus Exporter
			port := config.Statistics.Port
			if port <= 0 || port >= 65535 {
				port = 9000
			}
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			server := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}

			g.Add(func() error {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("cannot start prometheus metrics endpoint: %w", err)
				}
				return nil
			}, func(err error) {
				ui.Info("Stopping statistics server...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer timeoutCancel()
				if err := server.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping statistics server: %v", err)
				} else {
					ui.Info("Statistics server stopped.")
				}
			})
		}
	}
	{
		if config.Api.Enabled {
			// === REST api
			var moduleSource api.ModuleSource
			if detector != nil {
				moduleSource = detector
			}
			rest := api.CreateRestService(board.Controller, moduleSource, prometheus.DefaultRegisterer)
			addr := fmt.Sprintf("%s:%d", config.Api.Host, config.Api.Port)

			g.Add(func() error {
				if err := rest.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("cannot start REST api: %w", err)
				}
				return nil
			}, func(err error) {
				ui.Info("Stopping REST api...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer timeoutCancel()
				if err := rest.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping REST api: %v", err)
				}
			})
		}
	}
	{
		if detector != nil {
			// === hardware module detection
			pollingRate := config.Modules.PollingRate
			g.Add(func() error {
				err := detector.Run(ctx, pollingRate)
				ui.Info("Module detector stopped.")
				return err
			}, func(err error) {
				cancel()
			})
		}
	}
	{
		if config.History.Enabled {
			// === decision history
			pers := persistence.NewPersistence(config.DbPath)
			if err := pers.Init(); err != nil {
				ui.Fatal("Unable to initialize persistence: %v", err)
			}
			recorder := NewHistoryRecorder(board.Controller, pers, config.History.Interval, config.History.MaxEntries)

			g.Add(func() error {
				err := recorder.Run(ctx)
				ui.Info("History recorder stopped.")
				return err
			}, func(err error) {
				cancel()
			})
		}
	}
	{
		// === fan control
		tickRate := config.TickRate
		g.Add(func() error {
			err := board.Controller.Run(ctx, tickRate)
			ui.Info("Fan controller stopped.")
			return err
		}, func(err error) {
			cancel()
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case <-sig:
				ui.Info("Received SIGTERM signal, exiting...")
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	err = g.Run()

	// fans must not stay at a low speed without anyone watching the temperatures
	board.Controller.FailSafe()
	sensors.CloseBuses()

	if err != nil {
		ui.Error("%v", err)
		os.Exit(1)
	}
	ui.Info("Done.")
}
