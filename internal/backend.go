package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/light2servo/internal/actuators"
	"github.com/markusressel/light2servo/internal/api"
	"github.com/markusressel/light2servo/internal/configuration"
	"github.com/markusressel/light2servo/internal/control"
	"github.com/markusressel/light2servo/internal/displays"
	"github.com/markusressel/light2servo/internal/indicator"
	"github.com/markusressel/light2servo/internal/persistence"
	"github.com/markusressel/light2servo/internal/sensors"
	"github.com/markusressel/light2servo/internal/statistics"
	"github.com/markusressel/light2servo/internal/telemetry"
	"github.com/markusressel/light2servo/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
)

const serverShutdownTimeout = 5 * time.Second

// Components are the capabilities driven by the control loop
type Components struct {
	Sensor    sensors.Sensor
	Actuator  actuators.Actuator
	Display   displays.Display
	Indicator indicator.Indicator
	Sink      telemetry.Sink
}

// Close releases all hardware resources, errors are only logged
func (c Components) Close() {
	closers := map[string]io.Closer{
		"actuator":  c.Actuator,
		"display":   c.Display,
		"indicator": c.Indicator,
		"telemetry": c.Sink,
	}
	if closer, ok := c.Sensor.(io.Closer); ok {
		closers["sensor"] = closer
	}
	for name, closer := range closers {
		if err := closer.Close(); err != nil {
			ui.Warning("Error closing %s: %v", name, err)
		}
	}
}

func RunDaemon() {
	if os.Geteuid() != 0 {
		ui.Warning("Not running as root, access to pwm and gpio devices might fail")
	}

	config := configuration.CurrentConfig

	pers := persistence.NewPersistence(config.DbPath)
	if err := pers.Init(); err != nil {
		ui.Warning("Unable to initialize persistence: %v", err)
	}

	components := InitializeObjects()
	controller := control.NewController(
		control.NewParameters(config.Control, config.Display),
		components.Sensor,
		components.Actuator,
		components.Display,
		components.Indicator,
		components.Sink,
		control.RealClock{},
	)
	statistics.Register(statistics.NewControlCollector(controller, components.Sensor.GetId(), components.Actuator.GetId()))

	recorder := NewStatisticsRecorder(pers, components.Actuator.GetId(), controller)
	recorder.Load()

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		if config.Statistics.Enabled {
			// === Prometheus Exporter
			server := api.CreateWebserver()
			addr := fmt.Sprintf(":%d", config.Statistics.Port)
			addServer(&g, "statistics", server, addr)
		}
	}
	{
		if config.Api.Enabled {
			// === REST API
			rest := api.CreateRestService(controller, prometheus.DefaultRegisterer)
			addr := fmt.Sprintf("%s:%d", config.Api.Host, config.Api.Port)
			addServer(&g, "api", rest, addr)
		}
	}
	{
		// === control loop
		g.Add(func() error {
			err := controller.Run(ctx)
			ui.Info("Control loop stopped.")
			return err
		}, func(err error) {
			if err != nil {
				ui.Warning("Control loop: %v", err)
			}
			cancel()
		})
	}
	{
		// === statistics persistence
		interval := config.StatisticsPersistenceInterval
		g.Add(func() error {
			tick := time.NewTicker(interval)
			defer tick.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-tick.C:
					recorder.Save()
				}
			}
		}, func(err error) {
			cancel()
		})
	}
	{
		if listener, ok := components.Display.(displays.QuitListener); ok {
			// === quit keys of the terminal display
			g.Add(func() error {
				if err := listener.WaitForQuit(ctx); err == nil {
					ui.Info("Received quit key, exiting...")
				}
				return nil
			}, func(err error) {
				cancel()
			})
		}
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

	err := g.Run()
	recorder.Save()
	components.Close()

	if err != nil {
		ui.Error("%v", err)
		os.Exit(1)
	} else {
		ui.Info("Done.")
		os.Exit(0)
	}
}

// addServer runs the given echo server as an actor of the group
func addServer(g *run.Group, name string, server *echo.Echo, addr string) {
	g.Add(func() error {
		ui.Info("Starting %s server on %s", name, addr)
		if err := server.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("cannot start %s server: %w", name, err)
		}
		return nil
	}, func(err error) {
		ui.Info("Stopping %s server...", name)
		timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
		defer timeoutCancel()
		if err := server.Shutdown(timeoutCtx); err != nil {
			ui.Warning("Error stopping %s server: %v", name, err)
		} else {
			ui.Info("%s server stopped.", name)
		}
	})
}

// InitializeObjects creates all capabilities from the current configuration
// and registers them for the api
func InitializeObjects() Components {
	config := configuration.CurrentConfig

	sensor, err := sensors.NewSensor(config.Sensor)
	if err != nil {
		ui.Fatal("Unable to process sensor configuration %s: %v", config.Sensor.ID, err)
	}
	sensors.SensorMap.Set(sensor.GetId(), sensor)

	actuator, err := actuators.NewActuator(config.Actuator)
	if err != nil {
		ui.Fatal("Unable to process actuator configuration %s: %v", config.Actuator.ID, err)
	}
	actuators.ActuatorMap.Set(actuator.GetId(), actuator)

	ind, err := indicator.NewIndicator(config.Indicator)
	if err != nil {
		ui.Fatal("Unable to initialize indicator: %v", err)
	}

	sink := NewSink(config.Mqtt)

	// last, a terminal display takes over the tty
	display, err := displays.NewDisplay(config.Display)
	if err != nil {
		ui.Fatal("Unable to initialize display: %v", err)
	}

	return Components{
		Sensor:    sensor,
		Actuator:  actuator,
		Display:   display,
		Indicator: ind,
		Sink:      sink,
	}
}

// NewSink creates the telemetry sink, MQTT is optional and
// a broker that cannot be reached only disables it
func NewSink(config configuration.MqttConfig) telemetry.Sink {
	sinks := telemetry.Multi{telemetry.LogSink{}}
	if config.Enabled {
		mqttSink, err := telemetry.NewMqttSink(config)
		if err != nil {
			ui.Warning("MQTT telemetry disabled: %v", err)
		} else {
			ui.Info("Publishing telemetry to %s on %s", config.Broker, config.Topic)
			sinks = append(sinks, mqttSink)
		}
	}
	return sinks
}
