// deviot-gateway runs a sample DevIoT gateway that registers a demo
// climate sensor and a switchable lamp, publishes their data on an
// interval, and dispatches incoming action commands to local handlers.
//
// It doubles as a reference for wiring the SDK: configuration loading,
// state persistence, telemetry, and graceful shutdown are all here.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ailuropoda0/deviot-gateway-go/gateway"
	"github.com/ailuropoda0/deviot-gateway-go/internal/infrastructure/config"
	"github.com/ailuropoda0/deviot-gateway-go/internal/infrastructure/database"
	"github.com/ailuropoda0/deviot-gateway-go/internal/infrastructure/logging"
	"github.com/ailuropoda0/deviot-gateway-go/internal/state"
	"github.com/ailuropoda0/deviot-gateway-go/internal/telemetry"
	"github.com/ailuropoda0/deviot-gateway-go/thing"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "unknown"
)

const defaultConfigPath = "configs/config.yaml"

// dataInterval is how often the demo things publish their data.
const dataInterval = 10 * time.Second

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main so failures
// flow back as errors rather than os.Exit calls scattered through setup.
func run(ctx context.Context) error {
	log := logging.Default()
	log.Info("starting deviot-gateway", "version", version, "commit", commit)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)

	gw := gateway.New(gateway.Config{
		Name:        cfg.Gateway.Name,
		Kind:        cfg.Gateway.Kind,
		Owner:       cfg.Gateway.Owner,
		Description: cfg.Gateway.Description,
		Server:      cfg.Gateway.Server,
		Broker: gateway.BrokerConfig{
			Host:     cfg.MQTT.Broker.Host,
			Port:     cfg.MQTT.Broker.Port,
			TLS:      cfg.MQTT.Broker.TLS,
			ClientID: cfg.MQTT.Broker.ClientID,
			Username: cfg.MQTT.Auth.Username,
			Password: cfg.MQTT.Auth.Password,
		},
		QoS:              cfg.MQTT.QoS,
		RegisterInterval: time.Duration(cfg.Gateway.RegisterInterval) * time.Second,
	})
	gw.SetLogger(log)

	// Last-known-state store (optional)
	if cfg.State.Enabled {
		db, err := database.Open(ctx, database.Config{
			Path:        cfg.State.Path,
			WALMode:     cfg.State.WALMode,
			BusyTimeout: cfg.State.BusyTimeout,
		})
		if err != nil {
			return fmt.Errorf("opening state database: %w", err)
		}
		defer func() {
			log.Info("closing state database")
			if closeErr := db.Close(); closeErr != nil {
				log.Error("error closing state database", "error", closeErr)
			}
		}()

		store, err := state.NewStore(ctx, db.DB)
		if err != nil {
			return fmt.Errorf("initialising state store: %w", err)
		}
		gw.SetStateStore(store)
		log.Info("state store enabled", "path", db.Path())
	} else {
		log.Info("state store disabled")
	}

	// Property history via InfluxDB (optional)
	if cfg.Telemetry.Enabled {
		sink, err := telemetry.Connect(cfg.Telemetry, cfg.Gateway.Name)
		if err != nil {
			return fmt.Errorf("connecting to telemetry: %w", err)
		}
		defer func() {
			log.Info("closing telemetry connection")
			if closeErr := sink.Close(); closeErr != nil {
				log.Error("error closing telemetry", "error", closeErr)
			}
		}()
		sink.SetOnError(func(err error) {
			log.Error("telemetry write error", "error", err)
		})
		gw.SetTelemetry(sink)
		log.Info("telemetry enabled", "url", cfg.Telemetry.URL, "bucket", cfg.Telemetry.Bucket)
	} else {
		log.Info("telemetry disabled")
	}

	climate, lamp := demoThings(log)
	gw.RegisterThing(ctx, climate)
	gw.RegisterThing(ctx, lamp)

	if err := gw.Start(ctx); err != nil {
		return fmt.Errorf("starting gateway: %w", err)
	}
	defer func() {
		log.Info("stopping gateway")
		if stopErr := gw.Stop(); stopErr != nil {
			log.Error("error stopping gateway", "error", stopErr)
		}
	}()

	log.Info("initialisation complete, publishing data", "interval", dataInterval)

	ticker := time.NewTicker(dataInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("shutdown signal received, cleaning up")
			return nil
		case <-ticker.C:
			climate.UpdateProperties(map[string]any{
				"temperature": 18 + rand.Intn(8),
				"humidity":    40 + rand.Intn(30),
			})
			for _, t := range gw.Things() {
				if err := gw.SendData(ctx, t); err != nil {
					log.Warn("data publish failed", "thing", t.ID, "error", err)
				}
			}
		}
	}
}

// demoThings builds the two sample things the gateway exposes.
func demoThings(log *logging.Logger) (climate, lamp *thing.Thing) {
	climate = thing.New("climate-1", "climate", "sensor")
	climate.SetLogger(log)
	climate.AddProperty(
		thing.NewProperty("temperature", thing.PropertyTypeInt).
			WithValue(21).WithUnit("celsius").WithRange([2]int{-40, 85}),
		thing.NewProperty("humidity", thing.PropertyTypeInt).
			WithValue(50).WithUnit("percent"),
	)

	lamp = thing.New("lamp-1", "lamp", "light")
	lamp.SetLogger(log)
	lamp.AddProperty(
		thing.NewProperty("power", thing.PropertyTypeBool),
		thing.NewProperty("color", thing.PropertyTypeColor),
	)
	lamp.AddAction(
		thing.NewAction("switch", map[string]thing.PropertyType{
			"on": thing.PropertyTypeBool,
		}),
		thing.NewAction("set_color", map[string]thing.PropertyType{
			"color": thing.PropertyTypeColor,
		}),
	)
	lamp.Handle("switch", func(args map[string]any) error {
		on, ok := args["on"].(bool)
		if !ok {
			return fmt.Errorf("switch: missing bool argument %q", "on")
		}
		lamp.UpdateProperties(map[string]any{"power": on})
		log.Info("lamp switched", "on", on)
		return nil
	})
	lamp.Handle("set_color", func(args map[string]any) error {
		color, ok := args["color"].(string)
		if !ok {
			return fmt.Errorf("set_color: missing color argument")
		}
		lamp.UpdateProperties(map[string]any{"color": color})
		log.Info("lamp color set", "color", color)
		return nil
	})

	return climate, lamp
}

// getConfigPath returns the configuration file path.
// Uses DEVIOT_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("DEVIOT_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
