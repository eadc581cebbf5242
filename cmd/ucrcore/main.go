// ucrcore is the UCR device binding core.
//
// It owns the configured devices, loads the profile tree, and keeps the
// active profile's input and output bindings subscribed with the device
// providers over MQTT. The REST and WebSocket API drives and observes it.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/Stopfield/UCR/migrations"

	"github.com/Stopfield/UCR/internal/api"
	"github.com/Stopfield/UCR/internal/backend"
	"github.com/Stopfield/UCR/internal/backend/mqttio"
	"github.com/Stopfield/UCR/internal/device"
	"github.com/Stopfield/UCR/internal/infrastructure/config"
	"github.com/Stopfield/UCR/internal/infrastructure/database"
	"github.com/Stopfield/UCR/internal/infrastructure/influxdb"
	"github.com/Stopfield/UCR/internal/infrastructure/logging"
	"github.com/Stopfield/UCR/internal/infrastructure/mqtt"
	"github.com/Stopfield/UCR/internal/profile"
)

// Set at build time:
//
//	go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run starts every component, blocks until ctx is cancelled and then shuts
// down in reverse order through the deferred closers.
func run(ctx context.Context) error {
	log := logging.Default()
	log.Info("starting ucrcore", "version", version, "commit", commit, "build_date", date)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log = logging.New(cfg.Logging, version)
	log.Info("configuration loaded", "path", configPath, "level", cfg.Logging.Level)

	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	devices := device.NewRegistry(device.NewSQLiteRepository(db.DB))
	devices.SetLogger(log.With("component", "device"))
	if err := devices.RefreshCache(ctx); err != nil {
		return fmt.Errorf("loading device registry: %w", err)
	}
	log.Info("device registry initialised", "devices", devices.GetDeviceCount())

	mqttClient, err := mqtt.Connect(cfg.MQTT, mqtt.Topics{Prefix: cfg.Backend.TopicPrefix})
	if err != nil {
		return fmt.Errorf("connecting to MQTT: %w", err)
	}
	defer func() {
		if closeErr := mqttClient.Close(); closeErr != nil {
			log.Error("error closing MQTT", "error", closeErr)
		}
	}()
	mqttClient.SetLogger(log.With("component", "mqtt"))
	mqttClient.SetOnConnect(func() { log.Info("MQTT reconnected") })
	mqttClient.SetOnDisconnect(func(err error) { log.Warn("MQTT disconnected", "error", err) })
	log.Info("MQTT connected",
		"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
		"client_id", cfg.MQTT.Broker.ClientID,
	)

	ctrl, err := startBackend(cfg, mqttClient, log)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := ctrl.Close(); closeErr != nil {
			log.Error("error closing backend", "error", closeErr)
		}
	}()

	checks := map[string]api.HealthChecker{"database": db, "mqtt": mqttClient}
	var controller backend.Controller = ctrl
	if cfg.InfluxDB.Enabled {
		influxClient, err := influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		influxClient.SetOnError(func(err error) { log.Error("InfluxDB write error", "error", err) })
		controller = backend.NewMetered(ctrl, influxClient)
		checks["influxdb"] = influxClient
		log.Info("InfluxDB connected", "url", cfg.InfluxDB.URL, "bucket", cfg.InfluxDB.Bucket)
	}

	profiles := profile.NewRegistry()
	if cfg.Profiles.File != "" {
		if profiles, err = profile.LoadFile(cfg.Profiles.File); err != nil {
			return fmt.Errorf("loading profiles: %w", err)
		}
	}
	log.Info("profiles loaded", "path", cfg.Profiles.File, "profiles", profiles.Len())

	hub := api.NewHub(cfg.WebSocket, log)
	go hub.Run(ctx)

	manager := profile.NewManager(profiles, devices, controller, log.With("component", "profile"))
	manager.SetHandlerFactory(api.InputEventHandlers(hub))
	manager.SetActiveProfileCallback(api.NotifyProfileChanges(hub, profiles))
	defer manager.Deactivate()

	if cfg.Profiles.Activate != "" {
		if err := activateStartupProfile(ctx, profiles, manager, cfg.Profiles.Activate); err != nil {
			return err
		}
	}

	srv, err := api.New(api.Deps{
		Config:   cfg.API,
		WS:       cfg.WebSocket,
		Logger:   log,
		Devices:  devices,
		Profiles: profiles,
		Manager:  manager,
		Backend:  controller,
		Checks:   checks,
		Hub:      hub,
		Version:  version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := srv.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	log.Info("initialisation complete, waiting for shutdown signal")
	<-ctx.Done()
	log.Info("shutdown signal received, cleaning up")
	return nil
}

// startBackend creates the MQTT controller and subscribes to the provider
// capability reports.
func startBackend(cfg *config.Config, broker *mqtt.Client, log *logging.Logger) (*mqttio.Controller, error) {
	codec, err := mqttio.NewCodec(cfg.Backend.Codec)
	if err != nil {
		return nil, fmt.Errorf("creating backend codec: %w", err)
	}

	ctrl, err := mqttio.New(broker, mqttio.Options{
		Topics:         broker.Topics(),
		Codec:          codec,
		QoS:            broker.QoS(),
		RequestTimeout: cfg.GetRequestTimeout(),
		Logger:         log.With("component", "backend"),
	})
	if err != nil {
		return nil, fmt.Errorf("creating backend controller: %w", err)
	}
	if err := ctrl.Start(); err != nil {
		return nil, fmt.Errorf("starting backend controller: %w", err)
	}
	log.Info("backend started", "prefix", cfg.Backend.TopicPrefix, "codec", codec.Name())
	return ctrl, nil
}

// activateStartupProfile activates ref. Backend failures are logged by the
// manager and do not stop startup; an unknown profile or device does.
func activateStartupProfile(ctx context.Context, profiles *profile.Registry, m *profile.Manager, ref string) error {
	p, err := profiles.Find(ref)
	if err != nil {
		return fmt.Errorf("finding startup profile: %w", err)
	}
	if _, err := m.Activate(ctx, p.ID); err != nil {
		return fmt.Errorf("activating startup profile %q: %w", ref, err)
	}
	return nil
}

// getConfigPath returns UCR_CONFIG if set, otherwise the default path.
func getConfigPath() string {
	if path := os.Getenv("UCR_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}
