package health

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ducobridge/ducobox-mqtt/pkg/config"
	"github.com/ducobridge/ducobox-mqtt/pkg/duco"
	"github.com/ducobridge/ducobox-mqtt/pkg/mqtt"
	"github.com/rs/zerolog/log"

	"github.com/go-chi/chi/v5"
	healthgo "github.com/hellofresh/health-go/v5"
)

// Health exposes the readiness of the bridge over HTTP.
type Health interface {
	Start() error
	Stop() error
}

type health struct {
	config config.HealthCheckConfig
	checks *healthgo.Health
	server *http.Server
}

// NewHealth wires two checks: the MQTT connection must be open and the
// registry must have fetched at least one document snapshot.
func NewHealth(config config.HealthCheckConfig, mqttClient mqtt.Client, ducoRegistry duco.Registry) Health {
	h, _ := healthgo.New(healthgo.WithComponent(healthgo.Component{
		Name:    "ducobox-mqtt",
		Version: "v1.0",
	}))

	checks := []healthgo.Config{
		{
			Name:    "mqtt",
			Timeout: 2 * time.Second,
			Check: func(_ context.Context) error {
				if !mqttClient.RawClient().IsConnectionOpen() {
					return errors.New("MQTT client is not connected")
				}
				return nil
			},
		},
		{
			Name:    "duco",
			Timeout: 2 * time.Second,
			Check: func(_ context.Context) error {
				if ducoRegistry.DeviceId() == "" {
					return errors.New("no document snapshot fetched from the DucoBox yet")
				}
				return nil
			},
		},
	}
	for _, check := range checks {
		if err := h.Register(check); err != nil {
			log.Error().Err(err).Str("check", check.Name).Msg("Unable to register healthcheck")
			return nil
		}
	}

	return &health{
		config: config,
		checks: h,
	}
}

func (h *health) Start() error {
	router := chi.NewRouter()
	router.Get("/health", h.checks.HandlerFunc)
	router.Get("/health/ready", h.checks.HandlerFunc)
	router.Get("/health/live", h.checks.HandlerFunc)

	h.server = &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", h.config.Port),
		Handler: router,
	}
	go func() {
		log.Info().Str("addr", h.server.Addr).Msg("Starting health check server")
		if err := h.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("Unable to start health check server")
		}
	}()
	return nil
}

func (h *health) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := h.server.Shutdown(ctx); err != nil {
		return err
	}
	log.Info().Msg("Health check server stopped")
	return nil
}
