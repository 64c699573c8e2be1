package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ailuropoda0/deviot-gateway-go/thing"
)

// Model is the registration document announced to the DevIoT server.
// Field order matches the server's existing consumers.
type Model struct {
	Name        string             `json:"name"`
	Kind        string             `json:"kind"`
	Host        string             `json:"host"`
	Port        int                `json:"port"`
	Data        string             `json:"data"`
	Action      string             `json:"action"`
	Sensors     []thing.ThingModel `json:"sensors"`
	Mode        Mode               `json:"mode"`
	Owner       string             `json:"owner"`
	Description string             `json:"description,omitempty"`
}

// Model returns the current registration document, including the model of
// every registered thing in registration order.
func (g *Gateway) Model() Model {
	g.mu.RLock()
	defer g.mu.RUnlock()

	sensors := make([]thing.ThingModel, 0, len(g.things))
	for _, t := range g.things {
		sensors = append(sensors, t.Model())
	}

	return Model{
		Name:        g.cfg.Name,
		Kind:        g.cfg.Kind,
		Host:        g.cfg.Broker.Host,
		Port:        g.cfg.Broker.Port,
		Data:        g.topics.Data(),
		Action:      g.topics.Action(),
		Sensors:     sensors,
		Mode:        ModeMQTT,
		Owner:       g.cfg.Owner,
		Description: g.cfg.Description,
	}
}

// registrationLoop announces the gateway immediately and then on every
// interval tick until the context is cancelled. Failures are logged and
// retried on the next tick; the server treats repeated announcements as
// a keepalive.
func (g *Gateway) registrationLoop(ctx context.Context) {
	ticker := time.NewTicker(g.cfg.RegisterInterval)
	defer ticker.Stop()

	for {
		if err := g.register(ctx); err != nil {
			g.logger.Warn("gateway registration failed", "server", g.cfg.Server, "error", err)
		} else {
			g.logger.Debug("gateway registered", "server", g.cfg.Server)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// register POSTs the registration document to the DevIoT server.
func (g *Gateway) register(ctx context.Context) error {
	body, err := json.Marshal(g.Model())
	if err != nil {
		return fmt.Errorf("encoding registration: %w", err)
	}

	url := fmt.Sprintf("http://%s/api/v1/gateways", g.cfg.Server)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building registration request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return fmt.Errorf("%w: server returned %d", ErrRegistrationFailed, resp.StatusCode)
	}
	return nil
}
