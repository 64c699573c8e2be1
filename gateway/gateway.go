package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/ailuropoda0/deviot-gateway-go/internal/infrastructure/config"
	"github.com/ailuropoda0/deviot-gateway-go/internal/infrastructure/mqtt"
	"github.com/ailuropoda0/deviot-gateway-go/internal/state"
	"github.com/ailuropoda0/deviot-gateway-go/thing"
)

// Mode identifies how the DevIoT server pulls or receives gateway data.
// The integer codes are part of the registration wire format. This SDK
// always operates in ModeMQTT; the other codes exist for the wire
// contract with older gateways.
type Mode int

// Gateway modes.
const (
	ModeHTTPPull Mode = 0
	ModeHTTPPush Mode = 1
	ModeMQTT     Mode = 2
)

// defaultRegisterInterval is the delay between registration announcements.
const defaultRegisterInterval = 5 * time.Second

// Config describes a gateway identity and its connections.
type Config struct {
	Name        string
	Kind        string
	Owner       string
	Description string

	// Server is the DevIoT server host:port registrations are sent to.
	Server string

	// Broker is the MQTT broker the gateway and server share.
	Broker BrokerConfig

	// QoS is the MQTT quality of service for data and subscriptions.
	QoS int

	// RegisterInterval defaults to 5 seconds.
	RegisterInterval time.Duration
}

// BrokerConfig contains MQTT broker connection details.
type BrokerConfig struct {
	Host     string
	Port     int
	TLS      bool
	ClientID string
	Username string
	Password string
}

// Logger defines the logging collaborator used by the Gateway.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Connector is the MQTT transport surface the gateway needs. It is
// satisfied by *mqtt.Client; tests substitute a fake.
type Connector interface {
	SubscribeActions(handler mqtt.MessageHandler) error
	PublishData(payload []byte) error
	Close() error
}

// StateStore persists last-known thing data across restarts.
// It is satisfied by *state.Store.
type StateStore interface {
	Save(ctx context.Context, thingID string, data map[string]any) error
	Load(ctx context.Context, thingID string) (map[string]any, error)
}

// TelemetrySink records published thing data for history queries.
// It is satisfied by *telemetry.Client.
type TelemetrySink interface {
	WriteThingData(thingID, thingKind string, data map[string]any)
}

// Gateway connects registered Things to a DevIoT server.
type Gateway struct {
	cfg    Config
	topics mqtt.Topics

	mu     sync.RWMutex
	things []*thing.Thing // insertion order, for the registration model
	byID   map[string]*thing.Thing

	// stateMu serializes property reads and writes across things. The
	// thing package itself is unsynchronized; action dispatch runs on
	// MQTT handler goroutines while SendData reads from the caller's
	// goroutine, so every access to thing state goes through this lock.
	stateMu sync.Mutex

	conn      Connector
	store     StateStore
	telemetry TelemetrySink
	logger    Logger

	httpClient *http.Client
	started    bool
}

// New creates a gateway from its configuration. Optional collaborators
// (logger, state store, telemetry) are attached with the Set* methods
// before Start.
func New(cfg Config) *Gateway {
	if cfg.Kind == "" {
		cfg.Kind = "device"
	}
	if cfg.RegisterInterval <= 0 {
		cfg.RegisterInterval = defaultRegisterInterval
	}

	return &Gateway{
		cfg:        cfg,
		topics:     mqtt.Topics{Owner: cfg.Owner, Gateway: cfg.Name},
		byID:       make(map[string]*thing.Thing),
		logger:     noopLogger{},
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// SetLogger sets the logging collaborator.
func (g *Gateway) SetLogger(logger Logger) *Gateway {
	g.logger = logger
	return g
}

// SetStateStore enables last-known-state persistence.
func (g *Gateway) SetStateStore(store StateStore) *Gateway {
	g.store = store
	return g
}

// SetTelemetry enables property-history recording.
func (g *Gateway) SetTelemetry(sink TelemetrySink) *Gateway {
	g.telemetry = sink
	return g
}

// SetConnector replaces the MQTT transport. Primarily a test seam; when
// unset, Start dials the configured broker.
func (g *Gateway) SetConnector(conn Connector) *Gateway {
	g.conn = conn
	return g
}

// RegisterThing adds a thing to the gateway. Registering an id again
// replaces the previous thing. When a state store is attached, the
// thing's last persisted property values are restored.
func (g *Gateway) RegisterThing(ctx context.Context, t *thing.Thing) {
	if g.store != nil {
		data, err := g.store.Load(ctx, t.ID)
		switch {
		case err == nil:
			g.stateMu.Lock()
			t.UpdateProperties(data)
			g.stateMu.Unlock()
			g.logger.Debug("thing state restored", "thing", t.ID, "properties", len(data))
		case errors.Is(err, state.ErrSnapshotNotFound):
			// First sight of this thing, nothing to restore.
		default:
			g.logger.Warn("thing state restore failed", "thing", t.ID, "error", err)
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.byID[t.ID]; exists {
		for i, existing := range g.things {
			if existing.ID == t.ID {
				g.things[i] = t
				break
			}
		}
	} else {
		g.things = append(g.things, t)
	}
	g.byID[t.ID] = t

	g.logger.Info("thing registered", "thing", t.String())
}

// DeregisterThing removes a thing by id.
// Returns ErrThingNotFound if the id is unknown.
func (g *Gateway) DeregisterThing(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.byID[id]; !exists {
		return fmt.Errorf("%w: %q", ErrThingNotFound, id)
	}
	delete(g.byID, id)
	for i, t := range g.things {
		if t.ID == id {
			g.things = append(g.things[:i], g.things[i+1:]...)
			break
		}
	}
	return nil
}

// Thing returns a registered thing by id.
// Returns ErrThingNotFound if the id is unknown.
func (g *Gateway) Thing(id string) (*thing.Thing, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	t, ok := g.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrThingNotFound, id)
	}
	return t, nil
}

// Things returns the registered things in registration order.
func (g *Gateway) Things() []*thing.Thing {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]*thing.Thing(nil), g.things...)
}

// Start connects to the MQTT broker, subscribes to the action topic, and
// launches the periodic registration loop. The loop stops when ctx is
// cancelled; call Stop to disconnect the transport.
func (g *Gateway) Start(ctx context.Context) error {
	g.mu.Lock()
	if g.started {
		g.mu.Unlock()
		return ErrAlreadyStarted
	}
	g.started = true
	conn := g.conn
	g.mu.Unlock()

	if conn == nil {
		client, err := mqtt.Connect(g.mqttConfig(), g.topics)
		if err != nil {
			g.mu.Lock()
			g.started = false
			g.mu.Unlock()
			return fmt.Errorf("connecting to broker: %w", err)
		}
		client.SetLogger(g.logger)
		conn = client

		g.mu.Lock()
		g.conn = conn
		g.mu.Unlock()
	}

	if err := conn.SubscribeActions(g.handleActionMessage); err != nil {
		g.mu.Lock()
		g.started = false
		g.mu.Unlock()
		return fmt.Errorf("subscribing to action topic: %w", err)
	}

	go g.registrationLoop(ctx)

	g.logger.Info("gateway started",
		"gateway", g.cfg.Name,
		"server", g.cfg.Server,
		"data_topic", g.topics.Data(),
		"action_topic", g.topics.Action(),
	)
	return nil
}

// Stop disconnects the transport. The registration loop is stopped by
// cancelling the context passed to Start.
func (g *Gateway) Stop() error {
	g.mu.Lock()
	conn := g.conn
	g.started = false
	g.mu.Unlock()

	if conn == nil {
		return nil
	}
	return conn.Close()
}

// SendData publishes a thing's current property data to the data topic.
// The payload carries the thing id and name so the server can attribute
// the values. Attached state and telemetry sinks record the snapshot;
// their failures are logged, not returned.
func (g *Gateway) SendData(ctx context.Context, t *thing.Thing) error {
	g.mu.RLock()
	conn := g.conn
	g.mu.RUnlock()

	if conn == nil {
		return ErrNotStarted
	}

	g.stateMu.Lock()
	data := t.Data()
	g.stateMu.Unlock()

	message := make(map[string]any, len(data)+2)
	for k, v := range data {
		message[k] = v
	}
	message["id"] = t.ID
	message["name"] = t.Name

	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("encoding data for %s: %w", t, err)
	}
	if err := conn.PublishData(payload); err != nil {
		return fmt.Errorf("publishing data for %s: %w", t, err)
	}

	if g.store != nil {
		if err := g.store.Save(ctx, t.ID, data); err != nil {
			g.logger.Warn("thing state save failed", "thing", t.ID, "error", err)
		}
	}
	if g.telemetry != nil {
		g.telemetry.WriteThingData(t.ID, t.Kind, data)
	}

	g.logger.Debug("data published", "thing", t.ID, "properties", len(data))
	return nil
}

// handleActionMessage dispatches one incoming action command. The message
// is a JSON object carrying "id" (or "name") to resolve the thing,
// "action" to resolve the operation, and the action arguments. Malformed
// or unresolvable messages are logged and dropped.
func (g *Gateway) handleActionMessage(topic string, payload []byte) error {
	var message map[string]any
	if err := json.Unmarshal(payload, &message); err != nil {
		g.logger.Error("invalid action message", "topic", topic, "error", err)
		return nil
	}

	id, ok := message["id"].(string)
	if !ok || id == "" {
		id, ok = message["name"].(string)
	}
	if !ok || id == "" {
		g.logger.Error("action message missing thing id/name", "topic", topic)
		return nil
	}

	action, ok := message["action"].(string)
	if !ok || action == "" {
		g.logger.Error("action message missing action", "thing", id)
		return nil
	}

	t, err := g.resolveThing(id)
	if err != nil {
		g.logger.Error("action for unknown thing", "thing", id, "action", action)
		return nil
	}

	// CallAction filters the arguments down to the action's declared
	// parameters, so the envelope keys ride along harmlessly.
	g.stateMu.Lock()
	err = t.CallAction(action, message)
	g.stateMu.Unlock()
	if err != nil {
		g.logger.Error("action dispatch failed", "thing", id, "action", action, "error", err)
		return err
	}
	return nil
}

// resolveThing looks a thing up by id, falling back to its display name
// for servers that address things by name.
func (g *Gateway) resolveThing(id string) (*thing.Thing, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if t, ok := g.byID[id]; ok {
		return t, nil
	}
	for _, t := range g.things {
		if t.Name == id {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrThingNotFound, id)
}

// mqttConfig maps the public gateway config onto the transport config.
func (g *Gateway) mqttConfig() config.MQTTConfig {
	return config.MQTTConfig{
		Broker: config.MQTTBrokerConfig{
			Host:     g.cfg.Broker.Host,
			Port:     g.cfg.Broker.Port,
			TLS:      g.cfg.Broker.TLS,
			ClientID: g.cfg.Broker.ClientID,
		},
		Auth: config.MQTTAuthConfig{
			Username: g.cfg.Broker.Username,
			Password: g.cfg.Broker.Password,
		},
		QoS: g.cfg.QoS,
		Reconnect: config.MQTTReconnectConfig{
			InitialDelay: 1,
			MaxDelay:     60,
		},
	}
}
