package mqtt

import (
	"crypto/tls"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/ailuropoda0/deviot-gateway-go/internal/infrastructure/config"
)

// Connection constants.
const (
	// defaultConnectTimeout is the maximum time to wait for initial connection.
	defaultConnectTimeout = 10 * time.Second

	// defaultPublishTimeout is the maximum time to wait for publish acknowledgment.
	defaultPublishTimeout = 5 * time.Second

	// defaultDisconnectQuiesce is the time to wait for pending operations on disconnect.
	defaultDisconnectQuiesce = 1000 // milliseconds

	// defaultKeepAlive is the keepalive interval for the connection.
	defaultKeepAlive = 60 * time.Second

	// maxQoS is the maximum QoS level supported.
	maxQoS = 2

	// tlsMinVersion is the minimum TLS version for secure connections.
	tlsMinVersion = tls.VersionTLS12
)

// clientIDPrefixLen limits how much of a generated UUID goes into the
// client identifier; brokers commonly cap client IDs at 23 bytes.
const clientIDPrefixLen = 8

// buildClientOptions creates paho MQTT options from gateway config.
//
// This configures the broker URL (tcp:// or ssl://), client identity,
// credentials, clean session mode, and auto-reconnect with exponential
// backoff.
func buildClientOptions(cfg config.MQTTConfig) *pahomqtt.ClientOptions {
	opts := pahomqtt.NewClientOptions()

	scheme := "tcp"
	if cfg.Broker.TLS {
		scheme = "ssl"
	}
	opts.AddBroker(fmt.Sprintf("%s://%s:%d", scheme, cfg.Broker.Host, cfg.Broker.Port))

	clientID := cfg.Broker.ClientID
	if clientID == "" {
		clientID = "deviot-" + uuid.New().String()[:clientIDPrefixLen]
	}
	opts.SetClientID(clientID)

	if cfg.Auth.Username != "" {
		opts.SetUsername(cfg.Auth.Username)
		opts.SetPassword(cfg.Auth.Password)
	}

	opts.SetCleanSession(true)

	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(time.Duration(cfg.Reconnect.InitialDelay) * time.Second)
	opts.SetMaxReconnectInterval(time.Duration(cfg.Reconnect.MaxDelay) * time.Second)

	opts.SetConnectTimeout(defaultConnectTimeout)
	opts.SetKeepAlive(defaultKeepAlive)

	if cfg.Broker.TLS {
		opts.SetTLSConfig(&tls.Config{MinVersion: tlsMinVersion})
	}

	return opts
}

// configureLWT sets up Last Will and Testament on the gateway status topic.
//
// The broker publishes the will if the gateway disconnects unexpectedly,
// letting the DevIoT server mark the gateway offline.
func configureLWT(opts *pahomqtt.ClientOptions, topics Topics) {
	payload := fmt.Sprintf(
		`{"status":"offline","gateway":"%s","reason":"unexpected_disconnect","timestamp":"%s"}`,
		topics.Gateway,
		time.Now().UTC().Format(time.RFC3339),
	)
	opts.SetWill(topics.Status(), payload, 1, true)
}

// buildStatusPayload creates the JSON payload for gateway status messages.
func buildStatusPayload(gateway, status, reason string) string {
	if reason != "" {
		return fmt.Sprintf(
			`{"status":"%s","gateway":"%s","reason":"%s","timestamp":"%s"}`,
			status, gateway, reason, time.Now().UTC().Format(time.RFC3339),
		)
	}
	return fmt.Sprintf(
		`{"status":"%s","gateway":"%s","timestamp":"%s"}`,
		status, gateway, time.Now().UTC().Format(time.RFC3339),
	)
}
