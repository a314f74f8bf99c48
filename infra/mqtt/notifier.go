// Package mqtt publishes dispatch notifications to field units over an MQTT
// broker using Eclipse Paho.
package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/floodops/dispatch/core/events"
	"github.com/floodops/dispatch/infra/logger"
	"github.com/floodops/dispatch/internal/eventbus"
)

// Config defines the connection parameters for the Paho MQTT client.
type Config struct {
	Broker     string          `json:"broker"`
	ClientID   string          `json:"client_id"`
	Username   string          `json:"username"`
	Password   string          `json:"password"`
	UseTLS     bool            `json:"use_tls"`
	ClientCert string          `json:"client_cert"`
	ClientKey  string          `json:"client_key"`
	CABundle   string          `json:"ca_bundle"`
	QoS        map[string]byte `json:"qos"`
	LWTTopic   string          `json:"lwt_topic"`
	LWTPayload string          `json:"lwt_payload"`
	LWTQoS     byte            `json:"lwt_qos"`
	LWTRetain  bool            `json:"lwt_retain"`
	MaxRetries int             `json:"max_retries"`
	BackoffMS  int             `json:"backoff_ms"`
	TLSConfig  *tls.Config     `json:"-"`
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// Notifier publishes assignment events to unit and operations topics.
type Notifier struct {
	cli        pahoClient
	qos        map[string]byte
	maxRetries int
	backoff    time.Duration
	logger     logger.Logger
}

// NewNotifier connects to the MQTT broker.
func NewNotifier(cfg Config) (*Notifier, error) {
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}

	log := logger.New("mqtt_notifier")
	n := &Notifier{
		qos:        cfg.QoS,
		maxRetries: cfg.MaxRetries,
		backoff:    time.Duration(cfg.BackoffMS) * time.Millisecond,
		logger:     log,
	}
	if n.maxRetries <= 0 {
		n.maxRetries = 3
	}
	if n.backoff <= 0 {
		n.backoff = 100 * time.Millisecond
	}

	opts.OnConnect = func(paho.Client) {
		log.Infof("MQTT connected")
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}
	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	n.cli = c
	return n, nil
}

// NewClientOptions builds mqtt client options from Config.
func NewClientOptions(cfg Config) (*paho.ClientOptions, error) {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	if cfg.UseTLS {
		tlsCfg, err := cfg.LoadTLSConfig()
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}
	if cfg.LWTTopic != "" {
		opts.SetWill(cfg.LWTTopic, cfg.LWTPayload, cfg.LWTQoS, cfg.LWTRetain)
	}
	return opts, nil
}

// LoadTLSConfig loads the TLS configuration from the file paths in the config.
func (c Config) LoadTLSConfig() (*tls.Config, error) {
	if c.TLSConfig != nil {
		return c.TLSConfig, nil
	}
	if c.ClientCert == "" || c.ClientKey == "" || c.CABundle == "" {
		return nil, fmt.Errorf("tls config requires client_cert, client_key and ca_bundle")
	}
	cert, err := tls.LoadX509KeyPair(c.ClientCert, c.ClientKey)
	if err != nil {
		return nil, fmt.Errorf("load cert: %w", err)
	}
	caBytes, err := os.ReadFile(c.CABundle)
	if err != nil {
		return nil, fmt.Errorf("read ca: %w", err)
	}
	pool := x509.NewCertPool()
	pool.AppendCertsFromPEM(caBytes)
	cfg := &tls.Config{Certificates: []tls.Certificate{cert}, RootCAs: pool, MinVersion: tls.VersionTLS12}
	return cfg, nil
}

// NotifyAssignment publishes the commit to the operations topic and to the
// assigned unit's order topic.
func (n *Notifier) NotifyAssignment(ev events.AssignmentCommitted) error {
	order := struct {
		AssignmentID string  `json:"assignment_id"`
		IncidentID   string  `json:"incident_id"`
		IncidentType string  `json:"incident_type"`
		Severity     string  `json:"severity"`
		Address      string  `json:"address"`
		Lat          float64 `json:"lat"`
		Lon          float64 `json:"lon"`
		UnitID       string  `json:"unit_id"`
		ETAMinutes   int     `json:"eta_minutes"`
		Auto         bool    `json:"auto"`
		Timestamp    int64   `json:"timestamp"`
	}{
		AssignmentID: ev.Assignment.ID,
		IncidentID:   ev.Incident.ID,
		IncidentType: string(ev.Incident.Type),
		Severity:     string(ev.Incident.Severity),
		Address:      ev.Incident.Address,
		Lat:          ev.Incident.Latitude,
		Lon:          ev.Incident.Longitude,
		UnitID:       ev.Unit.ID,
		ETAMinutes:   ev.Assignment.EstimatedArrivalMinutes,
		Auto:         ev.Auto,
		Timestamp:    time.Now().UnixMilli(),
	}
	payload, err := json.Marshal(order)
	if err != nil {
		return err
	}
	if err := n.publish(fmt.Sprintf("units/%s/orders", ev.Unit.ID), "order", payload); err != nil {
		return err
	}
	return n.publish("dispatch/assignments", "event", payload)
}

// NotifyAutoAssign publishes the batch summary to the operations topic.
func (n *Notifier) NotifyAutoAssign(ev events.AutoAssignCompleted) error {
	payload, err := json.Marshal(struct {
		Requested int                        `json:"requested"`
		Outcomes  []events.AssignmentOutcome `json:"outcomes"`
		Timestamp int64                      `json:"timestamp"`
	}{Requested: ev.Requested, Outcomes: ev.Outcomes, Timestamp: time.Now().UnixMilli()})
	if err != nil {
		return err
	}
	return n.publish("dispatch/auto_assign", "event", payload)
}

func (n *Notifier) publish(topic, kind string, payload []byte) error {
	qos := byte(0)
	if q, ok := n.qos[kind]; ok {
		qos = q
	}
	var publishErr error
	for attempt := 0; attempt <= n.maxRetries; attempt++ {
		token := n.cli.Publish(topic, qos, false, payload)
		token.Wait()
		publishErr = token.Error()
		if publishErr == nil {
			n.logger.Infof("published to %s", topic)
			return nil
		}
		n.logger.Errorf("publish attempt %d failed: %v", attempt+1, publishErr)
		time.Sleep(n.backoff * time.Duration(1<<attempt))
	}
	return publishErr
}

// Run consumes the event bus until the subscription channel closes, publishing
// every assignment event it receives. It is meant to run in its own goroutine.
func (n *Notifier) Run(sub <-chan eventbus.Event) {
	for e := range sub {
		switch ev := e.(type) {
		case events.AssignmentCommitted:
			if err := n.NotifyAssignment(ev); err != nil {
				n.logger.Errorf("notify assignment: %v", err)
			}
		case events.AutoAssignCompleted:
			if err := n.NotifyAutoAssign(ev); err != nil {
				n.logger.Errorf("notify auto-assign: %v", err)
			}
		}
	}
}

// Disconnect gracefully closes the MQTT connection.
func (n *Notifier) Disconnect() {
	if n.cli != nil && n.cli.IsConnected() {
		n.cli.Disconnect(250)
	}
}
