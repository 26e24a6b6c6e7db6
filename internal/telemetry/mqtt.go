package telemetry

import (
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/markusressel/light2servo/internal/configuration"
	"github.com/markusressel/light2servo/internal/ui"
)

const (
	connectTimeout = 10 * time.Second
	systemTimeout  = 2 * time.Second
)

// mqttClient is the part of paho.Client used by the sink
type mqttClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Disconnect(quiesce uint)
}

// MqttSink publishes records to an MQTT broker. Status records use QoS 0 and
// are not retained, the online/offline state of the daemon is retained on
// the system topic.
type MqttSink struct {
	client      mqttClient
	topic       string
	systemTopic string
}

func NewMqttSink(config configuration.MqttConfig) (*MqttSink, error) {
	opts := paho.NewClientOptions().
		AddBroker(config.Broker).
		SetClientID(config.ClientId).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5*time.Second).
		SetWill(config.SystemTopic, SystemOffline, 1, true).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			ui.Warning("MQTT connection lost: %v", err)
		})
	if config.Username != "" {
		opts.SetUsername(config.Username)
		opts.SetPassword(config.Password)
	}

	client := paho.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("connection timeout")
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	sink := newMqttSink(config, client)
	if err := sink.publishSystem(SystemOnline); err != nil {
		ui.Warning("Unable to publish online state: %v", err)
	}
	return sink, nil
}

func newMqttSink(config configuration.MqttConfig, client mqttClient) *MqttSink {
	return &MqttSink{
		client:      client,
		topic:       config.Topic,
		systemTopic: config.SystemTopic,
	}
}

// Publish hands the record to the client without waiting for delivery
func (s *MqttSink) Publish(record Record) error {
	payload, err := FormatPayload(record)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}
	s.client.Publish(s.topic, 0, false, payload)
	return nil
}

func (s *MqttSink) publishSystem(state string) error {
	token := s.client.Publish(s.systemTopic, 1, true, state)
	if token == nil {
		return nil
	}
	if !token.WaitTimeout(systemTimeout) {
		return fmt.Errorf("publish system timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish system: %w", err)
	}
	return nil
}

// Close publishes the offline state and disconnects from the broker.
func (s *MqttSink) Close() error {
	err := s.publishSystem(SystemOffline)
	s.client.Disconnect(1000)
	return err
}
