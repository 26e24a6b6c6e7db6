// Package telemetry forwards the periodic status record of the control loop
// to the debug log and optionally to an MQTT broker.
package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const (
	SystemOnline  = "online"
	SystemOffline = "offline"
)

// Record is a single status report of the control loop
type Record struct {
	Timestamp time.Time
	Target    int
	Actual    int
	Attached  bool
	Light     int
	Dark      bool
}

// Sink receives status records. Publishing must not block the control loop
// for long, errors are reported but never retried.
type Sink interface {
	Publish(record Record) error
	Close() error
}

// FormatDebugLine renders a record as "Target: 90 | Actual: 87 | Attached: Yes"
func FormatDebugLine(record Record) string {
	attached := "No"
	if record.Attached {
		attached = "Yes"
	}
	return fmt.Sprintf("Target: %d | Actual: %d | Attached: %s", record.Target, record.Actual, attached)
}

type Payload struct {
	Status StatusPayload `json:"status"`
}

type StatusPayload struct {
	Timestamp string `json:"timestamp"`
	Target    int    `json:"target"`
	Actual    int    `json:"actual"`
	Attached  bool   `json:"attached"`
	Light     int    `json:"light"`
	Dark      bool   `json:"dark"`
}

// FormatPayload creates the JSON payload of a record
func FormatPayload(record Record) ([]byte, error) {
	payload := Payload{
		Status: StatusPayload{
			Timestamp: record.Timestamp.UTC().Format(time.RFC3339),
			Target:    record.Target,
			Actual:    record.Actual,
			Attached:  record.Attached,
			Light:     record.Light,
			Dark:      record.Dark,
		},
	}
	return json.Marshal(payload)
}

// Multi publishes every record to all of its sinks
type Multi []Sink

func (m Multi) Publish(record Record) error {
	var errs []error
	for _, sink := range m {
		if err := sink.Publish(record); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, sink := range m {
		if err := sink.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
