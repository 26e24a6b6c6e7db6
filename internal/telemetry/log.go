package telemetry

import (
	"github.com/markusressel/light2servo/internal/ui"
)

// LogSink prints records as debug messages
type LogSink struct{}

func (s LogSink) Publish(record Record) error {
	ui.Debug("%s", FormatDebugLine(record))
	return nil
}

func (s LogSink) Close() error {
	return nil
}
