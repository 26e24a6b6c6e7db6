package sensors

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/markusressel/light2servo/internal/configuration"
	"github.com/tarm/serial"
)

const serialReadTimeout = 500 * time.Millisecond

type serialPort interface {
	io.ReadWriteCloser
	// Flush discards buffered input that has not been read yet
	Flush() error
}

// SerialSensor reads newline terminated samples from a microcontroller
// (e.g. an Arduino printing analogRead values) attached to a serial port.
type SerialSensor struct {
	Config configuration.SensorConfig `json:"configuration"`

	port   serialPort
	reader *bufio.Reader
}

func NewSerialSensor(config configuration.SensorConfig) (*SerialSensor, error) {
	c := &serial.Config{
		Name:        config.Serial.Device,
		Baud:        config.Serial.Baud,
		ReadTimeout: serialReadTimeout,
	}
	port, err := serial.OpenPort(c)
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", config.Serial.Device, err)
	}

	return newSerialSensor(config, port), nil
}

func newSerialSensor(config configuration.SensorConfig, port serialPort) *SerialSensor {
	return &SerialSensor{
		Config: config,
		port:   port,
		reader: bufio.NewReader(port),
	}
}

func (sensor *SerialSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor *SerialSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor *SerialSensor) GetValue() (int, error) {
	// only the most recent sample is of interest
	if err := sensor.port.Flush(); err != nil {
		return 0, fmt.Errorf("sensor %s: flush: %w", sensor.GetId(), err)
	}
	sensor.reader.Reset(sensor.port)

	request := sensor.Config.Serial.Request
	if len(request) > 0 {
		if _, err := sensor.port.Write([]byte(request)); err != nil {
			return 0, fmt.Errorf("sensor %s: write request: %w", sensor.GetId(), err)
		}
	} else {
		// a streaming device may be in the middle of a line, skip it
		if _, err := sensor.reader.ReadString('\n'); err != nil {
			return 0, fmt.Errorf("sensor %s: read: %w", sensor.GetId(), err)
		}
	}

	line, err := sensor.reader.ReadString('\n')
	if err != nil {
		return 0, fmt.Errorf("sensor %s: read: %w", sensor.GetId(), err)
	}

	return parseSample(sensor.GetId(), line)
}

func (sensor *SerialSensor) Close() error {
	return sensor.port.Close()
}
