package sensors

import (
	"fmt"

	"github.com/markusressel/light2servo/internal/configuration"
	cmap "github.com/orcaman/concurrent-map/v2"
)

const (
	MinValue = 0
	MaxValue = 1023
)

var (
	SensorMap = cmap.New[Sensor]()
)

// Sensor is an analog light sensor source
type Sensor interface {
	GetId() string

	GetConfig() configuration.SensorConfig

	// GetValue returns the current raw reading of this sensor
	GetValue() (int, error)
}

func NewSensor(config configuration.SensorConfig) (Sensor, error) {
	if config.File != nil {
		return &FileSensor{
			Config: config,
		}, nil
	}

	if config.Cmd != nil {
		return &CmdSensor{
			Config: config,
		}, nil
	}

	if config.Serial != nil {
		sensor, err := NewSerialSensor(config)
		if err != nil {
			return nil, err
		}
		return sensor, nil
	}

	if config.Virtual != nil {
		return &VirtualSensor{
			Config: config,
			Value:  config.Virtual.Value,
		}, nil
	}

	return nil, fmt.Errorf("no matching sensor type for sensor: %s", config.ID)
}
