package sensors

import (
	"github.com/markusressel/light2servo/internal/configuration"
)

// VirtualSensor always returns the same value, it is meant for dry runs
type VirtualSensor struct {
	Config configuration.SensorConfig `json:"configuration"`
	Value  int                        `json:"value"`
}

func (sensor VirtualSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor VirtualSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor VirtualSensor) GetValue() (int, error) {
	return sensor.Value, nil
}

func (sensor *VirtualSensor) SetValue(value int) {
	sensor.Value = value
}
