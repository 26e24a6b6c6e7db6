package sensors

import (
	"fmt"
	"math"

	"github.com/markusressel/light2servo/internal/configuration"
	"github.com/markusressel/light2servo/internal/util"
)

// FileSensor reads the raw value from a file, typically an IIO adc channel like
// /sys/bus/iio/devices/iio:device0/in_voltage0_raw
type FileSensor struct {
	Config configuration.SensorConfig `json:"configuration"`
}

func (sensor FileSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor FileSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor FileSensor) GetValue() (int, error) {
	filePath, err := util.ExpandHomeDir(sensor.Config.File.Path)
	if err != nil {
		return 0, err
	}

	integer, err := util.ReadIntFromFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("sensor %s: unable to read int from file %s: %w", sensor.GetId(), filePath, err)
	}

	scale := sensor.Config.File.Scale
	if scale > 0 {
		integer = int(math.Round(float64(integer) / scale))
	}

	return integer, nil
}
