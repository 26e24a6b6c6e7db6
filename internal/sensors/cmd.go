package sensors

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/markusressel/light2servo/internal/configuration"
	"github.com/markusressel/light2servo/internal/util"
)

type CmdSensor struct {
	Config configuration.SensorConfig `json:"configuration"`
}

func (sensor CmdSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor CmdSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor CmdSensor) GetValue() (int, error) {
	timeout := 2 * time.Second
	exec := sensor.Config.Cmd.Exec
	args := sensor.Config.Cmd.Args
	result, err := util.SafeCmdExecution(exec, args, timeout)
	if err != nil {
		return 0, fmt.Errorf("sensor %s: %w", sensor.GetId(), err)
	}

	return parseSample(sensor.GetId(), result)
}

// parseSample parses a single integer sample, tolerating a trailing fraction
func parseSample(sensorId string, text string) (int, error) {
	text = strings.TrimSpace(text)
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("sensor %s: unable to parse sample '%s': %w", sensorId, text, err)
	}
	if math.IsNaN(value) || value < math.MinInt32 || value > math.MaxInt32 {
		return 0, fmt.Errorf("sensor %s: sample '%s' is out of range", sensorId, text)
	}
	return int(value), nil
}
