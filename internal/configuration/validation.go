package configuration

import (
	"fmt"
	"strings"
	"time"

	"github.com/markusressel/light2servo/internal/util"
	"golang.org/x/exp/slices"
)

const (
	SensorTypeFile    = "file"
	SensorTypeCmd     = "cmd"
	SensorTypeSerial  = "serial"
	SensorTypeVirtual = "virtual"

	ActuatorTypeSysfsPwm = "sysfsPwm"
	ActuatorTypeBcm      = "bcm"
	ActuatorTypeFile     = "file"
)

const bcmPeriod = 20 * time.Millisecond

// mechanical range of a positional servo, in degrees
const (
	ServoMinAngle = 0
	ServoMaxAngle = 180
)

var (
	// pins that can be routed to PWM0
	bcmPwm0Pins = []int{12, 18}
)

func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}

func validateConfig(config *Configuration, path string) error {
	err := validateControl(&config.Control)
	if err != nil {
		return err
	}
	err = validateSensor(&config.Sensor)
	if err != nil {
		return err
	}
	err = validateActuator(&config.Actuator)
	if err != nil {
		return err
	}
	err = validateDisplay(&config.Display)
	if err != nil {
		return err
	}
	err = validateIndicator(&config.Indicator)
	if err != nil {
		return err
	}
	err = validateMqtt(&config.Mqtt)
	if err != nil {
		return err
	}

	if config.Sensor.Cmd != nil {
		if _, err := util.CheckFilePermissionsForExecution(path); err != nil {
			return fmt.Errorf("config file '%s' has invalid permissions: %s", path, err)
		}
	}

	return nil
}

func validateControl(config *ControlConfig) error {
	if config.SmoothingFactor <= 0 || config.SmoothingFactor > 1 {
		return fmt.Errorf("control: smoothingFactor must be in (0..1], got %v", config.SmoothingFactor)
	}
	if config.Speed <= 0 || config.Speed > 1 {
		return fmt.Errorf("control: speed must be in (0..1], got %v", config.Speed)
	}
	if config.Deadband < 0 {
		return fmt.Errorf("control: deadband must be >= 0, got %v", config.Deadband)
	}
	if config.LoopDelay <= 0 {
		return fmt.Errorf("control: loopDelay must be > 0, got %v", config.LoopDelay)
	}
	if config.IdleTimeout <= 0 {
		return fmt.Errorf("control: idleTimeout must be > 0, got %v", config.IdleTimeout)
	}
	if config.StatusInterval <= 0 {
		return fmt.Errorf("control: statusInterval must be > 0, got %v", config.StatusInterval)
	}
	if config.SettleDelay < 0 {
		return fmt.Errorf("control: settleDelay must be >= 0, got %v", config.SettleDelay)
	}
	if config.RawWindowSize <= 0 {
		return fmt.Errorf("control: rawWindowSize must be > 0, got %d", config.RawWindowSize)
	}

	ranges := map[string]Range{
		"inputRange":  config.InputRange,
		"outputRange": config.OutputRange,
		"angleRange":  config.AngleRange,
	}
	for _, name := range util.SortedKeys(ranges) {
		r := ranges[name]
		if r.Span() <= 0 {
			return fmt.Errorf("control: %s must not be empty, got %s", name, r.String())
		}
	}
	if config.AngleRange.Min < ServoMinAngle || config.AngleRange.Max > ServoMaxAngle {
		return fmt.Errorf("control: angleRange must be within %d..%d, got %s",
			ServoMinAngle, ServoMaxAngle, config.AngleRange.String())
	}

	return nil
}

func validateSensor(config *SensorConfig) error {
	subConfigs := 0
	if config.File != nil {
		subConfigs++
	}
	if config.Cmd != nil {
		subConfigs++
	}
	if config.Serial != nil {
		subConfigs++
	}
	if config.Virtual != nil {
		subConfigs++
	}
	if subConfigs > 1 {
		return fmt.Errorf("sensor %s: only one sensor type can be used per sensor definition block", config.ID)
	}
	if subConfigs <= 0 {
		return fmt.Errorf("sensor %s: sub-configuration for sensor is missing, use one of: %s",
			config.ID, strings.Join([]string{SensorTypeFile, SensorTypeCmd, SensorTypeSerial, SensorTypeVirtual}, " | "))
	}

	if config.File != nil {
		if len(config.File.Path) <= 0 {
			return fmt.Errorf("sensor %s: no file path provided", config.ID)
		}
		if config.File.Scale < 0 {
			return fmt.Errorf("sensor %s: scale must be >= 0", config.ID)
		}
	}

	if config.Cmd != nil {
		if len(config.Cmd.Exec) <= 0 {
			return fmt.Errorf("sensor %s: no executable provided", config.ID)
		}
	}

	if config.Serial != nil {
		if len(config.Serial.Device) <= 0 {
			return fmt.Errorf("sensor %s: no serial device provided", config.ID)
		}
		if config.Serial.Baud <= 0 {
			return fmt.Errorf("sensor %s: invalid baud rate %d", config.ID, config.Serial.Baud)
		}
	}

	return nil
}

func validateActuator(config *ActuatorConfig) error {
	subConfigs := 0
	if config.SysfsPwm != nil {
		subConfigs++
	}
	if config.Bcm != nil {
		subConfigs++
	}
	if config.File != nil {
		subConfigs++
	}
	if subConfigs > 1 {
		return fmt.Errorf("actuator %s: only one actuator type can be used per actuator definition block", config.ID)
	}
	if subConfigs <= 0 {
		return fmt.Errorf("actuator %s: sub-configuration for actuator is missing, use one of: %s",
			config.ID, strings.Join([]string{ActuatorTypeSysfsPwm, ActuatorTypeBcm, ActuatorTypeFile}, " | "))
	}

	if config.MinPulseWidth <= 0 || config.MaxPulseWidth <= config.MinPulseWidth {
		return fmt.Errorf("actuator %s: invalid pulse width range %v..%v", config.ID, config.MinPulseWidth, config.MaxPulseWidth)
	}
	if config.Period < config.MaxPulseWidth {
		return fmt.Errorf("actuator %s: period %v is shorter than maxPulseWidth %v", config.ID, config.Period, config.MaxPulseWidth)
	}

	if config.SysfsPwm != nil {
		if len(config.SysfsPwm.Chip) <= 0 {
			return fmt.Errorf("actuator %s: no pwm chip path provided", config.ID)
		}
		if config.SysfsPwm.Channel < 0 {
			return fmt.Errorf("actuator %s: invalid pwm channel %d", config.ID, config.SysfsPwm.Channel)
		}
	}

	if config.Bcm != nil {
		if !slices.Contains(bcmPwm0Pins, config.Bcm.Pin) {
			return fmt.Errorf("actuator %s: pin %d does not support PWM0, use one of: %v", config.ID, config.Bcm.Pin, bcmPwm0Pins)
		}
		if config.Period != bcmPeriod {
			return fmt.Errorf("actuator %s: bcm pwm only supports a period of %v", config.ID, bcmPeriod)
		}
	}

	if config.File != nil {
		if len(config.File.Path) <= 0 {
			return fmt.Errorf("actuator %s: no file path provided", config.ID)
		}
	}

	return nil
}

func validateDisplay(config *DisplayConfig) error {
	subConfigs := 0
	if config.Terminal != nil {
		subConfigs++
	}
	if config.File != nil {
		subConfigs++
	}
	if config.Log != nil {
		subConfigs++
	}
	if subConfigs > 1 {
		return fmt.Errorf("display: only one display type can be used")
	}

	if config.Columns <= 0 || config.Rows < 2 {
		return fmt.Errorf("display: at least 2 rows and 1 column are required, got %dx%d", config.Columns, config.Rows)
	}

	if config.File != nil && len(config.File.Path) <= 0 {
		return fmt.Errorf("display: no file path provided")
	}

	return nil
}

func validateIndicator(config *IndicatorConfig) error {
	if config.Gpio != nil && config.Led != nil {
		return fmt.Errorf("indicator: only one indicator type can be used")
	}

	if config.Gpio != nil {
		if len(config.Gpio.Chip) <= 0 {
			return fmt.Errorf("indicator: no gpio chip provided")
		}
		if config.Gpio.Line < 0 {
			return fmt.Errorf("indicator: invalid gpio line %d", config.Gpio.Line)
		}
	}

	if config.Led != nil && len(config.Led.Path) <= 0 {
		return fmt.Errorf("indicator: no led brightness path provided")
	}

	return nil
}

func validateMqtt(config *MqttConfig) error {
	if !config.Enabled {
		return nil
	}
	if len(config.Broker) <= 0 {
		return fmt.Errorf("mqtt: no broker provided")
	}
	if len(config.Topic) <= 0 {
		return fmt.Errorf("mqtt: no topic provided")
	}
	if strings.ContainsAny(config.Topic, "+#") {
		return fmt.Errorf("mqtt: topic '%s' must not contain wildcards", config.Topic)
	}
	return nil
}
