package configuration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func createValidConfig() Configuration {
	return Configuration{
		Control: ControlConfig{
			SmoothingFactor:   0.05,
			Deadband:          2,
			Speed:             0.1,
			IdleTimeout:       1 * time.Second,
			SettleDelay:       10 * time.Millisecond,
			LoopDelay:         20 * time.Millisecond,
			StatusInterval:    150 * time.Millisecond,
			DarknessThreshold: 400,
			InputRange:        Range{Min: 0, Max: 1023},
			OutputRange:       Range{Min: -10, Max: 190},
			AngleRange:        Range{Min: 0, Max: 180},
			RawWindowSize:     50,
		},
		Sensor: SensorConfig{
			ID: "light",
			File: &FileSensorConfig{
				Path: "/sys/bus/iio/devices/iio:device0/in_voltage0_raw",
			},
		},
		Actuator: ActuatorConfig{
			ID:            "servo",
			MinPulseWidth: 500 * time.Microsecond,
			MaxPulseWidth: 2500 * time.Microsecond,
			Period:        20 * time.Millisecond,
			SysfsPwm: &SysfsPwmActuatorConfig{
				Chip:    "/sys/class/pwm/pwmchip0",
				Channel: 0,
			},
		},
		Display: DisplayConfig{
			Columns: 16,
			Rows:    2,
			Banner:  "Light-Servo Ctrl",
		},
	}
}

func TestValidateValidConfig(t *testing.T) {
	// GIVEN
	config := createValidConfig()

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.NoError(t, err)
}

func TestValidateSmoothingFactorOutOfRange(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Control.SmoothingFactor = 0

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "control: smoothingFactor must be in (0..1], got 0")
}

func TestValidateSpeedOutOfRange(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Control.Speed = 1.5

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "control: speed must be in (0..1], got 1.5")
}

func TestValidateEmptyRange(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Control.AngleRange = Range{Min: 180, Max: 0}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "control: angleRange must not be empty, got 180..0")
}

func TestValidateAngleRangeBeyondServo(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Control.AngleRange = Range{Min: 0, Max: 270}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "control: angleRange must be within 0..180, got 0..270")

	// GIVEN
	config.Control.AngleRange = Range{Min: -10, Max: 180}

	// WHEN
	err = validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "control: angleRange must be within 0..180, got -10..180")
}

func TestValidateSensorSubConfigIsMissing(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Sensor.File = nil

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "sensor light: sub-configuration for sensor is missing, use one of: file | cmd | serial | virtual")
}

func TestValidateSensorMultipleSubConfigs(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Sensor.Virtual = &VirtualSensorConfig{Value: 512}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "sensor light: only one sensor type can be used per sensor definition block")
}

func TestValidateSerialSensorBaud(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Sensor.File = nil
	config.Sensor.Serial = &SerialSensorConfig{Device: "/dev/ttyUSB0"}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "sensor light: invalid baud rate 0")
}

func TestValidateActuatorSubConfigIsMissing(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Actuator.SysfsPwm = nil

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "actuator servo: sub-configuration for actuator is missing, use one of: sysfsPwm | bcm | file")
}

func TestValidateActuatorPulseWidth(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Actuator.MaxPulseWidth = 400 * time.Microsecond

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "actuator servo: invalid pulse width range 500µs..400µs")
}

func TestValidateBcmActuatorPin(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Actuator.SysfsPwm = nil
	config.Actuator.Bcm = &BcmActuatorConfig{Pin: 17}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "actuator servo: pin 17 does not support PWM0, use one of: [12 18]")
}

func TestValidateDisplayTooSmall(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Display.Rows = 1

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "display: at least 2 rows and 1 column are required, got 16x1")
}

func TestValidateIndicatorMultipleSubConfigs(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Indicator = IndicatorConfig{
		Gpio: &GpioIndicatorConfig{Chip: "gpiochip0", Line: 13},
		Led:  &LedIndicatorConfig{Path: "/sys/class/leds/led0/brightness"},
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "indicator: only one indicator type can be used")
}

func TestValidateMqttTopicWildcard(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Mqtt = MqttConfig{
		Enabled: true,
		Broker:  "tcp://localhost:1883",
		Topic:   "light2servo/#",
	}

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "mqtt: topic 'light2servo/#' must not contain wildcards")
}

func TestValidateBcmActuatorPeriod(t *testing.T) {
	// GIVEN
	config := createValidConfig()
	config.Actuator.SysfsPwm = nil
	config.Actuator.Bcm = &BcmActuatorConfig{Pin: 18}
	config.Actuator.Period = 10 * time.Millisecond

	// WHEN
	err := validateConfig(&config, "")

	// THEN
	assert.EqualError(t, err, "actuator servo: bcm pwm only supports a period of 20ms")
}
