package actuators

import (
	"errors"
	"fmt"
	"time"

	"github.com/markusressel/light2servo/internal/configuration"
	"github.com/markusressel/light2servo/internal/util"
	cmap "github.com/orcaman/concurrent-map/v2"
)

const (
	MinAngle = configuration.ServoMinAngle
	MaxAngle = configuration.ServoMaxAngle
)

var (
	ActuatorMap = cmap.New[Actuator]()

	// ErrNotAcquired is returned when an angle is commanded on a released actuator
	ErrNotAcquired = errors.New("actuator is not acquired")
)

// Actuator is a positional actuator (hobby servo) with a single rotational axis.
// While released, no control signal is generated and the actuator is silent.
type Actuator interface {
	GetId() string

	GetConfig() configuration.ActuatorConfig

	// Acquire starts generating the control signal
	Acquire() error
	// Release stops generating the control signal
	Release() error
	// IsAcquired indicates whether the actuator currently holds control
	IsAcquired() bool

	// SetAngle commands the given angle in degrees [0..180]
	SetAngle(angle int) error

	// Close releases all hardware resources
	Close() error
}

func NewActuator(config configuration.ActuatorConfig) (Actuator, error) {
	if config.SysfsPwm != nil {
		actuator, err := NewSysfsPwmActuator(config)
		if err != nil {
			return nil, err
		}
		return actuator, nil
	}

	if config.Bcm != nil {
		actuator, err := NewBcmActuator(config)
		if err != nil {
			return nil, err
		}
		return actuator, nil
	}

	if config.File != nil {
		return &FileActuator{
			Config: config,
		}, nil
	}

	return nil, fmt.Errorf("no matching actuator type for actuator: %s", config.ID)
}

// PulseWidth calculates the pulse width for the given angle, linearly interpolated
// between the configured min and max pulse width. Out of range angles are coerced.
func PulseWidth(config configuration.ActuatorConfig, angle int) time.Duration {
	angle = util.Coerce(angle, MinAngle, MaxAngle)
	ratio := util.Ratio(float64(angle), MinAngle, MaxAngle)
	span := float64(config.MaxPulseWidth - config.MinPulseWidth)
	return config.MinPulseWidth + time.Duration(ratio*span)
}
