package configuration

import "time"

type ActuatorConfig struct {
	ID string `json:"id"`

	// MinPulseWidth is the pulse width at the lower end of the angle range
	MinPulseWidth time.Duration `json:"minPulseWidth"`
	// MaxPulseWidth is the pulse width at the upper end of the angle range
	MaxPulseWidth time.Duration `json:"maxPulseWidth"`
	// Period of the PWM signal, 20ms for most hobby servos
	Period time.Duration `json:"period"`

	SysfsPwm *SysfsPwmActuatorConfig `json:"sysfsPwm,omitempty"`
	Bcm      *BcmActuatorConfig      `json:"bcm,omitempty"`
	File     *FileActuatorConfig     `json:"file,omitempty"`
}

type SysfsPwmActuatorConfig struct {
	// Chip is the path of the pwm chip, e.g. /sys/class/pwm/pwmchip0
	Chip    string `json:"chip"`
	Channel int    `json:"channel"`
}

type BcmActuatorConfig struct {
	// Pin is the BCM pin number, must be a PWM0 capable pin (12 or 18)
	Pin int `json:"pin"`
}

type FileActuatorConfig struct {
	Path string `json:"path"`
}
