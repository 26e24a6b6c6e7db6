package actuators

import (
	"fmt"

	"github.com/hjkoskel/govattu"
	"github.com/markusressel/light2servo/internal/configuration"
)

const (
	// 19.2MHz oscillator / 19 gives a ~1MHz pwm clock, so one range step is ~1µs
	bcmClockDivisor = 19
	// 20000 steps of ~1µs is a 50Hz signal
	bcmRange = 20000
)

// bcmPwm is the subset of the BCM2835 PWM0 peripheral used by the BcmActuator
type bcmPwm interface {
	setup()
	setPulseWidth(micros uint32)
	close() error
}

type govattuPwm struct {
	hw  govattu.Vattu
	pin uint8
}

func (p *govattuPwm) setup() {
	p.hw.PinMode(p.pin, govattu.ALT5) // ALT5 for PWM0
	p.hw.PwmSetMode(true, true, false, false)
	p.hw.PwmSetClock(bcmClockDivisor)
	p.hw.Pwm0SetRange(bcmRange)
}

func (p *govattuPwm) setPulseWidth(micros uint32) {
	p.hw.Pwm0Set(micros)
}

func (p *govattuPwm) close() error {
	return p.hw.Close()
}

// BcmActuator drives a servo with the hardware PWM0 of a Raspberry Pi
// by accessing the BCM peripheral registers directly.
type BcmActuator struct {
	Config   configuration.ActuatorConfig `json:"configuration"`
	Acquired bool                         `json:"acquired"`

	pwm bcmPwm
}

func NewBcmActuator(config configuration.ActuatorConfig) (*BcmActuator, error) {
	hw, err := govattu.Open()
	if err != nil {
		return nil, fmt.Errorf("open gpio: %w", err)
	}

	return newBcmActuator(config, &govattuPwm{hw: hw, pin: uint8(config.Bcm.Pin)}), nil
}

func newBcmActuator(config configuration.ActuatorConfig, pwm bcmPwm) *BcmActuator {
	return &BcmActuator{
		Config: config,
		pwm:    pwm,
	}
}

func (a BcmActuator) GetId() string {
	return a.Config.ID
}

func (a BcmActuator) GetConfig() configuration.ActuatorConfig {
	return a.Config
}

func (a *BcmActuator) Acquire() error {
	a.pwm.setup()
	a.Acquired = true
	return nil
}

func (a *BcmActuator) Release() error {
	// a zero duty cycle stops all pulses
	a.pwm.setPulseWidth(0)
	a.Acquired = false
	return nil
}

func (a BcmActuator) IsAcquired() bool {
	return a.Acquired
}

func (a *BcmActuator) SetAngle(angle int) error {
	if !a.Acquired {
		return ErrNotAcquired
	}
	pulseWidth := PulseWidth(a.Config, angle)
	a.pwm.setPulseWidth(uint32(pulseWidth.Microseconds()))
	return nil
}

func (a *BcmActuator) Close() error {
	if a.Acquired {
		_ = a.Release()
	}
	return a.pwm.close()
}
