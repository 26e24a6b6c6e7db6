package control

import (
	"time"

	"github.com/markusressel/light2servo/internal/configuration"
	"github.com/markusressel/light2servo/internal/util"
)

// Parameters are the tuning constants of the control loop
type Parameters struct {
	SmoothingFactor   float64
	Deadband          float64
	Speed             float64
	IdleTimeout       time.Duration
	SettleDelay       time.Duration
	LoopDelay         time.Duration
	StatusInterval    time.Duration
	DarknessThreshold float64

	InputRange  configuration.Range
	OutputRange configuration.Range
	AngleRange  configuration.Range

	RawWindowSize int
	Banner        string
}

func NewParameters(control configuration.ControlConfig, display configuration.DisplayConfig) Parameters {
	return Parameters{
		SmoothingFactor:   control.SmoothingFactor,
		Deadband:          control.Deadband,
		Speed:             control.Speed,
		IdleTimeout:       control.IdleTimeout,
		SettleDelay:       control.SettleDelay,
		LoopDelay:         control.LoopDelay,
		StatusInterval:    control.StatusInterval,
		DarknessThreshold: control.DarknessThreshold,
		InputRange:        control.InputRange,
		OutputRange:       control.OutputRange,
		AngleRange:        control.AngleRange,
		RawWindowSize:     control.RawWindowSize,
		Banner:            display.Banner,
	}
}

// DefaultParameters mirrors the configuration defaults
func DefaultParameters() Parameters {
	return Parameters{
		SmoothingFactor:   0.05,
		Deadband:          2,
		Speed:             0.1,
		IdleTimeout:       1000 * time.Millisecond,
		SettleDelay:       10 * time.Millisecond,
		LoopDelay:         20 * time.Millisecond,
		StatusInterval:    150 * time.Millisecond,
		DarknessThreshold: 400,
		InputRange:        configuration.Range{Min: 0, Max: 1023},
		OutputRange:       configuration.Range{Min: -10, Max: 190},
		AngleRange:        configuration.Range{Min: 0, Max: 180},
		RawWindowSize:     50,
		Banner:            "Light-Servo Ctrl",
	}
}

// Smooth folds a raw sample into the exponential moving average
func (p Parameters) Smooth(smoothed float64, raw int) float64 {
	return util.UpdateExponentialAvg(smoothed, p.SmoothingFactor, float64(raw))
}

// TargetAngle maps a light level onto the (overscaled) output range
// and clamps the result to the travel of the actuator
func (p Parameters) TargetAngle(light float64) float64 {
	angle := util.MapRange(light, p.InputRange.Min, p.InputRange.Max, p.OutputRange.Min, p.OutputRange.Max)
	return util.Coerce(angle, p.AngleRange.Min, p.AngleRange.Max)
}

// IsDark reports whether the darkness indicator should be active
func (p Parameters) IsDark(light float64) bool {
	return light < p.DarknessThreshold
}
