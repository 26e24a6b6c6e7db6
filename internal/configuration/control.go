package configuration

import "time"

// ControlConfig holds the tuning constants of the control loop
type ControlConfig struct {
	// SmoothingFactor is the weight (alpha) of a new raw sample in the exponential moving average
	SmoothingFactor float64 `json:"smoothingFactor"`
	// Deadband is the minimum angle difference (in degrees) that warrants a move
	Deadband float64 `json:"deadband"`
	// Speed is the fraction of the remaining distance the actuator moves per cycle
	Speed float64 `json:"speed"`
	// IdleTimeout after which an engaged but unmoving actuator is released
	IdleTimeout time.Duration `json:"idleTimeout"`
	// SettleDelay after (re-)acquiring the actuator, before the first command
	SettleDelay time.Duration `json:"settleDelay"`
	// LoopDelay between two cycles
	LoopDelay time.Duration `json:"loopDelay"`
	// StatusInterval is the minimum time between two display/debug updates
	StatusInterval time.Duration `json:"statusInterval"`
	// DarknessThreshold below which the indicator is active
	DarknessThreshold float64 `json:"darknessThreshold"`

	InputRange  Range `json:"inputRange"`
	OutputRange Range `json:"outputRange"`
	AngleRange  Range `json:"angleRange"`

	// RawWindowSize is the number of raw samples kept to report sensor noise
	RawWindowSize int `json:"rawWindowSize"`
}
