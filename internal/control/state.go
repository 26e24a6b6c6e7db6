package control

import "time"

// LoopState is owned exclusively by the goroutine running the loop
type LoopState struct {
	SmoothedLight float64
	CurrentAngle  float64
	// Engaged mirrors whether the actuator is acquired
	Engaged    bool
	LastMove   time.Time
	LastStatus time.Time
}

// Status is a snapshot of the loop, published after every cycle
type Status struct {
	Timestamp  time.Time `json:"timestamp"`
	ActuatorId string    `json:"actuatorId"`

	Raw           int     `json:"raw"`
	SmoothedLight float64 `json:"smoothedLight"`
	TargetAngle   float64 `json:"targetAngle"`
	CurrentAngle  float64 `json:"currentAngle"`
	Engaged       bool    `json:"engaged"`
	Dark          bool    `json:"dark"`

	RawMin float64 `json:"rawMin"`
	RawMax float64 `json:"rawMax"`

	Iterations      uint64        `json:"iterations"`
	AcquireCount    uint64        `json:"acquireCount"`
	ReleaseCount    uint64        `json:"releaseCount"`
	EngagedDuration time.Duration `json:"engagedDuration"`
}
