package control

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/markusressel/light2servo/internal/actuators"
	"github.com/markusressel/light2servo/internal/displays"
	"github.com/markusressel/light2servo/internal/indicator"
	"github.com/markusressel/light2servo/internal/sensors"
	"github.com/markusressel/light2servo/internal/telemetry"
	"github.com/markusressel/light2servo/internal/ui"
	"github.com/markusressel/light2servo/internal/util"
)

// Controller drives an actuator from a light sensor reading.
// Init, Cycle and Run must be called from a single goroutine, GetStatus may be
// called concurrently.
type Controller struct {
	params    Parameters
	sensor    sensors.Sensor
	actuator  actuators.Actuator
	display   displays.Display
	indicator indicator.Indicator
	sink      telemetry.Sink
	clock     Clock

	state         LoopState
	raw           int
	rawWindow     *rolling.PointPolicy
	rawWindowSize int

	iterations      uint64
	acquireCount    uint64
	releaseCount    uint64
	engagedSince    time.Time
	engagedDuration time.Duration

	// last error per capability, to avoid repeating it every cycle
	lastErrors map[string]string

	statusMu sync.RWMutex
	status   Status
}

func NewController(
	params Parameters,
	sensor sensors.Sensor,
	actuator actuators.Actuator,
	display displays.Display,
	indicator indicator.Indicator,
	sink telemetry.Sink,
	clock Clock,
) *Controller {
	windowSize := params.RawWindowSize
	if windowSize <= 0 {
		windowSize = 1
	}
	return &Controller{
		params:        params,
		sensor:        sensor,
		actuator:      actuator,
		display:       display,
		indicator:     indicator,
		sink:          sink,
		clock:         clock,
		rawWindow:     util.CreateRollingWindow(windowSize),
		rawWindowSize: windowSize,
		lastErrors:    map[string]string{},
	}
}

// Init shows the banner and seeds the loop state from one real sample.
// The actuator is left released.
func (c *Controller) Init() error {
	c.report("display", c.display.Clear())
	c.report("display", c.display.SetCursor(0, 0))
	c.report("display", c.display.Print(c.params.Banner))

	raw, err := c.sensor.GetValue()
	if err != nil {
		return fmt.Errorf("initial sample of sensor %s: %w", c.sensor.GetId(), err)
	}
	raw = c.coerceRaw(raw)

	c.raw = raw
	util.FillWindow(c.rawWindow, c.rawWindowSize, float64(raw))
	c.state = LoopState{
		SmoothedLight: float64(raw),
		CurrentAngle:  c.params.TargetAngle(float64(raw)),
		Engaged:       c.actuator.IsAcquired(),
	}
	if c.state.Engaged {
		c.engagedSince = c.clock.Now()
	}

	ui.Info("Seeded light level %d, angle %d", raw, util.RoundToInt(c.state.CurrentAngle))
	c.publishStatus(c.clock.Now(), c.state.CurrentAngle)
	return nil
}

// Cycle runs a single iteration of the control loop
func (c *Controller) Cycle() {
	c.iterations++

	// sensing & smoothing
	raw, err := c.sensor.GetValue()
	if err != nil {
		c.report("sensor", fmt.Errorf("reusing previous sample %d: %w", c.raw, err))
		raw = c.raw
	} else {
		c.report("sensor", nil)
		raw = c.coerceRaw(raw)
	}
	c.raw = raw
	c.rawWindow.Append(float64(raw))
	c.state.SmoothedLight = c.params.Smooth(c.state.SmoothedLight, raw)

	target := c.params.TargetAngle(c.state.SmoothedLight)

	// deadband & engagement
	if math.Abs(target-c.state.CurrentAngle) > c.params.Deadband {
		c.move(target)
	} else if c.actuator.IsAcquired() && c.clock.Now().Sub(c.state.LastMove) > c.params.IdleTimeout {
		ui.Info("Detaching servo due to inactivity.")
		c.release()
	}
	c.state.Engaged = c.actuator.IsAcquired()

	now := c.clock.Now()
	if now.Sub(c.state.LastStatus) > c.params.StatusInterval {
		c.reportStatus(now, target)
		c.state.LastStatus = now
	}

	dark := c.params.IsDark(c.state.SmoothedLight)
	c.report("indicator", c.indicator.Set(dark))

	c.publishStatus(now, target)
}

// move advances the current angle one step towards target,
// (re-)acquiring the actuator first if necessary
func (c *Controller) move(target float64) {
	if !c.actuator.IsAcquired() {
		ui.Info("Re-attaching servo...")
		if err := c.actuator.Acquire(); err != nil {
			c.report("actuator", fmt.Errorf("acquire: %w", err))
			return
		}
		c.acquireCount++
		c.engagedSince = c.clock.Now()
		c.clock.Sleep(c.params.SettleDelay)
	}

	c.state.CurrentAngle = util.Coerce(
		util.ApproachExponentially(c.state.CurrentAngle, target, c.params.Speed),
		c.params.AngleRange.Min, c.params.AngleRange.Max,
	)
	c.report("actuator", c.actuator.SetAngle(util.RoundToInt(c.state.CurrentAngle)))
	c.state.LastMove = c.clock.Now()
}

func (c *Controller) release() {
	if err := c.actuator.Release(); err != nil {
		c.report("actuator", fmt.Errorf("release: %w", err))
		return
	}
	c.releaseCount++
	c.engagedDuration += c.clock.Now().Sub(c.engagedSince)
}

// reportStatus emits the debug record and rewrites both display rows
func (c *Controller) reportStatus(now time.Time, target float64) {
	record := telemetry.Record{
		Timestamp: now,
		Target:    util.RoundToInt(target),
		Actual:    util.RoundToInt(c.state.CurrentAngle),
		Attached:  c.state.Engaged,
		Light:     int(c.state.SmoothedLight),
		Dark:      c.params.IsDark(c.state.SmoothedLight),
	}
	c.report("telemetry", c.sink.Publish(record))

	columns := c.display.Columns()
	c.report("display", c.display.SetCursor(0, 0))
	c.report("display", c.display.Print(displays.PadRight(fmt.Sprintf("Light: %d", int(c.state.SmoothedLight)), columns)))
	c.report("display", c.display.SetCursor(0, 1))
	c.report("display", c.display.Print(displays.PadRight(fmt.Sprintf("Servo: %d deg", util.RoundToInt(c.state.CurrentAngle)), columns)))
}

// Run initializes the loop and cycles until ctx is done.
// On exit the actuator is released and the indicator turned off.
func (c *Controller) Run(ctx context.Context) error {
	if err := c.Init(); err != nil {
		return err
	}

	ui.Info("Starting control loop for sensor '%s' and actuator '%s'", c.sensor.GetId(), c.actuator.GetId())
	for {
		select {
		case <-ctx.Done():
			c.shutdown()
			return nil
		default:
		}

		c.Cycle()
		c.clock.Sleep(c.params.LoopDelay)
	}
}

func (c *Controller) shutdown() {
	ui.Info("Stopping control loop...")
	if c.actuator.IsAcquired() {
		c.release()
	}
	c.state.Engaged = c.actuator.IsAcquired()
	c.report("indicator", c.indicator.Set(false))
	c.publishStatus(c.clock.Now(), c.params.TargetAngle(c.state.SmoothedLight))
}

// GetState returns a copy of the loop state
func (c *Controller) GetState() LoopState {
	return c.state
}

// GetStatus returns the snapshot of the last cycle
func (c *Controller) GetStatus() Status {
	c.statusMu.RLock()
	defer c.statusMu.RUnlock()
	return c.status
}

func (c *Controller) publishStatus(now time.Time, target float64) {
	engagedDuration := c.engagedDuration
	if c.state.Engaged {
		engagedDuration += now.Sub(c.engagedSince)
	}

	status := Status{
		Timestamp:       now,
		ActuatorId:      c.actuator.GetId(),
		Raw:             c.raw,
		SmoothedLight:   c.state.SmoothedLight,
		TargetAngle:     target,
		CurrentAngle:    c.state.CurrentAngle,
		Engaged:         c.state.Engaged,
		Dark:            c.params.IsDark(c.state.SmoothedLight),
		RawMin:          util.GetWindowMin(c.rawWindow),
		RawMax:          util.GetWindowMax(c.rawWindow),
		Iterations:      c.iterations,
		AcquireCount:    c.acquireCount,
		ReleaseCount:    c.releaseCount,
		EngagedDuration: engagedDuration,
	}

	c.statusMu.Lock()
	defer c.statusMu.Unlock()
	c.status = status
}

func (c *Controller) coerceRaw(raw int) int {
	return util.Coerce(raw, int(c.params.InputRange.Min), int(c.params.InputRange.Max))
}

// report logs a capability error once, until the capability recovers
func (c *Controller) report(capability string, err error) {
	if err == nil {
		if _, failed := c.lastErrors[capability]; failed {
			delete(c.lastErrors, capability)
			ui.Info("%s recovered", capability)
		}
		return
	}
	message := err.Error()
	if c.lastErrors[capability] == message {
		return
	}
	c.lastErrors[capability] = message
	ui.Warning("%s error: %v", capability, err)
}
