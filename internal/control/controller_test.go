package control

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/markusressel/light2servo/internal/actuators"
	"github.com/markusressel/light2servo/internal/configuration"
	"github.com/markusressel/light2servo/internal/displays"
	"github.com/markusressel/light2servo/internal/telemetry"
	"github.com/stretchr/testify/assert"
)

type simulatedClock struct {
	now     time.Time
	sleeps  []time.Duration
	onSleep func()
}

func newSimulatedClock() *simulatedClock {
	return &simulatedClock{
		now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (c *simulatedClock) Now() time.Time {
	return c.now
}

func (c *simulatedClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	if c.onSleep != nil {
		c.onSleep()
	}
}

func (c *simulatedClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type mockSensor struct {
	values []int
	next   int
	err    error
}

func (s *mockSensor) GetId() string {
	return "light"
}

func (s *mockSensor) GetConfig() configuration.SensorConfig {
	return configuration.SensorConfig{ID: "light"}
}

// GetValue returns the configured values in order, repeating the last one
func (s *mockSensor) GetValue() (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	value := s.values[s.next]
	if s.next < len(s.values)-1 {
		s.next++
	}
	return value, nil
}

func (s *mockSensor) feed(values ...int) {
	s.values = values
	s.next = 0
}

type mockActuator struct {
	acquired   bool
	calls      []string
	acquireErr error
}

func (a *mockActuator) GetId() string {
	return "servo"
}

func (a *mockActuator) GetConfig() configuration.ActuatorConfig {
	return configuration.ActuatorConfig{ID: "servo"}
}

func (a *mockActuator) Acquire() error {
	a.calls = append(a.calls, "acquire")
	if a.acquireErr != nil {
		return a.acquireErr
	}
	a.acquired = true
	return nil
}

func (a *mockActuator) Release() error {
	a.calls = append(a.calls, "release")
	a.acquired = false
	return nil
}

func (a *mockActuator) IsAcquired() bool {
	return a.acquired
}

func (a *mockActuator) SetAngle(angle int) error {
	if !a.acquired {
		return actuators.ErrNotAcquired
	}
	a.calls = append(a.calls, fmt.Sprintf("set %d", angle))
	return nil
}

func (a *mockActuator) Close() error {
	return nil
}

func (a *mockActuator) count(call string) int {
	result := 0
	for _, c := range a.calls {
		if c == call {
			result++
		}
	}
	return result
}

type mockIndicator struct {
	values []bool
}

func (i *mockIndicator) Set(active bool) error {
	i.values = append(i.values, active)
	return nil
}

func (i *mockIndicator) Close() error {
	return nil
}

type testRig struct {
	controller *Controller
	sensor     *mockSensor
	actuator   *mockActuator
	display    *displays.LogDisplay
	indicator  *mockIndicator
	sink       *telemetry.FakeSink
	clock      *simulatedClock
}

func createRig(params Parameters, firstSample int) *testRig {
	rig := &testRig{
		sensor:    &mockSensor{values: []int{firstSample}},
		actuator:  &mockActuator{},
		display:   displays.NewLogDisplay(configuration.DisplayConfig{Columns: 16, Rows: 2}),
		indicator: &mockIndicator{},
		sink:      telemetry.NewFakeSink(),
		clock:     newSimulatedClock(),
	}
	rig.controller = NewController(params, rig.sensor, rig.actuator, rig.display, rig.indicator, rig.sink, rig.clock)
	return rig
}

// cycle runs n iterations, advancing the clock by the loop delay after each
func (r *testRig) cycle(n int) {
	for i := 0; i < n; i++ {
		r.controller.Cycle()
		r.clock.Advance(r.controller.params.LoopDelay)
	}
}

// instantParameters disables smoothing, so the smoothed level equals the raw sample
func instantParameters() Parameters {
	params := DefaultParameters()
	params.SmoothingFactor = 1
	return params
}

func TestTargetAngle(t *testing.T) {
	params := DefaultParameters()

	assert.Equal(t, 0.0, params.TargetAngle(0))
	assert.Equal(t, 180.0, params.TargetAngle(1023))
	assert.InDelta(t, 90.0, params.TargetAngle(511.5), 0.0001)
	// overscaled: the ends of travel are reached before the ends of the input range
	assert.Equal(t, 0.0, params.TargetAngle(51))
	assert.Equal(t, 180.0, params.TargetAngle(972))
}

func TestInit_SeedsStateAndShowsBanner(t *testing.T) {
	// GIVEN
	rig := createRig(DefaultParameters(), 512)

	// WHEN
	err := rig.controller.Init()

	// THEN
	assert.NoError(t, err)
	state := rig.controller.GetState()
	assert.Equal(t, 512.0, state.SmoothedLight)
	assert.Equal(t, DefaultParameters().TargetAngle(512), state.CurrentAngle)
	assert.False(t, state.Engaged)
	assert.Empty(t, rig.actuator.calls)
	assert.Equal(t, "Light-Servo Ctrl", rig.display.Lines()[0])
}

func TestInit_SensorError(t *testing.T) {
	// GIVEN
	rig := createRig(DefaultParameters(), 512)
	rig.sensor.err = errors.New("no such device")

	// WHEN
	err := rig.controller.Init()

	// THEN
	assert.Error(t, err)
}

func TestInit_AlreadyAcquiredCountsEngagedTimeFromInit(t *testing.T) {
	// GIVEN
	rig := createRig(instantParameters(), 512)
	rig.actuator.acquired = true
	_ = rig.controller.Init()
	rig.clock.Advance(500 * time.Millisecond)

	// WHEN
	rig.controller.Cycle()

	// THEN
	status := rig.controller.GetStatus()
	assert.False(t, status.Engaged)
	assert.Equal(t, 1, rig.actuator.count("release"))
	assert.Equal(t, 500*time.Millisecond, status.EngagedDuration)
}

func TestInit_IsDeterministic(t *testing.T) {
	// GIVEN
	first := createRig(DefaultParameters(), 733)
	second := createRig(DefaultParameters(), 733)

	// WHEN
	_ = first.controller.Init()
	_ = second.controller.Init()

	// THEN
	assert.Equal(t, first.controller.GetState().SmoothedLight, second.controller.GetState().SmoothedLight)
	assert.Equal(t, first.controller.GetState().CurrentAngle, second.controller.GetState().CurrentAngle)
}

func TestCycle_SmoothedLightStaysInInputRange(t *testing.T) {
	// GIVEN
	rig := createRig(DefaultParameters(), 0)
	_ = rig.controller.Init()
	random := rand.New(rand.NewSource(42))

	for i := 0; i < 5000; i++ {
		// WHEN
		rig.sensor.feed(random.Intn(1024))
		rig.cycle(1)

		// THEN
		smoothed := rig.controller.GetState().SmoothedLight
		assert.GreaterOrEqual(t, smoothed, 0.0)
		assert.LessOrEqual(t, smoothed, 1023.0)
		angle := rig.controller.GetState().CurrentAngle
		assert.GreaterOrEqual(t, angle, 0.0)
		assert.LessOrEqual(t, angle, 180.0)
	}
}

func TestCycle_MappingSaturates(t *testing.T) {
	// GIVEN
	params := DefaultParameters()
	rig := createRig(params, 1023)
	_ = rig.controller.Init()

	// WHEN
	rig.sensor.feed(0)
	rig.cycle(500)

	// THEN
	assert.Equal(t, 0.0, params.TargetAngle(rig.controller.GetState().SmoothedLight))
	assert.Equal(t, 0.0, rig.controller.GetStatus().TargetAngle)

	// WHEN
	rig.sensor.feed(1023)
	rig.cycle(500)

	// THEN
	assert.Equal(t, 180.0, params.TargetAngle(rig.controller.GetState().SmoothedLight))
	assert.Equal(t, 180.0, rig.controller.GetStatus().TargetAngle)
}

func TestCycle_DeadbandSuppressesMovement(t *testing.T) {
	// GIVEN
	rig := createRig(instantParameters(), 512)
	_ = rig.controller.Init()
	before := rig.controller.GetState()

	// WHEN
	// 520 maps to ~91.7 deg, which is within 2 deg of the seeded ~90.1 deg
	rig.sensor.feed(520)
	rig.cycle(10)

	// THEN
	after := rig.controller.GetState()
	assert.Equal(t, before.CurrentAngle, after.CurrentAngle)
	assert.Equal(t, before.Engaged, after.Engaged)
	assert.Empty(t, rig.actuator.calls)
}

func TestCycle_AcquiresBeforeFirstCommand(t *testing.T) {
	// GIVEN
	rig := createRig(instantParameters(), 512)
	_ = rig.controller.Init()

	// WHEN
	rig.sensor.feed(1023)
	rig.cycle(1)

	// THEN
	assert.Equal(t, []string{"acquire", "set 99"}, rig.actuator.calls)
	assert.Equal(t, []time.Duration{10 * time.Millisecond}, rig.clock.sleeps)
	assert.True(t, rig.controller.GetState().Engaged)

	// WHEN
	rig.cycle(1)

	// THEN
	assert.Equal(t, 1, rig.actuator.count("acquire"))
	assert.Len(t, rig.clock.sleeps, 1)
	assert.Len(t, rig.actuator.calls, 3)
}

func TestCycle_RepeatsCommandWhileEngaged(t *testing.T) {
	// GIVEN
	params := instantParameters()
	params.Speed = 0.001
	rig := createRig(params, 512)
	_ = rig.controller.Init()

	// WHEN
	rig.sensor.feed(1023)
	rig.cycle(3)

	// THEN
	assert.Equal(t, []string{"acquire", "set 90", "set 90", "set 90"}, rig.actuator.calls)
}

func TestCycle_AcquireFailureSkipsMove(t *testing.T) {
	// GIVEN
	rig := createRig(instantParameters(), 512)
	_ = rig.controller.Init()
	rig.actuator.acquireErr = errors.New("device busy")
	before := rig.controller.GetState()

	// WHEN
	rig.sensor.feed(1023)
	rig.cycle(1)

	// THEN
	assert.Equal(t, []string{"acquire"}, rig.actuator.calls)
	assert.Equal(t, before.CurrentAngle, rig.controller.GetState().CurrentAngle)
	assert.False(t, rig.controller.GetState().Engaged)
	assert.Empty(t, rig.clock.sleeps)
}

func TestCycle_ReleasesAfterIdleTimeout(t *testing.T) {
	// GIVEN
	rig := createRig(instantParameters(), 512)
	_ = rig.controller.Init()
	// 530 maps to ~93.6 deg, more than 2 deg away from ~90.1 deg
	rig.sensor.feed(530)
	rig.cycle(1)
	assert.True(t, rig.controller.GetState().Engaged)
	lastMove := rig.controller.GetState().LastMove

	// WHEN
	rig.sensor.feed(512)
	for rig.clock.Now().Sub(lastMove) <= time.Second {
		rig.cycle(1)
		// THEN
		assert.Equal(t, 0, rig.actuator.count("release"))
	}
	rig.cycle(1)
	rig.cycle(100)

	// THEN
	assert.Equal(t, 1, rig.actuator.count("release"))
	assert.False(t, rig.controller.GetState().Engaged)
	assert.Equal(t, uint64(1), rig.controller.GetStatus().ReleaseCount)
}

func TestCycle_ReacquiresAfterRelease(t *testing.T) {
	// GIVEN
	rig := createRig(instantParameters(), 512)
	_ = rig.controller.Init()
	rig.sensor.feed(530)
	rig.cycle(1)
	rig.sensor.feed(512)
	rig.cycle(100)
	assert.False(t, rig.controller.GetState().Engaged)

	// WHEN
	rig.sensor.feed(1023)
	rig.cycle(1)

	// THEN
	assert.Equal(t, 2, rig.actuator.count("acquire"))
	assert.Equal(t, "release", rig.actuator.calls[len(rig.actuator.calls)-3])
	assert.Equal(t, "acquire", rig.actuator.calls[len(rig.actuator.calls)-2])
	assert.True(t, rig.controller.GetState().Engaged)
	assert.Equal(t, uint64(2), rig.controller.GetStatus().AcquireCount)
}

func TestCycle_NeverReleasesWhileMoving(t *testing.T) {
	// GIVEN
	rig := createRig(instantParameters(), 512)
	_ = rig.controller.Init()

	// WHEN
	// alternating extremes keep the target far away from the current angle
	for i := 0; i < 500; i++ {
		if i%2 == 0 {
			rig.sensor.feed(0)
		} else {
			rig.sensor.feed(1023)
		}
		rig.cycle(1)
	}

	// THEN
	assert.Equal(t, 0, rig.actuator.count("release"))
	assert.Equal(t, 1, rig.actuator.count("acquire"))
	assert.True(t, rig.controller.GetState().Engaged)
}

func TestCycle_IndicatorFollowsThreshold(t *testing.T) {
	// GIVEN
	rig := createRig(instantParameters(), 512)
	_ = rig.controller.Init()

	// WHEN
	for _, raw := range []int{399, 400, 100, 1023, 399, 399} {
		rig.sensor.feed(raw)
		rig.cycle(1)
	}

	// THEN
	assert.Equal(t, []bool{true, false, true, false, true, true}, rig.indicator.values)
}

func TestCycle_StatusIsThrottled(t *testing.T) {
	// GIVEN
	rig := createRig(DefaultParameters(), 512)
	_ = rig.controller.Init()

	// WHEN
	// one second of simulated time
	rig.cycle(50)

	// THEN
	assert.Len(t, rig.sink.Records, 7)
	record := rig.sink.Records[0]
	assert.Equal(t, 90, record.Target)
	assert.Equal(t, 90, record.Actual)
	assert.False(t, record.Attached)
	assert.Equal(t, 512, record.Light)
	assert.Equal(t, []string{"Light: 512      ", "Servo: 90 deg   "}, rig.display.Lines())
}

func TestCycle_SensorErrorReusesPreviousSample(t *testing.T) {
	// GIVEN
	rig := createRig(instantParameters(), 512)
	_ = rig.controller.Init()
	rig.sensor.err = errors.New("read timeout")

	// WHEN
	rig.cycle(5)

	// THEN
	assert.Equal(t, 512.0, rig.controller.GetState().SmoothedLight)
	assert.Equal(t, 512, rig.controller.GetStatus().Raw)
	assert.Empty(t, rig.actuator.calls)
}

func TestCycle_RawWindow(t *testing.T) {
	// GIVEN
	rig := createRig(DefaultParameters(), 512)
	_ = rig.controller.Init()

	// WHEN
	rig.sensor.feed(500, 530, 520)
	rig.cycle(3)

	// THEN
	status := rig.controller.GetStatus()
	assert.Equal(t, 500.0, status.RawMin)
	assert.Equal(t, 530.0, status.RawMax)
	assert.Equal(t, uint64(3), status.Iterations)
}

func TestRun_ReleasesOnShutdown(t *testing.T) {
	// GIVEN
	rig := createRig(instantParameters(), 512)
	rig.sensor.values = []int{512, 1023}
	ctx, cancel := context.WithCancel(context.Background())
	loops := 0
	rig.clock.onSleep = func() {
		loops++
		if loops >= 5 {
			cancel()
		}
	}

	// WHEN
	err := rig.controller.Run(ctx)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "release", rig.actuator.calls[len(rig.actuator.calls)-1])
	assert.False(t, rig.actuator.acquired)
	assert.False(t, rig.indicator.values[len(rig.indicator.values)-1])
	assert.False(t, rig.controller.GetStatus().Engaged)
}
