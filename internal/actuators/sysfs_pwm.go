package actuators

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/markusressel/light2servo/internal/configuration"
	"github.com/markusressel/light2servo/internal/ui"
	"github.com/markusressel/light2servo/internal/util"
)

const (
	exportTimeout      = 1 * time.Second
	exportPollInterval = 20 * time.Millisecond
)

// SysfsPwmActuator drives a servo through the linux pwm class, see
// https://www.kernel.org/doc/html/latest/driver-api/pwm.html
type SysfsPwmActuator struct {
	Config   configuration.ActuatorConfig `json:"configuration"`
	Acquired bool                         `json:"acquired"`
}

// NewSysfsPwmActuator creates a released actuator. A channel that a previous
// process left enabled is disabled, so the servo starts silent.
func NewSysfsPwmActuator(config configuration.ActuatorConfig) (*SysfsPwmActuator, error) {
	a := &SysfsPwmActuator{Config: config}
	wasEnabled, err := a.disable()
	if err != nil {
		return nil, err
	}
	if wasEnabled {
		ui.Warning("Actuator %s: pwm channel %s was left enabled, disabled it", a.GetId(), a.channelPath())
	}
	return a, nil
}

func (a SysfsPwmActuator) GetId() string {
	return a.Config.ID
}

func (a SysfsPwmActuator) GetConfig() configuration.ActuatorConfig {
	return a.Config
}

func (a SysfsPwmActuator) channelPath() string {
	return filepath.Join(a.Config.SysfsPwm.Chip, "pwm"+strconv.Itoa(a.Config.SysfsPwm.Channel))
}

func (a *SysfsPwmActuator) Acquire() error {
	if err := a.export(); err != nil {
		return err
	}

	channel := a.channelPath()
	err := util.WriteIntToFile(int(a.Config.Period.Nanoseconds()), filepath.Join(channel, "period"))
	if err != nil {
		return fmt.Errorf("actuator %s: set period: %w", a.GetId(), err)
	}
	err = util.WriteIntToFile(1, filepath.Join(channel, "enable"))
	if err != nil {
		return fmt.Errorf("actuator %s: enable: %w", a.GetId(), err)
	}

	a.Acquired = true
	return nil
}

// export makes the pwm channel available in sysfs, if it isn't already
func (a *SysfsPwmActuator) export() error {
	channel := a.channelPath()
	if _, err := os.Stat(channel); err == nil {
		return nil
	}

	ui.Debug("Exporting pwm channel %s", channel)
	err := util.WriteIntToFile(a.Config.SysfsPwm.Channel, filepath.Join(a.Config.SysfsPwm.Chip, "export"))
	if err != nil {
		return fmt.Errorf("actuator %s: export channel: %w", a.GetId(), err)
	}

	// udev may need a moment to create the channel directory
	deadline := time.Now().Add(exportTimeout)
	for {
		_, err := os.Stat(channel)
		if err == nil {
			return nil
		}
		if !errors.Is(err, os.ErrNotExist) || time.Now().After(deadline) {
			return fmt.Errorf("actuator %s: channel %s not available: %w", a.GetId(), channel, err)
		}
		time.Sleep(exportPollInterval)
	}
}

func (a *SysfsPwmActuator) Release() error {
	a.Acquired = false
	err := util.WriteIntToFile(0, filepath.Join(a.channelPath(), "enable"))
	if err != nil {
		return fmt.Errorf("actuator %s: disable: %w", a.GetId(), err)
	}
	return nil
}

func (a SysfsPwmActuator) IsAcquired() bool {
	return a.Acquired
}

func (a *SysfsPwmActuator) SetAngle(angle int) error {
	if !a.Acquired {
		return ErrNotAcquired
	}
	dutyCycle := PulseWidth(a.Config, angle)
	return util.WriteIntToFile(int(dutyCycle.Nanoseconds()), filepath.Join(a.channelPath(), "duty_cycle"))
}

// disable turns off an exported channel regardless of the in-memory state.
// A channel that is not exported is left alone.
func (a *SysfsPwmActuator) disable() (wasEnabled bool, err error) {
	enablePath := filepath.Join(a.channelPath(), "enable")
	enabled, err := util.ReadIntFromFile(enablePath)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("actuator %s: read enable: %w", a.GetId(), err)
	}
	if enabled == 0 {
		return false, nil
	}
	err = util.WriteIntToFile(0, enablePath)
	if err != nil {
		return true, fmt.Errorf("actuator %s: disable: %w", a.GetId(), err)
	}
	return true, nil
}

func (a *SysfsPwmActuator) Close() error {
	a.Acquired = false
	_, err := a.disable()
	return err
}
