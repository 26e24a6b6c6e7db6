package actuators

import (
	"github.com/markusressel/light2servo/internal/configuration"
	"github.com/markusressel/light2servo/internal/util"
)

// ReleasedValue is written to the file of a FileActuator when it is released
const ReleasedValue = -1

// FileActuator writes the commanded angle to a file.
// It is meant for simulations and for bridging to other software.
type FileActuator struct {
	Config   configuration.ActuatorConfig `json:"configuration"`
	Acquired bool                         `json:"acquired"`
}

func (a FileActuator) GetId() string {
	return a.Config.ID
}

func (a FileActuator) GetConfig() configuration.ActuatorConfig {
	return a.Config
}

func (a *FileActuator) Acquire() error {
	a.Acquired = true
	return nil
}

func (a *FileActuator) Release() error {
	a.Acquired = false
	return a.write(ReleasedValue)
}

func (a FileActuator) IsAcquired() bool {
	return a.Acquired
}

func (a *FileActuator) SetAngle(angle int) error {
	if !a.Acquired {
		return ErrNotAcquired
	}
	return a.write(util.Coerce(angle, MinAngle, MaxAngle))
}

func (a *FileActuator) write(value int) error {
	filePath, err := util.ExpandHomeDir(a.Config.File.Path)
	if err != nil {
		return err
	}
	return util.WriteIntToFileAtomic(value, filePath)
}

func (a *FileActuator) Close() error {
	return nil
}
