package internal

import (
	"errors"
	"os"

	"github.com/markusressel/light2servo/internal/persistence"
	"github.com/markusressel/light2servo/internal/statistics"
	"github.com/markusressel/light2servo/internal/ui"
)

// StatisticsRecorder adds the actuator statistics of the running session
// to the ones stored in the database
type StatisticsRecorder struct {
	persistence persistence.Persistence
	actuatorId  string
	controller  statistics.StatusProvider
	stored      persistence.ActuatorStatistics
}

func NewStatisticsRecorder(p persistence.Persistence, actuatorId string, controller statistics.StatusProvider) *StatisticsRecorder {
	return &StatisticsRecorder{
		persistence: p,
		actuatorId:  actuatorId,
		controller:  controller,
	}
}

// Load reads the stored lifetime statistics
func (r *StatisticsRecorder) Load() {
	stored, err := r.persistence.LoadActuatorStatistics(r.actuatorId)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			ui.Warning("Unable to load statistics of %s: %v", r.actuatorId, err)
		}
		return
	}
	r.stored = stored
	ui.Info("Lifetime statistics of %s: %d acquisitions, engaged for %v",
		r.actuatorId, stored.AcquireCount, stored.EngagedDuration)
}

// Lifetime returns the stored statistics plus the ones of the running session
func (r *StatisticsRecorder) Lifetime() persistence.ActuatorStatistics {
	status := r.controller.GetStatus()
	return r.stored.Add(persistence.ActuatorStatistics{
		AcquireCount:    status.AcquireCount,
		ReleaseCount:    status.ReleaseCount,
		EngagedDuration: status.EngagedDuration,
	})
}

func (r *StatisticsRecorder) Save() {
	if err := r.persistence.SaveActuatorStatistics(r.actuatorId, r.Lifetime()); err != nil {
		ui.Warning("Unable to save statistics of %s: %v", r.actuatorId, err)
	}
}
