package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/markusressel/light2servo/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	BucketActuatorStatistics = "actuatorStatistics"
)

// ActuatorStatistics accumulates the usage of an actuator over its lifetime
type ActuatorStatistics struct {
	AcquireCount    uint64        `json:"acquireCount"`
	ReleaseCount    uint64        `json:"releaseCount"`
	EngagedDuration time.Duration `json:"engagedDuration"`
}

// Add returns the sum of both statistics
func (s ActuatorStatistics) Add(other ActuatorStatistics) ActuatorStatistics {
	return ActuatorStatistics{
		AcquireCount:    s.AcquireCount + other.AcquireCount,
		ReleaseCount:    s.ReleaseCount + other.ReleaseCount,
		EngagedDuration: s.EngagedDuration + other.EngagedDuration,
	}
}

type Persistence interface {
	Init() error

	LoadActuatorStatistics(actuatorId string) (ActuatorStatistics, error)
	SaveActuatorStatistics(actuatorId string, statistics ActuatorStatistics) error
	DeleteActuatorStatistics(actuatorId string) error
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		// create directory
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// SaveActuatorStatistics saves the lifetime statistics of the given actuator
func (p persistence) SaveActuatorStatistics(actuatorId string, statistics ActuatorStatistics) (err error) {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	data, err := json.Marshal(statistics)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketActuatorStatistics))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		return b.Put([]byte(actuatorId), data)
	})
}

// LoadActuatorStatistics loads the lifetime statistics of the given actuator,
// returns os.ErrNotExist if nothing was saved yet
func (p persistence) LoadActuatorStatistics(actuatorId string) (ActuatorStatistics, error) {
	var statistics ActuatorStatistics

	db, err := p.openPersistence()
	if err != nil {
		return statistics, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	corrupt := false
	err = db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketActuatorStatistics))
		if b == nil {
			return os.ErrNotExist
		}
		v := b.Get([]byte(actuatorId))
		if v == nil {
			return os.ErrNotExist
		}

		err := json.Unmarshal(v, &statistics)
		if err != nil {
			// if we cannot read the saved data, delete it
			ui.Warning("Unable to unmarshal saved statistics for %s: %v", actuatorId, err)
			err := b.Delete([]byte(actuatorId))
			if err != nil {
				ui.Error("Unable to delete corrupt data key %s: %v", actuatorId, err)
			}
			corrupt = true
		}

		return nil
	})
	if err == nil && corrupt {
		return ActuatorStatistics{}, os.ErrNotExist
	}

	return statistics, err
}

func (p persistence) DeleteActuatorStatistics(actuatorId string) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketActuatorStatistics))
		if b == nil {
			// no bucket yet
			return nil
		}
		v := b.Get([]byte(actuatorId))
		if v == nil {
			// no data for given key
			return nil
		}

		return b.Delete([]byte(actuatorId))
	})
}
