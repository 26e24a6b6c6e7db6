package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/markusressel/light2servo/internal/actuators"
	"github.com/markusressel/light2servo/internal/configuration"
	"github.com/markusressel/light2servo/internal/control"
	"github.com/markusressel/light2servo/internal/sensors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

type staticStatus struct {
	status control.Status
}

func (s staticStatus) GetStatus() control.Status {
	return s.status
}

func request(t *testing.T, path string) *httptest.ResponseRecorder {
	rest := CreateRestService(staticStatus{status: control.Status{
		ActuatorId:   "api_test_servo",
		Raw:          380,
		CurrentAngle: 70,
		Engaged:      true,
		Dark:         true,
	}}, prometheus.NewRegistry())

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	rest.ServeHTTP(rec, req)
	return rec
}

func TestAlive(t *testing.T) {
	// WHEN
	rec := request(t, "/alive")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStatus(t *testing.T) {
	// WHEN
	rec := request(t, "/status/")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var status control.Status
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, 380, status.Raw)
	assert.Equal(t, 70.0, status.CurrentAngle)
	assert.True(t, status.Engaged)
	assert.True(t, status.Dark)
}

func TestSensorEndpoints(t *testing.T) {
	// GIVEN
	sensor := &sensors.VirtualSensor{
		Config: configuration.SensorConfig{ID: "api_test_light", Virtual: &configuration.VirtualSensorConfig{Value: 300}},
		Value:  300,
	}
	sensors.SensorMap.Set(sensor.GetId(), sensor)
	defer sensors.SensorMap.Remove(sensor.GetId())

	// WHEN
	rec := request(t, "/sensor/api_test_light/")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	var config configuration.SensorConfig
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &config))
	assert.Equal(t, "api_test_light", config.ID)

	// WHEN
	rec = request(t, "/sensor/")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "api_test_light")

	// WHEN
	rec = request(t, "/sensor/unknown/")

	// THEN
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestActuatorEndpoints(t *testing.T) {
	// GIVEN
	actuator := &actuators.FileActuator{
		Config: configuration.ActuatorConfig{ID: "api_test_servo"},
	}
	actuators.ActuatorMap.Set(actuator.GetId(), actuator)
	defer actuators.ActuatorMap.Remove(actuator.GetId())

	// WHEN
	rec := request(t, "/actuator/api_test_servo/")

	// THEN
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id": "api_test_servo", "acquired": true}`, rec.Body.String())

	// WHEN
	rec = request(t, "/actuator/unknown/")

	// THEN
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestActuatorEndpointsWhileLoopTogglesActuator(t *testing.T) {
	// GIVEN
	actuator := &actuators.FileActuator{
		Config: configuration.ActuatorConfig{
			ID:   "api_busy_servo",
			File: &configuration.FileActuatorConfig{Path: filepath.Join(t.TempDir(), "angle")},
		},
	}
	actuators.ActuatorMap.Set("api_busy_servo", actuator)
	defer actuators.ActuatorMap.Remove("api_busy_servo")

	rest := CreateRestService(staticStatus{status: control.Status{
		ActuatorId: "api_busy_servo",
		Engaged:    true,
	}}, prometheus.NewRegistry())

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			_ = actuator.Acquire()
			_ = actuator.Release()
		}
	}()

	// WHEN
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodGet, "/actuator/api_busy_servo/", nil)
		rec := httptest.NewRecorder()
		rest.ServeHTTP(rec, req)

		// THEN
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id": "api_busy_servo", "acquired": true}`, rec.Body.String())

		req = httptest.NewRequest(http.MethodGet, "/actuator/", nil)
		rec = httptest.NewRecorder()
		rest.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "api_busy_servo")
	}

	close(stop)
	wg.Wait()
}
