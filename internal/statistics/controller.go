package statistics

import (
	"github.com/markusressel/light2servo/internal/control"
	"github.com/prometheus/client_golang/prometheus"
)

const controlSubsystem = "control"

// StatusProvider is implemented by control.Controller
type StatusProvider interface {
	GetStatus() control.Status
}

type ControlCollector struct {
	controller StatusProvider
	sensorId   string
	actuatorId string

	raw             *prometheus.Desc
	smoothedLight   *prometheus.Desc
	targetAngle     *prometheus.Desc
	currentAngle    *prometheus.Desc
	engaged         *prometheus.Desc
	dark            *prometheus.Desc
	acquireCount    *prometheus.Desc
	releaseCount    *prometheus.Desc
	engagedSeconds  *prometheus.Desc
	iterationsCount *prometheus.Desc
}

func NewControlCollector(controller StatusProvider, sensorId string, actuatorId string) *ControlCollector {
	labels := []string{"sensor", "actuator"}
	return &ControlCollector{
		controller: controller,
		sensorId:   sensorId,
		actuatorId: actuatorId,
		raw: prometheus.NewDesc(prometheus.BuildFQName(namespace, controlSubsystem, "raw_light"),
			"Last raw reading of the light sensor",
			labels, nil,
		),
		smoothedLight: prometheus.NewDesc(prometheus.BuildFQName(namespace, controlSubsystem, "smoothed_light"),
			"Exponential moving average of the light sensor readings",
			labels, nil,
		),
		targetAngle: prometheus.NewDesc(prometheus.BuildFQName(namespace, controlSubsystem, "target_angle_degrees"),
			"Angle derived from the smoothed light level",
			labels, nil,
		),
		currentAngle: prometheus.NewDesc(prometheus.BuildFQName(namespace, controlSubsystem, "current_angle_degrees"),
			"Last commanded angle of the actuator",
			labels, nil,
		),
		engaged: prometheus.NewDesc(prometheus.BuildFQName(namespace, controlSubsystem, "engaged"),
			"1 if the actuator is currently acquired, 0 otherwise",
			labels, nil,
		),
		dark: prometheus.NewDesc(prometheus.BuildFQName(namespace, controlSubsystem, "dark"),
			"1 if the darkness indicator is active, 0 otherwise",
			labels, nil,
		),
		acquireCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, controlSubsystem, "acquire_count"),
			"Number of times the actuator was (re-)acquired",
			labels, nil,
		),
		releaseCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, controlSubsystem, "release_count"),
			"Number of times the actuator was released due to inactivity",
			labels, nil,
		),
		engagedSeconds: prometheus.NewDesc(prometheus.BuildFQName(namespace, controlSubsystem, "engaged_seconds"),
			"Total time the actuator has been acquired",
			labels, nil,
		),
		iterationsCount: prometheus.NewDesc(prometheus.BuildFQName(namespace, controlSubsystem, "iterations_count"),
			"Number of control loop iterations",
			labels, nil,
		),
	}
}

func (collector *ControlCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.raw
	ch <- collector.smoothedLight
	ch <- collector.targetAngle
	ch <- collector.currentAngle
	ch <- collector.engaged
	ch <- collector.dark
	ch <- collector.acquireCount
	ch <- collector.releaseCount
	ch <- collector.engagedSeconds
	ch <- collector.iterationsCount
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControlCollector) Collect(ch chan<- prometheus.Metric) {
	status := collector.controller.GetStatus()
	labels := []string{collector.sensorId, collector.actuatorId}

	ch <- prometheus.MustNewConstMetric(collector.raw, prometheus.GaugeValue, float64(status.Raw), labels...)
	ch <- prometheus.MustNewConstMetric(collector.smoothedLight, prometheus.GaugeValue, status.SmoothedLight, labels...)
	ch <- prometheus.MustNewConstMetric(collector.targetAngle, prometheus.GaugeValue, status.TargetAngle, labels...)
	ch <- prometheus.MustNewConstMetric(collector.currentAngle, prometheus.GaugeValue, status.CurrentAngle, labels...)
	ch <- prometheus.MustNewConstMetric(collector.engaged, prometheus.GaugeValue, boolToFloat(status.Engaged), labels...)
	ch <- prometheus.MustNewConstMetric(collector.dark, prometheus.GaugeValue, boolToFloat(status.Dark), labels...)
	ch <- prometheus.MustNewConstMetric(collector.acquireCount, prometheus.CounterValue, float64(status.AcquireCount), labels...)
	ch <- prometheus.MustNewConstMetric(collector.releaseCount, prometheus.CounterValue, float64(status.ReleaseCount), labels...)
	ch <- prometheus.MustNewConstMetric(collector.engagedSeconds, prometheus.CounterValue, status.EngagedDuration.Seconds(), labels...)
	ch <- prometheus.MustNewConstMetric(collector.iterationsCount, prometheus.CounterValue, float64(status.Iterations), labels...)
}

func boolToFloat(value bool) float64 {
	if value {
		return 1
	}
	return 0
}
