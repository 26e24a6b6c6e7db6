package statistics

import "github.com/prometheus/client_golang/prometheus"

const (
	namespace = "light2servo"
)

func Register(collector prometheus.Collector) {
	prometheus.MustRegister(collector)
}
