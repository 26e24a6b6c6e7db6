package indicator

import (
	"github.com/markusressel/light2servo/internal/configuration"
)

// Indicator is a binary output, e.g. a "dark" status led
type Indicator interface {
	Set(active bool) error
	Close() error
}

func NewIndicator(config configuration.IndicatorConfig) (Indicator, error) {
	if config.Gpio != nil {
		return NewGpioIndicator(*config.Gpio)
	}

	if config.Led != nil {
		return NewLedIndicator(*config.Led), nil
	}

	return &NoopIndicator{}, nil
}
