package indicator

import (
	"errors"
	"fmt"

	"github.com/markusressel/light2servo/internal/configuration"
	"github.com/warthog618/go-gpiocdev"
)

// outputLine is the part of a gpiocdev.Line used by the indicator
type outputLine interface {
	SetValue(value int) error
	Close() error
}

// GpioIndicator drives a single line of a gpio character device
type GpioIndicator struct {
	Config configuration.GpioIndicatorConfig
	line   outputLine
}

func NewGpioIndicator(config configuration.GpioIndicatorConfig) (*GpioIndicator, error) {
	options := []gpiocdev.LineReqOption{gpiocdev.AsOutput(0)}
	if config.ActiveLow {
		options = append(options, gpiocdev.AsActiveLow)
	}

	line, err := gpiocdev.RequestLine(config.Chip, config.Line, options...)
	if err != nil {
		return nil, fmt.Errorf("request line %d of %s: %w", config.Line, config.Chip, err)
	}

	return newGpioIndicator(config, line), nil
}

func newGpioIndicator(config configuration.GpioIndicatorConfig, line outputLine) *GpioIndicator {
	return &GpioIndicator{
		Config: config,
		line:   line,
	}
}

func (i *GpioIndicator) Set(active bool) error {
	value := 0
	if active {
		value = 1
	}
	return i.line.SetValue(value)
}

// Close drives the line inactive before releasing it
func (i *GpioIndicator) Close() error {
	var errs []error
	if err := i.line.SetValue(0); err != nil {
		errs = append(errs, fmt.Errorf("reset line: %w", err))
	}
	if err := i.line.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close line: %w", err))
	}
	return errors.Join(errs...)
}
