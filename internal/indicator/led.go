package indicator

import (
	"github.com/markusressel/light2servo/internal/configuration"
	"github.com/markusressel/light2servo/internal/util"
)

// LedIndicator drives a led of the linux led class via its brightness file
type LedIndicator struct {
	Config configuration.LedIndicatorConfig
	// written is nil until the first write
	written *bool
}

func NewLedIndicator(config configuration.LedIndicatorConfig) *LedIndicator {
	return &LedIndicator{
		Config: config,
	}
}

func (i *LedIndicator) Set(active bool) error {
	if i.written != nil && *i.written == active {
		return nil
	}

	brightness := 0
	if active {
		brightness = i.Config.MaxBrightness
		if brightness <= 0 {
			brightness = 1
		}
	}

	if err := util.WriteIntToFile(brightness, i.Config.Path); err != nil {
		return err
	}
	i.written = &active
	return nil
}

func (i *LedIndicator) Close() error {
	return i.Set(false)
}
