package configuration

type IndicatorConfig struct {
	Gpio *GpioIndicatorConfig `json:"gpio,omitempty"`
	Led  *LedIndicatorConfig  `json:"led,omitempty"`
}

type GpioIndicatorConfig struct {
	Chip      string `json:"chip"`
	Line      int    `json:"line"`
	ActiveLow bool   `json:"activeLow"`
}

type LedIndicatorConfig struct {
	// Path of the brightness file, e.g. /sys/class/leds/led0/brightness
	Path string `json:"path"`
	// MaxBrightness is written when active, defaults to 1
	MaxBrightness int `json:"maxBrightness,omitempty"`
}
