package configuration

import (
	"os"
	"time"

	"github.com/markusressel/light2servo/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	DbPath string `json:"dbPath"`

	// StatisticsPersistenceInterval is the interval at which lifetime actuator statistics are written to the db
	StatisticsPersistenceInterval time.Duration `json:"statisticsPersistenceInterval"`

	Control    ControlConfig    `json:"control"`
	Sensor     SensorConfig     `json:"sensor"`
	Actuator   ActuatorConfig   `json:"actuator"`
	Display    DisplayConfig    `json:"display"`
	Indicator  IndicatorConfig  `json:"indicator"`
	Mqtt       MqttConfig       `json:"mqtt"`
	Api        ApiConfig        `json:"api"`
	Statistics StatisticsConfig `json:"statistics"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("light2servo")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/light2servo/")
	}

	viper.SetEnvPrefix("LIGHT2SERVO")
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("dbPath", "/etc/light2servo/light2servo.db")
	viper.SetDefault("statisticsPersistenceInterval", 5*time.Minute)

	viper.SetDefault("control.smoothingFactor", 0.05)
	viper.SetDefault("control.deadband", 2.0)
	viper.SetDefault("control.speed", 0.1)
	viper.SetDefault("control.idleTimeout", 1000*time.Millisecond)
	viper.SetDefault("control.settleDelay", 10*time.Millisecond)
	viper.SetDefault("control.loopDelay", 20*time.Millisecond)
	viper.SetDefault("control.statusInterval", 150*time.Millisecond)
	viper.SetDefault("control.darknessThreshold", 400.0)
	viper.SetDefault("control.inputRange", "0..1023")
	viper.SetDefault("control.outputRange", "-10..190")
	viper.SetDefault("control.angleRange", "0..180")
	viper.SetDefault("control.rawWindowSize", 50)

	viper.SetDefault("sensor.id", "light")
	viper.SetDefault("actuator.id", "servo")
	viper.SetDefault("actuator.minPulseWidth", 500*time.Microsecond)
	viper.SetDefault("actuator.maxPulseWidth", 2500*time.Microsecond)
	viper.SetDefault("actuator.period", 20*time.Millisecond)

	viper.SetDefault("display.columns", 16)
	viper.SetDefault("display.rows", 2)
	viper.SetDefault("display.banner", "Light-Servo Ctrl")

	viper.SetDefault("mqtt.enabled", false)
	viper.SetDefault("mqtt.broker", "tcp://localhost:1883")
	viper.SetDefault("mqtt.clientId", "light2servo")
	viper.SetDefault("mqtt.topic", "light2servo/status")
	viper.SetDefault("mqtt.systemTopic", "light2servo/system")

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9001)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)
}

// DetectConfigFile reads the config file that viper found (or that was passed via flag)
// and returns its path.
func DetectConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		// config file is required, so we fail here
		ui.FatalWithoutStacktrace("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed()
}

func LoadConfig() {
	// load default configuration values
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(decodeHook()))
	if err != nil {
		ui.FatalWithoutStacktrace("unable to decode into struct, %v", err)
	}
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		rangeHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}
