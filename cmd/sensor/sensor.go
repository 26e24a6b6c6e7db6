package sensor

import (
	"fmt"
	"io"
	"time"

	"github.com/markusressel/light2servo/internal/configuration"
	"github.com/markusressel/light2servo/internal/sensors"
	"github.com/markusressel/light2servo/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	count    int
	interval time.Duration
)

var Command = &cobra.Command{
	Use:   "sensor",
	Short: "Print the raw value of the light sensor",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		sensor, err := getSensor()
		if err != nil {
			return err
		}
		if closer, ok := sensor.(io.Closer); ok {
			defer closer.Close()
		}

		for i := 0; i < count; i++ {
			if i > 0 {
				time.Sleep(interval)
			}
			value, err := sensor.GetValue()
			if err != nil {
				return err
			}
			fmt.Printf("%d\n", value)
		}
		return nil
	},
}

func init() {
	Command.Flags().IntVarP(&count, "count", "n", 1, "Number of samples to print")
	Command.Flags().DurationVarP(&interval, "interval", "", 500*time.Millisecond, "Time between two samples")
}

func getSensor() (sensors.Sensor, error) {
	configPath := configuration.DetectConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	err := configuration.Validate(configPath)
	if err != nil {
		ui.FatalWithoutStacktrace("%v", err)
	}

	return sensors.NewSensor(configuration.CurrentConfig.Sensor)
}
