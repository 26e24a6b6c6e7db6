package actuator

import (
	"github.com/markusressel/light2servo/internal/actuators"
	"github.com/markusressel/light2servo/internal/configuration"
	"github.com/markusressel/light2servo/internal/ui"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "actuator",
	Short:            "Actuator related commands",
	Long:             ``,
	TraverseChildren: true,
}

func getActuator() (actuators.Actuator, error) {
	configPath := configuration.DetectConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	err := configuration.Validate(configPath)
	if err != nil {
		ui.FatalWithoutStacktrace("%v", err)
	}

	return actuators.NewActuator(configuration.CurrentConfig.Actuator)
}
