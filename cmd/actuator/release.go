package actuator

import (
	"github.com/markusressel/light2servo/internal/ui"
	"github.com/spf13/cobra"
)

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Stop generating the control signal of the actuator",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		actuator, err := getActuator()
		if err != nil {
			return err
		}
		defer actuator.Close()

		if err := actuator.Release(); err != nil {
			return err
		}
		ui.Success("Released %s", actuator.GetId())
		return nil
	},
}

func init() {
	Command.AddCommand(releaseCmd)
}
