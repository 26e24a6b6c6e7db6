package display

import (
	"fmt"
	"time"

	"github.com/markusressel/light2servo/internal/configuration"
	"github.com/markusressel/light2servo/internal/displays"
	"github.com/markusressel/light2servo/internal/ui"
	"github.com/spf13/cobra"
)

var (
	light int
	angle int
	pause time.Duration
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Show the banner followed by a sample status on the display",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := configuration.DetectConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()
		if err := configuration.Validate(configPath); err != nil {
			ui.FatalWithoutStacktrace("%v", err)
		}

		config := configuration.CurrentConfig.Display
		display, err := displays.NewDisplay(config)
		if err != nil {
			return err
		}
		defer display.Close()

		if err := showBanner(display, config.Banner); err != nil {
			return err
		}
		time.Sleep(pause)

		if err := showStatus(display, light, angle); err != nil {
			return err
		}
		time.Sleep(pause)
		return nil
	},
}

func showBanner(display displays.Display, banner string) error {
	if err := display.Clear(); err != nil {
		return err
	}
	if err := display.SetCursor(0, 0); err != nil {
		return err
	}
	return display.Print(banner)
}

func showStatus(display displays.Display, light int, angle int) error {
	rows := []string{
		fmt.Sprintf("Light: %d", light),
		fmt.Sprintf("Servo: %d deg", angle),
	}
	for row, text := range rows {
		if err := display.SetCursor(0, row); err != nil {
			return err
		}
		if err := display.Print(displays.PadRight(text, display.Columns())); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	testCmd.Flags().IntVarP(&light, "light", "", 512, "Light level to show")
	testCmd.Flags().IntVarP(&angle, "angle", "", 90, "Servo angle to show")
	testCmd.Flags().DurationVarP(&pause, "pause", "", 2*time.Second, "How long each screen is shown")
	Command.AddCommand(testCmd)
}
