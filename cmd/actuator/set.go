package actuator

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/markusressel/light2servo/internal/actuators"
	"github.com/markusressel/light2servo/internal/ui"
	"github.com/oklog/run"
	"github.com/spf13/cobra"
)

var hold time.Duration

var setCmd = &cobra.Command{
	Use:   "set <angle>",
	Short: "Move the actuator to the given angle ([0..180]) and hold it",
	Long: `Acquires the actuator, commands the given angle and releases
the actuator again after the hold time has passed (or on interrupt).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		angle, err := strconv.Atoi(args[0])
		if err != nil {
			return err
		}
		if angle < actuators.MinAngle || angle > actuators.MaxAngle {
			return fmt.Errorf("angle must be in [%d..%d], got %d", actuators.MinAngle, actuators.MaxAngle, angle)
		}

		actuator, err := getActuator()
		if err != nil {
			return err
		}
		defer actuator.Close()

		if err := actuator.Acquire(); err != nil {
			return err
		}
		if err := actuator.SetAngle(angle); err != nil {
			_ = actuator.Release()
			return err
		}
		ui.Success("Moved %s to %d deg, holding for %v", actuator.GetId(), angle, hold)

		holdFor(hold)

		ui.Info("Releasing %s", actuator.GetId())
		return actuator.Release()
	},
}

// holdFor blocks until duration has passed or the process is interrupted
func holdFor(duration time.Duration) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var g run.Group
	{
		g.Add(func() error {
			select {
			case <-time.After(duration):
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			cancel()
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case <-sig:
				ui.Info("Interrupted")
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}
	_ = g.Run()
}

func init() {
	setCmd.Flags().DurationVarP(&hold, "hold", "", 2*time.Second, "How long to hold the angle before releasing the actuator")
	Command.AddCommand(setCmd)
}
