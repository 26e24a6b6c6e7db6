package display

import (
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "display",
	Short:            "Display related commands",
	Long:             ``,
	TraverseChildren: true,
}
