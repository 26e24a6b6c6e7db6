package cmd

import (
	"github.com/markusressel/light2servo/internal/ui"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of light2servo",
	Long:  `All software has versions. This is light2servo's`,
	Run: func(cmd *cobra.Command, args []string) {
		ui.Printfln("%s", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
