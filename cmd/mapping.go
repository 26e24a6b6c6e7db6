package cmd

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/light2servo/cmd/global"
	"github.com/markusressel/light2servo/internal/configuration"
	"github.com/markusressel/light2servo/internal/control"
	"github.com/markusressel/light2servo/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

const mappingGraphWidth = 100

var mappingCmd = &cobra.Command{
	Use:   "mapping",
	Short: "Print the light level to servo angle mapping",
	Long:  `Prints a table of key points and a graph of the configured light level to angle mapping.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		configPath := configuration.DetectConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()
		if err := configuration.Validate(configPath); err != nil {
			ui.FatalWithoutStacktrace("%v", err)
		}

		config := configuration.CurrentConfig
		params := control.NewParameters(config.Control, config.Display)

		tableString, err := mappingTable(params, !global.NoColor)
		if err != nil {
			ui.Fatal("Unable to render table: %v", err)
		}
		ui.Printfln("%s", tableString)

		ui.Printfln("%s", mappingGraph(params))
	},
}

// mappingKeyPoints returns the light levels at every eighth of the input range
func mappingKeyPoints(params control.Parameters) []float64 {
	points := make([]float64, 0, 9)
	for i := 0; i <= 8; i++ {
		points = append(points, params.InputRange.Min+params.InputRange.Span()*float64(i)/8)
	}
	return points
}

func mappingTable(params control.Parameters, color bool) (string, error) {
	var rows [][]string
	for _, light := range mappingKeyPoints(params) {
		dark := "no"
		if params.IsDark(light) {
			dark = "yes"
		}
		rows = append(rows, []string{
			strconv.Itoa(int(light)),
			fmt.Sprintf("%.1f", params.TargetAngle(light)),
			dark,
		})
	}

	tab := table.Table{
		Headers: []string{"Light", "Angle", "Dark"},
		Rows:    rows,
	}
	var buf bytes.Buffer
	err := tab.WriteTable(&buf, &table.Config{
		ShowIndex:       false,
		Color:           color,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	})
	return buf.String(), err
}

func mappingGraph(params control.Parameters) string {
	values := make([]float64, 0, mappingGraphWidth)
	for i := 0; i < mappingGraphWidth; i++ {
		light := params.InputRange.Min + params.InputRange.Span()*float64(i)/float64(mappingGraphWidth-1)
		values = append(values, params.TargetAngle(light))
	}

	caption := fmt.Sprintf("Angle / Light (%s)", params.InputRange)
	return asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(mappingGraphWidth), asciigraph.Caption(caption))
}

func init() {
	rootCmd.AddCommand(mappingCmd)
}
