package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/markusressel/ecfan/cmd/global"
	"github.com/markusressel/ecfan/internal/hwmon"
	"github.com/markusressel/ecfan/internal/ui"
	"github.com/markusressel/ecfan/internal/util"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect devices",
	Long:  `Detects all hwmon fans and temperature sensors and prints them as a list`,
	Run: func(cmd *cobra.Command, args []string) {
		controllers := hwmon.GetChips()

		for _, controller := range controllers {
			if len(controller.Name) <= 0 {
				continue
			}
			if len(controller.Fans) <= 0 && len(controller.Sensors) <= 0 {
				continue
			}

			ui.Printfln("> %s (platform: %s)", controller.Name, controller.Platform)

			var fanRows [][]string
			for _, fan := range controller.Fans {
				targetText := "N/A"
				if len(fan.RpmTarget) > 0 {
					_, targetText = filepath.Split(fan.RpmTarget)
				}
				fanRows = append(fanRows, []string{
					"", strconv.Itoa(fan.Index), strconv.Itoa(fan.Channel), fan.Label, strconv.Itoa(fan.Rpm), targetText,
				})
			}
			fanTable := table.Table{
				Headers: []string{"Fans   ", "Index", "Channel", "Label", "RPM", "Target"},
				Rows:    fanRows,
			}

			var sensorRows [][]string
			for _, sensor := range controller.Sensors {
				_, file := filepath.Split(sensor.Input)
				labelAndFile := fmt.Sprintf("%s (%s)", sensor.Label, file)
				value := util.MilliKelvinToCelsius(util.MilliCelsiusToMilliKelvin(sensor.Value))
				sensorRows = append(sensorRows, []string{
					"", strconv.Itoa(sensor.Index), strconv.Itoa(sensor.Channel), labelAndFile, fmt.Sprintf("%.1f °C", value),
				})
			}
			sensorTable := table.Table{
				Headers: []string{"Sensors", "Index", "Channel", "Label", "Value"},
				Rows:    sensorRows,
			}

			tables := []table.Table{fanTable, sensorTable}
			for idx, tab := range tables {
				if tab.Rows == nil {
					continue
				}
				tableString, err := global.RenderTable(tab)
				if err != nil {
					ui.Fatal("Error printing table: %v", err)
				}
				if idx < (len(tables) - 1) {
					ui.Printf("%s", tableString)
				} else {
					ui.Printfln("%s", tableString)
				}
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
