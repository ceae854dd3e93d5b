package zone

import (
	"fmt"
	"strconv"

	"github.com/markusressel/ecfan/cmd/global"
	"github.com/markusressel/ecfan/internal"
	"github.com/markusressel/ecfan/internal/configuration"
	"github.com/markusressel/ecfan/internal/hwmon"
	"github.com/markusressel/ecfan/internal/sensors"
	"github.com/markusressel/ecfan/internal/ui"
	"github.com/markusressel/ecfan/internal/util"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all thermal zones with their current temperature and fan demand",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := configuration.DetectAndReadConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()
		if err := configuration.Validate(); err != nil {
			return err
		}

		board, err := internal.CreateBoard(&configuration.CurrentConfig, hwmon.GetChips())
		if err != nil {
			return err
		}
		defer sensors.CloseBuses()

		var rows [][]string
		for idx, zone := range board.Zones {
			config := configuration.CurrentConfig.Zones[idx]

			tempText := "N/A"
			percentText := "N/A"
			value, err := sensors.ReadValue(config.Sensor)
			if err == nil {
				tempText = formatCelsius(value)
				percentText = strconv.Itoa(zone.Threshold.Percent(value))
			}

			poweredText := "N/A"
			powered, err := zone.IsPowered()
			if err == nil {
				poweredText = strconv.FormatBool(powered)
			}

			rows = append(rows, []string{
				zone.ID, config.Sensor, tempText, formatCelsius(zone.Threshold.Off), formatCelsius(zone.Threshold.Max), percentText, poweredText,
			})
		}

		tableString, err := global.RenderTable(table.Table{
			Headers: []string{"Zone", "Sensor", "Temp", "Off", "Max", "Percent", "Powered"},
			Rows:    rows,
		})
		if err != nil {
			return err
		}
		ui.Printfln("%s", tableString)
		return nil
	},
}

func formatCelsius(milliKelvin int) string {
	if milliKelvin == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f °C", util.MilliKelvinToCelsius(milliKelvin))
}

func init() {
	Command.AddCommand(listCmd)
}
