package cmd

import (
	"errors"
	"os"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/ecfan/cmd/global"
	"github.com/markusressel/ecfan/internal/configuration"
	"github.com/markusressel/ecfan/internal/persistence"
	"github.com/markusressel/ecfan/internal/ui"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var historyFanId string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the recorded control decisions of the fan(s) to console",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configuration.DetectAndReadConfigFile()
		configuration.LoadConfig()

		pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath)

		fanIds := []string{historyFanId}
		if len(historyFanId) <= 0 {
			ids, err := pers.FanIds()
			if err != nil {
				return err
			}
			fanIds = ids
		}
		if len(fanIds) <= 0 {
			ui.Printfln("No history recorded yet...")
			return nil
		}

		for idx, fanId := range fanIds {
			if idx > 0 {
				ui.Printfln("")
				ui.Printfln("")
			}
			ui.Printfln("%s", fanId)

			decisions, err := pers.LoadDecisions(fanId)
			if errors.Is(err, os.ErrNotExist) || len(decisions) <= 0 {
				ui.Printfln("No history recorded yet...")
				continue
			}
			if err != nil {
				return err
			}

			last := decisions[len(decisions)-1]
			tab := table.Table{
				Headers: []string{"", ""},
				Rows: [][]string{
					{"Time", last.Time.Format("2006-01-02 15:04:05")},
					{"State", last.State},
					{"Mode", last.Mode},
					{"Zone", last.Zone},
					{"Percent", strconv.Itoa(last.SelectedPercent)},
					{"Actual RPM", strconv.Itoa(last.ActualRpm)},
					{"Final RPM", strconv.Itoa(last.FinalRpm)},
					{"Min RPM", strconv.Itoa(last.Limits.MinRpm)},
					{"Max RPM", strconv.Itoa(last.Limits.MaxRpm)},
				},
			}
			tableString, err := global.RenderTable(tab)
			if err != nil {
				return err
			}
			ui.Printfln("%s", tableString)

			if len(decisions) < 2 {
				continue
			}
			values := make([]float64, 0, len(decisions))
			for _, decision := range decisions {
				values = append(values, float64(decision.FinalRpm))
			}
			caption := "RPM over time"
			graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
			ui.Printfln("%s", graph)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVarP(&historyFanId, "id", "i", "", "Fan ID as specified in the config")
	rootCmd.AddCommand(historyCmd)
}
