package fan

import (
	"strconv"

	"github.com/markusressel/ecfan/cmd/global"
	"github.com/markusressel/ecfan/internal/configuration"
	"github.com/markusressel/ecfan/internal/ui"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var limitsCmd = &cobra.Command{
	Use:   "limits",
	Short: "Print the board rpm limits of a fan and the overrides of every module profile",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loadConfig()

		config, err := getFanConfig(fanId)
		if err != nil {
			return err
		}

		rows := [][]string{
			{"board", strconv.Itoa(config.MinRpm), strconv.Itoa(config.MaxRpm), strconv.Itoa(config.StartRpm)},
		}
		for _, profile := range configuration.CurrentConfig.Modules.Profiles {
			for _, limit := range profile.Fans {
				if limit.Fan != fanId {
					continue
				}
				rows = append(rows, []string{
					profile.ID, limitText(limit.MinRpm, config.MinRpm), limitText(limit.MaxRpm, config.MaxRpm), strconv.Itoa(config.StartRpm),
				})
			}
		}

		tableString, err := global.RenderTable(table.Table{
			Headers: []string{"Source", "Min RPM", "Max RPM", "Start RPM"},
			Rows:    rows,
		})
		if err != nil {
			return err
		}
		ui.Printfln("%s", tableString)
		return nil
	},
}

// a zero override falls back to the board default
func limitText(override int, fallback int) string {
	if override == 0 {
		return strconv.Itoa(fallback)
	}
	return strconv.Itoa(override)
}

func init() {
	Command.AddCommand(limitsCmd)
}
