package fan

import (
	"fmt"

	"github.com/markusressel/ecfan/internal/configuration"
	"github.com/markusressel/ecfan/internal/fans"
	"github.com/markusressel/ecfan/internal/hwmon"
	"github.com/markusressel/ecfan/internal/ui"
	"github.com/spf13/cobra"
)

var fanId string

var Command = &cobra.Command{
	Use:              "fan",
	Short:            "Fan related commands",
	Long:             ``,
	TraverseChildren: true,
}

func init() {
	Command.PersistentFlags().StringVarP(
		&fanId,
		"id", "i",
		"",
		"Fan ID as specified in the config",
	)
	_ = Command.MarkPersistentFlagRequired("id")
}

func loadConfig() {
	configPath := configuration.DetectAndReadConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	if err := configuration.Validate(); err != nil {
		ui.Fatal("%v", err)
	}
}

func getFanConfig(id string) (*configuration.FanConfig, error) {
	for idx := range configuration.CurrentConfig.Fans {
		if configuration.CurrentConfig.Fans[idx].ID == id {
			return &configuration.CurrentConfig.Fans[idx], nil
		}
	}
	return nil, fmt.Errorf("no fan with id found: %s", id)
}

func getFan(id string) (fans.Fan, error) {
	loadConfig()

	config, err := getFanConfig(id)
	if err != nil {
		return nil, err
	}
	if config.HwMon != nil {
		if err := hwmon.UpdateFanConfigFromHwMonControllers(hwmon.GetChips(), config); err != nil {
			return nil, err
		}
	}
	return fans.NewFan(*config)
}
