package configuration

import (
	"os"
	"time"

	"github.com/markusressel/ecfan/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	DbPath string `json:"dbPath"`

	// TickRate is the interval between two control decisions of a fan channel
	TickRate time.Duration `json:"tickRate"`
	// StopDelay is the time a fan keeps spinning after its target dropped to zero
	StopDelay time.Duration `json:"stopDelay"`
	// StopHysteresis in milli-kelvin below the fan-off threshold of the governing
	// zone, at which a stopping fan is kept running
	StopHysteresis int `json:"stopHysteresis"`

	ThermalLog ThermalLogConfig `json:"thermalLog"`

	Sensors []SensorConfig `json:"sensors"`
	Power   []PowerConfig  `json:"power"`
	Zones   []ZoneConfig   `json:"zones"`
	Fans    []FanConfig    `json:"fans"`

	Modules ModulesConfig `json:"modules"`

	History    HistoryConfig    `json:"history"`
	Statistics StatisticsConfig `json:"statistics"`
	Api        ApiConfig        `json:"api"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("ecfan")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/ecfan/")
	}

	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("dbpath", "/etc/ecfan/ecfan.db")
	viper.SetDefault("TickRate", 1*time.Second)
	viper.SetDefault("StopDelay", 5*time.Second)
	viper.SetDefault("StopHysteresis", 500)

	viper.SetDefault("ThermalLog.Enabled", false)

	viper.SetDefault("Modules.PollingRate", 1*time.Second)

	viper.SetDefault("History.Enabled", false)
	viper.SetDefault("History.Interval", 5*time.Second)
	viper.SetDefault("History.MaxEntries", 720)

	viper.SetDefault("Statistics.Enabled", false)
	viper.SetDefault("Statistics.Port", 9000)

	viper.SetDefault("Api.Enabled", false)
	viper.SetDefault("Api.Host", "localhost")
	viper.SetDefault("Api.Port", 9001)

	viper.SetDefault("sensors", []SensorConfig{})
	viper.SetDefault("power", []PowerConfig{})
	viper.SetDefault("zones", []ZoneConfig{})
	viper.SetDefault("fans", []FanConfig{})
}

// DetectAndReadConfigFile reads the config file and returns its path
func DetectAndReadConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		// config file is required, so we fail here
		ui.Fatal("Error reading config file, %s", err)
	}
	return viper.ConfigFileUsed()
}

func LoadConfig() {
	// load default configuration values
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(decodeHook()))
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		TemperatureHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
}
