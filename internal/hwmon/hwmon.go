package hwmon

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/markusressel/ecfan/internal/configuration"
	"github.com/markusressel/ecfan/internal/util"
	"github.com/md14454/gosensors"
)

const (
	BusTypeIsa  = 1
	BusTypePci  = 2
	BusTypeAcpi = 5
)

var channelRegex = regexp.MustCompile(`^[a-z]+(\d+)_`)

type HwMonController struct {
	Name     string
	Platform string
	Path     string

	Fans    []FanChannel
	Sensors []TempChannel
}

// TempChannel is a temperature input of a hwmon device
type TempChannel struct {
	Label   string
	Index   int
	Channel int
	Input   string
	// Value in milli-degree celsius at the time of detection
	Value int
}

// FanChannel is a fan tachometer of a hwmon device, the target is only
// present if the driver supports closed loop rpm control
type FanChannel struct {
	Label     string
	Index     int
	Channel   int
	RpmInput  string
	RpmTarget string
	Min       int
	Max       int
	Rpm       int
}

func GetChips() []*HwMonController {
	gosensors.Init()
	defer gosensors.Cleanup()
	chips := gosensors.GetDetectedChips()

	var list []*HwMonController

	for i := 0; i < len(chips); i++ {
		chip := chips[i]

		identifier := computeIdentifier(chip)
		platform := findPlatform(chip.Path)
		if len(platform) <= 0 {
			platform = identifier
		}

		fansList := GetFans(chip)
		sensorsList := GetTempSensors(chip)

		if len(fansList) <= 0 && len(sensorsList) <= 0 {
			continue
		}

		list = append(list, &HwMonController{
			Name:     identifier,
			Platform: platform,
			Path:     chip.Path,
			Fans:     fansList,
			Sensors:  sensorsList,
		})
	}

	return list
}

func GetTempSensors(chip gosensors.Chip) []TempChannel {
	var sensorList []TempChannel

	features := chip.GetFeatures()
	for j := 0; j < len(features); j++ {
		feature := features[j]

		if feature.Type != gosensors.FeatureTypeTemp {
			continue
		}

		subfeatures := feature.GetSubFeatures()
		inputSubFeature, ok := getSubFeature(subfeatures, gosensors.SubFeatureTypeTempInput)
		if !ok {
			continue
		}

		sensorList = append(sensorList, TempChannel{
			Label:   getLabel(chip.Path, inputSubFeature.Name),
			Index:   len(sensorList) + 1,
			Channel: parseChannel(inputSubFeature.Name),
			Input:   filepath.Join(chip.Path, inputSubFeature.Name),
			Value:   int(inputSubFeature.GetValue() * 1000),
		})
	}

	return sensorList
}

func GetFans(chip gosensors.Chip) []FanChannel {
	var fanList []FanChannel

	features := chip.GetFeatures()
	for j := 0; j < len(features); j++ {
		feature := features[j]

		if feature.Type != gosensors.FeatureTypeFan {
			continue
		}

		subfeatures := feature.GetSubFeatures()
		inputSubFeature, ok := getSubFeature(subfeatures, gosensors.SubFeatureTypeFanInput)
		if !ok {
			continue
		}

		fan := FanChannel{
			Label:    getLabel(chip.Path, inputSubFeature.Name),
			Index:    len(fanList) + 1,
			Channel:  parseChannel(inputSubFeature.Name),
			RpmInput: filepath.Join(chip.Path, inputSubFeature.Name),
			Rpm:      int(inputSubFeature.GetValue()),
			Min:      -1,
			Max:      -1,
		}
		if minSubFeature, ok := getSubFeature(subfeatures, gosensors.SubFeatureTypeFanMin); ok {
			fan.Min = int(minSubFeature.GetValue())
		}
		if maxSubFeature, ok := getSubFeature(subfeatures, gosensors.SubFeatureTypeFanMax); ok {
			fan.Max = int(maxSubFeature.GetValue())
		}

		// libsensors does not expose fanN_target as a subfeature
		target := filepath.Join(chip.Path, fmt.Sprintf("fan%d_target", fan.Channel))
		if _, err := os.Stat(target); err == nil {
			fan.RpmTarget = target
		}

		fanList = append(fanList, fan)
	}

	return fanList
}

// UpdateSensorConfigFromHwMonControllers resolves the input path of a hwmon sensor config
func UpdateSensorConfigFromHwMonControllers(controllers []*HwMonController, config *configuration.SensorConfig) error {
	hwmonConfig := config.HwMon

	for _, controller := range controllers {
		if !matchesPlatform(hwmonConfig.Platform, controller.Platform) {
			continue
		}
		for _, sensor := range controller.Sensors {
			if (hwmonConfig.Index > 0 && sensor.Index == hwmonConfig.Index) ||
				(hwmonConfig.Index <= 0 && sensor.Channel == hwmonConfig.Channel) {
				hwmonConfig.Index = sensor.Index
				hwmonConfig.Channel = sensor.Channel
				hwmonConfig.TempInput = sensor.Input
				return nil
			}
		}
	}

	return fmt.Errorf("no hwmon sensor matched sensor config: %+v", *hwmonConfig)
}

// UpdateFanConfigFromHwMonControllers resolves the rpm paths of a hwmon fan config
func UpdateFanConfigFromHwMonControllers(controllers []*HwMonController, config *configuration.FanConfig) error {
	hwmonConfig := config.HwMon

	for _, controller := range controllers {
		if !matchesPlatform(hwmonConfig.Platform, controller.Platform) {
			continue
		}
		for _, fan := range controller.Fans {
			if (hwmonConfig.Index > 0 && fan.Index == hwmonConfig.Index) ||
				(hwmonConfig.Index <= 0 && fan.Channel == hwmonConfig.Channel) {
				if len(fan.RpmTarget) <= 0 {
					return fmt.Errorf("hwmon fan %s on %s does not support rpm targets", fan.Label, controller.Name)
				}
				hwmonConfig.Index = fan.Index
				hwmonConfig.Channel = fan.Channel
				hwmonConfig.RpmInput = fan.RpmInput
				hwmonConfig.RpmTarget = fan.RpmTarget
				return nil
			}
		}
	}

	return fmt.Errorf("no hwmon fan matched fan config: %+v", *hwmonConfig)
}

func matchesPlatform(pattern string, platform string) bool {
	if len(pattern) <= 0 {
		return false
	}
	matched, err := regexp.MatchString(pattern, platform)
	return err == nil && matched
}

func parseChannel(subFeatureName string) int {
	match := channelRegex.FindStringSubmatch(subFeatureName)
	if len(match) < 2 {
		return -1
	}
	channel, err := strconv.Atoi(match[1])
	if err != nil {
		return -1
	}
	return channel
}

func getSubFeature(subfeatures []gosensors.SubFeature, input gosensors.SubFeatureType) (gosensors.SubFeature, bool) {
	for _, a := range subfeatures {
		if a.Type == input {
			return a, true
		}
	}
	return gosensors.SubFeature{}, false
}

// getLabel read the label of a in/output of a device
func getLabel(devicePath string, input string) string {
	labelPath := strings.TrimSuffix(filepath.Join(devicePath, input), "input") + "label"

	label, err := util.ReadStringFromFile(labelPath)
	if err != nil || len(label) <= 0 {
		_, label = filepath.Split(devicePath)
	}
	return label
}

func computeIdentifier(chip gosensors.Chip) (name string) {
	name = chip.Prefix

	devicePath := chip.Path
	if len(name) <= 0 {
		name, _ = util.ReadStringFromFile(filepath.Join(devicePath, "name"))
	}

	if len(name) <= 0 {
		_, name = filepath.Split(devicePath)
	}

	identifier := name
	switch chip.Bus.Type {
	case BusTypeIsa:
		identifier = fmt.Sprintf("%s-isa-%d%03x", identifier, chip.Bus.Nr, chip.Addr)
	case BusTypePci:
		identifier = fmt.Sprintf("%s-pci-%d%03x", identifier, chip.Bus.Nr, chip.Addr)
	case BusTypeAcpi:
		identifier = fmt.Sprintf("%s-acpi-%d", identifier, chip.Bus.Nr)
	}

	return identifier
}

func findPlatform(devicePath string) string {
	platformRegex := regexp.MustCompile(`.*/platform/[^/]+/`)
	match := platformRegex.FindString(devicePath)
	if len(match) <= 0 {
		return ""
	}
	_, platform := filepath.Split(strings.TrimSuffix(match, "/"))
	return platform
}
