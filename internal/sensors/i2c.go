package sensors

import (
	"fmt"
	"sync"

	"github.com/markusressel/ecfan/internal/configuration"
	"github.com/markusressel/ecfan/internal/util"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

var (
	hostInit    sync.Once
	hostInitErr error

	busMu sync.Mutex
	buses = map[string]i2c.BusCloser{}
)

func openBus(name string) (i2c.Bus, error) {
	hostInit.Do(func() {
		_, hostInitErr = host.Init()
	})
	if hostInitErr != nil {
		return nil, hostInitErr
	}

	busMu.Lock()
	defer busMu.Unlock()

	if bus, ok := buses[name]; ok {
		return bus, nil
	}
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, err
	}
	buses[name] = bus
	return bus, nil
}

// CloseBuses closes all i2c buses opened by sensors
func CloseBuses() {
	busMu.Lock()
	defer busMu.Unlock()

	for name, bus := range buses {
		_ = bus.Close()
		delete(buses, name)
	}
}

// I2cSensor reads a signed whole degree celsius value from a single byte register
type I2cSensor struct {
	Config configuration.SensorConfig `json:"configuration"`

	Bus i2c.Bus `json:"-"`
}

func (sensor *I2cSensor) GetId() string {
	return sensor.Config.ID
}

func (sensor *I2cSensor) GetConfig() configuration.SensorConfig {
	return sensor.Config
}

func (sensor *I2cSensor) GetValue() (int, error) {
	cfg := sensor.Config.I2c

	if sensor.Bus == nil {
		bus, err := openBus(cfg.Bus)
		if err != nil {
			return 0, fmt.Errorf("unable to open i2c bus '%s': %w", cfg.Bus, err)
		}
		sensor.Bus = bus
	}

	d := &i2c.Dev{Addr: cfg.Address, Bus: sensor.Bus}
	read := make([]byte, 1)
	if err := d.Tx([]byte{cfg.Register}, read); err != nil {
		return 0, fmt.Errorf("i2c read of 0x%02x:0x%02x failed: %w", cfg.Address, cfg.Register, err)
	}

	return util.CelsiusToMilliKelvin(int(int8(read[0]))), nil
}
