// Package dccconfig loads dccrx's runtime configuration: the GPIO and serial
// edge sources' settings, ring buffer sizing, log level, and the monitor's
// listen address.
package dccconfig

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is dccrx's full runtime configuration.
type Config struct {
	LogLevel string `mapstructure:"log_level"`

	RingBufferCapacity int `mapstructure:"ring_buffer_capacity"`

	// FLMode selects FL-in-speed-byte decoding for
	// SpeedAndDirectionForLocomotive instructions, matching a layout's
	// decoders' CV29 FL-control bit. Off by default (5-bit speed byte).
	FLMode bool `mapstructure:"fl_mode"`

	GPIO struct {
		Chip string `mapstructure:"chip"`
		Line int    `mapstructure:"line"`
	} `mapstructure:"gpio"`

	Serial struct {
		Device   string `mapstructure:"device"`
		BaudRate int    `mapstructure:"baud_rate"`
	} `mapstructure:"serial"`

	Monitor struct {
		Enabled       bool   `mapstructure:"enabled"`
		ListenAddress string `mapstructure:"listen_address"`
		MetricsPath   string `mapstructure:"metrics_path"`
	} `mapstructure:"monitor"`
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() Config {
	var c Config
	c.LogLevel = "info"
	c.RingBufferCapacity = 1024
	c.FLMode = false
	c.GPIO.Chip = "/dev/gpiochip0"
	c.GPIO.Line = 17
	c.Serial.BaudRate = 115200
	c.Monitor.ListenAddress = ":8427"
	c.Monitor.MetricsPath = "/metrics"
	return c
}

// Load reads configuration from DCCRX_-prefixed environment variables,
// configPath (if non-empty), and finally Default's values, in that
// precedence order (environment overrides file, file overrides defaults).
func Load(configPath string) (Config, error) {
	c := Default()

	v := viper.New()
	v.SetEnvPrefix("DCCRX")
	v.AutomaticEnv()

	setDefaults(v, c)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("dccconfig: reading %s: %w", configPath, err)
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("dccconfig: unmarshalling configuration: %w", err)
	}
	return c, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("log_level", c.LogLevel)
	v.SetDefault("ring_buffer_capacity", c.RingBufferCapacity)
	v.SetDefault("fl_mode", c.FLMode)
	v.SetDefault("gpio.chip", c.GPIO.Chip)
	v.SetDefault("gpio.line", c.GPIO.Line)
	v.SetDefault("serial.baud_rate", c.Serial.BaudRate)
	v.SetDefault("monitor.enabled", c.Monitor.Enabled)
	v.SetDefault("monitor.listen_address", c.Monitor.ListenAddress)
	v.SetDefault("monitor.metrics_path", c.Monitor.MetricsPath)
}
