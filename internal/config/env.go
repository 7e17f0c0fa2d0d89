package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "EPMON"

// Settings is the process-level configuration surface: where the endpoint
// file lives, how often to run, and where output goes.
type Settings struct {
	ConfigPath  string
	Interval    time.Duration
	LogDir      string
	LogGroup    string
	LogStream   string
	NoCloudSink bool
}

// NewViper builds a viper instance with the monitor's defaults bound to
// EPMON_* environment variables (dashes become underscores, so the key
// "check-interval" reads EPMON_CHECK_INTERVAL). Commands bind their flags
// onto the same instance.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("config-path", "config.json5")
	v.SetDefault("check-interval", 5)
	v.SetDefault("log-dir", "logs")
	v.SetDefault("log-group", "endpoint-monitor")
	v.SetDefault("log-stream", "")
	v.SetDefault("no-cloud-sink", false)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// FromViper resolves and validates the process settings. A non-positive
// interval is a configuration error; the loop must never start with one.
func FromViper(v *viper.Viper) (Settings, error) {
	s := Settings{
		ConfigPath:  v.GetString("config-path"),
		Interval:    time.Duration(v.GetInt("check-interval")) * time.Minute,
		LogDir:      v.GetString("log-dir"),
		LogGroup:    v.GetString("log-group"),
		LogStream:   v.GetString("log-stream"),
		NoCloudSink: v.GetBool("no-cloud-sink"),
	}
	if s.ConfigPath == "" {
		return Settings{}, errors.New("config path must not be empty")
	}
	if s.Interval <= 0 {
		return Settings{}, fmt.Errorf("check interval must be positive, got %s", s.Interval)
	}
	return s, nil
}

// FromEnv is FromViper over environment variables and defaults alone.
func FromEnv() (Settings, error) {
	return FromViper(NewViper())
}
