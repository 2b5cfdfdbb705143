package qreg

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"
	"github.com/theapemachine/errnie"
)

const (
	// hardQubitLimit keeps 16<<n within the runtime's 48-bit allocation ceiling
	// on 64-bit platforms; wider vectors make make() panic.
	hardQubitLimit = 44

	amplitudeBytes = 16
)

/*
Config carries the tunables for register construction and gate sweeps.
The zero value is not useful; start from NewConfig or LoadConfig.
*/
type Config struct {
	// MaxQubits is the largest register NewStateRegister will allocate.
	MaxQubits int `mapstructure:"max_qubits"`

	// MaxMemoryBytes caps the amplitude vector size. Zero means the default,
	// a negative value disables the check.
	MaxMemoryBytes int64 `mapstructure:"max_memory_bytes"`

	// ParallelThreshold is the qubit count from which sweeps are split across workers.
	ParallelThreshold int `mapstructure:"parallel_threshold"`

	// Workers bounds the number of goroutines used by one sweep.
	Workers int `mapstructure:"workers"`
}

func NewConfig() *Config {
	return &Config{
		MaxQubits:         30,
		MaxMemoryBytes:    16 << 30,
		ParallelThreshold: 14,
		Workers:           runtime.GOMAXPROCS(0),
	}
}

/*
LoadConfig reads a config file (any format viper understands) on top of the
defaults from NewConfig. Environment variables prefixed with QREG_ override
both, e.g. QREG_MAX_QUBITS=24. An empty path only applies defaults and env.
*/
func LoadConfig(path string) (*Config, error) {
	defaults := NewConfig()

	v := viper.New()
	v.SetDefault("max_qubits", defaults.MaxQubits)
	v.SetDefault("max_memory_bytes", defaults.MaxMemoryBytes)
	v.SetDefault("parallel_threshold", defaults.ParallelThreshold)
	v.SetDefault("workers", defaults.Workers)

	v.SetEnvPrefix("QREG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		errnie.Info("LoadConfig - loaded %s", v.ConfigFileUsed())
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	return config.normalize(), nil
}

/*
normalize fills unset fields from NewConfig and clamps values that would make
the register unusable, so a zero Config behaves like the defaults.
*/
func (config *Config) normalize() *Config {
	defaults := NewConfig()

	if config.MaxQubits <= 0 {
		config.MaxQubits = defaults.MaxQubits
	}
	if config.MaxQubits > hardQubitLimit {
		config.MaxQubits = hardQubitLimit
	}
	if config.MaxMemoryBytes == 0 {
		config.MaxMemoryBytes = defaults.MaxMemoryBytes
	}
	if config.Workers <= 0 {
		config.Workers = defaults.Workers
	}
	if config.ParallelThreshold < 0 {
		config.ParallelThreshold = 0
	}
	return config
}

func configOrDefault(config *Config) *Config {
	if config == nil {
		return NewConfig()
	}
	clone := *config
	return clone.normalize()
}
