// Package config resolves the model coefficients from built-in defaults, an
// optional YAML file and the environment.
package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/ja7ad/greenmeter/pkg/consumption"
)

// Environment keys.
const (
	EnvFile          = "GREENMETER_CONFIG"
	EnvGridIntensity = "GREENMETER_GRID_INTENSITY"
	EnvCPUWatts      = "GREENMETER_CPU_WATTS"
	EnvMemWattsPerGB = "GREENMETER_MEM_WATTS_PER_GB"
)

// coefficientRule bounds every coefficient; anything else falls back. Zero is
// valid, e.g. a carbon-free grid. NaN and Inf fail both bounds.
const coefficientRule = "gte=0,lte=1000000"

var validate = validator.New()

// file is the YAML layout of a coefficients file.
type file struct {
	GridIntensity *float64 `yaml:"grid_intensity_g_per_kwh"`
	CPUWatts      *float64 `yaml:"avg_cpu_watts"`
	MemWattsPerGB *float64 `yaml:"mem_watts_per_gb"`
}

// Load returns the effective coefficients. It never fails: a missing .env,
// an unreadable YAML file or a malformed value is logged and the value from
// the previous layer is kept.
func Load() consumption.Config {
	return load(slog.Default())
}

// LoadWithLogger is Load with an explicit logger.
func LoadWithLogger(log *slog.Logger) consumption.Config {
	if log == nil {
		log = slog.Default()
	}
	return load(log)
}

func load(log *slog.Logger) consumption.Config {
	_ = godotenv.Load()

	cfg := consumption.DefaultConfig()
	if path := os.Getenv(EnvFile); path != "" {
		cfg = applyFile(cfg, path, log)
	}
	return applyEnv(cfg, log)
}

// LoadFile layers the YAML file at path over the defaults, then applies the
// environment. Used when the path comes from a flag rather than the env.
func LoadFile(path string, log *slog.Logger) consumption.Config {
	if log == nil {
		log = slog.Default()
	}
	_ = godotenv.Load()
	return applyEnv(applyFile(consumption.DefaultConfig(), path, log), log)
}

func applyFile(cfg consumption.Config, path string, log *slog.Logger) consumption.Config {
	b, err := os.ReadFile(path)
	if err != nil {
		log.Warn("config: read file, using defaults", "path", path, "err", err)
		return cfg
	}
	var f file
	if err := yaml.Unmarshal(b, &f); err != nil {
		log.Warn("config: parse file, using defaults", "path", path, "err", err)
		return cfg
	}
	set := func(dst *float64, v *float64, key string) {
		if v == nil {
			return
		}
		if err := validate.Var(*v, coefficientRule); err != nil {
			log.Warn("config: invalid value in file, using default",
				"path", path, "key", key, "value", *v, "default", *dst)
			return
		}
		*dst = *v
	}
	set(&cfg.GridIntensity, f.GridIntensity, "grid_intensity_g_per_kwh")
	set(&cfg.CPUWatts, f.CPUWatts, "avg_cpu_watts")
	set(&cfg.MemWattsPerGB, f.MemWattsPerGB, "mem_watts_per_gb")
	return cfg
}

func applyEnv(cfg consumption.Config, log *slog.Logger) consumption.Config {
	cfg.GridIntensity = getFloatOrDefault(log, EnvGridIntensity, cfg.GridIntensity)
	cfg.CPUWatts = getFloatOrDefault(log, EnvCPUWatts, cfg.CPUWatts)
	cfg.MemWattsPerGB = getFloatOrDefault(log, EnvMemWattsPerGB, cfg.MemWattsPerGB)
	return cfg
}

func getFloatOrDefault(log *slog.Logger, key string, defaultValue float64) float64 {
	strValue := os.Getenv(key)
	if strValue == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(strValue, 64)
	if err == nil {
		err = validate.Var(value, coefficientRule)
	}
	if err != nil {
		log.Warn("config: invalid value, using default",
			"key", key,
			"value", strValue,
			"default", defaultValue)
		return defaultValue
	}
	return value
}
