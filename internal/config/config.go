package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/limaJavier/timetable-picker/pkg/calendar"
	"github.com/limaJavier/timetable-picker/pkg/model"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	StrategySequential = "sequential"
	StrategyParallel   = "parallel"

	FormatJson = "json"
	FormatCsv  = "csv"
)

var (
	validStrategies = []string{StrategySequential, StrategyParallel}
	validFormats    = []string{FormatJson, FormatCsv}
)

type Config struct {
	Env      string         `mapstructure:"env"`
	Log      LogConfig      `mapstructure:"log"`
	Filter   FilterConfig   `mapstructure:"filter"`
	Picker   PickerConfig   `mapstructure:"picker"`
	Output   OutputConfig   `mapstructure:"output"`
	Calendar CalendarConfig `mapstructure:"calendar"`

	EnvFileLoaded bool `mapstructure:"-"` // Whether a .env file was found
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// FilterConfig mirrors model.FilterConfig; nil hours mean no restriction
type FilterConfig struct {
	ExcludedDays    []int  `mapstructure:"excluded_days"`
	ExcludedTeacher string `mapstructure:"excluded_teacher"`
	MinHour         *int   `mapstructure:"min_hour"`
	MaxHour         *int   `mapstructure:"max_hour"`
}

type PickerConfig struct {
	Strategy string `mapstructure:"strategy"`
	Workers  int    `mapstructure:"workers"` // 0 means one per CPU
	Limit    int    `mapstructure:"limit"`   // 0 means every combination
}

type OutputConfig struct {
	File     string `mapstructure:"file"`
	Format   string `mapstructure:"format"`
	Stdout   bool   `mapstructure:"stdout"`
	Database string `mapstructure:"database"`
}

// CalendarConfig replaces the reference calendar when windows are given
type CalendarConfig struct {
	Windows []calendar.Window `mapstructure:"windows"`
}

// Load reads an optional .env file, then the optional config file at path (any format viper understands), then PICKER_* environment variables (e.g. PICKER_FILTER_MIN_HOUR)
func Load(path string) (*Config, error) {
	envFileLoaded := godotenv.Load() == nil

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("PICKER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without defaults are only seen by Unmarshal when bound explicitly
	for _, key := range []string{"filter.excluded_days", "filter.excluded_teacher", "filter.min_hour", "filter.max_hour"} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("cannot read config file %q: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("cannot decode config: %w", err)
	}
	cfg.EnvFileLoaded = envFileLoaded

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", EnvDevelopment)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("picker.strategy", StrategySequential)
	v.SetDefault("picker.workers", 0)
	v.SetDefault("picker.limit", 0)
	v.SetDefault("output.file", "")
	v.SetDefault("output.format", FormatJson)
	v.SetDefault("output.stdout", false)
	v.SetDefault("output.database", "")
}

// Validate checks the settings the picker cannot run with. It is exported so that callers can re-check after overriding fields
func (cfg *Config) Validate() error {
	if !slices.Contains(validStrategies, cfg.Picker.Strategy) {
		return fmt.Errorf("%v is not a valid strategy: expected one of %v", cfg.Picker.Strategy, validStrategies)
	} else if !slices.Contains(validFormats, cfg.Output.Format) {
		return fmt.Errorf("%v is not a valid output format: expected one of %v", cfg.Output.Format, validFormats)
	} else if cfg.Picker.Workers < 0 {
		return fmt.Errorf("workers must not be negative: %v", cfg.Picker.Workers)
	} else if cfg.Picker.Limit < 0 {
		return fmt.Errorf("limit must not be negative: %v", cfg.Picker.Limit)
	}

	for _, hour := range []*int{cfg.Filter.MinHour, cfg.Filter.MaxHour} {
		if hour != nil && (*hour < 0 || *hour > 23) {
			return fmt.Errorf("hours must be between 0 and 23: %v", *hour)
		}
	}
	if cfg.Filter.MinHour != nil && cfg.Filter.MaxHour != nil && *cfg.Filter.MinHour > *cfg.Filter.MaxHour {
		return fmt.Errorf("min-hour (%v) must not be greater than max-hour (%v)", *cfg.Filter.MinHour, *cfg.Filter.MaxHour)
	}
	return nil
}

// IsProduction reports whether the production environment is selected
func (cfg *Config) IsProduction() bool {
	return cfg.Env == EnvProduction
}

// ModelFilter converts the filter section into the picker's filter configuration
func (cfg *Config) ModelFilter() model.FilterConfig {
	return model.FilterConfig{
		ExcludedDays:           slices.Clone(cfg.Filter.ExcludedDays),
		ExcludedTeacherPattern: cfg.Filter.ExcludedTeacher,
		MinHour:                cfg.Filter.MinHour,
		MaxHour:                cfg.Filter.MaxHour,
	}
}

// BuildCalendar returns the configured calendar, or the reference one when no windows are configured
func (cfg *Config) BuildCalendar() (calendar.Calendar, error) {
	if len(cfg.Calendar.Windows) == 0 {
		return calendar.Default(), nil
	}
	return calendar.NewCalendar(cfg.Calendar.Windows)
}
