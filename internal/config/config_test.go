package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const configYaml = `
env: production
log:
  level: info
filter:
  excluded_days: [0, 4]
  excluded_teacher: "^Novák"
  min_hour: 9
picker:
  strategy: parallel
  workers: 2
output:
  format: csv
  stdout: true
calendar:
  windows:
    - {id: 1, order: 1, beginTime: "09:00:00", endTime: "10:30:00"}
    - {id: 0, order: 0, beginTime: "08:00:00", endTime: "08:45:00"}
`

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "picker.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0666))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)

		assert.Equal(t, EnvDevelopment, cfg.Env)
		assert.False(t, cfg.IsProduction())
		assert.Equal(t, StrategySequential, cfg.Picker.Strategy)
		assert.Equal(t, FormatJson, cfg.Output.Format)
		assert.Nil(t, cfg.Filter.MinHour)
		assert.Nil(t, cfg.Filter.MaxHour)
		assert.Empty(t, cfg.Filter.ExcludedDays)

		cal, err := cfg.BuildCalendar()
		require.NoError(t, err)
		assert.Equal(t, 14, cal.Slots())
	})

	t.Run("Config file", func(t *testing.T) {
		//** Act
		cfg, err := Load(writeConfig(t, configYaml))

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, EnvProduction, cfg.Env)
		assert.True(t, cfg.IsProduction())
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, StrategyParallel, cfg.Picker.Strategy)
		assert.Equal(t, 2, cfg.Picker.Workers)
		assert.True(t, cfg.Output.Stdout)

		filter := cfg.ModelFilter()
		assert.Equal(t, []int{0, 4}, filter.ExcludedDays)
		assert.Equal(t, "^Novák", filter.ExcludedTeacherPattern)
		require.NotNil(t, filter.MinHour)
		assert.Equal(t, 9, *filter.MinHour)
		assert.Nil(t, filter.MaxHour)

		cal, err := cfg.BuildCalendar()
		require.NoError(t, err)
		assert.Equal(t, 2, cal.Slots())
		first, _ := cal.WindowOf(0)
		assert.Equal(t, "08:00:00", first.BeginTime)
	})

	t.Run("Environment overrides", func(t *testing.T) {
		t.Setenv("PICKER_PICKER_STRATEGY", "parallel")
		t.Setenv("PICKER_FILTER_MAX_HOUR", "17")
		t.Setenv("PICKER_FILTER_EXCLUDED_DAYS", "1,2")

		cfg, err := Load("")
		require.NoError(t, err)

		assert.Equal(t, StrategyParallel, cfg.Picker.Strategy)
		require.NotNil(t, cfg.Filter.MaxHour)
		assert.Equal(t, 17, *cfg.Filter.MaxHour)
		assert.Equal(t, []int{1, 2}, cfg.Filter.ExcludedDays)
	})

	t.Run("Failure flow", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)

		_, err = Load(writeConfig(t, "picker:\n  strategy: greedy\n"))
		assert.Error(t, err)

		_, err = Load(writeConfig(t, "filter:\n  min_hour: 18\n  max_hour: 9\n"))
		assert.Error(t, err)

		_, err = Load(writeConfig(t, "output:\n  format: xml\n"))
		assert.Error(t, err)
	})
}
