package main

import (
	"bytes"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/limaJavier/timetable-picker/internal/config"
	"github.com/limaJavier/timetable-picker/pkg/model"
	"github.com/limaJavier/timetable-picker/pkg/sink"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() *config.Config {
	return &config.Config{
		Env:    config.EnvDevelopment,
		Log:    config.LogConfig{Level: "warn", Format: "console"},
		Filter: config.FilterConfig{ExcludedTeacher: "^Novák", MaxHour: lo.ToPtr(18)},
		Picker: config.PickerConfig{Strategy: config.StrategySequential, Limit: 5},
		Output: config.OutputConfig{Format: config.FormatJson, Database: "picker.db"},
	}
}

func parseFlags(t *testing.T, args ...string) (*flag.FlagSet, *options) {
	set := flag.NewFlagSet("cli", flag.ContinueOnError)
	set.SetOutput(io.Discard)
	opts := defineFlags(set)
	require.NoError(t, set.Parse(args))
	return set, opts
}

func TestOptionsApply(t *testing.T) {
	t.Run("Explicit flags override", func(t *testing.T) {
		//** Arrange
		set, opts := parseFlags(t,
			"-min-hour", "0",
			"-hide-day", "0,4", "-hide-day", "2",
			"-strategy", "PARALLEL",
			"-workers", "3",
			"-o", "out.csv",
			"-format", "CSV",
			"-stdout",
			"-verbose",
		)
		cfg := baseConfig()

		//** Act
		opts.apply(set, cfg)

		//** Assert
		require.NotNil(t, cfg.Filter.MinHour)
		assert.Equal(t, 0, *cfg.Filter.MinHour, "an explicit zero is a restriction")
		assert.Equal(t, []int{0, 4, 2}, cfg.Filter.ExcludedDays)
		assert.Equal(t, config.StrategyParallel, cfg.Picker.Strategy)
		assert.Equal(t, 3, cfg.Picker.Workers)
		assert.Equal(t, "out.csv", cfg.Output.File)
		assert.Equal(t, config.FormatCsv, cfg.Output.Format)
		assert.True(t, cfg.Output.Stdout)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("Unset flags keep the configuration", func(t *testing.T) {
		//** Arrange
		set, opts := parseFlags(t, "-sessions", "sessions.json")

		//** Act
		cfg := baseConfig()
		opts.apply(set, cfg)

		//** Assert
		assert.Equal(t, baseConfig(), cfg)
		assert.Equal(t, "sessions.json", opts.sessions)
	})

	t.Run("Long output flag", func(t *testing.T) {
		set, opts := parseFlags(t, "-output", "combinations.json", "-db", "")
		cfg := baseConfig()

		opts.apply(set, cfg)

		assert.Equal(t, "combinations.json", cfg.Output.File)
		assert.Empty(t, cfg.Output.Database)
	})

	t.Run("Failure flow", func(t *testing.T) {
		set := flag.NewFlagSet("cli", flag.ContinueOnError)
		set.SetOutput(io.Discard)
		defineFlags(set)

		assert.Error(t, set.Parse([]string{"-hide-day", "monday"}))
	})
}

func recordsFixture() [][]model.Record {
	return [][]model.Record{
		{
			{Subject: "Math", EventId: "L1", Teacher: "Novák", Room: "A-101", Type: "lecture", Day: 0, BeginTime: "07:15:00", EndTime: "09:45:00", BeginSlot: 0, EndSlot: 1},
			{Subject: "Math", EventId: "P1", Teacher: "Svoboda", Room: "B-202", Type: "practice", Day: 2, BeginTime: "10:00:00", EndTime: "11:30:00", BeginSlot: 2, EndSlot: 2},
		},
	}
}

func TestBuildSinks(t *testing.T) {
	t.Run("Every output", func(t *testing.T) {
		//** Arrange
		dir := t.TempDir()
		cfg := baseConfig()
		cfg.Output = config.OutputConfig{
			File:     filepath.Join(dir, "combinations.json"),
			Format:   config.FormatJson,
			Stdout:   true,
			Database: filepath.Join(dir, "picker.db"),
		}
		var stdout bytes.Buffer

		//** Act
		sinks, closeSinks, err := buildSinks(cfg, &stdout)
		require.NoError(t, err)
		require.Len(t, sinks, 3)
		require.NoError(t, sink.Multi(sinks...).Write(recordsFixture()))
		database, ok := sinks[2].(*sink.SqliteSink)
		require.True(t, ok)
		runId := database.LastRun()
		closeSinks()

		//** Assert
		assert.Contains(t, stdout.String(), `"eventId": "L1"`)

		content, err := os.ReadFile(cfg.Output.File)
		require.NoError(t, err)
		assert.Equal(t, stdout.String(), string(content))

		reopened, err := sink.NewSqliteSink(cfg.Output.Database)
		require.NoError(t, err)
		defer reopened.Close()
		stored, err := reopened.Combinations(runId)
		require.NoError(t, err)
		assert.Equal(t, recordsFixture(), stored)
	})

	t.Run("Csv format", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Output = config.OutputConfig{Format: config.FormatCsv, Stdout: true}
		var stdout bytes.Buffer

		sinks, closeSinks, err := buildSinks(cfg, &stdout)
		require.NoError(t, err)
		defer closeSinks()
		require.Len(t, sinks, 1)
		require.NoError(t, sinks[0].Write(recordsFixture()))

		lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasPrefix(lines[0], "combination,subject"))
	})

	t.Run("Failure flow", func(t *testing.T) {
		dir := t.TempDir()
		missing := filepath.Join(dir, "missing", "nested")

		// Output file cannot be created
		cfg := baseConfig()
		cfg.Output = config.OutputConfig{Format: config.FormatJson, File: filepath.Join(missing, "combinations.json")}
		sinks, closeSinks, err := buildSinks(cfg, io.Discard)
		assert.Error(t, err)
		assert.Nil(t, sinks)
		require.NotNil(t, closeSinks)
		closeSinks()

		// Database cannot be opened after the output file was created
		cfg.Output = config.OutputConfig{
			Format:   config.FormatJson,
			File:     filepath.Join(dir, "combinations.json"),
			Database: filepath.Join(missing, "picker.db"),
		}
		sinks, closeSinks, err = buildSinks(cfg, io.Discard)
		assert.Error(t, err)
		assert.Nil(t, sinks)
		require.NotNil(t, closeSinks)
		closeSinks()
		assert.FileExists(t, cfg.Output.File)
	})
}
