package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/limaJavier/timetable-picker/internal/config"
	"github.com/limaJavier/timetable-picker/internal/logger"
	"github.com/limaJavier/timetable-picker/pkg/calendar"
	"github.com/limaJavier/timetable-picker/pkg/model"
	"github.com/limaJavier/timetable-picker/pkg/sink"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

var (
	Days = map[int]string{
		0: "Monday",
		1: "Tuesday",
		2: "Wednesday",
		3: "Thursday",
		4: "Friday",
	}
	pickers = map[string]func(cal calendar.Calendar, workers, limit int) model.Picker{
		config.StrategySequential: func(cal calendar.Calendar, _, limit int) model.Picker {
			return model.NewSequentialPicker(cal, limit)
		},
		config.StrategyParallel: model.NewParallelPicker,
	}
)

// dayList collects day indices given either as repeated flags or as a comma separated list
type dayList []int

func (days *dayList) String() string {
	return fmt.Sprint([]int(*days))
}

func (days *dayList) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		day, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return fmt.Errorf("%q is not a day index", part)
		}
		*days = append(*days, day)
	}
	return nil
}

// options holds the command-line arguments
type options struct {
	configPath  string
	sessions    string
	hiddenDays  dayList
	hideTeacher string
	minHour     int
	maxHour     int
	strategy    string
	workers     int
	limit       int
	output      string
	format      string
	stdout      bool
	database    string
	verbose     bool
}

func defineFlags(set *flag.FlagSet) *options {
	opts := &options{}
	set.StringVar(&opts.configPath, "config", "", "Path to a config file (YAML, JSON or TOML); flags override its values")
	set.StringVar(&opts.sessions, "sessions", "", "Path to the scraped sessions file (.json or .csv)")
	set.Var(&opts.hiddenDays, "hide-day", "Day index (0-4, Monday to Friday) in which to not take any classes; repeatable or comma separated")
	set.StringVar(&opts.hideTeacher, "hide-teacher", "", "Regex of a teacher name to be skipped when selecting a class")
	set.IntVar(&opts.minHour, "min-hour", 0, "An (integer) hour before which to not take any classes")
	set.IntVar(&opts.maxHour, "max-hour", 0, "An (integer) hour after which to not take any classes")
	set.StringVar(&opts.strategy, "strategy", config.StrategySequential, `Strategy to check the combinations. Allowed values are "sequential" and "parallel"`)
	set.IntVar(&opts.workers, "workers", 0, "Goroutines used by the parallel strategy; 0 means one per CPU")
	set.IntVar(&opts.limit, "limit", 0, "Stop after this many conflict-free combinations; 0 means all of them")
	set.StringVar(&opts.output, "output", "", "Path to the file where the possible timetable combinations will be written")
	set.StringVar(&opts.output, "o", "", "Shorthand for -output")
	set.StringVar(&opts.format, "format", config.FormatJson, `Format of the -output file and of -stdout. Allowed values are "json" and "csv"`)
	set.BoolVar(&opts.stdout, "stdout", false, "Print the possible timetable combinations to the Standard Output")
	set.StringVar(&opts.database, "db", "", "Path to a SQLite database where every run's combinations are stored")
	set.BoolVar(&opts.verbose, "verbose", false, "Print progress info")
	return opts
}

// apply overrides the configuration with the flags explicitly set on the command line
func (opts *options) apply(set *flag.FlagSet, cfg *config.Config) {
	set.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "hide-day":
			cfg.Filter.ExcludedDays = opts.hiddenDays
		case "hide-teacher":
			cfg.Filter.ExcludedTeacher = opts.hideTeacher
		case "min-hour":
			cfg.Filter.MinHour = lo.ToPtr(opts.minHour)
		case "max-hour":
			cfg.Filter.MaxHour = lo.ToPtr(opts.maxHour)
		case "strategy":
			cfg.Picker.Strategy = strings.ToLower(opts.strategy)
		case "workers":
			cfg.Picker.Workers = opts.workers
		case "limit":
			cfg.Picker.Limit = opts.limit
		case "output", "o":
			cfg.Output.File = opts.output
		case "format":
			cfg.Output.Format = strings.ToLower(opts.format)
		case "stdout":
			cfg.Output.Stdout = opts.stdout
		case "db":
			cfg.Output.Database = opts.database
		}
	})
	if opts.verbose {
		cfg.Log.Level = "debug"
	}
}

func main() {
	opts := defineFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		log.Fatalf("cannot load configuration: %v", err)
	}
	opts.apply(flag.CommandLine, cfg)

	// Validate arguments
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	appLogger, err := logger.New(cfg.IsProduction(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("cannot create logger: %v", err)
	}
	defer appLogger.Sync()

	if !cfg.EnvFileLoaded {
		appLogger.Debug("no .env file found, using environment variables")
	}

	if !cfg.Output.Stdout && cfg.Output.File == "" && cfg.Output.Database == "" {
		appLogger.Fatal("at least one of the -stdout, -output and -db flags has to be set")
	} else if opts.sessions == "" {
		appLogger.Fatal("a sessions file must be specified")
	}

	// Extract input
	cal, err := cfg.BuildCalendar()
	if err != nil {
		appLogger.Fatal("cannot build calendar", zap.Error(err))
	}
	sessions, err := model.SessionsFromFile(opts.sessions)
	if err != nil {
		appLogger.Fatal("cannot parse sessions file", zap.String("file", opts.sessions), zap.Error(err))
	}
	appLogger.Info("loaded sessions", zap.Int("sessions", len(sessions)), zap.Int("slots", cal.Slots()))
	appLogger.Debug("filter",
		zap.Strings("excludedDays", lo.Map(cfg.Filter.ExcludedDays, func(day int, _ int) string { return dayName(day) })),
		zap.String("excludedTeacher", cfg.Filter.ExcludedTeacher),
	)

	// Pick combinations
	picker := pickers[cfg.Picker.Strategy](cal, cfg.Picker.Workers, cfg.Picker.Limit)
	result, err := picker.Pick(sessions, cfg.ModelFilter())
	if err != nil {
		appLogger.Fatal("an error occurred while picking combinations", zap.Error(err))
	}

	for _, bucket := range result.Buckets {
		appLogger.Debug("bucket", zap.String("subject", bucket.Subject), zap.Stringer("type", bucket.Type), zap.Int("sessions", len(bucket.Sessions)))
	}
	appLogger.Info("found combinations",
		zap.String("strategy", cfg.Picker.Strategy),
		zap.Uint64("candidates", result.Cardinality),
		zap.Uint64("examined", result.Candidates),
		zap.Int("accepted", len(result.Combinations)),
	)

	// Write results
	records := model.ProjectAll(result.Combinations, cal)
	sinks, closeSinks, err := buildSinks(cfg, os.Stdout)
	if err != nil {
		appLogger.Fatal("cannot open output", zap.Error(err))
	}
	defer closeSinks()

	if err := sink.Multi(sinks...).Write(records); err != nil {
		appLogger.Fatal("an error occurred while writing the combinations", zap.Error(err))
	}
	appLogger.Info("done", zap.String("output", cfg.Output.File), zap.String("database", cfg.Output.Database))
}

// buildSinks opens every configured output. The returned function closes the opened files and databases
func buildSinks(cfg *config.Config, stdout io.Writer) ([]sink.Sink, func(), error) {
	sinks := make([]sink.Sink, 0, 3)
	closers := make([]io.Closer, 0, 2)
	closeAll := func() {
		for _, closer := range closers {
			closer.Close()
		}
	}

	newFormatSink := func(writer io.Writer) sink.Sink {
		if cfg.Output.Format == config.FormatCsv {
			return sink.NewCsvSink(writer)
		}
		return sink.NewJsonSink(writer, true)
	}

	if cfg.Output.Stdout {
		sinks = append(sinks, newFormatSink(stdout))
	}
	if cfg.Output.File != "" {
		file, err := os.Create(cfg.Output.File)
		if err != nil {
			return nil, closeAll, fmt.Errorf("cannot create output file: %w", err)
		}
		closers = append(closers, file)
		sinks = append(sinks, newFormatSink(file))
	}
	if cfg.Output.Database != "" {
		database, err := sink.NewSqliteSink(cfg.Output.Database)
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		closers = append(closers, database)
		sinks = append(sinks, database)
	}

	return sinks, closeAll, nil
}

func dayName(day int) string {
	if name, ok := Days[day]; ok {
		return name
	}
	return strconv.Itoa(day)
}
