package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/limaJavier/timetable-picker/pkg/calendar"
	"github.com/limaJavier/timetable-picker/pkg/model"
)

const (
	resultsFile         = "benchmark_results.csv"
	MB          float32 = 1024 * 1024
)

type StrategyMetadata struct {
	Name    string
	Workers int
	New     func(cal calendar.Calendar) model.Picker
}

type TestMetadata struct {
	Name     string
	Seed     int64
	Subjects int
	Options  int // Sessions per bucket
}

type BenchmarkResult struct {
	Test        string  `csv:"Test"`
	Strategy    string  `csv:"Strategy"`
	Workers     int     `csv:"Workers"`
	Subjects    int     `csv:"Subjects"`
	Options     int     `csv:"Options"`
	Sessions    int     `csv:"Sessions"`
	Cardinality uint64  `csv:"Cardinality"`
	Accepted    int     `csv:"Accepted"`
	Duration    int64   `csv:"Duration(ms)"`
	Memory      float32 `csv:"Allocated(MB)"`
}

func main() {
	tests := getTests()
	strategies := getStrategies()
	cal := calendar.Default()
	results := make([]*BenchmarkResult, 0, len(tests)*len(strategies))

	for _, test := range tests {
		sessions := generateSessions(rand.New(rand.NewSource(test.Seed)), test.Subjects, test.Options, cal.Slots())

		for _, strategy := range strategies {
			fmt.Printf("Benchmarking test \"%v\" with strategy \"%v\" and %v workers\n", test.Name, strategy.Name, strategy.Workers)

			result, err := measure(strategy.New(cal), sessions)
			if err != nil {
				log.Fatalf("an error occurred during test \"%v\" using strategy \"%v\": %v", test.Name, strategy.Name, err)
			}

			result.Test = test.Name
			result.Strategy = strategy.Name
			result.Workers = strategy.Workers
			result.Subjects = test.Subjects
			result.Options = test.Options
			results = append(results, result)
		}
	}

	toCsv(results)
}

func getTests() []TestMetadata {
	tests := make([]TestMetadata, 0)
	for subjects := 3; subjects <= 6; subjects++ {
		for _, options := range []int{2, 3, 4} {
			tests = append(tests, TestMetadata{
				Name:     fmt.Sprintf("%v-subjects-%v-options", subjects, options),
				Seed:     int64(subjects*100 + options),
				Subjects: subjects,
				Options:  options,
			})
		}
	}
	return tests
}

func getStrategies() []StrategyMetadata {
	strategies := []StrategyMetadata{
		{
			Name: "sequential",
			New: func(cal calendar.Calendar) model.Picker {
				return model.NewSequentialPicker(cal, 0)
			},
		},
	}

	for _, workers := range []int{2, 4, runtime.NumCPU()} {
		strategies = append(strategies, StrategyMetadata{
			Name:    "parallel",
			Workers: workers,
			New: func(cal calendar.Calendar) model.Picker {
				return model.NewParallelPicker(cal, workers, 0)
			},
		})
	}
	return strategies
}

// Generates every subject with options lectures and options practices of two slots each, spread at random over the week
func generateSessions(random *rand.Rand, subjects, options, slots int) []model.Session {
	sessions := make([]model.Session, 0, subjects*options*2)
	for subject := range subjects {
		for _, sessionType := range []model.SessionType{model.Lecture, model.Practice} {
			for option := range options {
				begin := random.Intn(slots - 1)
				sessions = append(sessions, model.Session{
					Subject:   fmt.Sprintf("subject-%v", subject),
					EventId:   fmt.Sprintf("%v-%v-%v", subject, sessionType, option),
					Teacher:   fmt.Sprintf("teacher-%v", random.Intn(subjects)),
					Room:      fmt.Sprintf("room-%v", random.Intn(10)),
					Type:      sessionType,
					Day:       random.Intn(5),
					BeginSlot: begin,
					EndSlot:   begin + 1,
				})
			}
		}
	}
	return sessions
}

func measure(picker model.Picker, sessions []model.Session) (*BenchmarkResult, error) {
	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)

	start := time.Now()
	result, err := picker.Pick(sessions, model.FilterConfig{})
	duration := time.Since(start)
	if err != nil {
		return nil, err
	}

	runtime.ReadMemStats(&after)

	return &BenchmarkResult{
		Sessions:    len(sessions),
		Cardinality: result.Cardinality,
		Accepted:    len(result.Combinations),
		Duration:    duration.Milliseconds(),
		Memory:      toMegabytes(after.TotalAlloc - before.TotalAlloc),
	}, nil
}

func toMegabytes(bytes uint64) float32 {
	return float32(bytes) / MB
}

func toCsv(results []*BenchmarkResult) {
	file, err := os.Create(resultsFile)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&results, file); err != nil {
		log.Panicf("cannot write CSV results: %v", err)
	}
}
