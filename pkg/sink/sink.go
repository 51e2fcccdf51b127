package sink

import "github.com/limaJavier/timetable-picker/pkg/model"

// Sink persists or prints the projected combinations
type Sink interface {
	Write(combinations [][]model.Record) error
}

type multiSink struct {
	sinks []Sink
}

// Multi writes to every sink in turn, stopping at the first failure
func Multi(sinks ...Sink) Sink {
	return &multiSink{sinks: sinks}
}

func (sink *multiSink) Write(combinations [][]model.Record) error {
	for _, inner := range sink.sinks {
		if err := inner.Write(combinations); err != nil {
			return err
		}
	}
	return nil
}
