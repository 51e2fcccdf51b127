package sink

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/limaJavier/timetable-picker/pkg/model"
)

type jsonSink struct {
	writer io.Writer
	indent bool
}

// NewJsonSink writes the combinations as a JSON array of arrays of records
func NewJsonSink(writer io.Writer, indent bool) Sink {
	return &jsonSink{writer: writer, indent: indent}
}

func (sink *jsonSink) Write(combinations [][]model.Record) error {
	if combinations == nil {
		combinations = [][]model.Record{}
	}

	encoder := json.NewEncoder(sink.writer)
	if sink.indent {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(combinations); err != nil {
		return fmt.Errorf("cannot write combinations as JSON: %w", err)
	}
	return nil
}
