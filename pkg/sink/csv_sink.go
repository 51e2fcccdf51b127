package sink

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/limaJavier/timetable-picker/pkg/model"
)

// CsvRow flattens one session of one combination
type CsvRow struct {
	Combination int `csv:"combination"`
	model.Record
}

type csvSink struct {
	writer io.Writer
}

// NewCsvSink writes one row per picked session; rows of the same combination share its 0-based index
func NewCsvSink(writer io.Writer) Sink {
	return &csvSink{writer: writer}
}

func (sink *csvSink) Write(combinations [][]model.Record) error {
	rows := make([]*CsvRow, 0)
	for i, combination := range combinations {
		for _, record := range combination {
			rows = append(rows, &CsvRow{Combination: i, Record: record})
		}
	}

	if err := gocsv.Marshal(&rows, sink.writer); err != nil {
		return fmt.Errorf("cannot write combinations as CSV: %w", err)
	}
	return nil
}
