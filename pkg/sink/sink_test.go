package sink

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/limaJavier/timetable-picker/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func combinationsFixture() [][]model.Record {
	return [][]model.Record{
		{
			{Subject: "Math", EventId: "L1", Teacher: "Novák", Room: "A-101", Type: "lecture", Day: 0, BeginTime: "07:15:00", EndTime: "08:45:00", BeginSlot: 0, EndSlot: 1},
			{Subject: "Math", EventId: "P1", Teacher: "Svoboda", Room: "B-202", Type: "practice", Day: 0, BeginTime: "09:00:00", EndTime: "10:30:00", BeginSlot: 2, EndSlot: 3},
		},
		{
			{Subject: "Math", EventId: "L2", Teacher: "Novák", Room: "A-101", Type: "lecture", Day: 1, BeginTime: "07:15:00", EndTime: "08:45:00", BeginSlot: 0, EndSlot: 1},
			{Subject: "Math", EventId: "P1", Teacher: "Svoboda", Room: "B-202", Type: "practice", Day: 0, BeginTime: "09:00:00", EndTime: "10:30:00", BeginSlot: 2, EndSlot: 3},
		},
	}
}

func TestJsonSink(t *testing.T) {
	for _, indent := range []bool{false, true} {
		//** Arrange
		var buffer bytes.Buffer

		//** Act
		err := NewJsonSink(&buffer, indent).Write(combinationsFixture())

		//** Assert
		require.NoError(t, err)
		var decoded [][]model.Record
		require.NoError(t, json.Unmarshal(buffer.Bytes(), &decoded))
		assert.Equal(t, combinationsFixture(), decoded)
		assert.Contains(t, buffer.String(), `"eventId"`)
	}

	t.Run("No combinations", func(t *testing.T) {
		var buffer bytes.Buffer
		require.NoError(t, NewJsonSink(&buffer, false).Write(nil))
		assert.Equal(t, "[]\n", buffer.String())
	})
}

func TestCsvSink(t *testing.T) {
	//** Arrange
	var buffer bytes.Buffer

	//** Act
	err := NewCsvSink(&buffer).Write(combinationsFixture())

	//** Assert
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "combination,subject,eventId,teacher,room,type,day,beginTime,endTime,beginSlot,endSlot", lines[0])
	assert.Equal(t, "0,Math,L1,Novák,A-101,lecture,0,07:15:00,08:45:00,0,1", lines[1])
	assert.True(t, strings.HasPrefix(lines[4], "1,Math,P1,"))
}

func TestSqliteSink(t *testing.T) {
	//** Arrange
	sink, err := NewSqliteSink(filepath.Join(t.TempDir(), "picker.db"))
	require.NoError(t, err)
	defer sink.Close()

	//** Act
	require.NoError(t, sink.Write(combinationsFixture()))
	firstRun := sink.LastRun()
	require.NoError(t, sink.Write(combinationsFixture()[:1]))
	secondRun := sink.LastRun()

	//** Assert
	assert.NotEqual(t, firstRun, secondRun)

	stored, err := sink.Combinations(firstRun)
	require.NoError(t, err)
	assert.Equal(t, combinationsFixture(), stored)

	stored, err = sink.Combinations(secondRun)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

type failingSink struct{ calls *int }

func (sink failingSink) Write([][]model.Record) error {
	*sink.calls++
	return errors.New("disk full")
}

func TestMulti(t *testing.T) {
	var first, second bytes.Buffer
	require.NoError(t, Multi(NewJsonSink(&first, false), NewCsvSink(&second)).Write(combinationsFixture()))
	assert.NotEmpty(t, first.String())
	assert.NotEmpty(t, second.String())

	calls := 0
	var third bytes.Buffer
	err := Multi(failingSink{&calls}, NewJsonSink(&third, false)).Write(combinationsFixture())
	assert.EqualError(t, err, "disk full")
	assert.Equal(t, 1, calls)
	assert.Empty(t, third.String())
}
