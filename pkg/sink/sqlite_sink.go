package sink

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/limaJavier/timetable-picker/pkg/model"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    created_at TEXT NOT NULL,
    combinations INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS combination_sessions (
    run_id TEXT NOT NULL,
    combination INTEGER NOT NULL,
    position INTEGER NOT NULL,
    subject TEXT NOT NULL,
    event_id TEXT NOT NULL,
    teacher TEXT NOT NULL,
    room TEXT NOT NULL,
    type TEXT NOT NULL,
    day INTEGER NOT NULL,
    begin_time TEXT NOT NULL,
    end_time TEXT NOT NULL,
    begin_slot INTEGER NOT NULL,
    end_slot INTEGER NOT NULL,
    PRIMARY KEY (run_id, combination, position),
    FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);
`

// SqliteSink stores every Write as a separate run, so one database can keep the results of several invocations
type SqliteSink struct {
	db      *sql.DB
	lastRun string
}

func NewSqliteSink(dbPath string) (*SqliteSink, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot create schema: %w", err)
	}

	return &SqliteSink{db: db}, nil
}

func (sink *SqliteSink) Write(combinations [][]model.Record) (err error) {
	runId := uuid.NewString()

	tx, err := sink.db.Begin()
	if err != nil {
		return fmt.Errorf("cannot begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec(
		`INSERT INTO runs (id, created_at, combinations) VALUES (?, ?, ?)`,
		runId, time.Now().UTC().Format(time.RFC3339), len(combinations),
	); err != nil {
		return fmt.Errorf("cannot insert run: %w", err)
	}

	statement, err := tx.Prepare(`
		INSERT INTO combination_sessions (run_id, combination, position, subject, event_id, teacher, room, type, day, begin_time, end_time, begin_slot, end_slot)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("cannot prepare insertion: %w", err)
	}
	defer statement.Close()

	for i, combination := range combinations {
		for position, record := range combination {
			if _, err = statement.Exec(
				runId, i, position,
				record.Subject, record.EventId, record.Teacher, record.Room, record.Type,
				record.Day, record.BeginTime, record.EndTime, record.BeginSlot, record.EndSlot,
			); err != nil {
				return fmt.Errorf("cannot insert session %q of combination %d: %w", record.EventId, i, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("cannot commit run: %w", err)
	}

	sink.lastRun = runId
	return nil
}

// LastRun returns the id of the latest successful Write, or an empty string
func (sink *SqliteSink) LastRun() string {
	return sink.lastRun
}

// Combinations reads back the combinations stored by a run, in their original order
func (sink *SqliteSink) Combinations(runId string) ([][]model.Record, error) {
	rows, err := sink.db.Query(`
		SELECT combination, subject, event_id, teacher, room, type, day, begin_time, end_time, begin_slot, end_slot
		FROM combination_sessions
		WHERE run_id = ?
		ORDER BY combination, position`, runId)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	combinations := make([][]model.Record, 0)
	for rows.Next() {
		var combination int
		var record model.Record
		if err := rows.Scan(
			&combination, &record.Subject, &record.EventId, &record.Teacher, &record.Room, &record.Type,
			&record.Day, &record.BeginTime, &record.EndTime, &record.BeginSlot, &record.EndSlot,
		); err != nil {
			return nil, err
		}

		for len(combinations) <= combination {
			combinations = append(combinations, make([]model.Record, 0))
		}
		combinations[combination] = append(combinations[combination], record)
	}
	return combinations, rows.Err()
}

func (sink *SqliteSink) Close() error {
	return sink.db.Close()
}
