package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/mitchellh/mapstructure"
)

// SessionsFromFile picks the loader matching the file extension (".json" or ".csv")
func SessionsFromFile(file string) ([]Session, error) {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".json":
		return SessionsFromJson(file)
	case ".csv":
		return SessionsFromCsv(file)
	default:
		return nil, fmt.Errorf("unsupported sessions file %q: expected a .json or .csv file", file)
	}
}

// SessionsFromJson reads either a JSON array of sessions or an object holding them under "sessions"
func SessionsFromJson(file string) ([]Session, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("cannot read sessions file: %w", err)
	}

	var inputJson any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return nil, err
	}
	if wrapper, ok := inputJson.(map[string]any); ok {
		sessions, found := wrapper["sessions"]
		if !found {
			return nil, fmt.Errorf("sessions file holds an object without a \"sessions\" key")
		}
		inputJson = sessions
	}

	return ProcessRawSessions(inputJson)
}

// ProcessRawSessions decodes generic (JSON-like) data into sessions. Types may be given as labels ("lecture") or as enum values (0, 1).
// The data must be a list and unknown session keys are rejected
func ProcessRawSessions(raw any) ([]Session, error) {
	if _, ok := raw.([]any); !ok {
		return nil, fmt.Errorf("sessions must be a list, got %T", raw)
	}

	sessions := make([]Session, 0)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.TextUnmarshallerHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &sessions,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("cannot decode sessions: %w", err)
	}
	return sessions, nil
}

// SessionsFromCsv reads sessions from a CSV file whose header names the Session fields (subject, eventId, teacher, room, type, day, beginSlot, endSlot, full, picked)
func SessionsFromCsv(file string) ([]Session, error) {
	in, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("cannot open sessions file: %w", err)
	}
	defer in.Close()

	sessions := make([]Session, 0)
	if err := gocsv.UnmarshalFile(in, &sessions); err != nil {
		return nil, fmt.Errorf("cannot decode sessions: %w", err)
	}
	return sessions, nil
}
