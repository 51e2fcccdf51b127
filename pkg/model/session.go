package model

import (
	"fmt"
	"strings"
)

type SessionType int

const (
	Lecture SessionType = iota
	Practice
)

var sessionTypeLabels = map[SessionType]string{
	Lecture:  "lecture",
	Practice: "practice",
}

// String returns the display label of the session type
func (sessionType SessionType) String() string {
	if label, ok := sessionTypeLabels[sessionType]; ok {
		return label
	}
	return fmt.Sprintf("SessionType(%d)", int(sessionType))
}

// UnmarshalText accepts both display labels ("lecture") and enum names ("LECTURE")
func (sessionType *SessionType) UnmarshalText(text []byte) error {
	value := strings.ToLower(strings.TrimSpace(string(text)))
	for candidate, label := range sessionTypeLabels {
		if value == label {
			*sessionType = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown session type %q", string(text))
}

func (sessionType SessionType) MarshalText() ([]byte, error) {
	return []byte(sessionType.String()), nil
}

// UnmarshalCSV lets gocsv decode session types from their labels
func (sessionType *SessionType) UnmarshalCSV(value string) error {
	return sessionType.UnmarshalText([]byte(value))
}

func (sessionType SessionType) MarshalCSV() (string, error) {
	return sessionType.String(), nil
}

// Session is one scheduled occurrence of a lecture or practice. Day goes from 0 (Monday) to 4 (Friday) and BeginSlot/EndSlot are inclusive calendar slots
type Session struct {
	Subject   string      `mapstructure:"subject" csv:"subject"`
	EventId   string      `mapstructure:"eventId" csv:"eventId"`
	Teacher   string      `mapstructure:"teacher" csv:"teacher"`
	Room      string      `mapstructure:"room" csv:"room"`
	Type      SessionType `mapstructure:"type" csv:"type" validate:"oneof=0 1"`
	Day       int         `mapstructure:"day" csv:"day"`
	BeginSlot int         `mapstructure:"beginSlot" csv:"beginSlot" validate:"gte=0,ltefield=EndSlot"`
	EndSlot   int         `mapstructure:"endSlot" csv:"endSlot" validate:"gte=0"`
	Full      bool        `mapstructure:"full" csv:"full"`     // Enrollment capacity is exhausted
	Picked    bool        `mapstructure:"picked" csv:"picked"` // The student already holds this very seat
}

type BucketKey struct {
	Subject string
	Type    SessionType
}

// Bucket holds the candidate sessions for one subject and session type
type Bucket struct {
	Subject  string
	Type     SessionType
	Sessions []Session
}

func (bucket Bucket) Key() BucketKey {
	return BucketKey{Subject: bucket.Subject, Type: bucket.Type}
}

// Combination holds exactly one session per bucket, in bucket order
type Combination []Session
