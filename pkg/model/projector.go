package model

import (
	"log"

	"github.com/limaJavier/timetable-picker/pkg/calendar"
	"github.com/samber/lo"
)

// Record is the outward representation of a picked session
type Record struct {
	Subject   string `json:"subject" csv:"subject"`
	EventId   string `json:"eventId" csv:"eventId"`
	Teacher   string `json:"teacher" csv:"teacher"`
	Room      string `json:"room" csv:"room"`
	Type      string `json:"type" csv:"type"`
	Day       int    `json:"day" csv:"day"`
	BeginTime string `json:"beginTime" csv:"beginTime"`
	EndTime   string `json:"endTime" csv:"endTime"`
	BeginSlot int    `json:"beginSlot" csv:"beginSlot"`
	EndSlot   int    `json:"endSlot" csv:"endSlot"`
}

// Project maps every session of an accepted combination into a Record, deriving its wall-clock times from the calendar.
// Sessions must have passed ValidateSessions against the same calendar
func Project(combination Combination, cal calendar.Calendar) []Record {
	return lo.Map(combination, func(session Session, _ int) Record {
		beginTime, endTime, err := cal.TimeRangeOf(session.BeginSlot, session.EndSlot)
		if err != nil {
			log.Panicf("session %q must be validated before projection: %v", session.EventId, err)
		}

		return Record{
			Subject:   session.Subject,
			EventId:   session.EventId,
			Teacher:   session.Teacher,
			Room:      session.Room,
			Type:      session.Type.String(),
			Day:       session.Day,
			BeginTime: beginTime,
			EndTime:   endTime,
			BeginSlot: session.BeginSlot,
			EndSlot:   session.EndSlot,
		}
	})
}

// ProjectAll projects every combination, keeping their order
func ProjectAll(combinations []Combination, cal calendar.Calendar) [][]Record {
	return lo.Map(combinations, func(combination Combination, _ int) []Record {
		return Project(combination, cal)
	})
}
