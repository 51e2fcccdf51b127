package calendar

import (
	"cmp"
	"fmt"
	"slices"
	"time"
)

const clockLayout = "15:04:05"

// Window is one teaching period of the day. BeginTime and EndTime use the HH:MM:SS format
type Window struct {
	Id        int    `mapstructure:"id"`
	Order     int    `mapstructure:"order"`
	BeginTime string `mapstructure:"beginTime"`
	EndTime   string `mapstructure:"endTime"`
}

// Calendar maps slot indices (0-based, in day order) to the wall-clock time windows they stand for
type Calendar interface {
	// Returns the window at the given slot
	WindowOf(slot int) (Window, error)
	// Returns the begin time of beginSlot's window and the end time of endSlot's window
	TimeRangeOf(beginSlot, endSlot int) (beginTime string, endTime string, err error)
	// Returns the number of slots in a day
	Slots() int
}

// Reference calendar: 14 windows of 45 minutes with breaks between pairs
var defaultWindows = []Window{
	{Id: 1, Order: 0, BeginTime: "07:15:00", EndTime: "08:00:00"},
	{Id: 2, Order: 1, BeginTime: "08:00:00", EndTime: "08:45:00"},
	{Id: 3, Order: 2, BeginTime: "09:00:00", EndTime: "09:45:00"},
	{Id: 4, Order: 3, BeginTime: "09:45:00", EndTime: "10:30:00"},
	{Id: 5, Order: 4, BeginTime: "10:45:00", EndTime: "11:30:00"},
	{Id: 6, Order: 5, BeginTime: "11:30:00", EndTime: "12:15:00"},
	{Id: 7, Order: 6, BeginTime: "12:30:00", EndTime: "13:15:00"},
	{Id: 8, Order: 7, BeginTime: "13:15:00", EndTime: "14:00:00"},
	{Id: 9, Order: 8, BeginTime: "14:15:00", EndTime: "15:00:00"},
	{Id: 10, Order: 9, BeginTime: "15:00:00", EndTime: "15:45:00"},
	{Id: 11, Order: 10, BeginTime: "16:00:00", EndTime: "16:45:00"},
	{Id: 12, Order: 11, BeginTime: "16:45:00", EndTime: "17:30:00"},
	{Id: 13, Order: 12, BeginTime: "17:45:00", EndTime: "18:30:00"},
	{Id: 14, Order: 13, BeginTime: "18:30:00", EndTime: "19:15:00"},
}

// Default returns the reference 14-slot calendar
func Default() Calendar {
	return &calendarImplementation{windows: slices.Clone(defaultWindows)}
}

// NewCalendar builds a calendar out of the given windows. Windows are sorted by Order; they must not overlap, although gaps between them are allowed
func NewCalendar(windows []Window) (Calendar, error) {
	if len(windows) == 0 {
		return nil, fmt.Errorf("a calendar needs at least one window")
	}

	sorted := slices.Clone(windows)
	slices.SortStableFunc(sorted, func(a, b Window) int {
		return cmp.Compare(a.Order, b.Order)
	})

	var previousEnd time.Time
	for i, window := range sorted {
		begin, err := time.Parse(clockLayout, window.BeginTime)
		if err != nil {
			return nil, fmt.Errorf("window %v has a malformed begin time %q: %w", window.Id, window.BeginTime, err)
		}
		end, err := time.Parse(clockLayout, window.EndTime)
		if err != nil {
			return nil, fmt.Errorf("window %v has a malformed end time %q: %w", window.Id, window.EndTime, err)
		}

		if end.Before(begin) {
			return nil, fmt.Errorf("window %v ends (%v) before it begins (%v)", window.Id, window.EndTime, window.BeginTime)
		} else if i > 0 && begin.Before(previousEnd) {
			return nil, fmt.Errorf("window %v begins (%v) before the previous window ends (%v)", window.Id, window.BeginTime, sorted[i-1].EndTime)
		}
		previousEnd = end
	}

	return &calendarImplementation{windows: sorted}, nil
}

// Hour returns the hour component of a HH:MM:SS clock string
func Hour(clock string) (int, error) {
	parsed, err := time.Parse(clockLayout, clock)
	if err != nil {
		return 0, fmt.Errorf("malformed clock %q: %w", clock, err)
	}
	return parsed.Hour(), nil
}
