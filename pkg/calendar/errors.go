package calendar

import "fmt"

// OutOfRangeError is returned when a slot does not index any window of the calendar
type OutOfRangeError struct {
	Slot  int
	Slots int
}

func (err *OutOfRangeError) Error() string {
	return fmt.Sprintf("slot %d is out of range: the calendar has %d slots", err.Slot, err.Slots)
}

// InvertedRangeError is returned when a slot range begins after it ends
type InvertedRangeError struct {
	BeginSlot int
	EndSlot   int
}

func (err *InvertedRangeError) Error() string {
	return fmt.Sprintf("slot range %d-%d begins after it ends", err.BeginSlot, err.EndSlot)
}
