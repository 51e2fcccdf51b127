package calendar

type calendarImplementation struct {
	windows []Window
}

func (calendar *calendarImplementation) WindowOf(slot int) (Window, error) {
	if slot < 0 || slot >= len(calendar.windows) {
		return Window{}, &OutOfRangeError{Slot: slot, Slots: len(calendar.windows)}
	}
	return calendar.windows[slot], nil
}

func (calendar *calendarImplementation) TimeRangeOf(beginSlot, endSlot int) (string, string, error) {
	if beginSlot > endSlot {
		return "", "", &InvertedRangeError{BeginSlot: beginSlot, EndSlot: endSlot}
	}

	begin, err := calendar.WindowOf(beginSlot)
	if err != nil {
		return "", "", err
	}
	end, err := calendar.WindowOf(endSlot)
	if err != nil {
		return "", "", err
	}

	return begin.BeginTime, end.EndTime, nil
}

func (calendar *calendarImplementation) Slots() int {
	return len(calendar.windows)
}
