package window

import "time"

// FilingWindowDays is how long after a trip ends that a report may still be
// filed or edited.
const FilingWindowDays = 10

// Day truncates t to midnight UTC. All window rules compare whole days,
// never clock times.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// LeaveDatesValid reports whether a leave request window is acceptable:
// both dates strictly after today (today itself excluded) and to >= from.
func LeaveDatesValid(from, to, now time.Time) bool {
	today := Day(now)
	f, t := Day(from), Day(to)
	if !f.After(today) || !t.After(today) {
		return false
	}
	return !t.Before(f)
}

// TripFilingOpen reports whether a trip report may still be created:
// the trip already happened (both dates before today) and no more than
// FilingWindowDays have passed since the trip ended.
func TripFilingOpen(start, end, now time.Time) bool {
	today := Day(now)
	s, e := Day(start), Day(end)
	if !s.Before(today) || !e.Before(today) {
		return false
	}
	return withinFilingWindow(e, today)
}

// TripEditOpen reports whether an existing report's filing window is still
// open. Status gating is the caller's job.
func TripEditOpen(end, now time.Time) bool {
	return withinFilingWindow(Day(end), Day(now))
}

// BillDateValid reports whether a referenced bill is dated today or earlier.
func BillDateValid(billDate, now time.Time) bool {
	return !Day(billDate).After(Day(now))
}

func withinFilingWindow(end, today time.Time) bool {
	deadline := end.AddDate(0, 0, FilingWindowDays)
	return !today.After(deadline)
}
