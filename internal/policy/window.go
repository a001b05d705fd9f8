package policy

import "time"

// Window is a time-of-day interval during which an attendance action is
// allowed. Start and End use "HH:MM" (24h), same format the shift times in
// the admin panel use. Bounds are whole minutes, inclusive on both sides.
type Window struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Contains reports whether now falls inside the window, interpreted on
// now's own calendar day in now's location. A window with unparseable
// bounds admits nothing.
func (w Window) Contains(now time.Time) bool {
	start, err := time.Parse("15:04", w.Start)
	if err != nil {
		return false
	}
	end, err := time.Parse("15:04", w.End)
	if err != nil {
		return false
	}

	// Rebuild the bounds on today's date so they can be compared with now
	from := time.Date(now.Year(), now.Month(), now.Day(), start.Hour(), start.Minute(), 0, 0, now.Location())
	until := time.Date(now.Year(), now.Month(), now.Day(), end.Hour(), end.Minute(), 0, 0, now.Location())

	return !now.Before(from) && !now.After(until)
}
