package filter

import "time"

// Preset resolves a named date range relative to now. Weeks run Monday to Sunday.
func Preset(name string, now time.Time) (from, to time.Time, ok bool) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch name {
	case "today":
		return today, today, true
	case "week":
		offset := (int(today.Weekday()) + 6) % 7
		from = today.AddDate(0, 0, -offset)
		return from, from.AddDate(0, 0, 6), true
	case "month":
		from = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return from, from.AddDate(0, 1, -1), true
	case "year":
		from = time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
		return from, time.Date(today.Year(), time.December, 31, 0, 0, 0, 0, today.Location()), true
	}
	return time.Time{}, time.Time{}, false
}
