// internal/service/holidays.go
package service

import "time"

// Fixed-date public holidays, keyed by MM-DD. Movable feasts such as
// Easter are not in the table and never fire the holiday campaign.
var publicHolidays = map[string]string{
	"01-01": "New Year",
	"05-01": "Labour Day",
	"06-01": "Madaraka Day",
	"10-20": "Mashujaa Day",
	"12-12": "Jamhuri Day",
	"12-25": "Christmas",
	"12-26": "Boxing Day",
}

// HolidayName returns the holiday falling on t's calendar date, if any.
func HolidayName(t time.Time) (string, bool) {
	name, ok := publicHolidays[t.Format("01-02")]
	return name, ok
}
