package solat

import "fmt"

// PrayerNames lists the five daily prayers in the order they fall.
var PrayerNames = []string{"fajr", "dhuhr", "asr", "maghrib", "isha"}

// Schedule maps a lowercase prayer name to its time of day, e.g. "05:00".
// It may be empty or hold only some of the prayers.
type Schedule map[string]string

// Request identifies one month of upstream data for a city.
type Request struct {
	Month  int
	Year   int
	CityID int
}

func (r Request) String() string {
	return fmt.Sprintf("%04d-%02d city %d", r.Year, r.Month, r.CityID)
}

// City is one entry of the upstream city directory.
type City struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Fallback is served whenever live data can't be fetched.
func Fallback() Schedule {
	return Schedule{
		"fajr":    "05:00",
		"dhuhr":   "12:10",
		"asr":     "15:30",
		"maghrib": "17:45",
		"isha":    "19:15",
	}
}

func isPrayerName(name string) bool {
	for _, p := range PrayerNames {
		if p == name {
			return true
		}
	}
	return false
}
