package solat

import (
	"strconv"
	"strings"
	"time"
)

type payloadShape int

const (
	shapeUnknown payloadShape = iota
	// {"data": {"Prayer": {...}}}
	shapeDataPrayer
	// {"data": [{...day...}, ...]}
	shapeDataRecords
	// {"Prayer": {...}}
	shapePrayer
	// [{...day...}, ...]
	shapeRecords
)

var dateFields = []string{"Date", "date", "prayer_date"}

// classify decides which of the known upstream layouts a decoded JSON
// payload follows. Checks run in a fixed order, the first hit wins.
func classify(payload interface{}) payloadShape {
	switch p := payload.(type) {
	case map[string]interface{}:
		if len(p) == 0 {
			return shapeUnknown
		}
		if data, ok := p["data"]; ok {
			switch d := data.(type) {
			case map[string]interface{}:
				if _, ok := d["Prayer"]; ok {
					return shapeDataPrayer
				}
				return shapeUnknown
			case []interface{}:
				return shapeDataRecords
			}
		}
		if _, ok := p["Prayer"]; ok {
			return shapePrayer
		}
	case []interface{}:
		if len(p) > 0 {
			return shapeRecords
		}
	}
	return shapeUnknown
}

// Extract pulls the schedule for date out of a decoded payload. An
// unrecognised payload or a missing day yields an empty Schedule.
func Extract(payload interface{}, date time.Time) Schedule {
	switch classify(payload) {
	case shapeDataPrayer:
		data := payload.(map[string]interface{})["data"].(map[string]interface{})
		return Normalize(data["Prayer"])
	case shapeDataRecords:
		return findDay(payload.(map[string]interface{})["data"].([]interface{}), date.Day())
	case shapePrayer:
		return Normalize(payload.(map[string]interface{})["Prayer"])
	case shapeRecords:
		return findDay(payload.([]interface{}), date.Day())
	}
	return Schedule{}
}

// findDay returns the prayers of the first record whose date text contains
// day. The match is a plain substring test, so day 1 also hits "2024-05-21".
func findDay(records []interface{}, day int) Schedule {
	needle := strconv.Itoa(day)
	for _, r := range records {
		entry, ok := r.(map[string]interface{})
		if !ok {
			continue
		}
		value := recordDate(entry)
		if value == "" || !strings.Contains(value, needle) {
			continue
		}

		if prayers := entry["Prayer"]; truthy(prayers) {
			return Normalize(prayers)
		}
		if prayers := entry["PrayerTiming"]; truthy(prayers) {
			return Normalize(prayers)
		}
		flat := make(map[string]interface{})
		for k, v := range entry {
			if isPrayerName(strings.ToLower(k)) {
				flat[k] = v
			}
		}
		return Normalize(flat)
	}
	return Schedule{}
}

// recordDate returns the text of the first date field holding a scalar.
// Nested values are skipped in favour of the next field.
func recordDate(entry map[string]interface{}) string {
	for _, field := range dateFields {
		v := entry[field]
		if !truthy(v) {
			continue
		}
		if text := stringify(v); text != "" {
			return text
		}
	}
	return ""
}

// Normalize keeps the string-valued entries of raw and lowercases their
// keys. Anything that isn't a JSON object normalizes to an empty Schedule.
func Normalize(raw interface{}) Schedule {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return Schedule{}
	}
	s := make(Schedule, len(m))
	for k, v := range m {
		if str, ok := v.(string); ok {
			s[strings.ToLower(k)] = str
		}
	}
	return s
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case map[string]interface{}:
		return len(t) > 0
	case []interface{}:
		return len(t) > 0
	}
	return true
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}
