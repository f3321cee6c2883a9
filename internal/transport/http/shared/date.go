package shared

import "time"

// ParseDateTime accepts RFC3339 or a bare YYYY-MM-DD date.
func ParseDateTime(value string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}
