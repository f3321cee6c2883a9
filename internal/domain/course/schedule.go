package course

import (
	"strconv"
	"strings"
	"time"
)

var weekdayTokens = map[string]time.Weekday{
	"Sun": time.Sunday,
	"Mon": time.Monday,
	"Tue": time.Tuesday,
	"Wed": time.Wednesday,
	"Thu": time.Thursday,
	"Fri": time.Friday,
	"Sat": time.Saturday,
}

// Resolve normalizes a stored schedule into its canonical form. The second
// return value is false when the record is missing fields or malformed;
// callers must treat that as "this course cannot be matched", never as a
// failure of the whole batch.
func Resolve(record ScheduleRecord) (CourseSchedule, bool) {
	if record.Compact != "" {
		return ParseCompact(record.Compact)
	}
	return ParseParts(record.Weekday, record.StartTime, record.EndTime)
}

// ParseCompact parses the legacy "<Wkd> <HH:MM>-<HH:MM>" form,
// e.g. "Mon 09:00-10:30".
func ParseCompact(s string) (CourseSchedule, bool) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 2 {
		return CourseSchedule{}, false
	}
	start, end, found := strings.Cut(fields[1], "-")
	if !found {
		return CourseSchedule{}, false
	}
	return ParseParts(fields[0], start, end)
}

// ParseParts builds a CourseSchedule from a three-letter weekday token and
// "HH:MM" start/end times.
func ParseParts(weekday, startTime, endTime string) (CourseSchedule, bool) {
	day, ok := weekdayTokens[strings.TrimSpace(weekday)]
	if !ok {
		return CourseSchedule{}, false
	}
	startMinute, ok := parseMinute(startTime)
	if !ok {
		return CourseSchedule{}, false
	}
	endMinute, ok := parseMinute(endTime)
	if !ok {
		return CourseSchedule{}, false
	}
	if startMinute >= endMinute {
		return CourseSchedule{}, false
	}
	return CourseSchedule{Weekday: day, StartMinute: startMinute, EndMinute: endMinute}, true
}

func parseMinute(s string) (int, bool) {
	hh, mm, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found {
		return 0, false
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

// Format renders the canonical compact form, used for display.
func (cs CourseSchedule) Format() string {
	token := cs.Weekday.String()[:3]
	return token + " " + minuteClock(cs.StartMinute) + "-" + minuteClock(cs.EndMinute)
}

func minuteClock(minute int) string {
	hh := strconv.Itoa(minute / 60)
	if len(hh) < 2 {
		hh = "0" + hh
	}
	mm := strconv.Itoa(minute % 60)
	if len(mm) < 2 {
		mm = "0" + mm
	}
	return hh + ":" + mm
}
