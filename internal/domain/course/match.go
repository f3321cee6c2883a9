package course

import "time"

const minutesPerDay = 24 * 60

// MatchSessions returns every enrollment whose weekly session overlaps the
// leave interval, paired with the first concrete occurrence inside it.
//
// The interval may span several days while a course meets once a week, so
// each calendar date in [start date, end date] is checked against the
// schedule's weekday. On the first and last date the day's leave window is
// clipped to the interval's time of day; every date strictly between is a
// full day (00:00-24:00). Overlap is closed on both ends: a leave ending
// exactly when a session starts still covers it.
//
// Enrollments whose schedule cannot be resolved are skipped.
func MatchSessions(intervalStart, intervalEnd time.Time, enrollments []Enrollment) []CourseMatch {
	if intervalEnd.Before(intervalStart) {
		return nil
	}

	var matches []CourseMatch
	for _, enrollment := range enrollments {
		schedule, ok := Resolve(enrollment.Schedule)
		if !ok {
			continue
		}
		sessionStart, sessionEnd, ok := firstOccurrence(intervalStart, intervalEnd, schedule)
		if !ok {
			continue
		}
		matches = append(matches, CourseMatch{
			Enrollment:   enrollment,
			SessionStart: sessionStart,
			SessionEnd:   sessionEnd,
		})
	}
	return matches
}

// firstOccurrence finds the earliest date in the interval on which the
// schedule's session overlaps the leave window for that date. Only the first
// occurrence is reported: a leave attaches to at most one session even when
// the interval spans more than a week.
func firstOccurrence(intervalStart, intervalEnd time.Time, schedule CourseSchedule) (time.Time, time.Time, bool) {
	firstDay := dateOf(intervalStart)
	lastDay := dateOf(intervalEnd)

	for day := firstDay; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
		if day.Weekday() != schedule.Weekday {
			continue
		}

		leaveStart := 0
		if day.Equal(firstDay) {
			leaveStart = minuteOfDay(intervalStart)
		}
		leaveEnd := minutesPerDay
		if day.Equal(lastDay) {
			leaveEnd = minuteOfDay(intervalEnd)
		}

		if leaveStart <= schedule.EndMinute && leaveEnd >= schedule.StartMinute {
			sessionStart := day.Add(time.Duration(schedule.StartMinute) * time.Minute)
			sessionEnd := day.Add(time.Duration(schedule.EndMinute) * time.Minute)
			return sessionStart, sessionEnd, true
		}
	}
	return time.Time{}, time.Time{}, false
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
