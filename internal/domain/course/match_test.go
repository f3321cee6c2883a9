package course

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enrollment(code, schedule string) Enrollment {
	return Enrollment{CourseCode: code, CourseName: code, Schedule: ScheduleRecord{Compact: schedule}}
}

// 2025-10-13 is a Monday.
func localTime(day, hour, minute int) time.Time {
	return time.Date(2025, 10, day, hour, minute, 0, 0, time.UTC)
}

func TestMatchSingleDayInterval(t *testing.T) {
	enrollments := []Enrollment{enrollment("CS101", "Mon 09:00-10:30")}

	matches := MatchSessions(localTime(13, 8, 0), localTime(13, 11, 0), enrollments)
	require.Len(t, matches, 1)
	assert.Equal(t, "CS101", matches[0].Enrollment.CourseCode)
	assert.Equal(t, localTime(13, 9, 0), matches[0].SessionStart)
	assert.Equal(t, localTime(13, 10, 30), matches[0].SessionEnd)
}

func TestMatchNoSessionInRange(t *testing.T) {
	enrollments := []Enrollment{enrollment("CS101", "Mon 09:00-10:30")}

	// Tuesday 00:00 through Thursday 23:59 contains no Monday.
	matches := MatchSessions(localTime(14, 0, 0), localTime(16, 23, 59), enrollments)
	assert.Empty(t, matches)
}

func TestMatchBoundaryTouchCounts(t *testing.T) {
	enrollments := []Enrollment{enrollment("CS200", "Wed 09:00-10:30")}

	// Monday 00:00 to Wednesday 08:00 ends before the session: no match.
	matches := MatchSessions(localTime(13, 0, 0), localTime(15, 8, 0), enrollments)
	assert.Empty(t, matches)

	// Ending at 09:30 reaches into the session.
	matches = MatchSessions(localTime(13, 0, 0), localTime(15, 9, 30), enrollments)
	require.Len(t, matches, 1)

	// Ending exactly at session start still counts: closed interval.
	matches = MatchSessions(localTime(13, 0, 0), localTime(15, 9, 0), enrollments)
	require.Len(t, matches, 1)
	assert.Equal(t, localTime(15, 9, 0), matches[0].SessionStart)
}

func TestMatchMultiDaySpan(t *testing.T) {
	enrollments := []Enrollment{
		enrollment("TUE", "Tue 08:00-09:00"),
		enrollment("WED", "Wed 23:00-23:30"),
		enrollment("THU", "Thu 12:00-13:00"),
		enrollment("MON-EVE", "Mon 19:00-20:30"),
		enrollment("MON-AM", "Mon 08:00-09:00"),
		enrollment("FRI-AM", "Fri 07:00-07:45"),
		enrollment("FRI-PM", "Fri 13:00-14:30"),
	}

	// Monday 18:00 through Friday 08:00. Full days Tue-Thu match at any time.
	// Monday courses match only if they intersect 18:00-24:00; Friday courses
	// only if they intersect 00:00-08:00.
	matches := MatchSessions(localTime(13, 18, 0), localTime(17, 8, 0), enrollments)

	var codes []string
	for _, match := range matches {
		codes = append(codes, match.Enrollment.CourseCode)
	}
	assert.ElementsMatch(t, []string{"TUE", "WED", "THU", "MON-EVE", "FRI-AM"}, codes)
}

func TestMatchFirstOccurrenceOnly(t *testing.T) {
	enrollments := []Enrollment{enrollment("CS101", "Mon 09:00-10:30")}

	// Ten-day interval contains two Mondays; only the first is attached.
	matches := MatchSessions(localTime(13, 0, 0), localTime(22, 23, 0), enrollments)
	require.Len(t, matches, 1)
	assert.Equal(t, localTime(13, 9, 0), matches[0].SessionStart)
}

func TestMatchSkipsUnparseableSchedules(t *testing.T) {
	enrollments := []Enrollment{
		enrollment("BAD", "whenever"),
		enrollment("NONE", ""),
		enrollment("CS101", "Mon 09:00-10:30"),
	}

	matches := MatchSessions(localTime(13, 8, 0), localTime(13, 11, 0), enrollments)
	require.Len(t, matches, 1)
	assert.Equal(t, "CS101", matches[0].Enrollment.CourseCode)
}

func TestMatchInvertedInterval(t *testing.T) {
	enrollments := []Enrollment{enrollment("CS101", "Mon 09:00-10:30")}
	matches := MatchSessions(localTime(14, 0, 0), localTime(13, 0, 0), enrollments)
	assert.Nil(t, matches)
}

func TestMatchIntervalStartAfterSessionEndSameDay(t *testing.T) {
	enrollments := []Enrollment{enrollment("CS101", "Mon 09:00-10:30")}

	// Monday 10:30-12:00: leave begins exactly at session end, closed
	// interval, still a match.
	matches := MatchSessions(localTime(13, 10, 30), localTime(13, 12, 0), enrollments)
	require.Len(t, matches, 1)

	// Monday 11:00 onward misses the session entirely.
	matches = MatchSessions(localTime(13, 11, 0), localTime(13, 12, 0), enrollments)
	assert.Empty(t, matches)
}
