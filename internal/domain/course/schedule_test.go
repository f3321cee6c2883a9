package course

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCompact(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  CourseSchedule
		ok    bool
	}{
		{
			name:  "monday morning",
			input: "Mon 09:00-10:30",
			want:  CourseSchedule{Weekday: time.Monday, StartMinute: 540, EndMinute: 630},
			ok:    true,
		},
		{
			name:  "friday afternoon",
			input: "Fri 14:00-15:30",
			want:  CourseSchedule{Weekday: time.Friday, StartMinute: 840, EndMinute: 930},
			ok:    true,
		},
		{
			name:  "surrounding whitespace",
			input: "  Wed 13:30-15:00  ",
			want:  CourseSchedule{Weekday: time.Wednesday, StartMinute: 810, EndMinute: 900},
			ok:    true,
		},
		{name: "unknown weekday token", input: "Monday 09:00-10:30"},
		{name: "missing time range", input: "Mon"},
		{name: "missing dash", input: "Mon 09:00 10:30"},
		{name: "hour out of range", input: "Mon 25:00-26:00"},
		{name: "minute out of range", input: "Mon 09:61-10:30"},
		{name: "end before start", input: "Mon 10:30-09:00"},
		{name: "empty", input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCompact(tt.input)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestResolveStructuredRecord(t *testing.T) {
	got, ok := Resolve(ScheduleRecord{Weekday: "Thu", StartTime: "09:00", EndTime: "10:30"})
	require.True(t, ok)
	assert.Equal(t, CourseSchedule{Weekday: time.Thursday, StartMinute: 540, EndMinute: 630}, got)

	_, ok = Resolve(ScheduleRecord{Weekday: "Thu", StartTime: "09:00"})
	assert.False(t, ok, "missing end time must not resolve")

	_, ok = Resolve(ScheduleRecord{})
	assert.False(t, ok, "empty record must not resolve")
}

func TestResolvePrefersCompactForm(t *testing.T) {
	record := ScheduleRecord{Compact: "Tue 10:40-12:10", Weekday: "Fri", StartTime: "08:00", EndTime: "09:00"}
	got, ok := Resolve(record)
	require.True(t, ok)
	assert.Equal(t, time.Tuesday, got.Weekday)
}

func TestScheduleFormat(t *testing.T) {
	schedule := CourseSchedule{Weekday: time.Monday, StartMinute: 540, EndMinute: 630}
	assert.Equal(t, "Mon 09:00-10:30", schedule.Format())
}
