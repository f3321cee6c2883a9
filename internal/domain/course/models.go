package course

import "time"

// ScheduleRecord is a course schedule as stored: either the compact
// "Mon 09:00-10:30" form or split weekday/start/end fields. Older course
// documents use the compact form; newer ones the split fields. Resolve
// collapses both into a CourseSchedule once, so nothing downstream has
// to branch on shape.
type ScheduleRecord struct {
	Compact   string `json:"compact,omitempty"`
	Weekday   string `json:"weekday,omitempty"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

// CourseSchedule is the canonical weekly recurrence: one session per week,
// minutes counted from midnight, StartMinute < EndMinute.
type CourseSchedule struct {
	Weekday     time.Weekday `json:"weekday"`
	StartMinute int          `json:"startMinute"`
	EndMinute   int          `json:"endMinute"`
}

// Enrollment associates a student with a course, carrying the denormalized
// course fields needed for display and matching.
type Enrollment struct {
	CourseCode  string         `json:"courseCode"`
	CourseName  string         `json:"courseName"`
	Location    string         `json:"location,omitempty"`
	TeacherID   string         `json:"teacherId,omitempty"`
	TeacherName string         `json:"teacherName,omitempty"`
	Schedule    ScheduleRecord `json:"schedule"`
}

// CourseMatch is an enrollment whose course session overlaps a requested
// leave interval, with the concrete occurrence the leave covers.
type CourseMatch struct {
	Enrollment   Enrollment `json:"enrollment"`
	SessionStart time.Time  `json:"sessionStart"`
	SessionEnd   time.Time  `json:"sessionEnd"`
}
