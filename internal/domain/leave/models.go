package leave

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	TypeSick     = "sick"
	TypePersonal = "personal"
	TypeOfficial = "official"
)

// Actor is the authenticated caller of a lifecycle operation. Identity and
// role are resolved by the transport layer before the call; nothing in this
// package reads ambient session state.
type Actor struct {
	ID   string
	Name string
	Role string
}

// CourseAttachment ties a leave request to one concrete course session. The
// session range is the occurrence resolved by the matcher, not the weekly
// template and not the raw requested window.
type CourseAttachment struct {
	CourseCode   string    `json:"courseCode"`
	CourseName   string    `json:"courseName"`
	TeacherID    string    `json:"teacherId,omitempty"`
	TeacherName  string    `json:"teacherName,omitempty"`
	SessionStart time.Time `json:"sessionStart"`
	SessionEnd   time.Time `json:"sessionEnd"`
}

type LeaveRequest struct {
	ID            string            `json:"id"`
	RequesterID   string            `json:"requesterId"`
	RequesterName string            `json:"requesterName"`
	Type          string            `json:"type"`
	StartAt       time.Time         `json:"startAt"`
	EndAt         time.Time         `json:"endAt"`
	Reason        string            `json:"reason"`
	Status        string            `json:"status"`
	Attachments   []string          `json:"attachments"`
	Course        *CourseAttachment `json:"course,omitempty"`
	ReviewComment string            `json:"reviewComment,omitempty"`
	ReviewedBy    string            `json:"reviewedBy,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// AttachmentUpload is a file submitted with a create or edit. Validation
// happens before any byte reaches storage.
type AttachmentUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Data        []byte
}

// RequestInput carries the requester-editable fields of a leave request.
type RequestInput struct {
	Type        string
	StartAt     time.Time
	EndAt       time.Time
	Reason      string
	Attachments []AttachmentUpload
	Course      *CourseAttachment
}
