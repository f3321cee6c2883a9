package auth

import "context"

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

const (
	PermLeaveRead         = "leave.read"
	PermLeaveWrite        = "leave.write"
	PermLeaveReview       = "leave.review"
	PermCoursesRead       = "courses.read"
	PermNotificationsRead = "notifications.read"
)

var RolePermissions = map[string][]string{
	RoleStudent: {
		PermLeaveRead,
		PermLeaveWrite,
		PermCoursesRead,
		PermNotificationsRead,
	},
	RoleTeacher: {
		PermLeaveRead,
		PermLeaveReview,
		PermCoursesRead,
		PermNotificationsRead,
	},
	RoleAdmin: {
		PermLeaveRead,
		PermLeaveWrite,
		PermLeaveReview,
		PermCoursesRead,
		PermNotificationsRead,
	},
}

// Permissions answers role-permission checks from the static tables above.
// Roles in this system are fixed, so no store round-trip is involved.
type Permissions struct{}

func (Permissions) HasPermission(ctx context.Context, role, permission string) (bool, error) {
	for _, candidate := range RolePermissions[role] {
		if candidate == permission {
			return true, nil
		}
	}
	return false, nil
}
