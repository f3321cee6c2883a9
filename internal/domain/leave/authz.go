package leave

import "campusleave/internal/domain/auth"

// RoleAuthorizer grants review capability to teachers and admins and edit
// capability to the request owner.
type RoleAuthorizer struct{}

func (RoleAuthorizer) CanReview(actor Actor) bool {
	return actor.Role == auth.RoleTeacher || actor.Role == auth.RoleAdmin
}

func (RoleAuthorizer) CanEditOwn(actor Actor, req LeaveRequest) bool {
	return actor.ID != "" && actor.ID == req.RequesterID
}
