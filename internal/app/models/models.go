package models

// Role defines the user role tier
type Role string

const (
	RoleRegular   Role = "regular"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// ValidRole reports whether s names a known role
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleRegular, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// MeetupStatus is the lifecycle state of a meetup
type MeetupStatus string

const (
	MeetupPlanned    MeetupStatus = "planned"
	MeetupInProgress MeetupStatus = "in-progress"
	MeetupCompleted  MeetupStatus = "completed"
	MeetupCancelled  MeetupStatus = "cancelled"
)

// ValidMeetupStatus reports whether s names a known meetup status
func ValidMeetupStatus(s string) bool {
	switch MeetupStatus(s) {
	case MeetupPlanned, MeetupInProgress, MeetupCompleted, MeetupCancelled:
		return true
	}
	return false
}

// ParticipantStatus is a participant's response to an invitation
type ParticipantStatus string

const (
	ParticipantPending  ParticipantStatus = "pending"
	ParticipantAccepted ParticipantStatus = "accepted"
	ParticipantDeclined ParticipantStatus = "declined"
)

// ValidParticipantStatus reports whether s names a known participant status
func ValidParticipantStatus(s string) bool {
	switch ParticipantStatus(s) {
	case ParticipantPending, ParticipantAccepted, ParticipantDeclined:
		return true
	}
	return false
}
