package session

import "github.com/abdur-rahman-shawl/youngminds-sessions/internal/models"

type Role string

const (
	RoleMentor Role = "mentor"
	RoleMentee Role = "mentee"
)

func (r Role) Other() Role {
	if r == RoleMentor {
		return RoleMentee
	}
	return RoleMentor
}

// PartyRole resolves which side of the session userID is on.
// ok is false when the user is neither party.
func PartyRole(s *models.Session, userID uint) (Role, bool) {
	switch userID {
	case s.MentorID:
		return RoleMentor, true
	case s.MenteeID:
		return RoleMentee, true
	}
	return "", false
}

// PartyID returns the user on the given side of the session.
func PartyID(s *models.Session, r Role) uint {
	if r == RoleMentor {
		return s.MentorID
	}
	return s.MenteeID
}
