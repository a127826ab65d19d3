package session

import (
	"context"
	"time"

	domain "github.com/abdur-rahman-shawl/youngminds-sessions/internal/domain/session"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/httperr"
	"github.com/abdur-rahman-shawl/youngminds-sessions/internal/models"
)

type ListSessionsInput struct {
	CallerID uint
	Role     string // "mentor" or "mentee", the side the caller lists

	Status string

	// When MentorID+From+To are set the listing is a window query used
	// for availability checks; the caller does not have to be a party.
	MentorID uint
	From     time.Time
	To       time.Time
}

type ListSessions struct {
	repo domain.Repository
}

func NewListSessions(repo domain.Repository) *ListSessions {
	return &ListSessions{repo: repo}
}

func (uc *ListSessions) Execute(
	ctx context.Context,
	in ListSessionsInput,
) ([]models.Session, error) {

	if in.MentorID != 0 && !in.From.IsZero() && !in.To.IsZero() {
		return uc.repo.ListScheduledBetween(ctx, in.MentorID, in.From, in.To)
	}

	filter := domain.SessionFilter{
		Status: in.Status,
		From:   in.From,
		To:     in.To,
	}
	switch in.Role {
	case string(domain.RoleMentor):
		filter.MentorID = in.CallerID
	case string(domain.RoleMentee), "":
		filter.MenteeID = in.CallerID
	default:
		return nil, httperr.ErrBusiness("invalid_role")
	}

	return uc.repo.ListSessions(ctx, filter)
}
