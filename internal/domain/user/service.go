package user

import (
	"context"
	"errors"
	"strings"
)

var ErrUserIDRequired = errors.New("user id is required")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// UpsertProfile records the caller's profile. Empty identity fields never
// overwrite stored values.
func (s *Service) UpsertProfile(ctx context.Context, identity Identity) error {
	if strings.TrimSpace(identity.UserID) == "" {
		return ErrUserIDRequired
	}

	profile := Profile{
		UserID:    identity.UserID,
		Email:     optional(identity.Email),
		FullName:  optional(identity.FullName),
		AvatarURL: optional(identity.AvatarURL),
	}
	return s.repo.UpsertProfile(ctx, &profile)
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
