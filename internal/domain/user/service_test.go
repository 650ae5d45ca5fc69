package user

import (
	"context"
	"errors"
	"testing"
)

type recordingRepo struct {
	profiles []Profile
}

func (r *recordingRepo) UpsertProfile(ctx context.Context, profile *Profile) error {
	r.profiles = append(r.profiles, *profile)
	return nil
}

func TestUpsertProfileRequiresUserID(t *testing.T) {
	svc := NewService(&recordingRepo{})
	if err := svc.UpsertProfile(context.Background(), Identity{Email: "a@b.c"}); !errors.Is(err, ErrUserIDRequired) {
		t.Fatalf("expected ErrUserIDRequired, got %v", err)
	}
}

func TestUpsertProfileLeavesEmptyFieldsNil(t *testing.T) {
	repo := &recordingRepo{}
	svc := NewService(repo)

	err := svc.UpsertProfile(context.Background(), Identity{UserID: "user-1", Email: "ann@example.com", FullName: "  "})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(repo.profiles) != 1 {
		t.Fatalf("expected one upsert, got %d", len(repo.profiles))
	}
	profile := repo.profiles[0]
	if profile.Email == nil || *profile.Email != "ann@example.com" {
		t.Fatalf("expected email, got %v", profile.Email)
	}
	if profile.FullName != nil || profile.AvatarURL != nil {
		t.Fatalf("expected empty fields to stay nil, got %+v", profile)
	}
}
