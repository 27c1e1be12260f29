package service

import (
	"context"

	"agritradehub/internal/domain"
)

type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

// List returns the public projection only: no role, never the hash.
func (s *UserService) List(ctx context.Context, offset, limit int) ([]domain.UserSummary, int64, error) {
	if limit <= 0 || limit > MaxPageLimit {
		limit = DefaultPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	us, total, err := s.users.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	out := make([]domain.UserSummary, 0, len(us))
	for _, u := range us {
		out = append(out, domain.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email})
	}
	return out, total, nil
}
