package service

import (
	"context"
	"strings"

	"fabric-shop/internal/model"
)

// Register creates a user account. The email is stored trimmed and
// lower-cased and must not already be registered in any letter case.
func (s *Store) Register(ctx context.Context, req model.RegisterRequest) (*model.UserProfile, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	address := strings.TrimSpace(req.Address)

	if email == "" || req.Password == "" || name == "" || address == "" {
		return nil, model.ErrMissingRegistrationFields
	}

	var profile model.UserProfile
	err := s.update(ctx, func(doc *model.Document) error {
		for _, u := range doc.Users {
			if strings.ToLower(u.Email) == email {
				s.logger.Debug().Str("email", email).Msg("email already registered")
				return model.ErrEmailRegistered
			}
		}

		user := model.User{
			ID:       doc.Seq.User,
			Name:     name,
			Email:    email,
			Password: req.Password,
			Address:  address,
		}
		doc.Seq.User++
		doc.Users = append(doc.Users, user)

		profile = user.Profile()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", profile.ID).Msg("user registered")

	return &profile, nil
}

// Login returns the profile of the user whose email (any letter case) and
// password (exact) match.
func (s *Store) Login(ctx context.Context, req model.LoginRequest) (*model.UserProfile, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var profile *model.UserProfile
	err := s.view(ctx, func(doc *model.Document) error {
		for _, u := range doc.Users {
			if strings.ToLower(u.Email) == email && u.Password == req.Password {
				p := u.Profile()
				profile = &p
				return nil
			}
		}
		return model.ErrInvalidCredentials
	})
	if err != nil {
		s.logger.Debug().Str("email", email).Msg("login rejected")
		return nil, err
	}

	return profile, nil
}

// ListUsers returns every user without passwords.
func (s *Store) ListUsers(ctx context.Context, grant AdminGrant) ([]model.UserProfile, error) {
	if err := s.requireAdmin(grant); err != nil {
		return nil, err
	}

	var users []model.UserProfile
	err := s.view(ctx, func(doc *model.Document) error {
		users = make([]model.UserProfile, 0, len(doc.Users))
		for _, u := range doc.Users {
			users = append(users, u.Profile())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return users, nil
}
