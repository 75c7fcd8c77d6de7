package service

import "fabric-shop/internal/model"

// AdminGrant is proof that the caller presented the admin credential. It can
// only be obtained from Store.AuthorizeAdmin; the zero value grants nothing.
type AdminGrant struct {
	email string
}

// Valid reports whether the grant was issued by AuthorizeAdmin.
func (g AdminGrant) Valid() bool {
	return g.email != ""
}

// AuthorizeAdmin exchanges the admin email for a grant accepted by admin
// operations. Any other email, including the empty string, is rejected.
func (s *Store) AuthorizeAdmin(email string) (AdminGrant, error) {
	if !s.IsAdmin(email) {
		s.logger.Warn().Str("email", email).Msg("admin access denied")
		return AdminGrant{}, model.ErrAdminAccessDenied
	}
	return AdminGrant{email: email}, nil
}

// IsAdmin reports whether email is the admin credential.
func (s *Store) IsAdmin(email string) bool {
	return email != "" && email == s.opts.AdminEmail
}

// requireAdmin rejects grants that were not issued for the current admin
// email.
func (s *Store) requireAdmin(grant AdminGrant) error {
	if !grant.Valid() || !s.IsAdmin(grant.email) {
		return model.ErrAdminAccessDenied
	}
	return nil
}
