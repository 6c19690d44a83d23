package domain

// Identity is the decoded caller identity extracted from a verified token.
// Services use it for ownership checks; the role check itself happens in the
// transport middleware.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// IsStaff reports whether the identity belongs to ADMIN or MASTER staff.
func (i Identity) IsStaff() bool {
	return IsStaff(i.Role)
}
