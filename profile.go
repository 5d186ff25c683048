package session

// Profile is the decoded identity attached to the current session. The JSON
// tags match the entry the console persists in the token store, so a cached
// profile from an earlier run round-trips unchanged.
type Profile struct {
	ID        int64    `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	Roles     []string `json:"roles"`
	TokenType string   `json:"tokenType,omitempty"`
}

// HasRole reports literal membership of role in the profile's role list.
func (p *Profile) HasRole(role string) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// PrimaryRole returns the first role in the list, or false when the profile
// carries none.
func (p *Profile) PrimaryRole() (string, bool) {
	if p == nil || len(p.Roles) == 0 {
		return "", false
	}
	return p.Roles[0], true
}

// clone returns a copy so controller snapshots never alias internal state.
func (p *Profile) clone() *Profile {
	if p == nil {
		return nil
	}
	dup := *p
	if p.Roles != nil {
		dup.Roles = make([]string, len(p.Roles))
		copy(dup.Roles, p.Roles)
	}
	return &dup
}
