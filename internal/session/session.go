package session

// Provider exposes the current user identity. The companion services treat
// it as read-only; an absent identity means the user is signed out.
type Provider interface {
	CurrentUserID() (string, bool)
}

// Static is a Provider with a fixed identity, used when the backend serves
// a single local user and in tests.
type Static struct {
	userID string
}

// NewStatic returns a provider pinned to the given user id. An empty id
// models the signed-out state.
func NewStatic(userID string) *Static {
	return &Static{userID: userID}
}

// CurrentUserID implements Provider.
func (s *Static) CurrentUserID() (string, bool) {
	if s.userID == "" {
		return "", false
	}
	return s.userID, true
}
