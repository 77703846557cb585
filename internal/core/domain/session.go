package domain

// AuthPhase is the state of an auth session.
type AuthPhase string

const (
	PhaseInitializing    AuthPhase = "initializing"
	PhaseAuthenticated   AuthPhase = "authenticated"
	PhaseUnauthenticated AuthPhase = "unauthenticated"
)

// SessionState is the value exposed to consumers of the auth session.
type SessionState struct {
	User            *User     `json:"user"`
	IsAuthenticated bool      `json:"isAuthenticated"`
	IsLoading       bool      `json:"isLoading"`
	Phase           AuthPhase `json:"phase"`
}

// Role returns the user's role, or "" when nobody is logged in.
func (s SessionState) Role() Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}
