package domain

// DecisionKind is the outcome of a guard evaluation.
type DecisionKind string

const (
	DecisionLoading       DecisionKind = "loading"
	DecisionRedirectLogin DecisionKind = "redirect_login"
	DecisionRedirectRole  DecisionKind = "redirect_role"
	DecisionRender        DecisionKind = "render"
)

// GuardInput is everything the guard looks at.
type GuardInput struct {
	IsLoading       bool
	IsAuthenticated bool
	Role            Role
	AllowedRoles    []Role
	// RequestedPath is remembered on login redirects so the client can
	// return after signing in.
	RequestedPath string
}

// Decision tells the transport what to do with a request.
type Decision struct {
	Kind     DecisionKind
	Location string
	// From is set on login redirects caused by a missing session.
	From string
	// Err explains role redirects; it wraps ErrUnauthorizedRole.
	Err error
}

// Decide is the route guard. Rules are applied in order:
//  1. while the session is loading nothing is decided;
//  2. anonymous requests go to the login view;
//  3. roles outside a non-empty allowlist go to their own landing view, or
//     to login when the role has none;
//  4. everything else renders.
func Decide(in GuardInput) Decision {
	if in.IsLoading {
		return Decision{Kind: DecisionLoading}
	}
	if !in.IsAuthenticated {
		return Decision{Kind: DecisionRedirectLogin, Location: PathLogin, From: in.RequestedPath}
	}
	rule := RouteRule{AllowedRoles: in.AllowedRoles}
	if !rule.Allows(in.Role) {
		landing, err := DefaultRouteFor(in.Role)
		if err != nil {
			return Decision{Kind: DecisionRedirectLogin, Location: PathLogin, Err: err}
		}
		return Decision{Kind: DecisionRedirectRole, Location: landing, Err: ErrUnauthorizedRole}
	}
	return Decision{Kind: DecisionRender}
}
