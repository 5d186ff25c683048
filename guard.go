package session

// Action is the outcome of a route guard evaluation.
type Action int

const (
	// ActionShowLoading renders a waiting indicator; session hydration has
	// not settled yet and redirecting now would be premature.
	ActionShowLoading Action = iota
	// ActionRedirectToLogin sends the operator to the login destination,
	// remembering where they were headed.
	ActionRedirectToLogin
	// ActionRedirectToUnauthorized sends an authenticated operator without
	// the required role to the generic unauthorized destination.
	ActionRedirectToUnauthorized
	// ActionRender lets the destination render.
	ActionRender
)

func (a Action) String() string {
	switch a {
	case ActionShowLoading:
		return "show-loading"
	case ActionRedirectToLogin:
		return "redirect-to-login"
	case ActionRedirectToUnauthorized:
		return "redirect-to-unauthorized"
	case ActionRender:
		return "render"
	default:
		return "unknown"
	}
}

// Route declares a navigation destination and the roles allowed to enter
// it. An empty RequiredRoles means any authenticated user may enter, not
// that the destination is unrestricted.
type Route struct {
	Path          string
	RequiredRoles []string
}

// State is the slice of session state the guard consumes. Controller
// snapshots produce it; tests can build it by hand.
type State struct {
	Loading       bool
	Authenticated bool
	Roles         []string
}

// Decision is the guard's verdict for one navigation. Location is the
// redirect target for the redirect actions; From carries the originally
// requested path so the caller can return the operator there after login.
type Decision struct {
	Action   Action
	Location string
	From     string
}

// Guard evaluates navigations against session state. The zero value uses
// the console's default destinations.
type Guard struct {
	LoginLocation        string
	UnauthorizedLocation string
}

// NewGuard returns a guard with the default login and unauthorized
// destinations.
func NewGuard() Guard {
	return Guard{
		LoginLocation:        "/login",
		UnauthorizedLocation: "/unauthorized",
	}
}

// Evaluate decides, in order and first match wins, whether the navigation
// should wait, redirect, or render. Loading is deliberately checked before
// authentication: checking it after produces a flash-redirect to login
// while startup hydration is still in flight.
func (g Guard) Evaluate(state State, route Route) Decision {
	if state.Loading {
		return Decision{Action: ActionShowLoading, From: route.Path}
	}

	if !state.Authenticated {
		return Decision{
			Action:   ActionRedirectToLogin,
			Location: g.loginLocation(),
			From:     route.Path,
		}
	}

	if len(route.RequiredRoles) > 0 && !anyRoleMatches(state.Roles, route.RequiredRoles) {
		return Decision{
			Action:   ActionRedirectToUnauthorized,
			Location: g.unauthorizedLocation(),
			From:     route.Path,
		}
	}

	return Decision{Action: ActionRender, From: route.Path}
}

func (g Guard) loginLocation() string {
	if g.LoginLocation != "" {
		return g.LoginLocation
	}
	return "/login"
}

func (g Guard) unauthorizedLocation() string {
	if g.UnauthorizedLocation != "" {
		return g.UnauthorizedLocation
	}
	return "/unauthorized"
}

func anyRoleMatches(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}
