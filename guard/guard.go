package guard

import (
	"slices"

	"github.com/jrsteele09/go-ticketing-client/sessions"
	"github.com/jrsteele09/go-ticketing-client/users"
)

// Outcome is what a navigation should do with the protected content
type Outcome int

const (
	// RenderNothing suspends the decision while the session hydrates
	RenderNothing Outcome = iota
	// Redirect sends the navigation to Decision.Target
	Redirect
	// Render shows the protected content
	Render
)

func (o Outcome) String() string {
	switch o {
	case RenderNothing:
		return "render-nothing"
	case Redirect:
		return "redirect"
	case Render:
		return "render"
	default:
		return "unknown"
	}
}

// Decision is the result of guarding one navigation. From is only set on a
// login redirect and holds the location to return to after signing in.
type Decision struct {
	Outcome Outcome
	Target  string
	From    string
}

// Decide guards a protected location. A nil allowedRoles means any signed in
// user may pass; a non-nil slice restricts access to its members, so an empty
// slice admits nobody. A user without a role never passes a restriction.
func Decide(state sessions.State, allowedRoles []users.Role, location string) Decision {
	if state.IsLoading {
		return Decision{Outcome: RenderNothing}
	}
	if state.User == nil {
		return Decision{Outcome: Redirect, Target: RouteLogin, From: location}
	}
	if allowedRoles != nil && (state.User.Role == "" || !slices.Contains(allowedRoles, state.User.Role)) {
		return Decision{Outcome: Redirect, Target: RouteDashboard}
	}
	return Decision{Outcome: Render}
}

// Check guards location using the route table. Public routes always render;
// unknown locations are treated as protected with no role restriction.
func Check(state sessions.State, location string) Decision {
	route, ok := Lookup(location)
	if !ok {
		return Decide(state, nil, location)
	}
	if route.Public {
		return Decision{Outcome: Render}
	}
	return Decide(state, route.AllowedRoles, location)
}

// CheckRoute guards location, a path expanded from pattern. The route declared
// by pattern decides access, so an id that expands into another route's path,
// or into no route at all, cannot change who may pass. A pattern missing from
// the table falls back to Check.
func CheckRoute(state sessions.State, pattern, location string) Decision {
	route, ok := RouteFor(pattern)
	if !ok {
		return Check(state, location)
	}
	if route.Public {
		return Decision{Outcome: Render}
	}
	return Decide(state, route.AllowedRoles, location)
}
