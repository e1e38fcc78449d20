package guard

import (
	"slices"
	"strings"

	"github.com/jrsteele09/go-ticketing-client/users"
)

// Route path constants
const (
	// Public
	RouteLogin          = "/login"
	RouteForgotPassword = "/forgot-password"
	RoutePublicEvents   = "/events/public"

	// Any signed in user
	RouteHome         = "/"
	RouteDashboard    = "/dashboard"
	RouteEventDetails = "/events/{id}"

	// Super admin
	RouteCreateSuperAdmin = "/admin/users/create"
	RouteCreateAdmin      = "/admin/create"
	RouteManageUsers      = "/admin/users"
	RouteEditUser         = "/admin/users/{id}/edit"

	// Staff
	RouteCreateEvent       = "/events/create"
	RouteManageEvents      = "/events"
	RouteEditEvent         = "/events/{id}/edit"
	RouteEventReservations = "/events/{id}/reservations"

	// Client
	RouteClientEvents       = "/client/events"
	RouteReserve            = "/reserve/{id}"
	RouteClientReservations = "/client/reservations"
	RouteClientReviews      = "/client/reviews"
)

var (
	superAdminOnly = []users.Role{users.RoleSuperAdmin}
	staff          = []users.Role{users.RoleSuperAdmin, users.RoleAdmin}
	clientOnly     = []users.Role{users.RoleClient}
)

// Route is one navigable location
type Route struct {
	Path         string
	Public       bool
	AllowedRoles []users.Role // nil admits any signed in user
}

// Routes is the application route table
var Routes = []Route{
	{Path: RouteLogin, Public: true},
	{Path: RouteForgotPassword, Public: true},
	{Path: RoutePublicEvents, Public: true},

	{Path: RouteHome},
	{Path: RouteDashboard},

	{Path: RouteCreateSuperAdmin, AllowedRoles: superAdminOnly},
	{Path: RouteCreateAdmin, AllowedRoles: superAdminOnly},
	{Path: RouteManageUsers, AllowedRoles: superAdminOnly},
	{Path: RouteEditUser, AllowedRoles: superAdminOnly},

	{Path: RouteCreateEvent, AllowedRoles: staff},
	{Path: RouteManageEvents, AllowedRoles: staff},
	{Path: RouteEditEvent, AllowedRoles: staff},
	{Path: RouteEventReservations, AllowedRoles: staff},
	{Path: RouteEventDetails},

	{Path: RouteClientEvents, AllowedRoles: clientOnly},
	{Path: RouteReserve, AllowedRoles: clientOnly},
	{Path: RouteClientReservations, AllowedRoles: clientOnly},
	{Path: RouteClientReviews, AllowedRoles: clientOnly},
}

// Lookup finds the first route matching location. Query strings are ignored
// and "{id}" segments match any non-empty segment.
func Lookup(location string) (Route, bool) {
	path, _, _ := strings.Cut(location, "?")
	for _, route := range Routes {
		if matches(route.Path, path) {
			return route, true
		}
	}
	return Route{}, false
}

// RouteFor returns the route declared with exactly pattern
func RouteFor(pattern string) (Route, bool) {
	i := slices.IndexFunc(Routes, func(r Route) bool { return r.Path == pattern })
	if i < 0 {
		return Route{}, false
	}
	return Routes[i], true
}

// Expand fills the "{id}" placeholder of a route path
func Expand(pattern, id string) string {
	return strings.Replace(pattern, "{id}", id, 1)
}

func matches(pattern, path string) bool {
	if pattern == path {
		return true
	}
	want := strings.Split(strings.Trim(pattern, "/"), "/")
	got := strings.Split(strings.Trim(path, "/"), "/")
	if len(want) != len(got) {
		return false
	}
	for i, segment := range want {
		if segment == "{id}" {
			if got[i] == "" {
				return false
			}
			continue
		}
		if segment != got[i] {
			return false
		}
	}
	return true
}
