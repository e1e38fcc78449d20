package guard

import (
	"slices"

	"github.com/jrsteele09/go-ticketing-client/users"
)

// NavItem is a menu entry
type NavItem struct {
	Label string
	Href  string
}

// NavGroup is a labelled group of menu entries
type NavGroup struct {
	Label    string
	Children []NavItem
}

var eventsGroup = NavGroup{
	Label: "Events",
	Children: []NavItem{
		{Label: "Create Event", Href: RouteCreateEvent},
		{Label: "Manage Events", Href: RouteManageEvents},
	},
}

var navigation = map[users.Role][]NavGroup{
	users.RoleSuperAdmin: {
		{
			Label: "Users",
			Children: []NavItem{
				{Label: "Create Super Admin", Href: RouteCreateSuperAdmin},
				{Label: "Create Admin", Href: RouteCreateAdmin},
				{Label: "Manage Users", Href: RouteManageUsers},
			},
		},
		eventsGroup,
	},
	users.RoleAdmin: {eventsGroup},
}

// NavigationFor returns the menu for role. Clients and unknown roles get an
// empty menu.
func NavigationFor(role users.Role) []NavGroup {
	return slices.Clone(navigation[role])
}
