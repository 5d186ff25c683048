package cmd

import session "github.com/roomify/go-session"

// The console's guarded destinations and the roles allowed to enter them.
// An empty role list means any authenticated operator.
var (
	routeWhoami = session.Route{Path: "/whoami"}

	routeRoomTypes = session.Route{
		Path:          "/room-types",
		RequiredRoles: []string{session.RoleManager},
	}

	routeRooms = session.Route{
		Path:          "/rooms",
		RequiredRoles: []string{session.RoleManager, session.RoleStaff},
	}

	routeStaff = session.Route{
		Path:          "/staff",
		RequiredRoles: []string{session.RoleManager},
	}
)
