// Package guard implements the navigation predicates: authenticated-only,
// role-restricted and guest-only route checks. Guards never navigate;
// every denial carries the redirect target for the caller to act on.
package guard

import (
	"net/url"

	"github.com/fittrack/go-fitness-client/notify"
	"github.com/fittrack/go-fitness-client/routes"
	"github.com/fittrack/go-fitness-client/users"
)

// Session is the slice of the session service the guards consume.
type Session interface {
	IsAuthenticated() bool
	Role() (users.RoleType, bool)
}

// Decision is a guard's verdict. When Allowed is false, Redirect is the
// route the caller should navigate to instead.
type Decision struct {
	Allowed  bool
	Redirect routes.Route
}

func allow() Decision { return Decision{Allowed: true} }

func deny(redirect routes.Route) Decision { return Decision{Redirect: redirect} }

// Authenticated permits navigation only for signed-in sessions. A denial
// redirects to login with the attempted path preserved in the returnUrl
// query parameter and raises a warning.
func Authenticated(s Session, n notify.Notifier, attempted string) Decision {
	if s.IsAuthenticated() {
		return allow()
	}

	n.Warning("Please login to access this page")
	redirect := routes.RouteLogin
	if attempted != "" {
		redirect += routes.Route("?returnUrl=" + url.QueryEscape(attempted))
	}
	return deny(redirect)
}

// Roles permits navigation only when the current user's role is one of
// required. Without any role at all the denial redirects to login; with
// the wrong role it redirects to the default user dashboard.
func Roles(s Session, n notify.Notifier, required ...users.RoleType) Decision {
	role, ok := s.Role()
	if !ok {
		n.Error("Access denied")
		return deny(routes.RouteLogin)
	}

	for _, want := range required {
		if role == want {
			return allow()
		}
	}

	n.Error("You do not have permission to access this page")
	return deny(routes.RouteUserDashboard)
}

// Guest is the inverse of Authenticated: it keeps signed-in users out of
// the login and register pages by redirecting them to their dashboard.
func Guest(s Session) Decision {
	if !s.IsAuthenticated() {
		return allow()
	}

	role, _ := s.Role()
	return deny(routes.DashboardFor(role))
}
