package routes

import "github.com/fittrack/go-fitness-client/users"

// Route is an application navigation target. Services return routes as
// values so callers decide how to act on them; nothing in this package
// performs navigation.
type Route string

// Application routes
// All navigation targets are defined here to ensure consistency and prevent typos
const (
	// Public routes
	RouteLanding Route = "/"

	// Auth routes
	RouteLogin          Route = "/auth/login"
	RouteRegister       Route = "/auth/register"
	RouteOAuth2Redirect Route = "/auth/oauth2/redirect"

	// User routes
	RouteUserDashboard    Route = "/user/dashboard"
	RouteUserProfile      Route = "/user/profile"
	RouteUserActivities   Route = "/user/activities"
	RouteUserGoals        Route = "/user/goals"
	RouteUserMeasurements Route = "/user/measurements"
	RouteUserBMI          Route = "/user/bmi-calculator"
	RouteRecommendations  Route = "/user/recommendations"

	// Admin routes
	RouteAdminDashboard  Route = "/admin/dashboard"
	RouteAdminUsers      Route = "/admin/users"
	RouteAdminActivities Route = "/admin/activities"
	RouteAdminAnalytics  Route = "/admin/analytics"
)

// DashboardFor returns the landing route for a role after a successful
// authentication: admins land on the admin dashboard, everyone else on
// the user dashboard.
func DashboardFor(role users.RoleType) Route {
	if role == users.RoleAdmin {
		return RouteAdminDashboard
	}
	return RouteUserDashboard
}
