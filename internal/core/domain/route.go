package domain

import "fmt"

const (
	PathLogin               = "/login"
	PathRoot                = "/"
	PathDashboard           = "/dashboard"
	PathTemplateSelector    = "/template-selector"
	PathSmartwatchView      = "/smartwatch-view"
	PathSupervisorDashboard = "/supervisor-dashboard"
	PathDriverTracking      = "/driver-tracking-control-center"
	PathDriversManagement   = "/drivers-management-dashboard"
	PathFleetManagement     = "/fleet-management-dashboard"
	PathCameraManagement    = "/camera-management-center"
	PathDriverHealth        = "/driver-health-analytics"
	PathAlertManagement     = "/alert-management-center"
	PathFleetCommand        = "/fleet-command-dashboard"
)

var landingViews = map[Role]string{
	RoleDriver:     PathSmartwatchView,
	RoleSupervisor: PathSupervisorDashboard,
	RoleAdmin:      PathFleetCommand,
}

// DefaultRouteFor returns the landing view of role. Unknown roles fail
// closed: the login view is returned together with ErrUnauthorizedRole.
func DefaultRouteFor(role Role) (string, error) {
	if path, ok := landingViews[role]; ok {
		return path, nil
	}
	return PathLogin, fmt.Errorf("default route for %q: %w", role, ErrUnauthorizedRole)
}

// RouteRule declares who may open a view. An empty AllowedRoles means any
// authenticated user.
type RouteRule struct {
	Path         string
	Title        string
	AllowedRoles []Role
	// Public views skip the guard entirely.
	Public bool
	// RoleRedirect views never render; they send the user to their landing view.
	RoleRedirect bool
	Widgets      []string
}

// Allows reports whether role may open the view.
func (r RouteRule) Allows(role Role) bool {
	if len(r.AllowedRoles) == 0 {
		return true
	}
	for _, allowed := range r.AllowedRoles {
		if allowed == role {
			return true
		}
	}
	return false
}

var supervisorsAndAdmins = []Role{RoleSupervisor, RoleAdmin}

// RouteTable is the declarative view configuration consumed by the guard.
// New protected views are added here.
var RouteTable = []RouteRule{
	{Path: PathLogin, Title: "Sign in", Public: true},
	{Path: PathTemplateSelector, Title: "Template Selector"},
	{Path: PathRoot, RoleRedirect: true},
	{Path: PathDashboard, RoleRedirect: true},
	{
		Path: PathSmartwatchView, Title: "Smartwatch View",
		AllowedRoles: []Role{RoleDriver},
		Widgets:      []string{WidgetHealth, WidgetConnection},
	},
	{
		Path: PathSupervisorDashboard, Title: "Supervisor Dashboard",
		AllowedRoles: []Role{RoleSupervisor},
		Widgets:      []string{WidgetAlerts, WidgetConnection, WidgetHealth},
	},
	{Path: PathDriverTracking, Title: "Driver Tracking Control Center", AllowedRoles: supervisorsAndAdmins, Widgets: []string{WidgetConnection}},
	{Path: PathDriversManagement, Title: "Drivers Management", AllowedRoles: supervisorsAndAdmins},
	{Path: PathFleetManagement, Title: "Fleet Management", AllowedRoles: supervisorsAndAdmins, Widgets: []string{WidgetConnection}},
	{Path: PathCameraManagement, Title: "Camera Management Center", AllowedRoles: supervisorsAndAdmins},
	{Path: PathDriverHealth, Title: "Driver Health Analytics", AllowedRoles: supervisorsAndAdmins, Widgets: []string{WidgetHealth}},
	{Path: PathAlertManagement, Title: "Alert Management Center", AllowedRoles: supervisorsAndAdmins, Widgets: []string{WidgetAlerts}},
	{Path: PathFleetCommand, Title: "Fleet Command Dashboard", AllowedRoles: supervisorsAndAdmins, Widgets: []string{WidgetAlerts, WidgetConnection, WidgetHealth}},
}

// LookupRoute finds the rule for path.
func LookupRoute(path string) (RouteRule, bool) {
	for _, r := range RouteTable {
		if r.Path == path {
			return r, true
		}
	}
	return RouteRule{}, false
}
