// Package viewroute resolves URL hash fragments into logical console views.
//
// The console's navigation is hash-driven: the shell page forwards fragment
// changes to the server, and every navigation — operator-initiated or
// programmatic — flows through the same resolution path. The fragment is the
// single source of truth for the current view.
package viewroute

import "strings"

// View identifies one of the console's top-level views.
type View string

const (
	ViewDashboard        View = "dashboard"
	ViewUsers            View = "users"
	ViewComplaints       View = "complaints"
	ViewComplaintDetails View = "complaint-details"
)

// detailsPrefix is the fragment prefix that carries a subject identifier,
// e.g. "complaint-details-u42".
const detailsPrefix = "complaint-details-"

// Route is a resolved logical view plus its optional parameter. Only
// ViewComplaintDetails carries a Param (the user id from the fragment).
type Route struct {
	View  View
	Param string
}

// DefaultRoute is the view shown when no fragment has been resolved yet.
var DefaultRoute = Route{View: ViewDashboard}

// Parse interprets a fragment strictly. A leading '#' is stripped. The
// boolean is false when the fragment names no known view; callers decide the
// fallback (see Resolve).
//
// A fragment beginning with "complaint-details-" always parses, with Param
// set to the remainder — whether or not that remainder names a real record.
func Parse(fragment string) (Route, bool) {
	frag := strings.TrimPrefix(fragment, "#")

	if strings.HasPrefix(frag, detailsPrefix) {
		return Route{View: ViewComplaintDetails, Param: frag[len(detailsPrefix):]}, true
	}

	switch View(frag) {
	case ViewDashboard, ViewUsers, ViewComplaints, ViewComplaintDetails:
		return Route{View: View(frag)}, true
	}
	return Route{}, false
}

// Resolve parses a fragment, falling back to current on a miss. An
// unrecognized fragment causes no view transition; the fragment string
// itself is never rewritten.
func Resolve(fragment string, current Route) Route {
	if r, ok := Parse(fragment); ok {
		return r
	}
	if current.View == "" {
		return DefaultRoute
	}
	return current
}

// Fragment renders the route back to its fragment form, including the
// leading '#'.
func (r Route) Fragment() string {
	if r.View == ViewComplaintDetails && r.Param != "" {
		return "#" + detailsPrefix + r.Param
	}
	return "#" + string(r.View)
}

// Path returns the full-page server path for the route, so the same views
// are reachable by direct URL as by fragment navigation.
func (r Route) Path() string {
	if r.View == ViewComplaintDetails {
		return "/complaint-details/" + r.Param
	}
	return "/" + string(r.View)
}
