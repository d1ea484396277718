// internal/app/features/shell/handler.go
package shell

import (
	"net/http"

	"github.com/cyvox/console/internal/app/system/viewdata"
	"github.com/cyvox/console/internal/app/system/viewroute"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ContentFunc renders the body of one view. The string argument is the
// route parameter (the user ID for complaint details, "" elsewhere).
type ContentFunc func(http.ResponseWriter, *http.Request, string)

// Handler serves the shell page at "/" and the fragment-navigation endpoint
// at /nav. The URL hash remains the single source of truth for which view is
// showing: the shell forwards every hashchange to /nav, which resolves the
// fragment and swaps in the matching view body.
type Handler struct {
	Log     *zap.Logger
	Nav     *viewroute.Navigator
	Content map[viewroute.View]ContentFunc
}

func NewHandler(nav *viewroute.Navigator, logger *zap.Logger) *Handler {
	return &Handler{
		Log:     logger,
		Nav:     nav,
		Content: make(map[viewroute.View]ContentFunc),
	}
}

// Register binds a view's body renderer. Called once per view at startup.
func (h *Handler) Register(view viewroute.View, fn ContentFunc) {
	h.Content[view] = fn
}

type shellVM struct {
	viewdata.BaseVM
}

// ServeRoot handles GET /. The page body is empty; a load-time hashchange
// hook fetches the view named by the fragment (or the default view).
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "shell", shellVM{
		BaseVM: viewdata.NewBaseVM(r, "", "/dashboard"),
	})
}

// ServeNav handles GET /nav?frag=...&current=....
//
// The fragment is resolved against the caller's current view: an
// unrecognized fragment keeps the current view, and no current view falls
// back to the dashboard. HTMX callers get the view body; anyone else is
// redirected to the view's full page.
func (h *Handler) ServeNav(w http.ResponseWriter, r *http.Request) {
	frag := query.Get(r, "frag")
	currentFrag := query.Get(r, "current")

	current, ok := viewroute.Parse(currentFrag)
	if !ok {
		current = h.Nav.Current()
	}

	route := viewroute.Resolve(frag, current)
	h.Nav.Apply(route.Fragment())

	if r.Header.Get("HX-Request") == "" {
		http.Redirect(w, r, route.Path(), http.StatusSeeOther)
		return
	}

	w.Header().Set("X-Current-View", route.Fragment())

	fn, ok := h.Content[route.View]
	if !ok {
		h.Log.Error("no content renderer for view", zap.String("view", string(route.View)))
		http.Error(w, "view unavailable", http.StatusInternalServerError)
		return
	}
	fn(w, r, route.Param)
}
