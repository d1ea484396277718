// internal/app/features/dashboard/handler.go
package dashboard

import (
	"net/http"
	"sort"

	"github.com/cyvox/console/internal/app/system/timeouts"
	"github.com/cyvox/console/internal/app/system/viewdata"
	"github.com/cyvox/console/internal/cyvox"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// recentLimit is how many of the newest complaints the dashboard shows.
const recentLimit = 6

type Handler struct {
	Log    *zap.Logger
	Client *cyvox.Client
}

func NewHandler(client *cyvox.Client, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, Client: client}
}

// ServePage handles GET /dashboard.
func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "dashboard", h.buildVM(r))
}

// ServeContent renders only the dashboard body, for fragment navigation.
func (h *Handler) ServeContent(w http.ResponseWriter, r *http.Request, _ string) {
	templates.Render(w, r, "dashboard_content", h.buildVM(r))
}

// buildVM runs the two backend fetches and computes the summary stats.
// The complaint and user sections fail independently: one endpoint being
// down leaves the other's numbers intact.
func (h *Handler) buildVM(r *http.Request) dashboardVM {
	vm := dashboardVM{
		BaseVM: viewdata.NewBaseVM(r, "Dashboard", "/dashboard"),
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "dashboard fetches")
	defer cancel()

	complaints := h.Client.AllComplaints(ctx)
	if complaints.Err != nil {
		vm.ComplaintsError = complaints.Message()
	} else if complaints.Data != nil {
		recs := complaints.Data.Complaints
		vm.TotalComplaints = len(recs)
		for _, rec := range recs {
			vm.TotalLoss += rec.MoneyScammed()
		}
		vm.Recent = recentComplaints(recs)
	}

	users := h.Client.AllUsers(ctx)
	if users.Err != nil {
		vm.UsersError = users.Message()
	} else if users.Data != nil {
		vm.TotalUsers = len(users.Data.Users)
	}

	return vm
}

// recentComplaints returns the newest complaints, most recent first.
// Records without a parseable timestamp sort last.
func recentComplaints(recs []cyvox.Record) []recentVM {
	type dated struct {
		rec cyvox.Record
		at  int64
	}
	ordered := make([]dated, 0, len(recs))
	for _, rec := range recs {
		ordered = append(ordered, dated{rec: rec, at: rec.CreatedAt().UnixNano()})
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].at > ordered[j].at
	})

	if len(ordered) > recentLimit {
		ordered = ordered[:recentLimit]
	}

	out := make([]recentVM, 0, len(ordered))
	for _, d := range ordered {
		out = append(out, newRecentVM(d.rec))
	}
	return out
}
