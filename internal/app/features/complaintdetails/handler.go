// internal/app/features/complaintdetails/handler.go
package complaintdetails

import (
	"net/http"

	"github.com/cyvox/console/internal/app/system/record"
	"github.com/cyvox/console/internal/app/system/timeouts"
	"github.com/cyvox/console/internal/app/system/viewdata"
	"github.com/cyvox/console/internal/cyvox"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Log    *zap.Logger
	Client *cyvox.Client
}

func NewHandler(client *cyvox.Client, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, Client: client}
}

type detailsVM struct {
	viewdata.BaseVM

	UserID     string
	Complaints [][]record.Field

	Error string
}

// Empty reports whether the fetch succeeded but returned no complaints.
func (vm detailsVM) Empty() bool {
	return vm.Error == "" && len(vm.Complaints) == 0
}

// ServePage handles GET /complaint-details/{userId}.
func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	templates.Render(w, r, "complaint_details", h.buildVM(r, userID))
}

// ServeContent renders only the details body, for fragment navigation.
// The fragment parameter carries the user ID.
func (h *Handler) ServeContent(w http.ResponseWriter, r *http.Request, userID string) {
	templates.Render(w, r, "complaint_details_content", h.buildVM(r, userID))
}

func (h *Handler) buildVM(r *http.Request, userID string) detailsVM {
	vm := detailsVM{
		BaseVM: viewdata.NewBaseVM(r, "Complaint details", "/users"),
		UserID: userID,
	}
	if userID == "" {
		vm.Error = "No user selected."
		return vm
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "fetch user complaints")
	defer cancel()

	st := h.Client.UserComplaints(ctx, userID)
	if st.Err != nil {
		vm.Error = st.Message()
		return vm
	}
	if st.Data == nil {
		return vm
	}

	for _, rec := range st.Data.Complaints {
		vm.Complaints = append(vm.Complaints, record.Render(rec))
	}
	return vm
}
