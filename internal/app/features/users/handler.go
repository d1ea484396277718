// internal/app/features/users/handler.go
package users

import (
	"net/http"

	"github.com/cyvox/console/internal/app/features/dashboard"
	"github.com/cyvox/console/internal/app/system/record"
	"github.com/cyvox/console/internal/app/system/timeouts"
	"github.com/cyvox/console/internal/app/system/viewdata"
	"github.com/cyvox/console/internal/cyvox"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

type Handler struct {
	Log    *zap.Logger
	Client *cyvox.Client
}

func NewHandler(client *cyvox.Client, logger *zap.Logger) *Handler {
	return &Handler{Log: logger, Client: client}
}

type usersVM struct {
	viewdata.BaseVM

	TotalUsers      int
	TotalComplaints int
	Rows            []userRowVM

	Error string
}

type userRowVM struct {
	ID             string
	Name           string
	Email          string
	Phone          string
	Joined         string
	ComplaintCount int
	Fields         []record.Field
}

// ServePage handles GET /users.
func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "users", h.buildVM(r))
}

// ServeContent renders only the users body, for fragment navigation.
func (h *Handler) ServeContent(w http.ResponseWriter, r *http.Request, _ string) {
	templates.Render(w, r, "users_content", h.buildVM(r))
}

func (h *Handler) buildVM(r *http.Request) usersVM {
	vm := usersVM{
		BaseVM: viewdata.NewBaseVM(r, "Users", "/dashboard"),
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "fetch users")
	defer cancel()

	st := h.Client.AllUsers(ctx)
	if st.Err != nil {
		vm.Error = st.Message()
		return vm
	}
	if st.Data == nil {
		return vm
	}

	recs := st.Data.Users
	vm.TotalUsers = len(recs)
	vm.Rows = make([]userRowVM, 0, len(recs))
	for _, rec := range recs {
		row := newUserRow(rec)
		vm.TotalComplaints += row.ComplaintCount
		vm.Rows = append(vm.Rows, row)
	}
	return vm
}

func newUserRow(rec cyvox.Record) userRowVM {
	name := rec.String("username")
	if name == "" {
		name = rec.String("name")
	}
	if name == "" {
		name = "Unknown user"
	}

	return userRowVM{
		ID:             rec.ID(),
		Name:           name,
		Email:          rec.String("email"),
		Phone:          rec.String("phoneNumber"),
		Joined:         dashboard.FormatDate(rec.CreatedAt()),
		ComplaintCount: rec.PreviousComplaints(),
		Fields:         record.Render(rec),
	}
}
