// internal/app/features/complaints/handler.go
package complaints

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/cyvox/console/internal/app/features/dashboard"
	"github.com/cyvox/console/internal/app/system/htmlsanitize"
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

type complaintsVM struct {
	viewdata.BaseVM

	TotalComplaints int
	TotalLoss       string
	Cards           []complaintCardVM

	Error string
}

type complaintCardVM struct {
	ID          string
	Subject     string
	User        string
	Loss        string
	Date        string
	Location    string
	AudioURL    string
	Description template.HTML
	Fields      []record.Field
}

// ServePage handles GET /complaints.
func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "complaints", h.buildVM(r))
}

// ServeContent renders only the complaints body, for fragment navigation.
func (h *Handler) ServeContent(w http.ResponseWriter, r *http.Request, _ string) {
	templates.Render(w, r, "complaints_content", h.buildVM(r))
}

func (h *Handler) buildVM(r *http.Request) complaintsVM {
	vm := complaintsVM{
		BaseVM: viewdata.NewBaseVM(r, "Complaints", "/dashboard"),
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "fetch complaints")
	defer cancel()

	st := h.Client.AllComplaints(ctx)
	if st.Err != nil {
		vm.Error = st.Message()
		return vm
	}
	if st.Data == nil {
		return vm
	}

	recs := st.Data.Complaints
	vm.TotalComplaints = len(recs)

	var loss float64
	vm.Cards = make([]complaintCardVM, 0, len(recs))
	for _, rec := range recs {
		loss += rec.MoneyScammed()
		vm.Cards = append(vm.Cards, newCard(rec))
	}
	vm.TotalLoss = dashboard.FormatMoney(loss)
	return vm
}

func newCard(rec cyvox.Record) complaintCardVM {
	subject := rec.String("complainSubject")
	if subject == "" {
		subject = rec.String("subject")
	}
	if subject == "" {
		subject = "Untitled complaint"
	}

	user := rec.String("username")
	if user == "" {
		user = rec.String("name")
	}

	desc := rec.String("incidentDescription")
	if desc == "" {
		desc = rec.String("description")
	}

	audio := rec.String("userConversationAudioUrl")
	if audio == "" {
		audio = rec.String("scammerAudioUrl")
	}

	return complaintCardVM{
		ID:          rec.ID(),
		Subject:     subject,
		User:        user,
		Loss:        dashboard.FormatMoney(rec.MoneyScammed()),
		Date:        dashboard.FormatDate(rec.CreatedAt()),
		Location:    location(rec),
		AudioURL:    audio,
		Description: htmlsanitize.PrepareForDisplay(desc),
		Fields:      record.Render(rec),
	}
}

// location joins the address fields a complaint carries, most specific first.
func location(rec cyvox.Record) string {
	var parts []string
	for _, field := range []string{"streetAddress", "city", "district", "state", "pincode"} {
		if v := rec.String(field); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}
