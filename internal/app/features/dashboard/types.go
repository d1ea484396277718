// internal/app/features/dashboard/types.go
package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/cyvox/console/internal/app/system/viewdata"
	"github.com/cyvox/console/internal/cyvox"
)

type dashboardVM struct {
	viewdata.BaseVM

	TotalUsers      int
	TotalComplaints int
	TotalLoss       float64
	Recent          []recentVM

	ComplaintsError string
	UsersError      string
}

// TotalLossDisplay formats the aggregate loss as currency.
func (vm dashboardVM) TotalLossDisplay() string {
	return FormatMoney(vm.TotalLoss)
}

type recentVM struct {
	ID      string
	Subject string
	User    string
	Loss    string
	Date    string
}

func newRecentVM(rec cyvox.Record) recentVM {
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

	date := ""
	if at := rec.CreatedAt(); !at.IsZero() {
		date = at.Format("Jan 2, 2006")
	}

	return recentVM{
		ID:      rec.ID(),
		Subject: subject,
		User:    user,
		Loss:    FormatMoney(rec.MoneyScammed()),
		Date:    date,
	}
}

// FormatMoney renders a dollar amount with thousands separators and two
// decimal places.
func FormatMoney(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := fmt.Sprintf("%.2f", amount)

	dot := strings.IndexByte(s, '.')
	whole, frac := s[:dot], s[dot:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteString(frac)
	return b.String()
}

// FormatDate renders a timestamp for list display, or "" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}
