// internal/app/features/complaintdetails/views/views.go
package complaintdetailsviews

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "complaintdetails",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
