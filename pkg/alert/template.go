package alert

import (
	"context"
	_ "embed"
	"html/template"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"
)

// Subject is used for every critical alert email.
const Subject = "System Error - Critical Issue Detected"

//go:embed incident.html
var incidentSource string

var incidentTemplate = template.Must(template.New("incident").Parse(incidentSource))

type incidentDetail struct {
	Label string
	Value string
}

type incidentView struct {
	Details       []incidentDetail
	DashboardLink string
}

// IncidentEmail renders the HTML body of an alert email.
// Field values are escaped and unsafe dashboard URLs are neutralized.
func IncidentEmail(inc Incident) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		port := ""
		if inc.Port > 0 {
			port = strconv.Itoa(inc.Port)
		}
		return incidentTemplate.Execute(w, incidentView{
			Details: []incidentDetail{
				{"Reason", inc.Reason},
				{"Error Code", inc.ErrorCode},
				{"Component", inc.Component},
				{"Path", inc.Path},
				{"Address", inc.Address},
				{"Port", port},
				{"Time Detected", inc.TimeDetected.UTC().Format(time.RFC1123)},
			},
			DashboardLink: inc.DashboardLink,
		})
	})
}
