// internal/workers/assessment/notify-results/templates.go
package notifyresults

import (
	"bytes"
	htmltemplate "html/template"
	"text/template"

	"career-assessment-workers/internal/models"
)

const subject = "Your career assessment results"

var textTemplate = template.Must(template.New("text").Parse(`Hello {{.Name}},

Your assessment results are ready.
{{- if .HollandCode}}
Interest code: {{.HollandCode}}
{{- end}}
{{- if .PersonalityType}}
Personality type: {{.PersonalityType}}
{{- end}}

Top career matches:
{{range .Matches}}{{.Rank}}. {{.Title}} - {{printf "%.1f" .OverallScore}} ({{.FitLabel}} fit)
   {{.Explanation}}
{{else}}No careers met the minimum match score yet.
{{end}}`))

var htmlTemplate = htmltemplate.Must(htmltemplate.New("html").Parse(`<p>Hello {{.Name}},</p>
<p>Your assessment results are ready.</p>
{{if .HollandCode}}<p>Interest code: <strong>{{.HollandCode}}</strong></p>{{end}}
{{if .PersonalityType}}<p>Personality type: <strong>{{.PersonalityType}}</strong></p>{{end}}
{{if .Matches}}<ol>
{{range .Matches}}<li><strong>{{.Title}}</strong> {{printf "%.1f" .OverallScore}} ({{.FitLabel}} fit)<br>{{.Explanation}}</li>
{{end}}</ol>{{else}}<p>No careers met the minimum match score yet.</p>{{end}}`))

type summary struct {
	Name            string
	HollandCode     string
	PersonalityType string
	Matches         []models.MatchResult
}

func renderEmail(s summary) (string, string, error) {
	var text, html bytes.Buffer
	if err := textTemplate.Execute(&text, s); err != nil {
		return "", "", err
	}
	if err := htmlTemplate.Execute(&html, s); err != nil {
		return "", "", err
	}
	return text.String(), html.String(), nil
}

func renderSMS(matches []models.MatchResult) string {
	if len(matches) == 0 {
		return "Your career assessment results are ready. Check your email for details."
	}
	top := matches[0]
	return "Your top career match: " + top.Title + " (" + top.FitLabel + " fit). Full results were sent to your email."
}
