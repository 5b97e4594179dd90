// Package report renders a citizen's recommendations as a printable summary.
package report

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	"text/template"
	"time"

	"scheme-finder/internal/models"
)

const Title = "Government Scheme Recommendations"

// Notes close every report.
var Notes = []string{
	"Please verify eligibility criteria on the official websites before applying.",
	"Keep all required documents ready before starting the application process.",
	"Contact the respective government departments for any clarifications.",
	"This report is generated based on the information provided and may not be exhaustive.",
}

// Entry is one scheme line in a report. Score and Department are optional.
type Entry struct {
	Name            string
	State           string
	Department      string
	ApplicationLink string
	MatchScore      int
}

type Report struct {
	Title       string
	GeneratedAt time.Time
	Entries     []Entry
	Notes       []string
}

func (r Report) Total() int { return len(r.Entries) }

func FromScored(recs []models.ScoredScheme, now time.Time) Report {
	entries := make([]Entry, len(recs))
	for i, r := range recs {
		entries[i] = Entry{
			Name:            r.Name,
			State:           r.State,
			Department:      r.Department,
			ApplicationLink: r.ApplicationLink,
			MatchScore:      r.MatchScore,
		}
	}
	return Report{Title: Title, GeneratedAt: now, Entries: entries, Notes: Notes}
}

func FromRecommendations(recs []models.SchemeRecommendation, now time.Time) Report {
	entries := make([]Entry, len(recs))
	for i, r := range recs {
		entries[i] = Entry{Name: r.SchemeName, State: r.State, ApplicationLink: r.ApplicationLink}
	}
	return Report{Title: Title, GeneratedAt: now, Entries: entries, Notes: Notes}
}

var funcs = map[string]interface{}{
	"inc":  func(i int) int { return i + 1 },
	"date": func(t time.Time) string { return t.Format("02 Jan 2006") },
}

var textTmpl = template.Must(template.New("report.txt").Funcs(funcs).Parse(`{{.Title}}
Generated on: {{date .GeneratedAt}}
Total Recommendations Found: {{.Total}}

Recommended Schemes
{{range $i, $e := .Entries}}
{{inc $i}}. {{$e.Name}}
   State: {{$e.State}}
{{- if $e.Department}}
   Department: {{$e.Department}}
{{- end}}
{{- if $e.MatchScore}}
   Match: {{$e.MatchScore}}%
{{- end}}
   Application Link: {{$e.ApplicationLink}}
{{end}}
Important Notes:
{{range .Notes}}• {{.}}
{{end}}`))

var htmlTmpl = htmltemplate.Must(htmltemplate.New("report.html").Funcs(funcs).Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<p>Generated on: {{date .GeneratedAt}}</p>
<p>Total Recommendations Found: {{.Total}}</p>
<h2>Recommended Schemes</h2>
<ol>
{{range .Entries}}<li><strong>{{.Name}}</strong><br>State: {{.State}}{{if .Department}}<br>Department: {{.Department}}{{end}}{{if .MatchScore}}<br>Match: {{.MatchScore}}%{{end}}<br>Application Link: <a href="{{.ApplicationLink}}">{{.ApplicationLink}}</a></li>
{{end}}</ol>
<h3>Important Notes:</h3>
<ul>
{{range .Notes}}<li>{{.}}</li>
{{end}}</ul>
</body></html>
`))

func (r Report) Text() (string, error) {
	var buf bytes.Buffer
	if err := textTmpl.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("render text report: %w", err)
	}
	return buf.String(), nil
}

func (r Report) HTML() (string, error) {
	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("render html report: %w", err)
	}
	return buf.String(), nil
}

// Summary is a single line fit for an SMS.
func (r Report) Summary(max int) string {
	if r.Total() == 0 {
		return "No matching government schemes found for your profile."
	}
	names := make([]string, 0, max)
	for i, e := range r.Entries {
		if i == max {
			break
		}
		names = append(names, e.Name)
	}
	msg := fmt.Sprintf("%d schemes match your profile: %s", r.Total(), strings.Join(names, ", "))
	if r.Total() > max {
		msg += fmt.Sprintf(" and %d more", r.Total()-max)
	}
	return msg
}
