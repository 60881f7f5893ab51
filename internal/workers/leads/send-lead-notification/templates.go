// internal/workers/leads/send-lead-notification/templates.go
package sendleadnotification

import (
	"bytes"
	htmltemplate "html/template"
	"text/template"
)

var textFuncs = template.FuncMap{"deref": deref}

var subjectTemplate = template.Must(template.New("subject").Parse(
	`[{{.Priority}}] New {{.Source}} lead: {{.Company}}`))

var textTemplate = template.Must(template.New("text").Funcs(textFuncs).Parse(`New lead from {{.Source}}

Name:     {{.Name}}
Email:    {{.Email}}
Company:  {{.Company}}
{{- if .Role}}
Role:     {{.Role}}{{end}}
{{- if .Phone}}
Phone:    {{.Phone}}{{end}}
Priority: {{.Priority}}
{{- if .MaturityLevel}}
Maturity: {{.MaturityLevel}}{{if .Percentage}} ({{printf "%.0f" (deref .Percentage)}}%){{end}}{{end}}
{{- if .Message}}

{{.Message}}{{end}}
{{- if .Recommendations}}

Recommendations shown:
{{- range .Recommendations}}
- {{.}}{{end}}{{end}}
`))

var htmlTemplate = htmltemplate.Must(htmltemplate.New("html").Funcs(htmltemplate.FuncMap{
	"deref": deref,
}).Parse(`<h2>New lead from {{.Source}}</h2>
<table>
<tr><td>Name</td><td>{{.Name}}</td></tr>
<tr><td>Email</td><td><a href="mailto:{{.Email}}">{{.Email}}</a></td></tr>
<tr><td>Company</td><td>{{.Company}}</td></tr>
{{if .Role}}<tr><td>Role</td><td>{{.Role}}</td></tr>{{end}}
{{if .Phone}}<tr><td>Phone</td><td>{{.Phone}}</td></tr>{{end}}
<tr><td>Priority</td><td><strong>{{.Priority}}</strong></td></tr>
{{if .MaturityLevel}}<tr><td>Maturity</td><td>{{.MaturityLevel}}{{if .Percentage}} ({{printf "%.0f" (deref .Percentage)}}%){{end}}</td></tr>{{end}}
</table>
{{if .Message}}<p>{{.Message}}</p>{{end}}
{{if .Recommendations}}<ul>{{range .Recommendations}}<li>{{.}}</li>{{end}}</ul>{{end}}
`))

var smsTemplate = template.Must(template.New("sms").Funcs(textFuncs).Parse(`{{.Priority}} lead: {{.Name}} ({{.Company}}){{if .MaturityLevel}} - {{.MaturityLevel}}{{end}}. {{.Email}}`))

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

type rendered struct {
	Subject string
	Text    string
	HTML    string
	SMS     string
}

func render(input *Input) (*rendered, error) {
	var out rendered
	var buf bytes.Buffer

	for _, step := range []struct {
		exec func() error
		dst  *string
	}{
		{func() error { return subjectTemplate.Execute(&buf, input) }, &out.Subject},
		{func() error { return textTemplate.Execute(&buf, input) }, &out.Text},
		{func() error { return htmlTemplate.Execute(&buf, input) }, &out.HTML},
		{func() error { return smsTemplate.Execute(&buf, input) }, &out.SMS},
	} {
		buf.Reset()
		if err := step.exec(); err != nil {
			return nil, err
		}
		*step.dst = buf.String()
	}
	return &out, nil
}
