// Package templates renders the transactional emails. Each template is a
// triple of files in this directory: <name>.subject.tmpl, <name>.text.tmpl
// and <name>.html.tmpl.
package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmpl "html/template"
	"strings"
	texttpl "text/template"
)

//go:embed *.tmpl
var files embed.FS

const (
	Welcome     = "welcome"
	NewFollower = "new_follower"
)

// EmailData is the field set every template may reference.
type EmailData struct {
	Name           string `json:"Name"`
	Email          string `json:"Email"`
	RecipientEmail string `json:"RecipientEmail"`
	CompanyName    string `json:"CompanyName"`
	AppName        string `json:"AppName"`
	AppURL         string `json:"AppURL"`
	SupportURL     string `json:"SupportURL"`
	ProfileURL     string `json:"ProfileURL"`
	FollowerName   string `json:"FollowerName"`
	Time           string `json:"Time"`
}

// ToMap flattens d into the map carried by mailer.EmailJob.Data.
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// fallback is the "default" template func: {{ .FollowerName | default "Someone" }}.
func fallback(def, v any) any {
	if v == nil {
		return def
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return def
	}
	return v
}

var (
	plain = texttpl.Must(texttpl.New("plain").
		Funcs(texttpl.FuncMap{"default": fallback}).
		ParseFS(files, "*.subject.tmpl", "*.text.tmpl"))
	rich = htmpl.Must(htmpl.New("rich").
		Funcs(htmpl.FuncMap{"default": fallback}).
		ParseFS(files, "*.html.tmpl"))
)

// Render executes the subject, text and html parts of the named template.
func Render(name string, data any) (subject, text, html string, err error) {
	subjectTpl, textTpl, htmlTpl := plain.Lookup(name+".subject.tmpl"), plain.Lookup(name+".text.tmpl"), rich.Lookup(name+".html.tmpl")
	if subjectTpl == nil || textTpl == nil || htmlTpl == nil {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := subjectTpl.Execute(&buf, data); err != nil {
		return "", "", "", fmt.Errorf("%s subject: %w", name, err)
	}
	subject = buf.String()
	buf.Reset()
	if err := textTpl.Execute(&buf, data); err != nil {
		return "", "", "", fmt.Errorf("%s text: %w", name, err)
	}
	text = buf.String()
	buf.Reset()
	if err := htmlTpl.Execute(&buf, data); err != nil {
		return "", "", "", fmt.Errorf("%s html: %w", name, err)
	}
	return strings.TrimSpace(subject), text, buf.String(), nil
}
