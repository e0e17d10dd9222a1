package helpers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oksasatya/icook-api/pkg/mailer"
	mailtpl "github.com/oksasatya/icook-api/pkg/mailer/templates"
)

// SubjectFor is the fallback subject when a job carries neither a subject nor a subject template.
func SubjectFor(template string) string {
	switch strings.ToLower(template) {
	case mailtpl.Welcome:
		return "Welcome to iCook"
	case mailtpl.NewFollower:
		return "You have a new follower"
	default:
		return "Notification"
	}
}

func EnsureRecipientAndEmail(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
}

// BuildMessage renders a queued job into a Message. A template wins over
// inline bodies; a blank rendered subject falls back to SubjectFor. The tag
// defaults to the template name.
func BuildMessage(job *mailer.EmailJob) (mailer.Message, error) {
	if strings.TrimSpace(job.To) == "" {
		return mailer.Message{}, errors.New("email job has no recipient")
	}
	EnsureRecipientAndEmail(job)

	m := mailer.Message{To: job.To, Subject: job.Subject, Text: job.Text, HTML: job.HTML, Tag: job.Tag}
	if job.Template != "" {
		name := strings.ToLower(job.Template)
		subject, text, html, err := mailtpl.Render(name, job.Data)
		if err != nil {
			return mailer.Message{}, fmt.Errorf("render %s: %w", job.Template, err)
		}
		m.Subject, m.Text, m.HTML = subject, text, html
		if m.Tag == "" {
			m.Tag = name
		}
	}
	m.Subject = strings.TrimSpace(m.Subject)
	if m.Subject == "" {
		m.Subject = SubjectFor(job.Template)
	}
	if strings.TrimSpace(m.Text) == "" && strings.TrimSpace(m.HTML) == "" {
		return mailer.Message{}, errors.New("email job has no body")
	}
	return m, nil
}
