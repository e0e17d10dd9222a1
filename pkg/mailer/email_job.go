package mailer

// EmailJob is the queued form of one outgoing email. Either Template (with
// Data) or the inline Subject/Text/HTML describe the content; a template
// takes precedence.
type EmailJob struct {
	To       string         `json:"to"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Tag      string         `json:"tag,omitempty"`
}

// Message is a rendered email ready for a Sender.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
	Tag     string
}
