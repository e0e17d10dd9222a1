package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Sender delivers a rendered message.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// Mailgun sends through the Mailgun HTTP API from a fixed sender address.
type Mailgun struct {
	client mg.Mailgun
	from   string
}

// NewMailgun builds a sender. apiBase selects the region (mg.APIBaseEU);
// empty keeps the client default.
func NewMailgun(domain, apiKey, from, apiBase string) *Mailgun {
	client := mg.NewMailgun(domain, apiKey)
	if apiBase != "" {
		client.SetAPIBase(apiBase)
	}
	return &Mailgun{client: client, from: from}
}

func (m *Mailgun) Send(ctx context.Context, msg Message) error {
	out := m.client.NewMessage(m.from, msg.Subject, msg.Text, msg.To)
	if msg.HTML != "" {
		out.SetHtml(msg.HTML)
	}
	if msg.Tag != "" {
		if err := out.AddTag(msg.Tag); err != nil {
			return err
		}
	}
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err := m.client.Send(c, out)
	return err
}

var _ Sender = (*Mailgun)(nil)
