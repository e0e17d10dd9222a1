package templates

import (
	"strings"
	"time"

	"github.com/oksasatya/icook-api/config"
)

type Option func(*EmailData)

// WithTime stamps the event time shown in the body.
func WithTime(t time.Time) Option {
	return func(d *EmailData) { d.Time = t.UTC().Format("02 January 2006, 15:04") }
}

func WithProfileURL(url string) Option { return func(d *EmailData) { d.ProfileURL = url } }

func base(cfg *config.Config, name, email string, opts []Option) EmailData {
	d := EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: email,
		CompanyName:    cfg.CompanyName,
		AppName:        cfg.AppName,
		AppURL:         cfg.AppURL,
		SupportURL:     cfg.SupportURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewWelcomeData(cfg *config.Config, name, email string, opts ...Option) map[string]any {
	return ToMap(base(cfg, name, email, opts))
}

// NewFollowerData addresses the followed user and links to the follower's profile.
func NewFollowerData(cfg *config.Config, name, email, followerName, followerID string, opts ...Option) map[string]any {
	if followerID != "" && cfg.AppURL != "" {
		opts = append([]Option{WithProfileURL(strings.TrimRight(cfg.AppURL, "/") + "/users/" + followerID)}, opts...)
	}
	d := base(cfg, name, email, opts)
	d.FollowerName = followerName
	return ToMap(d)
}
