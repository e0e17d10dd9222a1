package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/icook-api/config"
	"github.com/oksasatya/icook-api/internal/domain/entity"
	"github.com/oksasatya/icook-api/pkg/mailer"
	mailtpl "github.com/oksasatya/icook-api/pkg/mailer/templates"
)

// JobPublisher puts a JSON job on a queue. helpers.RabbitPublisher satisfies it.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// RepairJob names a follow edge whose two sides may disagree.
type RepairJob struct {
	Follower string    `json:"follower"`
	Followee string    `json:"followee"`
	Op       string    `json:"op"`
	Reason   string    `json:"reason,omitempty"`
	At       time.Time `json:"at"`
}

// Notifier publishes email jobs. A nil Notifier or nil publisher drops them.
type Notifier struct {
	pub    JobPublisher
	cfg    *config.Config
	logger *logrus.Logger
}

func NewNotifier(pub JobPublisher, cfg *config.Config, logger *logrus.Logger) *Notifier {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &Notifier{pub: pub, cfg: cfg, logger: logger}
}

func (n *Notifier) Welcome(ctx context.Context, u *entity.User) {
	if n == nil || n.pub == nil || u == nil {
		return
	}
	n.publish(ctx, mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Welcome,
		Data:     mailtpl.NewWelcomeData(n.cfg, u.Name, u.Email, mailtpl.WithTime(time.Now())),
	})
}

func (n *Notifier) NewFollower(ctx context.Context, followee, follower *entity.User) {
	if n == nil || n.pub == nil || followee == nil || follower == nil {
		return
	}
	n.publish(ctx, mailer.EmailJob{
		To:       followee.Email,
		Template: mailtpl.NewFollower,
		Data: mailtpl.NewFollowerData(n.cfg, followee.Name, followee.Email, follower.Name, follower.ID,
			mailtpl.WithTime(time.Now())),
	})
}

func (n *Notifier) publish(ctx context.Context, job mailer.EmailJob) {
	if err := n.pub.PublishJSON(ctx, job); err != nil && n.logger != nil {
		n.logger.WithError(err).WithFields(logrus.Fields{"template": job.Template, "to": job.To}).Warn("publish email job failed")
	}
}
