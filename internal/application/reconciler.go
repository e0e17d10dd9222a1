package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"

	"github.com/oksasatya/icook-api/internal/domain/entity"
	"github.com/oksasatya/icook-api/internal/domain/repository"
)

// ErrEdgeUnsettled is returned for a half edge on a document written within
// the grace period. A pair update may still be landing its second side.
var ErrEdgeUnsettled = errors.New("follow edge changed recently")

// Reconciler restores the follow invariant (B in A.following iff A in
// B.followers) after a pair update landed on only one side. An edge present
// on just one side is dropped; the user can follow again.
type Reconciler struct {
	users  repository.UserRepository
	grace  time.Duration
	now    func() time.Time
	logger *logrus.Logger
}

// NewReconciler leaves half edges alone until both documents have gone
// unwritten for grace. A zero grace repairs immediately.
func NewReconciler(users repository.UserRepository, grace time.Duration, logger *logrus.Logger) *Reconciler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Reconciler{users: users, grace: grace, now: time.Now, logger: logger}
}

func (r *Reconciler) Grace() time.Duration { return r.grace }

func (r *Reconciler) settling(u *entity.User) bool {
	return u != nil && r.grace > 0 && r.now().Sub(u.UpdatedAt) < r.grace
}

// RepairEdge makes both documents agree on the follower->followee edge.
// It reports whether anything was changed.
func (r *Reconciler) RepairEdge(ctx context.Context, follower, followee string) (bool, error) {
	a, err := r.users.GetByID(ctx, follower)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}
	b, err := r.users.GetByID(ctx, followee)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}
	fwd := a != nil && a.IsFollowing(followee)
	back := b != nil && b.IsFollowedBy(follower)
	if fwd == back {
		return false, nil
	}
	if r.settling(a) || r.settling(b) {
		return false, ErrEdgeUnsettled
	}

	p := pool.New().WithContext(ctx)
	if fwd {
		p.Go(func(ctx context.Context) error {
			return r.users.RemoveRelation(ctx, follower, repository.Following, followee)
		})
	}
	if back {
		p.Go(func(ctx context.Context) error {
			return r.users.RemoveRelation(ctx, followee, repository.Followers, follower)
		})
	}
	if err := p.Wait(); err != nil {
		return false, err
	}
	r.logger.WithFields(logrus.Fields{"follower": follower, "followee": followee}).Info("dropped half follow edge")
	return true, nil
}

// Sweep checks every edge of every user and returns how many were repaired.
func (r *Reconciler) Sweep(ctx context.Context) (int, error) {
	users, err := r.users.List(ctx)
	if err != nil {
		return 0, err
	}
	type edge struct{ follower, followee string }
	seen := map[edge]bool{}
	var edges []edge
	add := func(e edge) {
		if !seen[e] {
			seen[e] = true
			edges = append(edges, e)
		}
	}
	for _, u := range users {
		for _, id := range u.FollowingIDs {
			add(edge{u.ID, id})
		}
		for _, id := range u.FollowerIDs {
			add(edge{id, u.ID})
		}
	}

	repaired, deferred := 0, 0
	for _, e := range edges {
		if err := ctx.Err(); err != nil {
			return repaired, err
		}
		fields := logrus.Fields{"follower": e.follower, "followee": e.followee}
		changed, err := r.RepairEdge(ctx, e.follower, e.followee)
		switch {
		case errors.Is(err, ErrEdgeUnsettled):
			deferred++
			r.logger.WithFields(fields).Debug("half edge still settling, skipped")
		case err != nil:
			r.logger.WithError(err).WithFields(fields).Warn("repair edge failed")
		case changed:
			repaired++
		}
	}
	r.logger.WithFields(logrus.Fields{"users": len(users), "edges": len(edges), "repaired": repaired, "deferred": deferred}).Info("relation sweep finished")
	return repaired, nil
}
