package application

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/icook-api/config"
	"github.com/oksasatya/icook-api/internal/domain/entity"
	"github.com/oksasatya/icook-api/internal/domain/repository"
	"github.com/oksasatya/icook-api/pkg/apperr"
	"github.com/oksasatya/icook-api/pkg/mailer"
	mailtpl "github.com/oksasatya/icook-api/pkg/mailer/templates"
)

func newRelationFixture(t *testing.T) (*RelationService, *fakePublisher, *fakePublisher) {
	t.Helper()
	store := newMemoryStore()
	repairs, emails := &fakePublisher{}, &fakePublisher{}
	svc := NewRelationService(store, repairs, NewNotifier(emails, &config.Config{AppName: "iCook"}, quietLogger()), quietLogger())
	return svc, repairs, emails
}

func TestFollow_BothSidesUpdated(t *testing.T) {
	svc, repairs, emails := newRelationFixture(t)
	ctx := context.Background()
	a := mustUser(t, svc.store, "1", "alice")
	b := mustUser(t, svc.store, "2", "bob")

	got, err := svc.Follow(ctx, entity.IdentityOf(a, ""), b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, idsOf(got.Following))
	assert.Empty(t, got.Followers)

	target, err := svc.store.Users.GetByID(ctx, b.ID, userGraph...)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, idsOf(target.Followers))
	assert.True(t, target.IsFollowedBy(a.ID))

	assert.Empty(t, repairs.Jobs())
	jobs := emails.Jobs()
	require.Len(t, jobs, 1)
	job := jobs[0].(mailer.EmailJob)
	assert.Equal(t, mailtpl.NewFollower, job.Template)
	assert.Equal(t, b.Email, job.To)
	assert.Equal(t, "alice", job.Data["FollowerName"])
}

func TestFollow_NestedExpansion(t *testing.T) {
	svc, _, _ := newRelationFixture(t)
	ctx := context.Background()
	a := mustUser(t, svc.store, "1", "alice")
	b := mustUser(t, svc.store, "2", "bob")
	c := mustUser(t, svc.store, "3", "carol")

	_, err := svc.Follow(ctx, entity.IdentityOf(b, ""), c.ID)
	require.NoError(t, err)
	got, err := svc.Follow(ctx, entity.IdentityOf(a, ""), b.ID)
	require.NoError(t, err)

	require.Len(t, got.Following, 1)
	assert.Equal(t, []string{"3"}, idsOf(got.Following[0].Following))
	assert.Equal(t, []string{"1"}, idsOf(got.Following[0].Followers))
}

func TestFollow_Twice(t *testing.T) {
	svc, _, _ := newRelationFixture(t)
	ctx := context.Background()
	a := mustUser(t, svc.store, "1", "alice")
	b := mustUser(t, svc.store, "2", "bob")

	_, err := svc.Follow(ctx, entity.IdentityOf(a, ""), b.ID)
	require.NoError(t, err)
	_, err = svc.Follow(ctx, entity.IdentityOf(a, ""), b.ID)
	assert.True(t, apperr.Is(err, apperr.KindAlreadyRelated))
	assert.Equal(t, "DUPLICATED", apperr.KindOf(err).Code())

	after, err := svc.store.Users.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, after.FollowingIDs)
}

func TestFollow_Rejects(t *testing.T) {
	svc, _, _ := newRelationFixture(t)
	ctx := context.Background()
	a := mustUser(t, svc.store, "1", "alice")

	_, err := svc.Follow(ctx, entity.IdentityOf(a, ""), "missing")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	_, err = svc.Follow(ctx, entity.IdentityOf(a, ""), a.ID)
	assert.True(t, apperr.Is(err, apperr.KindInvalidInput))
}

func TestFollow_ConcurrentSamePairHasNoDuplicates(t *testing.T) {
	svc, _, _ := newRelationFixture(t)
	ctx := context.Background()
	a := mustUser(t, svc.store, "1", "alice")
	b := mustUser(t, svc.store, "2", "bob")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Follow(ctx, entity.IdentityOf(a, ""), b.ID)
		}()
	}
	wg.Wait()

	ua, err := svc.store.Users.GetByID(ctx, a.ID)
	require.NoError(t, err)
	ub, err := svc.store.Users.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, ua.FollowingIDs)
	assert.Equal(t, []string{"1"}, ub.FollowerIDs)
}

func TestUnfollow(t *testing.T) {
	svc, _, _ := newRelationFixture(t)
	ctx := context.Background()
	a := mustUser(t, svc.store, "1", "alice")
	b := mustUser(t, svc.store, "2", "bob")

	// not following yet: no-op
	got, err := svc.Unfollow(ctx, entity.IdentityOf(a, ""), b.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Following)

	_, err = svc.Follow(ctx, entity.IdentityOf(a, ""), b.ID)
	require.NoError(t, err)
	got, err = svc.Unfollow(ctx, entity.IdentityOf(a, ""), b.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Following)

	ub, err := svc.store.Users.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Empty(t, ub.FollowerIDs)
}

func TestUnfollow_MissingTarget(t *testing.T) {
	svc, repairs, _ := newRelationFixture(t)
	a := mustUser(t, svc.store, "1", "alice")

	_, err := svc.Unfollow(context.Background(), entity.IdentityOf(a, ""), "does-not-exist")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, "NOT_FOUND", apperr.KindOf(err).Code())
	assert.Empty(t, repairs.Jobs())
}

func TestUnfollow_PartialFailureQueuesRepair(t *testing.T) {
	svc, repairs, _ := newRelationFixture(t)
	ctx := context.Background()
	a := mustUser(t, svc.store, "1", "alice")
	b := mustUser(t, svc.store, "2", "bob")
	_, err := svc.Follow(ctx, entity.IdentityOf(a, ""), b.ID)
	require.NoError(t, err)

	base := svc.store.Users
	svc.store.Users = flakyUsers{UserRepository: base, failOn: repository.Followers}

	_, err = svc.Unfollow(ctx, entity.IdentityOf(a, ""), b.ID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindStore))
	assert.ErrorIs(t, err, errBoom)

	jobs := repairs.Jobs()
	require.Len(t, jobs, 1)
	job := jobs[0].(RepairJob)
	assert.Equal(t, "unfollow", job.Op)
	assert.Equal(t, "1", job.Follower)
	assert.Equal(t, "2", job.Followee)

	// no rollback: the caller side is gone, the follower entry remains
	ua, _ := base.GetByID(ctx, a.ID)
	ub, _ := base.GetByID(ctx, b.ID)
	assert.False(t, ua.IsFollowing(b.ID))
	assert.True(t, ub.IsFollowedBy(a.ID))

	changed, err := NewReconciler(base, 0, quietLogger()).RepairEdge(ctx, job.Follower, job.Followee)
	require.NoError(t, err)
	assert.True(t, changed)
	ub, _ = base.GetByID(ctx, b.ID)
	assert.False(t, ub.IsFollowedBy(a.ID))
}

func TestFollow_PartialFailureQueuesRepair(t *testing.T) {
	svc, repairs, emails := newRelationFixture(t)
	ctx := context.Background()
	a := mustUser(t, svc.store, "1", "alice")
	b := mustUser(t, svc.store, "2", "bob")
	base := svc.store.Users
	svc.store.Users = flakyUsers{UserRepository: base, failOn: repository.Followers}

	_, err := svc.Follow(ctx, entity.IdentityOf(a, ""), b.ID)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindStore))
	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, emails.Jobs())

	jobs := repairs.Jobs()
	require.Len(t, jobs, 1)
	job := jobs[0].(RepairJob)
	assert.Equal(t, RepairJob{Follower: "1", Followee: "2", Op: "follow", Reason: job.Reason, At: job.At}, job)

	// the half edge exists until the repair runs
	ua, _ := base.GetByID(ctx, a.ID)
	assert.True(t, ua.IsFollowing(b.ID))

	changed, err := NewReconciler(base, 0, quietLogger()).RepairEdge(ctx, job.Follower, job.Followee)
	require.NoError(t, err)
	assert.True(t, changed)
	ua, _ = base.GetByID(ctx, a.ID)
	ub, _ := base.GetByID(ctx, b.ID)
	assert.False(t, ua.IsFollowing(b.ID))
	assert.False(t, ub.IsFollowedBy(a.ID))
}

func TestFollow_BothSidesFailNoRepair(t *testing.T) {
	svc, repairs, _ := newRelationFixture(t)
	a := mustUser(t, svc.store, "1", "alice")
	b := mustUser(t, svc.store, "2", "bob")
	svc.store.Users = bothFail{svc.store.Users}

	_, err := svc.Follow(context.Background(), entity.IdentityOf(a, ""), b.ID)
	assert.True(t, apperr.Is(err, apperr.KindStore))
	assert.Empty(t, repairs.Jobs())
}

type bothFail struct{ repository.UserRepository }

func (bothFail) AddRelation(context.Context, string, repository.UserRelation, string) error {
	return errBoom
}
