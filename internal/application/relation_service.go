package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc/pool"

	"github.com/oksasatya/icook-api/internal/domain/entity"
	"github.com/oksasatya/icook-api/internal/domain/repository"
	"github.com/oksasatya/icook-api/pkg/apperr"
)

// RelationService maintains follow edges and like sets. A follow edge lives
// on two documents; both sides are written concurrently without a
// transaction, and a repair job is queued when only one side lands.
type RelationService struct {
	store    *repository.Store
	repairs  JobPublisher
	notifier *Notifier
	logger   *logrus.Logger
}

func NewRelationService(store *repository.Store, repairs JobPublisher, notifier *Notifier, logger *logrus.Logger) *RelationService {
	return &RelationService{store: store, repairs: repairs, notifier: notifier, logger: logger}
}

func (s *RelationService) Follow(ctx context.Context, id entity.Identity, targetID string) (*entity.User, error) {
	caller, err := s.store.Users.GetByID(ctx, id.UserID)
	if err != nil {
		return nil, storeErr(err, "user not found", "could not load user")
	}
	target, err := s.store.Users.GetByID(ctx, targetID)
	if err != nil {
		return nil, storeErr(err, "user to follow not found", "could not load user")
	}
	if target.ID == caller.ID {
		return nil, apperr.InvalidInput("cannot follow yourself", map[string]string{"idUser": "must differ from the caller"})
	}
	if caller.IsFollowing(target.ID) {
		countOp("follow_duplicate")
		return nil, apperr.AlreadyRelated("already following this user")
	}

	err = s.pair(ctx, "follow", caller.ID, target.ID,
		func(ctx context.Context) error {
			return s.store.Users.AddRelation(ctx, caller.ID, repository.Following, target.ID)
		},
		func(ctx context.Context) error {
			return s.store.Users.AddRelation(ctx, target.ID, repository.Followers, caller.ID)
		},
	)
	if err != nil {
		return nil, apperr.Store("could not follow user", err)
	}
	countOp("follow")
	s.notifier.NewFollower(ctx, target, caller)
	return s.reloadUser(ctx, caller.ID)
}

// Unfollow removes the edge from both sides. The target must exist; not
// following it is a no-op.
func (s *RelationService) Unfollow(ctx context.Context, id entity.Identity, targetID string) (*entity.User, error) {
	target, err := s.store.Users.GetByID(ctx, targetID)
	if err != nil {
		return nil, storeErr(err, "user to unfollow not found", "could not load user")
	}
	err = s.pair(ctx, "unfollow", id.UserID, target.ID,
		func(ctx context.Context) error {
			return s.store.Users.RemoveRelation(ctx, id.UserID, repository.Following, target.ID)
		},
		func(ctx context.Context) error {
			return s.store.Users.RemoveRelation(ctx, target.ID, repository.Followers, id.UserID)
		},
	)
	if err != nil {
		return nil, apperr.Store("could not unfollow user", err)
	}
	countOp("unfollow")
	return s.reloadUser(ctx, id.UserID)
}

func (s *RelationService) LikeRecipe(ctx context.Context, id entity.Identity, recipeID string) (*entity.Recipe, error) {
	r, err := s.store.Recipes.GetByID(ctx, recipeID)
	if err != nil {
		return nil, storeErr(err, "recipe not found", "could not load recipe")
	}
	if r.LikedBy(id.UserID) {
		countOp("like_duplicate")
		return nil, apperr.AlreadyRelated("recipe already liked")
	}
	if err := s.store.Recipes.AddLike(ctx, r.ID, id.UserID); err != nil {
		return nil, storeErr(err, "recipe not found", "could not like recipe")
	}
	countOp("like_recipe")
	return s.reloadRecipe(ctx, r.ID)
}

func (s *RelationService) UnlikeRecipe(ctx context.Context, id entity.Identity, recipeID string) (*entity.Recipe, error) {
	if err := s.store.Recipes.RemoveLike(ctx, recipeID, id.UserID); err != nil {
		return nil, storeErr(err, "recipe not found", "could not unlike recipe")
	}
	countOp("unlike_recipe")
	return s.reloadRecipe(ctx, recipeID)
}

func (s *RelationService) LikeComment(ctx context.Context, id entity.Identity, commentID string) (*entity.Comment, error) {
	c, err := s.store.Comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, storeErr(err, "comment not found", "could not load comment")
	}
	if c.LikedBy(id.UserID) {
		countOp("like_duplicate")
		return nil, apperr.AlreadyRelated("comment already liked")
	}
	if err := s.store.Comments.AddLike(ctx, c.ID, id.UserID); err != nil {
		return nil, storeErr(err, "comment not found", "could not like comment")
	}
	countOp("like_comment")
	return s.reloadComment(ctx, c.ID)
}

func (s *RelationService) UnlikeComment(ctx context.Context, id entity.Identity, commentID string) (*entity.Comment, error) {
	if err := s.store.Comments.RemoveLike(ctx, commentID, id.UserID); err != nil {
		return nil, storeErr(err, "comment not found", "could not unlike comment")
	}
	countOp("unlike_comment")
	return s.reloadComment(ctx, commentID)
}

// pair runs both halves of an edge update and waits for both. When exactly
// one half fails the edge is handed to the repair queue.
func (s *RelationService) pair(ctx context.Context, op, follower, followee string, fwd, back func(context.Context) error) error {
	var fwdErr, backErr error
	p := pool.New().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		fwdErr = fwd(ctx)
		return fwdErr
	})
	p.Go(func(ctx context.Context) error {
		backErr = back(ctx)
		return backErr
	})
	err := p.Wait()
	if (fwdErr == nil) != (backErr == nil) {
		countOp(op + "_partial")
		s.requestRepair(ctx, RepairJob{Follower: follower, Followee: followee, Op: op, Reason: err.Error(), At: time.Now().UTC()})
	}
	return err
}

func (s *RelationService) requestRepair(ctx context.Context, job RepairJob) {
	log := s.logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	entry := log.WithFields(logrus.Fields{"follower": job.Follower, "followee": job.Followee, "op": job.Op})
	if s.repairs == nil {
		entry.Error("relation pair diverged and no repair queue is configured")
		return
	}
	// the request context may already be done; the job must still go out
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if err := s.repairs.PublishJSON(pubCtx, job); err != nil {
		entry.WithError(err).Error("publish relation repair failed")
		return
	}
	countOp("repair_requested")
	entry.Warn("relation pair diverged, repair queued")
}

func (s *RelationService) reloadUser(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.store.Users.GetByID(ctx, id, userGraph...)
	if err != nil {
		return nil, storeErr(err, "user not found", "could not load user")
	}
	return u, nil
}

func (s *RelationService) reloadRecipe(ctx context.Context, id string) (*entity.Recipe, error) {
	r, err := s.store.Recipes.GetByID(ctx, id, recipeGraph...)
	if err != nil {
		return nil, storeErr(err, "recipe not found", "could not load recipe")
	}
	r.SortSteps()
	return r, nil
}

func (s *RelationService) reloadComment(ctx context.Context, id string) (*entity.Comment, error) {
	c, err := s.store.Comments.GetByID(ctx, id, commentGraph...)
	if err != nil {
		return nil, storeErr(err, "comment not found", "could not load comment")
	}
	return c, nil
}
