package container

import (
	"context"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/icook-api/config"
	"github.com/oksasatya/icook-api/internal/application"
	"github.com/oksasatya/icook-api/internal/domain/repository"
	"github.com/oksasatya/icook-api/internal/infrastructure/memory"
	"github.com/oksasatya/icook-api/internal/infrastructure/mongodb"
	"github.com/oksasatya/icook-api/internal/infrastructure/search"
	"github.com/oksasatya/icook-api/internal/infrastructure/session"
	"github.com/oksasatya/icook-api/pkg/helpers"
)

// Container holds the constructed infrastructure and services shared by the
// router modules and the workers. Optional backends are nil when not configured.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Mongo *mongo.Client
	Store *repository.Store

	Redis    *redis.Client
	Sessions *session.Store
	JWT      *helpers.JWTManager
	ES       *elasticsearch.Client
	Index    *search.RecipeIndex

	EmailPub  *helpers.RabbitPublisher
	RepairPub *helpers.RabbitPublisher

	Users      *application.UserService
	Relations  *application.RelationService
	Recipes    *application.RecipeService
	Comments   *application.CommentService
	Categories *application.CategoryService
	Verifier   *application.TokenVerifier
	Reconciler *application.Reconciler

	closers []func()
}

// Build connects every configured backend and wires the services on top.
// Mongo is required unless STORE_DRIVER=memory; Redis, RabbitMQ and
// Elasticsearch degrade to disabled with a warning.
func Build(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	if err := c.openStore(ctx); err != nil {
		c.Close()
		return nil, err
	}

	if rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); rdb != nil {
		if err := helpers.PingRedis(ctx, rdb, cfg.MongoTimeout); err != nil {
			logger.WithError(err).Warn("redis unavailable; sessions and rate limiting disabled")
			_ = rdb.Close()
		} else {
			c.Redis = rdb
			c.Sessions = session.NewStore(rdb, cfg.SessionTTL, logger)
			c.closers = append(c.closers, func() { _ = rdb.Close() })
		}
	}

	c.openSearch(ctx)

	c.EmailPub = c.publisher(cfg.RabbitMQEmailQueue)
	c.RepairPub = c.publisher(cfg.RabbitMQRepairQueue)

	c.wire()
	return c, nil
}

func (c *Container) openStore(ctx context.Context) error {
	if c.Config.IsMemoryStore() {
		c.Logger.Warn("using in-memory store; data is lost on restart")
		c.Store = memory.NewStore()
		return nil
	}
	client, err := mongodb.NewClient(ctx, c.Config.MongoURI, uint64(c.Config.MongoMaxPool), c.Config.MongoTimeout)
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	c.Mongo = client
	c.closers = append(c.closers, func() { _ = client.Disconnect(context.Background()) })

	db := client.Database(c.Config.MongoDB)
	if err := mongodb.EnsureIndexes(ctx, db, c.Logger); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}
	c.Store = mongodb.NewStore(db)
	return nil
}

func (c *Container) openSearch(ctx context.Context) {
	es, err := helpers.NewESClient(c.Config.ESAddrs(), c.Config.ElasticsearchUser, c.Config.ElasticsearchPass)
	if err != nil {
		c.Logger.WithError(err).Warn("elasticsearch client init failed; search disabled")
		return
	}
	if es == nil {
		return
	}
	if err := helpers.PingES(ctx, es, 5*time.Second); err != nil {
		c.Logger.WithError(err).Warn("elasticsearch unavailable; search disabled")
		return
	}
	index := search.NewRecipeIndex(es, c.Config.ESRecipesIndex)
	if err := index.EnsureIndex(ctx); err != nil {
		c.Logger.WithError(err).Warn("recipe index not created; search disabled")
		return
	}
	c.ES, c.Index = es, index
}

func (c *Container) publisher(queue string) *helpers.RabbitPublisher {
	if c.Config.RabbitMQURL == "" || queue == "" {
		return nil
	}
	p, err := helpers.NewRabbitPublisher(c.Config.RabbitMQURL, queue)
	if err != nil {
		c.Logger.WithError(err).WithField("queue", queue).Warn("rabbitmq unavailable; jobs for this queue are dropped")
		return nil
	}
	c.closers = append(c.closers, p.Close)
	return p
}

func (c *Container) wire() {
	cfg, logger := c.Config, c.Logger
	c.JWT = helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.AccessTTL)

	// interface values stay nil when the backend is off
	var (
		sessions application.SessionStore
		checker  application.SessionChecker
		emails   application.JobPublisher
		repairs  application.JobPublisher
		index    application.RecipeIndexer
	)
	if c.Sessions != nil {
		sessions, checker = c.Sessions, c.Sessions
	}
	if c.EmailPub != nil && cfg.MailSendEnabled {
		emails = c.EmailPub
	}
	if c.RepairPub != nil {
		repairs = c.RepairPub
	}
	if c.Index != nil {
		index = c.Index
	}

	notifier := application.NewNotifier(emails, cfg, logger)
	c.Users = application.NewUserService(c.Store, c.JWT, sessions, notifier, logger)
	c.Relations = application.NewRelationService(c.Store, repairs, notifier, logger)
	c.Recipes = application.NewRecipeService(c.Store, index, logger)
	c.Comments = application.NewCommentService(c.Store)
	c.Categories = application.NewCategoryService(c.Store)
	c.Verifier = application.NewTokenVerifier(c.JWT, c.Store.Users, checker)
	c.Reconciler = application.NewReconciler(c.Store.Users, cfg.RepairGrace, logger)
}

// Close releases connections in reverse order of opening.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
