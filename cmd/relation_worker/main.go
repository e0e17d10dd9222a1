package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/icook-api/config"
	"github.com/oksasatya/icook-api/internal/application"
	"github.com/oksasatya/icook-api/internal/container"
	"github.com/oksasatya/icook-api/pkg/helpers"
)

// relation_worker consumes repair jobs published when one side of a
// follow/unfollow pair failed, and drops the half edge that remains.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-relation-worker", cfg.Env, cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQRepairQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := container.Build(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to build container: %v", err)
	}
	defer c.Close()

	w := &worker{repairer: c.Reconciler, settle: c.Reconciler.Grace(), logger: logger}
	if cfg.SweepOnStart {
		w.sweep(ctx)
	}

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQRepairQueue, 8)
	if err != nil {
		log.Fatalf("amqp: %v", err)
	}
	defer consumer.Close()

	msgs, err := consumer.Deliveries()
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			switch w.handle(ctx, msg.Body) {
			case ack:
				_ = msg.Ack(false)
			case retry:
				_ = msg.Nack(false, true)
			default:
				_ = msg.Nack(false, false)
			}
		}
	}()

	logger.WithField("queue", cfg.RabbitMQRepairQueue).Info("relation worker listening")
	<-ctx.Done()
	logger.Info("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

type outcome int

const (
	ack outcome = iota
	retry
	drop
)

// repairer is satisfied by *application.Reconciler.
type repairer interface {
	RepairEdge(ctx context.Context, follower, followee string) (bool, error)
	Sweep(ctx context.Context) (int, error)
}

// worker holds a job whose edge is still settling for settle before requeueing it.
type worker struct {
	repairer repairer
	settle   time.Duration
	logger   *logrus.Logger
}

var errIncompleteJob = errors.New("follower and followee are required")

func (w *worker) handle(ctx context.Context, body []byte) outcome {
	var job application.RepairJob
	if err := json.Unmarshal(body, &job); err != nil {
		w.logger.WithError(err).WithField("body", string(body)).Error("bad repair job")
		return drop
	}
	if job.Follower == "" || job.Followee == "" {
		w.logger.WithError(errIncompleteJob).WithField("body", string(body)).Error("bad repair job")
		return drop
	}
	entry := w.logger.WithFields(logrus.Fields{"follower": job.Follower, "followee": job.Followee, "op": job.Op})

	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	changed, err := w.repairer.RepairEdge(c, job.Follower, job.Followee)
	if errors.Is(err, application.ErrEdgeUnsettled) {
		entry.Debug("edge still settling, requeueing")
		w.wait(ctx)
		return retry
	}
	if err != nil {
		entry.WithError(err).Warn("repair failed, requeueing")
		return retry
	}
	entry.WithField("changed", changed).Info("repair applied")
	return ack
}

func (w *worker) wait(ctx context.Context) {
	if w.settle <= 0 {
		return
	}
	t := time.NewTimer(w.settle)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func (w *worker) sweep(ctx context.Context) {
	started := time.Now()
	n, err := w.repairer.Sweep(ctx)
	entry := w.logger.WithField("repaired", n)
	if err != nil {
		entry.WithError(err).Error("sweep failed")
		return
	}
	entry.WithField("took", time.Since(started).String()).Info("sweep finished")
}
