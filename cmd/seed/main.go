package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/icook-api/config"
	"github.com/oksasatya/icook-api/internal/application"
	"github.com/oksasatya/icook-api/internal/container"
	"github.com/oksasatya/icook-api/pkg/apperr"
	"github.com/oksasatya/icook-api/pkg/helpers"
)

var baseCategories = []string{"Breakfast", "Desserts", "Main Dishes", "Salads", "Soups", "Vegetarian"}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	cfg.MailSendEnabled = false // no welcome mail for seeded accounts
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	// Build also ensures the Mongo indexes
	c, err := container.Build(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to build container")
	}
	defer c.Close()

	for _, name := range baseCategories {
		cat, err := c.Categories.Create(ctx, name)
		switch {
		case apperr.Is(err, apperr.KindConflict):
			logger.WithField("name", name).Info("category exists")
		case err != nil:
			logger.WithError(err).WithField("name", name).Fatal("failed to seed category")
		default:
			logger.WithFields(logrus.Fields{"id": cat.ID, "name": cat.Name}).Info("seeded category")
		}
	}

	email := "demo.user@icook.dev"
	password := "password123"
	name := "demoUser"
	u, err := c.Users.Register(ctx, application.RegisterInput{Name: name, Email: email, Password: password})
	switch {
	case apperr.Is(err, apperr.KindConflict):
		logger.WithField("email", email).Info("user exists")
	case err != nil:
		logger.WithError(err).Fatal("failed to seed user")
	default:
		logger.WithFields(logrus.Fields{"id": u.ID, "email": email, "name": name, "password": password}).Info("seeded user")
	}
}
