package main

import (
	"context"
	"fmt"

	"alertcast/internal/config"
	firebaserepo "alertcast/internal/repositories/firebase"
	"alertcast/internal/repositories/interfaces"
	mongorepo "alertcast/internal/repositories/mongodb"
	"alertcast/internal/services"
	"alertcast/internal/utils"
	"alertcast/pkg/cache"
	"alertcast/pkg/database"
	"alertcast/pkg/firebaseapp"
	"alertcast/pkg/logger"
	"alertcast/pkg/push"
	"alertcast/pkg/sms"
)

// dependencies holds the external clients selected by configuration.
type dependencies struct {
	reports interfaces.ReportRepository
	users   interfaces.UserRepository
	push    push.PushProvider
	sms     sms.SMSProvider
	claimer services.PublishClaimer

	closers []func() error
	logger  *logger.Logger
}

func newDependencies(ctx context.Context, cfg *config.Config, log *logger.Logger) (*dependencies, error) {
	deps := &dependencies{logger: log}

	var app *firebaseapp.App
	if cfg.Directory.Backend == config.DirectoryBackendFirebase || cfg.Push.Provider == config.PushProviderFCM {
		var err error
		app, err = firebaseapp.New(ctx, &firebaseapp.Config{
			ProjectID:       cfg.Firebase.ProjectID,
			DatabaseURL:     cfg.Firebase.DatabaseURL,
			CredentialsFile: cfg.Firebase.CredentialsFile,
			CredentialsJSON: cfg.Firebase.CredentialsJSON,
		})
		if err != nil {
			return nil, err
		}
	}

	steps := []func(context.Context, *config.Config, *firebaseapp.App) error{
		deps.initDirectory,
		deps.initPush,
		deps.initSMS,
		deps.initClaimer,
	}
	for _, step := range steps {
		if err := step(ctx, cfg, app); err != nil {
			deps.Close()
			return nil, err
		}
	}

	return deps, nil
}

func (d *dependencies) initDirectory(ctx context.Context, cfg *config.Config, app *firebaseapp.App) error {
	switch cfg.Directory.Backend {
	case config.DirectoryBackendMongo:
		mongoDB, err := database.NewMongoDB(&database.DatabaseConfig{
			URI:            cfg.Database.URI,
			Database:       cfg.Database.Database,
			MaxPoolSize:    cfg.Database.MaxPoolSize,
			MinPoolSize:    cfg.Database.MinPoolSize,
			ConnectTimeout: cfg.Database.ConnectTimeout,
			SocketTimeout:  cfg.Database.SocketTimeout,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		d.closers = append(d.closers, mongoDB.Close)

		if err := database.NewMigrator(mongoDB.Database, d.logger.Infof).Up(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		d.reports = mongorepo.NewReportRepository(mongoDB.Database)
		d.users = mongorepo.NewUserRepository(mongoDB.Database)

	default:
		client, err := app.Database(ctx)
		if err != nil {
			return err
		}
		d.reports = firebaserepo.NewReportRepository(client)
		d.users = firebaserepo.NewUserRepository(client)
	}
	return nil
}

func (d *dependencies) initPush(ctx context.Context, cfg *config.Config, app *firebaseapp.App) error {
	switch cfg.Push.Provider {
	case config.PushProviderAPNS:
		apns := cfg.Push.APNS
		provider, err := push.NewAPNSProvider(apns.KeyFile, apns.KeyID, apns.TeamID, apns.BundleID, apns.Production)
		if err != nil {
			return err
		}
		d.push = provider

	default:
		client, err := app.Messaging(ctx)
		if err != nil {
			return err
		}
		d.push = push.NewFCMProvider(client)
	}
	return nil
}

func (d *dependencies) initSMS(ctx context.Context, cfg *config.Config, _ *firebaseapp.App) error {
	switch cfg.SMS.Provider {
	case config.SMSProviderTwilio:
		twilio := cfg.SMS.Twilio
		if twilio.AccountSID == "" || twilio.AuthToken == "" {
			d.logger.Warn("Twilio credentials missing, SMS alerts disabled")
			return nil
		}
		d.sms = sms.NewTwilioProvider(twilio.AccountSID, twilio.AuthToken, twilio.FromNumber)

	case config.SMSProviderSNS:
		senderID := utils.CoalesceString(cfg.SMS.AWS.SenderID, cfg.SMS.DefaultFrom)
		provider, err := sms.NewAWSSNSProvider(ctx, cfg.SMS.AWS.Region, senderID)
		if err != nil {
			return err
		}
		d.sms = provider

	default:
		d.logger.Info("SMS provider disabled")
	}
	return nil
}

// initClaimer connects Redis when enabled. An unreachable Redis is not
// fatal; publication falls back to the stored flag alone.
func (d *dependencies) initClaimer(_ context.Context, cfg *config.Config, _ *firebaseapp.App) error {
	if !cfg.Redis.Enabled {
		return nil
	}

	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		d.logger.WithError(err).Warn("Redis unavailable, publish claims disabled")
		return nil
	}

	d.claimer = redisCache
	d.closers = append(d.closers, redisCache.Close)
	return nil
}

func (d *dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			d.logger.WithError(err).Warn("Failed to close dependency")
		}
	}
	d.closers = nil
}
