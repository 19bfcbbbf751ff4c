// Package firebaseapp initialises the single Firebase Admin app shared by the
// push provider and the Realtime Database directory.
package firebaseapp

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type Config struct {
	ProjectID       string
	DatabaseURL     string
	CredentialsFile string
	CredentialsJSON string
}

type App struct {
	app *firebase.App
}

func New(ctx context.Context, config *Config) (*App, error) {
	opts, err := clientOptions(config)
	if err != nil {
		return nil, err
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:   config.ProjectID,
		DatabaseURL: config.DatabaseURL,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	return &App{app: app}, nil
}

func (a *App) Messaging(ctx context.Context) (*messaging.Client, error) {
	client, err := a.app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}
	return client, nil
}

func (a *App) Database(ctx context.Context) (*db.Client, error) {
	client, err := a.app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}
	return client, nil
}

// clientOptions prefers inline JSON credentials over a file path and falls
// back to application default credentials when neither is set.
func clientOptions(config *Config) ([]option.ClientOption, error) {
	switch {
	case config.CredentialsJSON != "":
		return []option.ClientOption{option.WithCredentialsJSON([]byte(config.CredentialsJSON))}, nil
	case config.CredentialsFile != "":
		return []option.ClientOption{option.WithCredentialsFile(config.CredentialsFile)}, nil
	default:
		return nil, nil
	}
}
