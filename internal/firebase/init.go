package firebase

import (
	"context"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// InitFirebase initializes and returns a Firebase app instance
func InitFirebase() (*firebase.App, error) {
	ctx := context.Background()

	// Get Firebase configuration from environment
	serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
	config := &firebase.Config{
		ProjectID: os.Getenv("FIREBASE_PROJECT_ID"),
	}

	var opts []option.ClientOption
	if serviceAccountPath != "" {
		// Without a service account file the default credentials are used (Google Cloud deployment)
		opts = append(opts, option.WithCredentialsFile(serviceAccountPath))
	}

	app, err := firebase.NewApp(ctx, config, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	if _, err := app.Auth(ctx); err != nil {
		return nil, fmt.Errorf("failed to get Firebase Auth client: %w", err)
	}

	return app, nil
}

// GetAuthClient returns a Firebase Auth client from the app
func GetAuthClient(app *firebase.App) (*auth.Client, error) {
	ctx := context.Background()
	return app.Auth(ctx)
}
