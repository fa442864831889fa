package firebase

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
)

// IDTokenVerifier resolves Firebase ID tokens to user uids
type IDTokenVerifier struct {
	client *auth.Client
}

// NewIDTokenVerifier creates a verifier backed by the app's Auth client
func NewIDTokenVerifier(app *firebase.App) (*IDTokenVerifier, error) {
	client, err := GetAuthClient(app)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firebase Auth client: %w", err)
	}
	return &IDTokenVerifier{client: client}, nil
}

// ResolveToken verifies token as a Firebase ID token and returns its uid
func (v *IDTokenVerifier) ResolveToken(ctx context.Context, token string) (string, error) {
	idToken, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", fmt.Errorf("failed to verify ID token: %w", err)
	}
	return idToken.UID, nil
}
