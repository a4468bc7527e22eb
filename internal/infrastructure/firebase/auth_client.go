package firebase

import (
	"context"

	"firebase.google.com/go/v4/auth"
)

type FirebaseAuthClient struct {
	client *auth.Client
}

func NewFirebaseAuthClient(client *auth.Client) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client: client,
	}
}

// VerifyToken validates a client-supplied ID token and returns its UID.
func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	result, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", err
	}

	return result.UID, nil
}

// CreateAnonymousUser mints an identity with no credentials attached.
// Used when a client bootstraps without a token.
func (f *FirebaseAuthClient) CreateAnonymousUser(ctx context.Context) (string, error) {
	user, err := f.client.CreateUser(ctx, &auth.UserToCreate{})
	if err != nil {
		return "", err
	}

	return user.UID, nil
}

// TestConnection probes the Auth backend. A user-not-found answer still
// proves the service is reachable.
func (f *FirebaseAuthClient) TestConnection(ctx context.Context) error {
	_, err := f.client.GetUser(ctx, "healthcheck-probe")
	if err != nil && !auth.IsUserNotFound(err) {
		return err
	}
	return nil
}

// GenerateToken returns a custom token the client exchanges for an ID
// token via the Firebase client SDK.
func (f *FirebaseAuthClient) GenerateToken(ctx context.Context, uid string) (string, error) {
	token, err := f.client.CustomToken(ctx, uid)
	if err != nil {
		return "", err
	}

	return token, nil
}
