package usecase

import "context"

type FirebaseAuthClient interface {
	VerifyToken(ctx context.Context, token string) (string, error)
	CreateAnonymousUser(ctx context.Context) (string, error)
	GenerateToken(ctx context.Context, uid string) (string, error)
}
