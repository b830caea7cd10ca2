package repository

import (
	"context"

	"github.com/oureon/trackr/domain"
)

type AuthSessionRepository interface {
	Get(ctx context.Context, id string) (*domain.AuthSession, error)
	Save(ctx context.Context, session *domain.AuthSession) error
	Delete(ctx context.Context, id string) error
	Extend(ctx context.Context, id string, ttlSeconds int) error
}
