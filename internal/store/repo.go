package store

import (
	"context"
	"errors"

	"github.com/Laetus/mvv-bot/internal/domain"
)

// ErrNotFound is returned when no profile exists for a chat id.
var ErrNotFound = errors.New("profile not found")

// Repo defines storage operations for per-chat user profiles. The store
// enforces at most one profile per chat id.
type Repo interface {
	FindProfile(ctx context.Context, chatID int64) (*domain.Profile, error)
	InsertProfile(ctx context.Context, p *domain.Profile) error
	ReplaceProfile(ctx context.Context, p *domain.Profile) error
	Close() error
}
