package repositories

import (
	"context"

	"github.com/SscSPs/waste_approval_app/internal/core/domain"
)

// UserDirectory resolves display data for users.
type UserDirectory interface {
	FindProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
}

// LineDirectory resolves production lines.
type LineDirectory interface {
	FindLineByID(ctx context.Context, lineID string) (*domain.ProductionLine, error)
}
