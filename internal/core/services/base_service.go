package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/waste_approval_app/internal/apperrors"
	"github.com/SscSPs/waste_approval_app/internal/core/domain"
	"github.com/SscSPs/waste_approval_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// RequireAdmin fails with ErrForbidden unless the actor is an admin.
func (s *BaseService) RequireAdmin(ctx context.Context, actor domain.Actor, action string) error {
	if actor.IsAdmin() {
		return nil
	}
	s.LogWarn(ctx, "Admin role required",
		slog.String("action", action),
		slog.String("user_id", actor.UserID),
		slog.String("role", string(actor.Role)))
	return apperrors.NewForbiddenError("only admins may " + action)
}
