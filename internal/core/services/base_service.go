package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/shop_ledger_app/internal/apperrors"
	"github.com/SscSPs/shop_ledger_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	clock    func() time.Time
	location *time.Location
}

// ServiceOption is a functional option shared by the services
type ServiceOption func(*BaseService)

// WithClock overrides the time source used for dates and invoice numbers.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.clock = now
	}
}

// WithLocation sets the location used for calendar-day calculations.
func WithLocation(loc *time.Location) ServiceOption {
	return func(s *BaseService) {
		if loc != nil {
			s.location = loc
		}
	}
}

func newBaseService(options ...ServiceOption) BaseService {
	base := BaseService{clock: time.Now, location: time.Local}
	for _, option := range options {
		option(&base)
	}
	return base
}

// Now returns the current time from the configured clock.
func (s *BaseService) Now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock()
}

// Location returns the location calendar days are computed in.
func (s *BaseService) Location() *time.Location {
	if s.location == nil {
		return time.Local
	}
	return s.location
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a non-fatal condition the caller chose to continue past
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

func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}
