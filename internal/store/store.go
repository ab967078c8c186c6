package store

import (
	"context"
	"time"

	"github.com/freshchat-app/freshchat-backend/internal/models"
	"github.com/google/uuid"
)

// UserStore persists registered users.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByEmail returns nil, nil when no user has the email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// ListUsers returns all users, optionally filtered by a case-insensitive
	// substring match on name or email.
	ListUsers(ctx context.Context, search string) ([]models.User, error)
}

// OtpStore persists issued OTP challenges.
type OtpStore interface {
	CreateOtp(ctx context.Context, rec *models.OtpRecord) error
	// LatestUnverified returns the most recently created unverified record
	// for the email, or nil, nil when none exists.
	LatestUnverified(ctx context.Context, email string) (*models.OtpRecord, error)
	MarkVerified(ctx context.Context, id uuid.UUID) error
}

// MessageStore persists chat messages.
type MessageStore interface {
	// SaveMessage inserts the message and fills in its identifier.
	SaveMessage(ctx context.Context, msg *models.Message) error
	// ListMessages returns up to limit messages for a chat created before the
	// given time (newest first), plus whether older messages remain.
	ListMessages(ctx context.Context, chatID string, before *time.Time, limit int64) ([]models.Message, bool, error)
}
