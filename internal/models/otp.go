package models

import (
	"time"

	"github.com/google/uuid"
)

// OtpWindow is how long an issued code stays valid.
const OtpWindow = 10 * time.Minute

// OtpRecord is one issued OTP challenge. A record is immutable except for the
// Verified flag, which flips false->true at most once. Old records are kept
// around rather than deleted so past attempts stay auditable.
type OtpRecord struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Code      string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
	Verified  bool      `json:"verified"`
}

// NewOtpRecord builds a record for email with the given code, valid for
// OtpWindow from now.
func NewOtpRecord(email, code string, now time.Time) *OtpRecord {
	return &OtpRecord{
		ID:        uuid.New(),
		Email:     email,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(OtpWindow),
	}
}

// IsExpired reports whether the record is past its window at the given time.
func (o *OtpRecord) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
