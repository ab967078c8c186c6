package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/freshchat-app/freshchat-backend/internal/models"
	"github.com/freshchat-app/freshchat-backend/internal/store"
)

// Mailer sends transactional email. Satisfied by mail.Sender; tests inject a
// fake.
type Mailer interface {
	SendOtpEmail(to, code string) error
	SendWelcomeEmail(to, name string) error
}

// Accepts one or more local-part characters, a single @, and any non-empty
// remainder.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)

// NormalizeEmail canonicalizes an address. Email comparison is
// case-insensitive throughout, so the datastore only ever sees this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GenerateCode draws a zero-padded 6-digit code uniformly from a CSPRNG.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// OtpService owns the OTP lifecycle: issue, store, expire, verify, single-use.
type OtpService struct {
	otps   store.OtpStore
	mailer Mailer

	// Now is the clock used for issuing and lazy expiry checks.
	Now func() time.Time
}

func NewOtpService(otps store.OtpStore, mailer Mailer) *OtpService {
	return &OtpService{otps: otps, mailer: mailer, Now: time.Now}
}

// Request issues a fresh OTP for email, persists it, and mails the code.
// The email send is in the critical path: no code counts as delivered unless
// it succeeds, though the record stays persisted either way. Returns the
// normalized email.
func (s *OtpService) Request(ctx context.Context, email string) (string, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if !emailPattern.MatchString(email) {
		return "", fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}

	code, err := GenerateCode()
	if err != nil {
		return "", fmt.Errorf("%w: generate code: %v", ErrDependency, err)
	}

	rec := models.NewOtpRecord(email, code, s.Now())
	if err := s.otps.CreateOtp(ctx, rec); err != nil {
		return "", fmt.Errorf("%w: save otp: %v", ErrDependency, err)
	}

	if err := s.mailer.SendOtpEmail(email, code); err != nil {
		return "", fmt.Errorf("%w: send otp email: %v", ErrDependency, err)
	}

	return email, nil
}

// Verify checks the submitted code against the most recently issued
// unverified record for email. On an exact match before expiry the record is
// marked verified and never matched again; later calls fall through to the
// next-most-recent unverified record, or fail with ErrNotFound.
func (s *OtpService) Verify(ctx context.Context, email, code string) error {
	email = NormalizeEmail(email)
	if email == "" || code == "" {
		return fmt.Errorf("%w: email and otp are required", ErrInvalidInput)
	}

	rec, err := s.otps.LatestUnverified(ctx, email)
	if err != nil {
		return fmt.Errorf("%w: load otp: %v", ErrDependency, err)
	}
	if rec == nil {
		return fmt.Errorf("%w: no otp for this email", ErrNotFound)
	}

	if rec.IsExpired(s.Now()) {
		return fmt.Errorf("%w: otp past its window", ErrExpired)
	}

	// Exact string equality, no normalization of the code.
	if rec.Code != code {
		return ErrMismatch
	}

	if err := s.otps.MarkVerified(ctx, rec.ID); err != nil {
		return fmt.Errorf("%w: mark verified: %v", ErrDependency, err)
	}
	return nil
}
