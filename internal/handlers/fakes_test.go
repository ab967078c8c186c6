package handlers

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/freshchat-app/freshchat-backend/internal/chat"
	"github.com/freshchat-app/freshchat-backend/internal/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory fakes standing in for Postgres, Mongo, Redis, and SMTP.

type fakeOtpStore struct {
	mu   sync.Mutex
	recs []*models.OtpRecord
}

func (f *fakeOtpStore) CreateOtp(ctx context.Context, rec *models.OtpRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recs = append(f.recs, rec)
	return nil
}

func (f *fakeOtpStore) LatestUnverified(ctx context.Context, email string) (*models.OtpRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *models.OtpRecord
	for _, r := range f.recs {
		if r.Email != email || r.Verified {
			continue
		}
		if latest == nil || r.CreatedAt.After(latest.CreatedAt) {
			latest = r
		}
	}
	return latest, nil
}

func (f *fakeOtpStore) MarkVerified(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.recs {
		if r.ID == id {
			r.Verified = true
		}
	}
	return nil
}

func (f *fakeOtpStore) lastCode() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.recs) == 0 {
		return ""
	}
	return f.recs[len(f.recs)-1].Code
}

type fakeUserStore struct {
	mu    sync.Mutex
	users []models.User
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.users {
		if f.users[i].Email == email {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) ListUsers(ctx context.Context, search string) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if search == "" {
		return append([]models.User{}, f.users...), nil
	}
	var out []models.User
	needle := strings.ToLower(search)
	for _, u := range f.users {
		if strings.Contains(strings.ToLower(u.Name), needle) || strings.Contains(u.Email, needle) {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeMessageStore struct {
	mu   sync.Mutex
	msgs []models.Message
}

func (f *fakeMessageStore) SaveMessage(ctx context.Context, msg *models.Message) error {
	msg.ID = primitive.NewObjectID()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, *msg)
	return nil
}

func (f *fakeMessageStore) ListMessages(ctx context.Context, chatID string, before *time.Time, limit int64) ([]models.Message, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Message
	for _, m := range f.msgs {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	return out, false, nil
}

type fakeBroker struct {
	mu     sync.Mutex
	events []chat.Event
}

func (f *fakeBroker) Publish(ctx context.Context, event chat.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

type fakeMailer struct {
	mu     sync.Mutex
	sent   []string
	otpErr error
}

func (f *fakeMailer) SendOtpEmail(to, code string) error {
	if f.otpErr != nil {
		return f.otpErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	return nil
}

func (f *fakeMailer) SendWelcomeEmail(to, name string) error { return nil }
