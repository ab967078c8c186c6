package store

import (
	"context"
	"database/sql"

	"github.com/freshchat-app/freshchat-backend/internal/models"
	"github.com/google/uuid"
)

// PostgresStore backs the user registry and the OTP lifecycle with raw SQL
// over database/sql.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, created_at, name, email, avatar, about, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, user.ID, user.CreatedAt, user.Name, user.Email, user.Avatar, user.About, user.Phone)
	return err
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, name, email, avatar, about, phone
		FROM users WHERE email = $1
	`, email)

	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *PostgresStore) ListUsers(ctx context.Context, search string) ([]models.User, error) {
	query := `
		SELECT id, created_at, name, email, avatar, about, phone
		FROM users
	`
	args := []interface{}{}
	if search != "" {
		query += ` WHERE name ILIKE $1 OR email ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	var avatar, about, phone sql.NullString
	if err := row.Scan(&user.ID, &user.CreatedAt, &user.Name, &user.Email, &avatar, &about, &phone); err != nil {
		return nil, err
	}
	user.Avatar = avatar.String
	user.About = about.String
	user.Phone = phone.String
	return &user, nil
}

func (s *PostgresStore) CreateOtp(ctx context.Context, rec *models.OtpRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO otp_records (id, email, code, created_at, expires_at, verified)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, rec.ID, rec.Email, rec.Code, rec.CreatedAt, rec.ExpiresAt, rec.Verified)
	return err
}

func (s *PostgresStore) LatestUnverified(ctx context.Context, email string) (*models.OtpRecord, error) {
	var rec models.OtpRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, email, code, created_at, expires_at, verified
		FROM otp_records
		WHERE email = $1 AND verified = FALSE
		ORDER BY created_at DESC
		LIMIT 1
	`, email).Scan(&rec.ID, &rec.Email, &rec.Code, &rec.CreatedAt, &rec.ExpiresAt, &rec.Verified)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *PostgresStore) MarkVerified(ctx context.Context, id uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE otp_records SET verified = TRUE WHERE id = $1
	`, id)
	return err
}
