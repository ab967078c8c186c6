package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/freshchat-app/freshchat-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture() (*AuthHandler, *fakeOtpStore, *fakeMailer, *time.Time) {
	otps := &fakeOtpStore{}
	mailer := &fakeMailer{}
	svc := services.NewOtpService(otps, mailer)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }
	return &AuthHandler{Otp: svc}, otps, mailer, &now
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
	return out
}

func TestSendOtp(t *testing.T) {
	h, otps, mailer, _ := newAuthFixture()

	rr := postJSON(t, h.SendOtp, "/api/auth/send-otp", map[string]string{"email": "User@Example.com"})
	require.Equal(t, http.StatusOK, rr.Code)

	body := decodeBody(t, rr)
	assert.Equal(t, "user@example.com", body["email"])
	assert.Equal(t, "OTP sent successfully to user@example.com", body["message"])

	assert.Len(t, otps.recs, 1)
	assert.Equal(t, []string{"user@example.com"}, mailer.sent)
}

func TestSendOtp_MissingEmail(t *testing.T) {
	h, otps, _, _ := newAuthFixture()

	rr := postJSON(t, h.SendOtp, "/api/auth/send-otp", map[string]string{})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Email is required", decodeBody(t, rr)["error"])
	assert.Empty(t, otps.recs)
}

func TestSendOtp_MalformedEmail(t *testing.T) {
	h, otps, _, _ := newAuthFixture()

	rr := postJSON(t, h.SendOtp, "/api/auth/send-otp", map[string]string{"email": "not-an-email"})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid email format", decodeBody(t, rr)["error"])
	assert.Empty(t, otps.recs)
}

func TestSendOtp_MailerFailure(t *testing.T) {
	h, _, mailer, _ := newAuthFixture()
	mailer.otpErr = errors.New("smtp down")

	rr := postJSON(t, h.SendOtp, "/api/auth/send-otp", map[string]string{"email": "user@example.com"})
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, decodeBody(t, rr)["error"], "Failed to send OTP")
}

func TestVerifyOtp(t *testing.T) {
	h, otps, _, _ := newAuthFixture()
	req := require.New(t)

	rr := postJSON(t, h.SendOtp, "/api/auth/send-otp", map[string]string{"email": "user@example.com"})
	req.Equal(http.StatusOK, rr.Code)

	rr = postJSON(t, h.VerifyOtp, "/api/auth/verify-otp", map[string]string{
		"email": "user@example.com",
		"otp":   otps.lastCode(),
	})
	req.Equal(http.StatusOK, rr.Code)

	body := decodeBody(t, rr)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "OTP verified successfully", body["message"])
	assert.Equal(t, "user@example.com", body["email"])

	// The record is consumed; the same code now yields 404.
	rr = postJSON(t, h.VerifyOtp, "/api/auth/verify-otp", map[string]string{
		"email": "user@example.com",
		"otp":   otps.lastCode(),
	})
	req.Equal(http.StatusNotFound, rr.Code)
	assert.Equal(t, false, decodeBody(t, rr)["success"])
}

func TestVerifyOtp_MissingFields(t *testing.T) {
	h, _, _, _ := newAuthFixture()

	rr := postJSON(t, h.VerifyOtp, "/api/auth/verify-otp", map[string]string{"email": "user@example.com"})
	require.Equal(t, http.StatusBadRequest, rr.Code)

	body := decodeBody(t, rr)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Email and OTP are required", body["error"])
}

func TestVerifyOtp_NoRecord(t *testing.T) {
	h, _, _, _ := newAuthFixture()

	rr := postJSON(t, h.VerifyOtp, "/api/auth/verify-otp", map[string]string{
		"email": "user@example.com",
		"otp":   "123456",
	})
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "No OTP found for this email", decodeBody(t, rr)["error"])
}

func TestVerifyOtp_Expired(t *testing.T) {
	h, otps, _, now := newAuthFixture()

	rr := postJSON(t, h.SendOtp, "/api/auth/send-otp", map[string]string{"email": "user@example.com"})
	require.Equal(t, http.StatusOK, rr.Code)

	*now = now.Add(11 * time.Minute)

	rr = postJSON(t, h.VerifyOtp, "/api/auth/verify-otp", map[string]string{
		"email": "user@example.com",
		"otp":   otps.lastCode(),
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "OTP has expired. Please request a new one.", decodeBody(t, rr)["error"])
}

func TestVerifyOtp_WrongCode(t *testing.T) {
	h, otps, _, _ := newAuthFixture()

	rr := postJSON(t, h.SendOtp, "/api/auth/send-otp", map[string]string{"email": "user@example.com"})
	require.Equal(t, http.StatusOK, rr.Code)

	wrong := "000000"
	if otps.lastCode() == wrong {
		wrong = "000001"
	}

	rr = postJSON(t, h.VerifyOtp, "/api/auth/verify-otp", map[string]string{
		"email": "user@example.com",
		"otp":   wrong,
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Invalid OTP", decodeBody(t, rr)["error"])
}
