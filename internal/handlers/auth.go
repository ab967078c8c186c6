package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/freshchat-app/freshchat-backend/internal/services"
)

// AuthHandler exposes the OTP lifecycle over HTTP.
type AuthHandler struct {
	Otp *services.OtpService
}

type sendOtpRequest struct {
	Email string `json:"email" validate:"required"`
}

type verifyOtpRequest struct {
	Email string `json:"email" validate:"required"`
	Otp   string `json:"otp" validate:"required"`
}

// SendOtp issues a login code and mails it to the requested address.
func (h *AuthHandler) SendOtp(w http.ResponseWriter, r *http.Request) {
	var req sendOtpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Email is required")
		return
	}

	email, err := h.Otp.Request(r.Context(), req.Email)
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Invalid email format")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "Failed to send OTP: "+err.Error())
	default:
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "OTP sent successfully to " + email,
			"email":   email,
		})
	}
}

// VerifyOtp checks a submitted code against the most recent unverified record.
func (h *AuthHandler) VerifyOtp(w http.ResponseWriter, r *http.Request) {
	var req verifyOtpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		verifyError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		verifyError(w, http.StatusBadRequest, "Email and OTP are required")
		return
	}

	err := h.Otp.Verify(r.Context(), req.Email, req.Otp)
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		verifyError(w, http.StatusBadRequest, "Email and OTP are required")
	case errors.Is(err, services.ErrNotFound):
		verifyError(w, http.StatusNotFound, "No OTP found for this email")
	case errors.Is(err, services.ErrExpired):
		verifyError(w, http.StatusBadRequest, "OTP has expired. Please request a new one.")
	case errors.Is(err, services.ErrMismatch):
		verifyError(w, http.StatusBadRequest, "Invalid OTP")
	case err != nil:
		verifyError(w, http.StatusInternalServerError, "Verification failed: "+err.Error())
	default:
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "OTP verified successfully",
			"email":   services.NormalizeEmail(req.Email),
		})
	}
}

func verifyError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   msg,
	})
}
