package routes

import (
	"github.com/freshchat-app/freshchat-backend/internal/handlers"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes(r *chi.Mux, auth *handlers.AuthHandler, users *handlers.UserHandler, chat *handlers.ChatHandler) {
	// OTP auth routes
	r.Post("/api/auth/send-otp", auth.SendOtp)
	r.Post("/api/auth/verify-otp", auth.VerifyOtp)

	// User registry routes
	r.Post("/api/users/register", users.Register)
	r.Get("/api/users", users.List)

	// Chat history (MongoDB) + WebSocket gateway (Redis Pub/Sub fan-out)
	r.Get("/api/messages", chat.History)
	r.Get("/ws/chat", chat.ServeWS)
}
