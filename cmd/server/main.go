package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/freshchat-app/freshchat-backend/internal/chat"
	"github.com/freshchat-app/freshchat-backend/internal/config"
	"github.com/freshchat-app/freshchat-backend/internal/database"
	"github.com/freshchat-app/freshchat-backend/internal/handlers"
	"github.com/freshchat-app/freshchat-backend/internal/mail"
	"github.com/freshchat-app/freshchat-backend/internal/routes"
	"github.com/freshchat-app/freshchat-backend/internal/services"
	"github.com/freshchat-app/freshchat-backend/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	// Load configuration
	cfg := config.Load()

	// Connect to PostgreSQL (users + OTP records)
	log.Printf("Connecting to PostgreSQL...")
	db, err := database.ConnectPostgres(cfg.PostgresURI)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer db.Close()

	// Connect to Redis (broadcast topic)
	log.Printf("Connecting to Redis...")
	redisClient, err := database.ConnectRedis(cfg.RedisURI)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// Connect to MongoDB (chat history)
	log.Printf("Connecting to MongoDB...")
	mongoClient, mongoDB, err := database.ConnectMongo(cfg.MongoURI)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer database.DisconnectMongo(mongoClient)

	// Stores
	pgStore := store.NewPostgresStore(db)
	messageStore := store.NewMongoMessageStore(mongoDB)
	if err := messageStore.EnsureIndexes(context.Background()); err != nil {
		log.Printf("⚠️  WARNING: failed to ensure MongoDB message indexes: %v", err)
	} else {
		log.Println("✅ MongoDB message indexes ensured")
	}

	// Outbound mail
	mailer := mail.NewSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	if cfg.SMTPHost == "" {
		log.Println("⚠️  WARNING: SMTP_HOST not set. Emails will be logged, not sent.")
	}

	// Broadcast hub + Redis broker
	hub := chat.NewHub()
	broker := chat.NewRedisBroker(redisClient, hub)
	broker.Start(context.Background())

	// Core services
	otpService := services.NewOtpService(pgStore, mailer)
	userService := services.NewUserService(pgStore, mailer)
	relayService := services.NewRelayService(messageStore, broker)

	// Setup router
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Setup routes
	routes.SetupRoutes(r,
		&handlers.AuthHandler{Otp: otpService},
		&handlers.UserHandler{Users: userService},
		&handlers.ChatHandler{Relay: relayService, Hub: hub},
	)

	log.Println("📋 Registered routes:")
	log.Println("  GET  /health")
	log.Println("  POST /api/auth/send-otp")
	log.Println("  POST /api/auth/verify-otp")
	log.Println("  POST /api/users/register")
	log.Println("  GET  /api/users")
	log.Println("  GET  /api/messages")
	log.Println("  GET  /ws/chat")

	log.Printf("🚀 Fresh Chat backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
