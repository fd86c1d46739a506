package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/api/handler"
	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/chathub"
	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/config"
	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/models"
	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/notify"
	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/rtc"
	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Friendship{},
		&models.ChatMessage{},
		&models.CallRecord{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting chat-and-call backend...")

	cfg := config.Load()

	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	var notifier notify.Notifier = notify.NopNotifier{}
	if cfg.TelegramBotToken != "" {
		tn, err := notify.NewTelegramNotifier(cfg.TelegramBotToken, s)
		if err != nil {
			log.Printf("Warning: Telegram notifier disabled: %v", err)
		} else {
			notifier = tn
		}
	}

	hub := chathub.NewManagerService(s, notifier)
	go hub.Run()

	rtcProvider := rtc.NewTokenProvider(cfg.JWTSecret)

	r := gin.Default()
	h := handler.NewHandler(hub, s, rtcProvider, cfg.JWTSecret)

	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)

	authed := r.Group("/", h.AuthRequired)
	authed.POST("/friends", h.AddFriend)
	authed.GET("/friends", h.ListFriends)
	authed.GET("/history/messages", h.MessageHistory)
	authed.GET("/history/calls", h.CallHistory)
	authed.GET("/rtc/token", h.RTCToken)

	r.GET("/ws", h.ServeWebSocket)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
