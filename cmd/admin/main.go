package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/config"
	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "calls":
		calls, err := storageSvc.GetOngoingCalls()
		if err != nil {
			log.Fatalf("Error listing ongoing calls: %v", err)
		}
		if len(calls) == 0 {
			fmt.Println("No ongoing calls.")
			return
		}
		for _, call := range calls {
			fmt.Printf("%s\t%s -> %s\tstarted %s\n",
				call.Channel, call.CallerID, call.ReceiverID,
				call.CreatedAt.Format(time.RFC3339))
		}
	case "close-call":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin close-call <channel>")
			os.Exit(1)
		}
		channel := os.Args[2]
		if err := storageSvc.CloseCall(channel); err != nil {
			log.Fatalf("Error closing call: %v", err)
		}
		fmt.Printf("Call %s has been closed.\n", channel)
	case "block":
		if len(os.Args) < 3 {
			fmt.Println("Usage: admin block <user_id> [duration_in_hours]")
			os.Exit(1)
		}
		userID := os.Args[2]
		var duration int
		if len(os.Args) > 3 {
			var err error
			duration, err = strconv.Atoi(os.Args[3])
			if err != nil {
				fmt.Println("Invalid duration. Please provide an integer.")
				os.Exit(1)
			}
		}
		if err := blockUser(storageSvc, userID, duration); err != nil {
			log.Fatalf("Error blocking user: %v", err)
		}
		fmt.Printf("User %s has been blocked.\n", userID)
	case "unblock":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin unblock <user_id>")
			os.Exit(1)
		}
		userID := os.Args[2]
		if err := unblockUser(storageSvc, userID); err != nil {
			log.Fatalf("Error unblocking user: %v", err)
		}
		fmt.Printf("User %s has been unblocked.\n", userID)
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func blockUser(s storage.Storage, userID string, duration int) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	user.IsBlocked = true
	if duration > 0 {
		user.BlockEndTime = time.Now().Add(time.Duration(duration) * time.Hour).Unix()
	}
	return s.UpdateUser(user)
}

func unblockUser(s storage.Storage, userID string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	user.IsBlocked = false
	user.BlockEndTime = 0
	return s.UpdateUser(user)
}
