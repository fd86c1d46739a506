package handler

import (
	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/chathub"
	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/rtc"
	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/storage"
)

// Handler carries the dependencies shared by all HTTP endpoints.
type Handler struct {
	Hub       *chathub.ManagerService
	Storage   storage.Storage
	RTC       *rtc.TokenProvider
	jwtSecret []byte
}

func NewHandler(hub *chathub.ManagerService, s storage.Storage, rtcProvider *rtc.TokenProvider, jwtSecret string) *Handler {
	return &Handler{
		Hub:       hub,
		Storage:   s,
		RTC:       rtcProvider,
		jwtSecret: []byte(jwtSecret),
	}
}
