package config

import "time"

const (
	// Auth
	AuthTokenTTL = 72 * time.Hour
	TokenIssuer  = "chatcall-service"

	// Media transport credentials
	RTCTokenTTL    = 24 * time.Hour
	RTCTokenIssuer = "chatcall-rtc"

	// Call rooms: once membership drops to this count or below, the call is
	// unusable for a two-party call and the session is terminated.
	CallAbandonThreshold = 1

	// Per-client outbound event buffer.
	ClientSendBuffer = 256
)
