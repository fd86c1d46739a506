// Package rtc issues credentials for the third-party media transport. The
// coordinator only signs a token binding an identity to a channel; the media
// exchange itself happens entirely outside this process.
package rtc

import (
	"errors"
	"time"

	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/config"
	jwt "github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid rtc token")

// TokenProvider signs channel credentials with an HS256 key.
type TokenProvider struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenProvider(secret string) *TokenProvider {
	return &TokenProvider{secret: []byte(secret), ttl: config.RTCTokenTTL}
}

// BuildToken returns a signed credential allowing identity to join channel on
// the media transport.
func (p *TokenProvider) BuildToken(identity, channel string) (string, error) {
	claims := jwt.MapClaims{
		"identity": identity,
		"channel":  channel,
		"exp":      time.Now().Add(p.ttl).Unix(),
		"iss":      config.RTCTokenIssuer,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}

// ParseToken validates a credential and returns the identity and channel it
// was issued for.
func (p *TokenProvider) ParseToken(tokenString string) (identity, channel string, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return "", "", ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", ErrInvalidToken
	}
	identity, _ = claims["identity"].(string)
	channel, _ = claims["channel"].(string)
	if identity == "" || channel == "" {
		return "", "", ErrInvalidToken
	}
	return identity, channel, nil
}
