package rtc_test

import (
	"testing"

	"github.com/Prashanth32124/Chatwithfrndsorloversbackend/internal/rtc"
	"github.com/stretchr/testify/assert"
)

func TestTokenProvider_RoundTrip(t *testing.T) {
	p := rtc.NewTokenProvider("test-secret")

	token, err := p.BuildToken("user_A", "ch1")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	identity, channel, err := p.ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user_A", identity)
	assert.Equal(t, "ch1", channel)
}

func TestTokenProvider_RejectsForeignSignature(t *testing.T) {
	issuer := rtc.NewTokenProvider("one-secret")
	verifier := rtc.NewTokenProvider("another-secret")

	token, err := issuer.BuildToken("user_A", "ch1")
	assert.NoError(t, err)

	_, _, err = verifier.ParseToken(token)
	assert.ErrorIs(t, err, rtc.ErrInvalidToken)
}

func TestTokenProvider_RejectsGarbage(t *testing.T) {
	p := rtc.NewTokenProvider("test-secret")
	_, _, err := p.ParseToken("not-a-jwt")
	assert.ErrorIs(t, err, rtc.ErrInvalidToken)
}
