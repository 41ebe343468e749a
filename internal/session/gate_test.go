// ABOUTME: Tests for the token expiry gate
// ABOUTME: Covers valid, expired, boundary, and malformed tokens

package session

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func rawToken(payload string) string {
	return rawTokenWithHeader(`{"alg":"HS256","typ":"JWT"}`, payload)
}

func rawTokenWithHeader(header, payload string) string {
	enc := base64.RawURLEncoding
	return enc.EncodeToString([]byte(header)) + "." + enc.EncodeToString([]byte(payload)) + ".sig"
}

func TestExpired_ValidUntilExp(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	tests := []struct {
		name    string
		exp     int64
		expired bool
	}{
		{"one hour ahead", now.Unix() + 3600, false},
		{"one second ahead", now.Unix() + 1, false},
		{"exactly now", now.Unix(), true},
		{"one second ago", now.Unix() - 1, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			token := signToken(t, jwt.MapClaims{"exp": tc.exp, "sub": "42"})
			assert.Equal(t, tc.expired, Expired(token, now))
		})
	}
}

func TestExpired_MalformedTokens(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	tests := map[string]string{
		"empty":         "",
		"one segment":   "abc",
		"two segments":  "abc.def",
		"four segments": "a.b.c.d",
		"non-base64":    "eyJhbGciOiJIUzI1NiJ9.%%%.sig",
		"non-json":      rawToken("not json"),
		"missing exp":   rawToken(`{"sub":"42"}`),
		"string exp":    rawToken(`{"exp":"tomorrow"}`),
		"empty payload": "eyJhbGciOiJIUzI1NiJ9..sig",
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			assert.True(t, Expired(token, now), "malformed token must be treated as expired")
		})
	}
}

func TestExpired_UnsignedPayloadStillDecoded(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	token := rawToken(`{"exp":1700003600}`)

	assert.False(t, Expired(token, now))
}

func TestExpired_OnlyPayloadDecoded(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	payload := `{"exp":1700003600}`

	tests := map[string]string{
		"no alg":          rawTokenWithHeader(`{"typ":"JWT"}`, payload),
		"unknown alg":     rawTokenWithHeader(`{"alg":"XYZ","typ":"JWT"}`, payload),
		"alg none":        rawTokenWithHeader(`{"alg":"none"}`, payload),
		"header not json": "bm9wZQ." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".sig",
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			assert.False(t, Expired(token, now))

			exp, err := ExpiresAt(token)
			require.NoError(t, err)
			assert.Equal(t, int64(1_700_003_600), exp.Unix())
		})
	}
}

func TestExpiresAt(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"exp": int64(1_700_000_500)})

	exp, err := ExpiresAt(token)
	require.NoError(t, err)
	assert.Equal(t, int64(1_700_000_500), exp.Unix())

	_, err = ExpiresAt(rawToken(`{}`))
	assert.Error(t, err)
}
