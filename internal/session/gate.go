// ABOUTME: Local bearer-token expiry check
// ABOUTME: Decodes the token payload and compares its exp claim to the clock

package session

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	errNoExpiry  = errors.New("token has no exp claim")
	errMalformed = errors.New("token must have three segments")
)

// parser never verifies signatures; the backend is the authority on that.
var parser = jwt.NewParser(jwt.WithPaddingAllowed())

// ExpiresAt decodes the payload segment of token and returns its exp claim.
// The header is not inspected.
func ExpiresAt(token string) (time.Time, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return time.Time{}, errMalformed
	}
	payload, err := parser.DecodeSegment(parts[1])
	if err != nil {
		return time.Time{}, err
	}
	claims := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, errNoExpiry
	}
	return exp.Time, nil
}

// Expired reports whether token is unusable at now. Any decode failure counts
// as expired. A token is valid only while now (in seconds) is before exp.
func Expired(token string, now time.Time) bool {
	exp, err := ExpiresAt(token)
	if err != nil {
		return true
	}
	return now.Unix() >= exp.Unix()
}
