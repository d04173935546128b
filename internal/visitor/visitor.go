// Package visitor issues the opaque per-visitor token that session state is
// keyed by: a uuid subject inside a signed cookie. No user account exists
// behind it; the token only ties a browser to its score and wrong book.
package visitor

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type Service struct {
	hmac []byte
	ttl  time.Duration
}

func NewService(secret string, ttl time.Duration) *Service {
	return &Service{hmac: []byte(secret), ttl: ttl}
}

type claims struct {
	Sub string `json:"sub"`
	jwt.RegisteredClaims
}

// Issue signs a token carrying sid, valid for the service TTL.
func (s *Service) Issue(sid string) (string, error) {
	now := time.Now()
	c := &claims{
		Sub: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "quizdrill",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return t.SignedString(s.hmac)
}

// Parse verifies a token and returns the sid it carries.
func (s *Service) Parse(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.hmac, nil
	})
	if err != nil || !token.Valid {
		return "", err
	}
	c, _ := token.Claims.(*claims)
	return c.Sub, nil
}
