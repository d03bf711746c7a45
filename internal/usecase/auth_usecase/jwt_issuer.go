package auth

import (
	"time"

	"storefront/internal/domain/model"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// HS256JWTIssuer はHS256でAccessTokenを発行する。
type HS256JWTIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewHS256JWTIssuer(secret string, ttl time.Duration) *HS256JWTIssuer {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &HS256JWTIssuer{secret: []byte(secret), ttl: ttl}
}

func (i *HS256JWTIssuer) Issue(userID string, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.ttl)

	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// UUIDGenerator はIDGeneratorのUUID実装。
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SystemClock は実時間を返すClock実装。
type SystemClock struct{}

func NewSystemClock() *SystemClock {
	return &SystemClock{}
}

func (c *SystemClock) Now() time.Time {
	return time.Now()
}
