package identity

import (
	"time"

	"github.com/awrteam/awr/internal/apperrors"
	jwt "github.com/golang-jwt/jwt/v5"
)

// Claims is the bearer credential consumed by every other component.
type Claims struct {
	UserID int64  `json:"id"`
	Role   Role   `json:"role"`
	TeamID *int64 `json:"team_id"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

func (s *TokenService) Issue(u *User) (string, error) {
	claims := &Claims{
		UserID: u.ID,
		Role:   u.Role,
		TeamID: u.TeamID,
		Name:   u.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.secret)
}

func (s *TokenService) Parse(tokenString string) (*Claims, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrUnauthorized
		}
		return s.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, apperrors.ErrUnauthorized
	}
	return &claims, nil
}
