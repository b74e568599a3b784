package utils

import (
	"errors"
	"time"

	"equiptrack/config"

	"github.com/golang-jwt/jwt"
)

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "equiptrack-dev"
	}
	return []byte(secret)
}

// GenerateToken creates a signed JWT with the given subject, organization and
// role claims. Used by tests and tooling; production tokens come from the
// external identity provider.
func GenerateToken(subject, orgID, role string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"org":  orgID,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ClaimsFromToken extracts the subject, organization and role claims.
func ClaimsFromToken(token *jwt.Token) (subject, orgID, role string, err error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", "", errors.New("unexpected claims type")
	}
	subject, _ = claims["sub"].(string)
	orgID, _ = claims["org"].(string)
	role, _ = claims["role"].(string)
	if subject == "" || role == "" {
		return "", "", "", errors.New("missing subject or role claim")
	}
	return subject, orgID, role, nil
}
