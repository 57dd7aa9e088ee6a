package security

import (
	"errors"
	"time"

	"ambassador_portal/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

var TokenAuth *jwtauth.JWTAuth

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.JWTKey, nil)
}

// GenerateToken issues a session token for a resolved principal. The kind
// claim distinguishes the backing store (ambassador vs admin).
func GenerateToken(userID, role, kind string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"kind":    kind,
		"exp":     time.Now().Add(config.AppConfig.JWTExp).Unix(),
		"iat":     time.Now().Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

func GetUserIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}

func GetUserRoleFromClaims(claims jwt.MapClaims) (string, error) {
	role, ok := claims["role"].(string)
	if !ok {
		return "", errors.New("role claim is missing or not a string")
	}
	return role, nil
}

func GetPrincipalKindFromClaims(claims jwt.MapClaims) (string, error) {
	kind, ok := claims["kind"].(string)
	if !ok {
		return "", errors.New("kind claim is missing or not a string")
	}
	return kind, nil
}
