package middleware

import (
	"time"

	"extra-credit-union/config"
	"extra-credit-union/models"

	"github.com/golang-jwt/jwt/v5"
)

// Типы выдаваемых токенов.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// GenerateToken выписывает подписанный токен заданного типа для пользователя.
// В claims кладётся всё, что нужно для восстановления Identity без БД.
func GenerateToken(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"username":   user.Username,
		"is_staff":   user.IsStaff,
		"token_type": tokenType,
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JwtKey)
}
