package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"extra-credit-union/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Identity — данные пользователя, извлечённые из проверенного токена.
// Токены самодостаточны: на запрос нет ни похода в БД, ни session store.
type Identity struct {
	UserID   uint
	Username string
	IsStaff  bool
}

const identityKey = "identity"

// AuthMiddleware проверяет Bearer-токен из заголовка Authorization и кладёт
// Identity в контекст запроса. Все защищённые маршруты проходят через него
// до какой-либо работы с данными.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			handleAuthError(c, "Authorization token not provided")
			return
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			handleAuthError(c, "Invalid Authorization header format")
			return
		}

		identity, err := ParseToken(parts[1], TokenTypeAccess)
		if err != nil {
			handleAuthError(c, "Invalid or expired token")
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// ParseToken валидирует подпись и срок действия токена и проверяет, что его
// тип совпадает с ожидаемым (access-токен нельзя предъявить как refresh).
func ParseToken(tokenStr, wantType string) (*Identity, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return config.JwtKey, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	if tokenType, _ := claims["token_type"].(string); tokenType != wantType {
		return nil, fmt.Errorf("unexpected token type %q", tokenType)
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return nil, errors.New("invalid user ID format in token")
	}
	username, _ := claims["username"].(string)
	isStaff, _ := claims["is_staff"].(bool)

	return &Identity{
		UserID:   uint(userIDFloat),
		Username: username,
		IsStaff:  isStaff,
	}, nil
}

// CurrentIdentity возвращает Identity текущего запроса из контекста.
func CurrentIdentity(c *gin.Context) (*Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}
	identity, ok := v.(*Identity)
	return identity, ok && identity != nil
}

func handleAuthError(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": message})
	c.Abort()
}
