package middleware_test

import (
	"testing"
	"time"

	"extra-credit-union/config"
	"extra-credit-union/internal/middleware"
	"extra-credit-union/models"
)

func TestTokenRoundTrip(t *testing.T) {
	config.JwtKey = []byte("test-secret")
	user := &models.User{ID: 7, Username: "alice", IsStaff: true}

	token, err := middleware.GenerateToken(user, middleware.TokenTypeAccess, time.Minute)
	if err != nil {
		t.Fatalf("ошибка выпуска токена: %v", err)
	}

	identity, err := middleware.ParseToken(token, middleware.TokenTypeAccess)
	if err != nil {
		t.Fatalf("ошибка разбора токена: %v", err)
	}
	if identity.UserID != 7 || identity.Username != "alice" || !identity.IsStaff {
		t.Errorf("identity не совпадает с claims: %+v", identity)
	}

	// Access-токен не проходит как refresh.
	if _, err := middleware.ParseToken(token, middleware.TokenTypeRefresh); err == nil {
		t.Error("токен неверного типа должен отклоняться")
	}
}

func TestParseTokenExpired(t *testing.T) {
	config.JwtKey = []byte("test-secret")
	user := &models.User{ID: 7, Username: "alice"}

	token, err := middleware.GenerateToken(user, middleware.TokenTypeAccess, -time.Minute)
	if err != nil {
		t.Fatalf("ошибка выпуска токена: %v", err)
	}
	if _, err := middleware.ParseToken(token, middleware.TokenTypeAccess); err == nil {
		t.Error("просроченный токен должен отклоняться")
	}
}

func TestParseTokenBadSignature(t *testing.T) {
	config.JwtKey = []byte("test-secret")
	user := &models.User{ID: 7, Username: "alice"}
	token, err := middleware.GenerateToken(user, middleware.TokenTypeAccess, time.Minute)
	if err != nil {
		t.Fatalf("ошибка выпуска токена: %v", err)
	}

	config.JwtKey = []byte("another-secret")
	if _, err := middleware.ParseToken(token, middleware.TokenTypeAccess); err == nil {
		t.Error("токен с чужой подписью должен отклоняться")
	}

	if _, err := middleware.ParseToken("not.a.token", middleware.TokenTypeAccess); err == nil {
		t.Error("мусор вместо токена должен отклоняться")
	}
}
