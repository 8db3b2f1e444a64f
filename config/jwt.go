package config

import (
	"log/slog"
	"os"
	"time"
)

// Сроки жизни токенов. Access намеренно короткий: отзыв токенов на сервере
// не реализован, выданный токен остаётся валидным до истечения срока.
const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 24 * time.Hour
)

var JwtKey []byte

// LoadJWTKey читает секрет подписи токенов из переменной окружения JWT_SECRET.
func LoadJWTKey() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		slog.Error("Критическая ошибка: переменная окружения JWT_SECRET не установлена.")
		os.Exit(1)
	}
	JwtKey = []byte(secret)
}
