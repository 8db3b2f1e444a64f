package routes

import (
	"extra-credit-union/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes регистрирует публичные маршруты аутентификации.
// Эти маршруты не требуют middleware для проверки токена.
func RegisterAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", handlers.LoginHandler)
		auth.POST("/token/refresh", handlers.RefreshTokenHandler)
		auth.GET("/register", handlers.RegisterInfoHandler)
		auth.POST("/register", handlers.RegisterHandler)
		auth.POST("/logout", handlers.LogoutHandler)
	}
}
