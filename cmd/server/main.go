package main

import (
	"log/slog"
	"os"

	"extra-credit-union/config"
	"extra-credit-union/internal/routes"
	"extra-credit-union/models"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env удобен при локальной разработке; в проде переменные приходят
	// из окружения.
	if err := godotenv.Load(); err != nil {
		slog.Warn("Файл .env не найден, используются переменные окружения")
	}

	config.ConnectDB()
	config.LoadJWTKey()

	if err := config.DB.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.Business{},
		&models.Transaction{},
	); err != nil {
		slog.Error("Ошибка миграции схемы", "error", err)
		os.Exit(1)
	}

	seedAdminUser()

	r := gin.Default()
	routes.SetupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	slog.Info("Сервер запускается", "port", port)
	if err := r.Run(":" + port); err != nil {
		slog.Error("Ошибка запуска сервера", "error", err)
		os.Exit(1)
	}
}

// seedAdminUser создаёт стартового сотрудника, если таблица пользователей
// пуста. Без сотрудника недоступны управляющие операции и отчёты.
func seedAdminUser() {
	var count int64
	config.DB.Model(&models.User{}).Count(&count)
	if count > 0 {
		return
	}

	login := os.Getenv("ADMIN_LOGIN")
	password := os.Getenv("ADMIN_PASSWORD")
	if login == "" || password == "" {
		slog.Warn("ADMIN_LOGIN/ADMIN_PASSWORD не заданы, стартовый сотрудник не создан")
		return
	}

	admin := models.User{Username: login, IsStaff: true}
	if err := admin.SetPassword(password); err != nil {
		slog.Error("Не удалось захэшировать пароль администратора", "error", err)
		return
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		slog.Error("Не удалось создать стартового сотрудника", "error", err)
		return
	}
	slog.Info("Создан стартовый сотрудник", "login", login)
}
