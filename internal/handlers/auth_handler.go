package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"extra-credit-union/config"
	"extra-credit-union/internal/middleware"
	"extra-credit-union/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UserResponse defines the structure for user data sent in API responses.
// This helps prevent accidental leakage of sensitive data like password hashes.
type UserResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsStaff   bool   `json:"is_staff"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsStaff:   u.IsStaff,
	}
}

func toAccountResponses(accounts []models.Account) []models.AccountResponse {
	responses := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		responses = append(responses, account.ToResponse())
	}
	return responses
}

// LoginInput defines the credentials expected by the login endpoint.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginHandler authenticates a user by username/password and issues a pair of
// access and refresh tokens together with the user's accounts.
func LoginHandler(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Username == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide both username and password"})
		return
	}

	var user models.User
	if err := config.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		// Не раскрываем, что именно не совпало — логин или пароль.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if !user.CheckPassword(input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	access, err := middleware.GenerateToken(&user, middleware.TokenTypeAccess, config.AccessTokenTTL)
	if err != nil {
		slog.Error("Failed to sign access token", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}
	refresh, err := middleware.GenerateToken(&user, middleware.TokenTypeRefresh, config.RefreshTokenTTL)
	if err != nil {
		slog.Error("Failed to sign refresh token", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	var accounts []models.Account
	if err := config.DB.Where("user_id = ?", user.ID).Order("created_at asc").Find(&accounts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch accounts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     toUserResponse(&user),
		"accounts": toAccountResponses(accounts),
		"access":   access,
		"refresh":  refresh,
	})
}

// RefreshInput carries the refresh token presented for exchange.
type RefreshInput struct {
	Refresh string `json:"refresh" binding:"required"`
}

// RefreshTokenHandler exchanges a valid refresh token for a new access token.
func RefreshTokenHandler(c *gin.Context) {
	var input RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Refresh token is required"})
		return
	}

	identity, err := middleware.ParseToken(input.Refresh, middleware.TokenTypeRefresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	// Перечитываем пользователя: флаг is_staff мог измениться после выдачи
	// refresh-токена, и новый access должен нести актуальное значение.
	var user models.User
	if err := config.DB.First(&user, identity.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	access, err := middleware.GenerateToken(&user, middleware.TokenTypeAccess, config.AccessTokenTTL)
	if err != nil {
		slog.Error("Failed to sign access token", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": access})
}

// LogoutHandler acknowledges a logout. Отзыва токенов на сервере нет:
// выданные токены остаются валидными до истечения срока.
func LogoutHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"detail": "Successfully logged out."})
}

// RegisterInput defines the payload accepted by the registration endpoint.
type RegisterInput struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Дефолты новых счетов: текущий счёт открывается с приветственным балансом,
// накопительный — пустой, с включённым округлением.
var (
	defaultCurrentBalance = decimal.RequireFromString("1000.00")
	zeroBalance           = decimal.NewFromInt(0)
)

// RegisterInfoHandler describes the registration endpoint for GET requests.
func RegisterInfoHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":         "Registration endpoint is working. Send a POST request to register.",
		"required_fields": []string{"username", "password"},
		"optional_fields": []string{"email", "first_name", "last_name"},
	})
}

// RegisterHandler creates a new user together with the two default accounts.
// Операция атомарна: пользователь без пары счетов в базе не появляется.
func RegisterHandler(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil || input.Username == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	// Быстрый отказ для очевидного дубликата. Источник истины — уникальный
	// индекс username, срабатывающий внутри транзакции ниже.
	var count int64
	config.DB.Model(&models.User{}).Where("username = ?", input.Username).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
		return
	}

	user := models.User{
		Username:  input.Username,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	}
	if err := user.SetPassword(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	ownerName := input.FirstName
	if ownerName == "" {
		ownerName = input.Username
	}
	currentAccount := models.Account{
		Name:            ownerName + "'s Current Account",
		AccountType:     models.AccountTypeCurrent,
		StartingBalance: defaultCurrentBalance,
		RoundUpEnabled:  false,
	}
	savingsAccount := models.Account{
		Name:            ownerName + "'s Savings Account",
		AccountType:     models.AccountTypeSavings,
		StartingBalance: zeroBalance,
		RoundUpEnabled:  true,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		currentAccount.UserID = user.ID
		savingsAccount.UserID = user.ID
		if err := tx.Create(&currentAccount).Error; err != nil {
			return err
		}
		return tx.Create(&savingsAccount).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Гонка двух регистраций с одним username: пред-проверка её не
			// увидела, индекс — увидел.
			c.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
			return
		}
		slog.Error("Failed to register user", "error", err, "username", input.Username)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user_id": user.ID,
		"accounts": []models.AccountResponse{
			currentAccount.ToResponse(),
			savingsAccount.ToResponse(),
		},
	})
}

// CurrentUserHandler returns the authenticated user's profile and accounts.
func CurrentUserHandler(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication required"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, identity.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User from token not found"})
		return
	}
	var accounts []models.Account
	if err := config.DB.Where("user_id = ?", user.ID).Order("created_at asc").Find(&accounts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch accounts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     toUserResponse(&user),
		"accounts": toAccountResponses(accounts),
	})
}
