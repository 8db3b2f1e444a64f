package handlers

import (
	"net/http"

	"extra-credit-union/config"
	"extra-credit-union/internal/middleware"
	"extra-credit-union/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// scopedAccounts возвращает запрос, ограниченный видимостью вызывающего:
// сотрудники видят все счета, остальные — только свои.
func scopedAccounts(identity *middleware.Identity) *gorm.DB {
	query := config.DB.Model(&models.Account{})
	if identity.IsStaff {
		return query
	}
	return query.Where("user_id = ?", identity.UserID)
}

// ListAccountsHandler returns the accounts visible to the caller.
func ListAccountsHandler(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication required"})
		return
	}

	var accounts []models.Account
	if err := scopedAccounts(identity).Order("created_at asc").Find(&accounts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch accounts"})
		return
	}
	c.JSON(http.StatusOK, toAccountResponses(accounts))
}

// MyAccountsHandler returns only the caller's own accounts, regardless of the
// staff flag.
func MyAccountsHandler(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication required"})
		return
	}

	var accounts []models.Account
	if err := config.DB.Where("user_id = ?", identity.UserID).Order("created_at asc").Find(&accounts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch accounts"})
		return
	}
	c.JSON(http.StatusOK, toAccountResponses(accounts))
}

// GetAccountHandler returns a single account if it lies within the caller's
// visible scope; счета вне области видимости неотличимы от несуществующих.
func GetAccountHandler(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication required"})
		return
	}

	var account models.Account
	if err := scopedAccounts(identity).Where("id = ?", c.Param("id")).First(&account).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Account not found"})
		return
	}
	c.JSON(http.StatusOK, account.ToResponse())
}

// CreateAccountInput defines the payload for the staff-only account creation.
type CreateAccountInput struct {
	Name            string `json:"name" binding:"required"`
	AccountType     string `json:"account_type" binding:"required,oneof=current savings"`
	StartingBalance string `json:"starting_balance"`
	RoundUpEnabled  bool   `json:"round_up_enabled"`
	UserID          uint   `json:"user_id" binding:"required"`
}

// CreateAccountHandler creates an account for an arbitrary user. Доступ
// только сотрудникам — проверяется таблицей прав на маршруте.
func CreateAccountHandler(c *gin.Context) {
	var input CreateAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	balance := zeroBalance
	if input.StartingBalance != "" {
		parsed, err := decimal.NewFromString(input.StartingBalance)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid starting balance"})
			return
		}
		balance = parsed
	}

	var owner models.User
	if err := config.DB.First(&owner, input.UserID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User not found"})
		return
	}

	account := models.Account{
		Name:            input.Name,
		AccountType:     input.AccountType,
		StartingBalance: balance,
		RoundUpEnabled:  input.RoundUpEnabled,
		UserID:          owner.ID,
	}
	if err := config.DB.Create(&account).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}
	c.JSON(http.StatusCreated, account.ToResponse())
}

// UpdateAccountInput defines the mutable account fields.
type UpdateAccountInput struct {
	Name            *string `json:"name"`
	StartingBalance *string `json:"starting_balance"`
	RoundUpEnabled  *bool   `json:"round_up_enabled"`
}

// UpdateAccountHandler updates an account's direct fields. Staff only.
func UpdateAccountHandler(c *gin.Context) {
	var account models.Account
	if err := config.DB.Where("id = ?", c.Param("id")).First(&account).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Account not found"})
		return
	}

	var input UpdateAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		account.Name = *input.Name
	}
	if input.StartingBalance != nil {
		parsed, err := decimal.NewFromString(*input.StartingBalance)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid starting balance"})
			return
		}
		account.StartingBalance = parsed
	}
	if input.RoundUpEnabled != nil {
		account.RoundUpEnabled = *input.RoundUpEnabled
	}

	if err := config.DB.Save(&account).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account"})
		return
	}
	c.JSON(http.StatusOK, account.ToResponse())
}

// DeleteAccountHandler deletes an account by ID. Staff only.
func DeleteAccountHandler(c *gin.Context) {
	result := config.DB.Where("id = ?", c.Param("id")).Delete(&models.Account{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
	} else if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Account not found"})
	} else {
		c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
	}
}
