package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"extra-credit-union/config"
	"extra-credit-union/internal/middleware"
	"extra-credit-union/internal/routes"
	"extra-credit-union/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// setupRouter поднимает приложение на изолированной in-memory SQLite базе.
// Имя базы выводится из имени теста, чтобы тесты не делили состояние.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.JwtKey = []byte("test-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("ошибка открытия тестовой БД: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Account{}, &models.Business{}, &models.Transaction{}); err != nil {
		t.Fatalf("ошибка миграции схемы: %v", err)
	}
	config.DB = db

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func createUser(t *testing.T, username string, staff bool) *models.User {
	t.Helper()
	user := &models.User{Username: username, IsStaff: staff}
	if err := user.SetPassword("pw123"); err != nil {
		t.Fatalf("ошибка хэширования пароля: %v", err)
	}
	if err := config.DB.Create(user).Error; err != nil {
		t.Fatalf("ошибка создания пользователя: %v", err)
	}
	return user
}

func createAccount(t *testing.T, user *models.User, name, balance string) *models.Account {
	t.Helper()
	account := &models.Account{
		Name:            name,
		AccountType:     models.AccountTypeCurrent,
		StartingBalance: decimal.RequireFromString(balance),
		UserID:          user.ID,
	}
	if err := config.DB.Create(account).Error; err != nil {
		t.Fatalf("ошибка создания счёта: %v", err)
	}
	return account
}

func createBusiness(t *testing.T, name, category string, sanctioned bool) *models.Business {
	t.Helper()
	business := &models.Business{Name: name, Category: category, Sanctioned: sanctioned}
	if err := config.DB.Create(business).Error; err != nil {
		t.Fatalf("ошибка создания контрагента: %v", err)
	}
	return business
}

func createTransaction(t *testing.T, account *models.Account, business *models.Business, amount, txType string) *models.Transaction {
	t.Helper()
	txn := &models.Transaction{
		FromAccountID:   account.ID,
		Amount:          decimal.RequireFromString(amount),
		TransactionType: txType,
	}
	if business != nil {
		txn.BusinessID = &business.ID
	}
	if err := config.DB.Create(txn).Error; err != nil {
		t.Fatalf("ошибка создания транзакции: %v", err)
	}
	return txn
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := middleware.GenerateToken(user, middleware.TokenTypeAccess, config.AccessTokenTTL)
	if err != nil {
		t.Fatalf("ошибка выпуска токена: %v", err)
	}
	return token
}

func doRequest(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("ошибка разбора ответа: %v (тело: %s)", err, w.Body.String())
	}
}

// accountJSON — представление счёта в ответах API, используемое в проверках.
type accountJSON struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	AccountType     string `json:"account_type"`
	StartingBalance string `json:"starting_balance"`
	RoundUpEnabled  bool   `json:"round_up_enabled"`
	UserID          uint   `json:"user_id"`
}

type transactionJSON struct {
	ID              string `json:"id"`
	FromAccountID   string `json:"from_account"`
	BusinessID      *uint  `json:"business"`
	Amount          string `json:"amount"`
	TransactionType string `json:"transaction_type"`
}
