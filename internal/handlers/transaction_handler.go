package handlers

import (
	"log/slog"
	"net/http"

	"extra-credit-union/config"
	"extra-credit-union/internal/middleware"
	"extra-credit-union/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// scopedTransactions возвращает запрос, ограниченный видимостью вызывающего:
// сотрудники видят все транзакции, остальные — только по своим счетам.
func scopedTransactions(identity *middleware.Identity) *gorm.DB {
	query := config.DB.Model(&models.Transaction{})
	if identity.IsStaff {
		return query
	}
	// transactions.* — чтобы колонки счёта из JOIN не перекрыли поля модели.
	return query.
		Select("transactions.*").
		Joins("JOIN accounts ON accounts.id = transactions.from_account_id").
		Where("accounts.user_id = ?", identity.UserID)
}

// visibleAccount загружает счёт и проверяет, что вызывающий его видит.
// При отказе ответ уже записан, и второй результат равен false.
func visibleAccount(c *gin.Context, identity *middleware.Identity, accountID string) (*models.Account, bool) {
	var account models.Account
	if err := config.DB.Where("id = ?", accountID).First(&account).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Account not found"})
		return nil, false
	}
	if account.UserID != identity.UserID && !identity.IsStaff {
		c.JSON(http.StatusForbidden, gin.H{"detail": "You don't have permission to access this account"})
		return nil, false
	}
	return &account, true
}

func toTransactionResponses(transactions []models.Transaction) []models.TransactionResponse {
	responses := make([]models.TransactionResponse, 0, len(transactions))
	for _, txn := range transactions {
		responses = append(responses, txn.ToResponse())
	}
	return responses
}

// ListTransactionsHandler returns the transactions visible to the caller in
// creation order.
func ListTransactionsHandler(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication required"})
		return
	}

	var transactions []models.Transaction
	if err := scopedTransactions(identity).Order("transactions.created_at asc").Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch transactions"})
		return
	}
	c.JSON(http.StatusOK, toTransactionResponses(transactions))
}

// GetTransactionHandler returns a single transaction within the caller's
// visible scope.
func GetTransactionHandler(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication required"})
		return
	}

	var txn models.Transaction
	if err := scopedTransactions(identity).Where("transactions.id = ?", c.Param("id")).First(&txn).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Transaction not found"})
		return
	}
	c.JSON(http.StatusOK, txn.ToResponse())
}

// CreateTransactionInput defines the payload for recording a transaction.
type CreateTransactionInput struct {
	FromAccount     string `json:"from_account" binding:"required"`
	Business        *uint  `json:"business"`
	Amount          string `json:"amount" binding:"required"`
	TransactionType string `json:"transaction_type"`
}

// CreateTransactionHandler records a transaction against an account the
// caller owns (or any account for staff). Баланс счёта не изменяется:
// это запись операции, а не проводка.
func CreateTransactionHandler(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication required"})
		return
	}

	var input CreateTransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, err := decimal.NewFromString(input.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
		return
	}

	var account models.Account
	if err := config.DB.Where("id = ?", input.FromAccount).First(&account).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Account not found"})
		return
	}
	// Проверка владения до любой записи в базу.
	if account.UserID != identity.UserID && !identity.IsStaff {
		c.JSON(http.StatusForbidden, gin.H{"detail": "You don't have permission to create transactions for this account"})
		return
	}

	if input.Business != nil {
		var business models.Business
		if err := config.DB.First(&business, *input.Business).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Business not found"})
			return
		}
	}

	txType := input.TransactionType
	if txType == "" {
		txType = models.TransactionTypePayment
	}
	txn := models.Transaction{
		FromAccountID:   account.ID,
		BusinessID:      input.Business,
		Amount:          amount,
		TransactionType: txType,
	}
	if err := config.DB.Create(&txn).Error; err != nil {
		slog.Error("Failed to create transaction", "error", err, "account_id", account.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		return
	}
	c.JSON(http.StatusCreated, txn.ToResponse())
}

// UpdateTransactionInput defines the staff-only mutable fields.
type UpdateTransactionInput struct {
	Amount          *string `json:"amount"`
	TransactionType *string `json:"transaction_type"`
	Business        *uint   `json:"business"`
}

// UpdateTransactionHandler is a staff-only escape hatch: в нормальном потоке
// транзакции после создания не изменяются.
func UpdateTransactionHandler(c *gin.Context) {
	var txn models.Transaction
	if err := config.DB.Where("id = ?", c.Param("id")).First(&txn).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Transaction not found"})
		return
	}

	var input UpdateTransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Amount != nil {
		parsed, err := decimal.NewFromString(*input.Amount)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
			return
		}
		txn.Amount = parsed
	}
	if input.TransactionType != nil {
		txn.TransactionType = *input.TransactionType
	}
	if input.Business != nil {
		var business models.Business
		if err := config.DB.First(&business, *input.Business).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Business not found"})
			return
		}
		txn.BusinessID = input.Business
	}

	if err := config.DB.Save(&txn).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
		return
	}
	c.JSON(http.StatusOK, txn.ToResponse())
}

// DeleteTransactionHandler is a staff-only escape hatch.
func DeleteTransactionHandler(c *gin.Context) {
	result := config.DB.Where("id = ?", c.Param("id")).Delete(&models.Transaction{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
	} else if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Transaction not found"})
	} else {
		c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
	}
}

// AccountTransactionsHandler returns all transactions of one account in
// creation order.
func AccountTransactionsHandler(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication required"})
		return
	}
	account, ok := visibleAccount(c, identity, c.Param("account_id"))
	if !ok {
		return
	}

	var transactions []models.Transaction
	if err := config.DB.Where("from_account_id = ?", account.ID).Order("created_at asc").Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch transactions"})
		return
	}
	c.JSON(http.StatusOK, toTransactionResponses(transactions))
}

// SpendingSummaryHandler aggregates the account's "payment" transactions by
// the category of the referenced business. Платежи без контрагента попадают
// в группу с пустой категорией.
func SpendingSummaryHandler(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication required"})
		return
	}
	account, ok := visibleAccount(c, identity, c.Param("account_id"))
	if !ok {
		return
	}

	var rows []struct {
		Category *string
		Total    decimal.Decimal
	}
	err := config.DB.Model(&models.Transaction{}).
		Select("businesses.category AS category, SUM(transactions.amount) AS total").
		Joins("LEFT JOIN businesses ON businesses.id = transactions.business_id").
		Where("transactions.from_account_id = ? AND transactions.transaction_type = ?", account.ID, models.TransactionTypePayment).
		Group("businesses.category").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not build spending summary"})
		return
	}

	summary := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		summary = append(summary, gin.H{
			"category": row.Category,
			"total":    row.Total.StringFixed(2),
		})
	}
	c.JSON(http.StatusOK, summary)
}

// TopSpendersHandler returns the ten accounts with the highest total
// "payment" spend. Staff only. При равных суммах порядок детерминирован:
// имя счёта по возрастанию.
func TopSpendersHandler(c *gin.Context) {
	var rows []struct {
		AccountName string
		TotalSpent  decimal.Decimal
	}
	err := config.DB.Model(&models.Transaction{}).
		Select("accounts.name AS account_name, SUM(transactions.amount) AS total_spent").
		Joins("JOIN accounts ON accounts.id = transactions.from_account_id").
		Where("transactions.transaction_type = ?", models.TransactionTypePayment).
		Group("accounts.name").
		Order("total_spent DESC, accounts.name ASC").
		Limit(10).
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not build top spenders report"})
		return
	}

	report := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		report = append(report, gin.H{
			"account_name": row.AccountName,
			"total_spent":  row.TotalSpent.StringFixed(2),
		})
	}
	c.JSON(http.StatusOK, report)
}

// SanctionedBusinessReportHandler aggregates the total spend per sanctioned
// business. Staff only.
func SanctionedBusinessReportHandler(c *gin.Context) {
	rows, err := sanctionedBusinessTotals()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not build sanctioned business report"})
		return
	}

	report := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		report = append(report, gin.H{
			"business_name": row.BusinessName,
			"total_spent":   row.TotalSpent.StringFixed(2),
		})
	}
	c.JSON(http.StatusOK, report)
}

type sanctionedBusinessRow struct {
	BusinessName string
	TotalSpent   decimal.Decimal
}

func sanctionedBusinessTotals() ([]sanctionedBusinessRow, error) {
	var rows []sanctionedBusinessRow
	err := config.DB.Model(&models.Transaction{}).
		Select("businesses.name AS business_name, SUM(transactions.amount) AS total_spent").
		Joins("JOIN businesses ON businesses.id = transactions.business_id").
		Where("businesses.sanctioned = ?", true).
		Group("businesses.name").
		Order("businesses.name ASC").
		Scan(&rows).Error
	return rows, err
}
