package routes

import (
	"extra-credit-union/internal/handlers"
	"extra-credit-union/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes регистрирует все маршруты API, требующие аутентификации.
// Операции с повышенными требованиями дополнительно проходят через таблицу
// прав в PermissionMiddleware.
func RegisterAPIRoutes(api *gin.RouterGroup) {
	// Профиль текущего пользователя и его счета.
	api.GET("/user", handlers.CurrentUserHandler)

	// --- СЧЕТА ---
	accounts := api.Group("/accounts")
	accounts.Use(middleware.PermissionMiddleware("accounts_view"))
	{
		accounts.GET("", handlers.ListAccountsHandler)
		accounts.GET("/my_accounts", handlers.MyAccountsHandler)
		accounts.GET("/:id", handlers.GetAccountHandler)
		accounts.POST("", middleware.PermissionMiddleware("accounts_manage"), handlers.CreateAccountHandler)
		accounts.PUT("/:id", middleware.PermissionMiddleware("accounts_manage"), handlers.UpdateAccountHandler)
		accounts.DELETE("/:id", middleware.PermissionMiddleware("accounts_manage"), handlers.DeleteAccountHandler)
	}

	// --- ТРАНЗАКЦИИ И ОТЧЁТЫ ---
	transactions := api.Group("/transactions")
	transactions.Use(middleware.PermissionMiddleware("transactions_view"))
	{
		transactions.GET("", handlers.ListTransactionsHandler)
		transactions.POST("", middleware.PermissionMiddleware("transactions_create"), handlers.CreateTransactionHandler)
		transactions.GET("/top-10-spenders", middleware.PermissionMiddleware("reports_view_all"), handlers.TopSpendersHandler)
		transactions.GET("/sanctioned-business-report", middleware.PermissionMiddleware("reports_view_all"), handlers.SanctionedBusinessReportHandler)
		transactions.GET("/sanctioned-business-report/export", middleware.PermissionMiddleware("reports_view_all"), handlers.ExportSanctionedBusinessReportHandler)
		transactions.GET("/account/:account_id", handlers.AccountTransactionsHandler)
		transactions.GET("/spending-summary/:account_id", handlers.SpendingSummaryHandler)
		transactions.GET("/:id", handlers.GetTransactionHandler)
		transactions.PUT("/:id", middleware.PermissionMiddleware("transactions_manage"), handlers.UpdateTransactionHandler)
		transactions.DELETE("/:id", middleware.PermissionMiddleware("transactions_manage"), handlers.DeleteTransactionHandler)
	}

	// --- КАТАЛОГ КОНТРАГЕНТОВ ---
	businesses := api.Group("/businesses")
	businesses.Use(middleware.PermissionMiddleware("businesses_view"))
	{
		businesses.GET("", handlers.ListBusinessesHandler)
		businesses.GET("/:id", handlers.GetBusinessHandler)
		businesses.POST("", middleware.PermissionMiddleware("businesses_manage"), handlers.CreateBusinessHandler)
		businesses.PUT("/:id", middleware.PermissionMiddleware("businesses_manage"), handlers.UpdateBusinessHandler)
		businesses.DELETE("/:id", middleware.PermissionMiddleware("businesses_manage"), handlers.DeleteBusinessHandler)
	}
}
