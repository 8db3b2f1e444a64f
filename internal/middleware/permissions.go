package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Способности, которыми может обладать вызывающий.
const (
	CapAuthenticated = "authenticated"
	CapStaff         = "staff"
)

// operationCapabilities — явная таблица {операция → требуемая способность}.
// Неизвестная операция закрыта по умолчанию.
var operationCapabilities = map[string]string{
	"accounts_view":       CapAuthenticated,
	"accounts_manage":     CapStaff,
	"transactions_view":   CapAuthenticated,
	"transactions_create": CapAuthenticated,
	"transactions_manage": CapStaff,
	"reports_view_own":    CapAuthenticated,
	"reports_view_all":    CapStaff,
	"businesses_view":     CapAuthenticated,
	"businesses_manage":   CapStaff,
}

// PermissionMiddleware проверяет по таблице operationCapabilities, что у
// текущего Identity есть способность, требуемая операцией. Выполняется до
// обработчика, так что запрещённый запрос не доходит до данных.
func PermissionMiddleware(operation string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication required"})
			c.Abort()
			return
		}

		capability, known := operationCapabilities[operation]
		if !known {
			c.JSON(http.StatusForbidden, gin.H{"detail": "Permission denied"})
			c.Abort()
			return
		}
		if capability == CapStaff && !identity.IsStaff {
			c.JSON(http.StatusForbidden, gin.H{"detail": "Admin privileges required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
