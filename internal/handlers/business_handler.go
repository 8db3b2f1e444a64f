package handlers

import (
	"net/http"

	"extra-credit-union/config"
	"extra-credit-union/models"

	"github.com/gin-gonic/gin"
)

// ListBusinessesHandler returns the whole business catalog. Каталог общий:
// читать может любой аутентифицированный пользователь.
func ListBusinessesHandler(c *gin.Context) {
	var businesses []models.Business
	if err := config.DB.Order("name asc").Find(&businesses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch businesses"})
		return
	}
	if businesses == nil {
		businesses = make([]models.Business, 0)
	}
	c.JSON(http.StatusOK, businesses)
}

// GetBusinessHandler returns a single catalog entry by ID.
func GetBusinessHandler(c *gin.Context) {
	var business models.Business
	if err := config.DB.First(&business, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Business not found"})
		return
	}
	c.JSON(http.StatusOK, business)
}

// BusinessInput defines the payload for creating or updating a business.
type BusinessInput struct {
	Name       string `json:"name" binding:"required"`
	Category   string `json:"category"`
	Sanctioned bool   `json:"sanctioned"`
}

// CreateBusinessHandler adds a business to the catalog. Staff only.
func CreateBusinessHandler(c *gin.Context) {
	var input BusinessInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	business := models.Business{
		Name:       input.Name,
		Category:   input.Category,
		Sanctioned: input.Sanctioned,
	}
	if err := config.DB.Create(&business).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create business"})
		return
	}
	c.JSON(http.StatusCreated, business)
}

// UpdateBusinessHandler updates a catalog entry. Staff only.
func UpdateBusinessHandler(c *gin.Context) {
	var business models.Business
	if err := config.DB.First(&business, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Business not found"})
		return
	}

	var input BusinessInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	business.Name = input.Name
	business.Category = input.Category
	business.Sanctioned = input.Sanctioned
	if err := config.DB.Save(&business).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update business"})
		return
	}
	c.JSON(http.StatusOK, business)
}

// DeleteBusinessHandler removes a catalog entry. Staff only.
func DeleteBusinessHandler(c *gin.Context) {
	result := config.DB.Delete(&models.Business{}, c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete business"})
	} else if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Business not found"})
	} else {
		c.JSON(http.StatusOK, gin.H{"message": "Business deleted successfully"})
	}
}
