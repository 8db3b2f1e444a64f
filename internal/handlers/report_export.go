package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportSanctionedBusinessReportHandler streams the sanctioned-business
// report as an xlsx file. Staff only.
func ExportSanctionedBusinessReportHandler(c *gin.Context) {
	rows, err := sanctionedBusinessTotals()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not build sanctioned business report"})
		return
	}

	f := excelize.NewFile()
	sheetName := "Sanctioned businesses"
	index, _ := f.NewSheet(sheetName)
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"Business", "Total spent"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}
	for i, row := range rows {
		line := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", line), row.BusinessName)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", line), row.TotalSpent.StringFixed(2))
	}

	fileName := fmt.Sprintf("sanctioned_businesses_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
	}
}
