// controllers/report.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"vetcare-backend/config"
	"vetcare-backend/services"
	"vetcare-backend/utils"

	"github.com/gin-gonic/gin"
)

// parseReportFilter reads the optional desde/hasta query params. The range
// only applies when both ends are present.
func parseReportFilter(c *gin.Context) (services.ReportFilter, bool) {
	desde := c.Query("desde")
	hasta := c.Query("hasta")
	if desde == "" || hasta == "" {
		return services.ReportFilter{}, true
	}

	from, err := time.Parse("2006-01-02", desde)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid 'desde' date, expected YYYY-MM-DD")
		return services.ReportFilter{}, false
	}
	to, err := time.Parse("2006-01-02", hasta)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid 'hasta' date, expected YYYY-MM-DD")
		return services.ReportFilter{}, false
	}

	return services.ReportFilter{UseDateRange: true, From: from, To: to}, true
}

func respondReport(c *gin.Context, data interface{}, err error) {
	if errors.Is(err, services.ErrInvalidDateRange) {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build report")
		return
	}
	c.JSON(http.StatusOK, data)
}

func GetUserReport(c *gin.Context) {
	filter, ok := parseReportFilter(c)
	if !ok {
		return
	}
	data, err := services.NewReportService(config.DB).UserReport(c.Request.Context(), filter)
	respondReport(c, data, err)
}

func GetPetReport(c *gin.Context) {
	filter, ok := parseReportFilter(c)
	if !ok {
		return
	}
	data, err := services.NewReportService(config.DB).PetReport(c.Request.Context(), filter)
	respondReport(c, data, err)
}

func GetHistoryReport(c *gin.Context) {
	filter, ok := parseReportFilter(c)
	if !ok {
		return
	}
	data, err := services.NewReportService(config.DB).HistoryReport(c.Request.Context(), filter)
	respondReport(c, data, err)
}

func GetTreatmentReport(c *gin.Context) {
	filter, ok := parseReportFilter(c)
	if !ok {
		return
	}
	data, err := services.NewReportService(config.DB).TreatmentReport(c.Request.Context(), filter)
	respondReport(c, data, err)
}

func GetMedicationReport(c *gin.Context) {
	filter, ok := parseReportFilter(c)
	if !ok {
		return
	}
	data, err := services.NewReportService(config.DB).MedicationReport(c.Request.Context(), filter)
	respondReport(c, data, err)
}

func GetServiceReport(c *gin.Context) {
	filter, ok := parseReportFilter(c)
	if !ok {
		return
	}
	data, err := services.NewReportService(config.DB).ServiceReport(c.Request.Context(), filter)
	respondReport(c, data, err)
}

func GetPaymentReport(c *gin.Context) {
	filter, ok := parseReportFilter(c)
	if !ok {
		return
	}
	data, err := services.NewReportService(config.DB).PaymentReport(c.Request.Context(), filter)
	respondReport(c, data, err)
}

func GetReservationReport(c *gin.Context) {
	filter, ok := parseReportFilter(c)
	if !ok {
		return
	}
	data, err := services.NewReportService(config.DB).ReservationReport(c.Request.Context(), filter)
	respondReport(c, data, err)
}

// GetStatistics serves the dashboard's grouped counts.
func GetStatistics(c *gin.Context) {
	data, err := services.NewReportService(config.DB).Statistics(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build statistics")
		return
	}
	c.JSON(http.StatusOK, data)
}

// GetActivitySeries serves the 90-day dashboard charts.
func GetActivitySeries(c *gin.Context) {
	data, err := services.NewReportService(config.DB).ActivitySeries(c.Request.Context(), time.Now())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build activity series")
		return
	}
	c.JSON(http.StatusOK, data)
}

// GetRevenueSummary serves the dashboard's headline income figures.
func GetRevenueSummary(c *gin.Context) {
	data, err := services.NewReportService(config.DB).RevenueSummary(c.Request.Context())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to build revenue summary")
		return
	}
	c.JSON(http.StatusOK, data)
}

// SearchContent serves the admin top-bar search.
func SearchContent(c *gin.Context) {
	query := c.Query("q")
	category := c.Query("categoria")

	results, err := services.NewSearchService(config.DB).Search(c.Request.Context(), query, category)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Search failed")
		return
	}
	c.JSON(http.StatusOK, results)
}
