package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trackly/internal/services"
)

// SummaryHandler handles financial summary requests.
type SummaryHandler struct {
	summaryService services.SummaryServicer
	savingsService services.SavingsServicer
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryService services.SummaryServicer, savingsService services.SavingsServicer) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService, savingsService: savingsService}
}

// SummaryResponse is the dashboard summary payload. availableBalance is the
// overall balance with the amount locked in savings goals subtracted.
type SummaryResponse struct {
	services.Summary
	TotalCurrentlySaved float64 `json:"totalCurrentlySaved"`
	AvailableBalance    float64 `json:"availableBalance"`
}

// GetSummary handles retrieving the financial summary for a month.
// @Summary     Get financial summary
// @Description Get income, expense, balance and savings figures for a month (YYYY-MM); defaults to the current month
// @Tags        summary
// @Produce     json
// @Security    BearerAuth
// @Param       month query string false "Month filter (YYYY-MM)"
// @Success     200 {object} SummaryResponse "Financial summary"
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /summary [get]
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, err := parseMonthQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.summaryService.GetSummary(userID, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	saved, err := h.savingsService.TotalCurrentlySaved(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{
		Summary:             *summary,
		TotalCurrentlySaved: saved,
		AvailableBalance:    summary.OverallBalance - saved,
	})
}
