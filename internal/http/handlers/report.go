package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mikayuko/projectbingsu/internal/http/response"
	"github.com/Mikayuko/projectbingsu/internal/services"
)

type ReportHandler struct {
	reportService services.ReportService
}

func NewReportHandler(reportService services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetSalesReport defaults to the trailing 7 days when no window is given.
func (rh *ReportHandler) GetSalesReport(c *gin.Context) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -7)
	to := now

	if raw := c.Query("from"); raw != "" {
		parsed, err := parseReportTime(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_from", err)
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := parseReportTime(raw)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_to", err)
			return
		}
		to = parsed
	}

	report, err := rh.reportService.Sales(c.Request.Context(), from, to)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, report)
}

func parseReportTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
