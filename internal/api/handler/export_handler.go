package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/TheBadshahKid/unolo-field-force-tracker/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportDailySummary 导出团队日报
// GET /api/reports/daily-summary/export?date=YYYY-MM-DD[&employee_id=N]
func (h *ExportHandler) ExportDailySummary(c *gin.Context) {
	managerID, date, employeeID, ok := bindSummaryQuery(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportDailySummary(c.Request.Context(), managerID, date, employeeID)
	if err != nil {
		handleReportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
