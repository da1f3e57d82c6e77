package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/TheBadshahKid/unolo-field-force-tracker/internal/dto"
	"github.com/TheBadshahKid/unolo-field-force-tracker/internal/service"
	apperrors "github.com/TheBadshahKid/unolo-field-force-tracker/pkg/errors"
	"github.com/TheBadshahKid/unolo-field-force-tracker/pkg/response"
)

// ReportHandler 报表模块 HTTP 处理器
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler 创建 ReportHandler
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// DailySummary 团队日报（仅经理）
// GET /api/reports/daily-summary?date=YYYY-MM-DD[&employee_id=N]
//
// manager_id 只取自认证身份；employee_id 不属于本团队时返回空明细。
func (h *ReportHandler) DailySummary(c *gin.Context) {
	managerID, date, employeeID, ok := bindSummaryQuery(c)
	if !ok {
		return
	}

	result, err := h.reportSvc.DailySummary(c.Request.Context(), managerID, date, employeeID)
	if err != nil {
		handleReportError(c, err)
		return
	}

	response.OK(c, result)
}

// bindSummaryQuery 解析日报查询参数；失败时已写入响应
func bindSummaryQuery(c *gin.Context) (managerID int64, date string, employeeID *int64, ok bool) {
	managerID, ok = MustGetUserID(c)
	if !ok {
		return 0, "", nil, false
	}

	var req dto.DailySummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "Invalid query parameters")
		return 0, "", nil, false
	}

	employeeID, err := service.ParseEmployeeID(req.EmployeeID)
	if err != nil {
		handleReportError(c, err)
		return 0, "", nil, false
	}
	return managerID, req.Date, employeeID, true
}

func handleReportError(c *gin.Context, err error) {
	var ve *apperrors.ValidationError
	switch {
	case errors.As(err, &ve):
		response.BadRequest(c, 10001, ve.Message)
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c, "Failed to generate export")
	default:
		response.InternalError(c, "Failed to generate daily summary")
	}
}
