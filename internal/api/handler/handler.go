package handler

import "github.com/TheBadshahKid/unolo-field-force-tracker/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth    *AuthHandler
	Checkin *CheckinHandler
	Report  *ReportHandler
	Export  *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(svc.Auth),
		Checkin: NewCheckinHandler(svc.Checkin),
		Report:  NewReportHandler(svc.Report),
		Export:  NewExportHandler(svc.Export),
	}
}
