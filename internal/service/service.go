package service

import (
	"go.uber.org/zap"

	"github.com/TheBadshahKid/unolo-field-force-tracker/internal/repository"
	"github.com/TheBadshahKid/unolo-field-force-tracker/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth    AuthService
	Checkin CheckinService
	Report  ReportService
	Export  ExportService
}

// NewService 创建 Service 聚合；blacklist 为 nil 时登出与刷新轮换不吊销旧 token
func NewService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) *Service {
	report := NewReportService(repo, logger)
	return &Service{
		Auth:    NewAuthService(repo, jwtMgr, blacklist, logger),
		Checkin: NewCheckinService(repo, logger),
		Report:  report,
		Export:  NewExportService(report, logger),
	}
}
