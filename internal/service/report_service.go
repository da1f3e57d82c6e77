package service

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/TheBadshahKid/unolo-field-force-tracker/internal/dto"
	"github.com/TheBadshahKid/unolo-field-force-tracker/internal/repository"
	apperrors "github.com/TheBadshahKid/unolo-field-force-tracker/pkg/errors"
)

// 字面格式校验，不检查日历合法性（2024-13-45 可通过，查询结果为空）
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidateDate 校验 YYYY-MM-DD 日期参数
func ValidateDate(date string) error {
	if date == "" {
		return apperrors.NewValidation("date", "Date parameter is required (YYYY-MM-DD format)")
	}
	if !datePattern.MatchString(date) {
		return apperrors.NewValidation("date", "Invalid date format. Use YYYY-MM-DD format")
	}
	return nil
}

// ParseEmployeeID 解析可选的 employee_id 查询参数，空串返回 nil
func ParseEmployeeID(raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, apperrors.NewValidation("employee_id", "employee_id must be a positive integer")
	}
	return &id, nil
}

// ReportService 报表业务接口
type ReportService interface {
	// DailySummary 经理团队某日的签到汇总。managerID 来自认证身份；
	// 不属于该团队的 employeeID 得到空明细，不返回错误。
	DailySummary(ctx context.Context, managerID int64, date string, employeeID *int64) (*dto.DailySummaryResponse, error)
}

type reportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewReportService 创建 ReportService 实例
func NewReportService(repo *repository.Repository, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

func (s *reportService) DailySummary(ctx context.Context, managerID int64, date string, employeeID *int64) (*dto.DailySummaryResponse, error) {
	if err := ValidateDate(date); err != nil {
		return nil, err
	}

	// 1. 员工明细（LEFT JOIN，当天无签到的成员也出现）
	stats, err := s.repo.Report.EmployeeBreakdown(ctx, managerID, date, employeeID)
	if err != nil {
		s.logger.Error("查询员工日报明细失败",
			zap.Int64("manager_id", managerID), zap.String("date", date), zap.Error(err))
		return nil, err
	}

	// 2. 汇总；工时以全精度累加，只在输出时保留两位
	summary := dto.TeamSummary{}
	totalHours := decimal.Zero
	breakdown := make([]dto.EmployeeBreakdown, 0, len(stats))

	for _, st := range stats {
		hours := decimal.NewFromFloat(st.TotalHours)
		totalHours = totalHours.Add(hours)
		summary.TotalCheckins += st.Checkins
		if st.Checkins > 0 {
			summary.EmployeesActive++
		}

		breakdown = append(breakdown, dto.EmployeeBreakdown{
			EmployeeID:     st.EmployeeID,
			EmployeeName:   st.EmployeeName,
			EmployeeEmail:  st.EmployeeEmail,
			Checkins:       st.Checkins,
			ClientsVisited: st.ClientsVisited,
			TotalHours:     hours.Round(2).InexactFloat64(),
			AvgDistanceKm:  round2Ptr(st.AvgDistance),
		})
	}
	summary.TotalHours = totalHours.Round(2).InexactFloat64()

	// 3. 团队去重客户数：同一客户被多名员工访问只计一次
	summary.UniqueClients, err = s.repo.Report.UniqueClients(ctx, managerID, date, employeeID)
	if err != nil {
		s.logger.Error("查询团队客户数失败",
			zap.Int64("manager_id", managerID), zap.String("date", date), zap.Error(err))
		return nil, err
	}

	return &dto.DailySummaryResponse{
		Date:              date,
		TeamSummary:       summary,
		EmployeeBreakdown: breakdown,
	}, nil
}

// round2Ptr 保留两位小数；nil 原样返回
func round2Ptr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := decimal.NewFromFloat(*v).Round(2).InexactFloat64()
	return &r
}
