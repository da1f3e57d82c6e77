package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("生成 Excel 文件失败")

// ExportService 导出业务接口
//
// 设计说明：
//   - 数据来自 ReportService.DailySummary，校验与团队范围规则一致
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
//   - Sheet "Summary"：团队汇总；Sheet "Employees"：员工明细
type ExportService interface {
	ExportDailySummary(ctx context.Context, managerID int64, date string, employeeID *int64) (*bytes.Buffer, string, error)
}

type exportService struct {
	report ReportService
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(report ReportService, logger *zap.Logger) ExportService {
	return &exportService{report: report, logger: logger}
}

const (
	summarySheet   = "Summary"
	employeesSheet = "Employees"
)

func (s *exportService) ExportDailySummary(ctx context.Context, managerID int64, date string, employeeID *int64) (*bytes.Buffer, string, error) {
	report, err := s.report.DailySummary(ctx, managerID, date, employeeID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(summarySheet)
	if err != nil {
		s.logger.Error("创建 Sheet 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	if _, err := f.NewSheet(employeesSheet); err != nil {
		s.logger.Error("创建 Sheet 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	// 删除默认 Sheet1
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// Summary
	ts := report.TeamSummary
	summaryRows := [][]interface{}{
		{"Date", report.Date},
		{"Total check-ins", ts.TotalCheckins},
		{"Total hours", ts.TotalHours},
		{"Employees active", ts.EmployeesActive},
		{"Unique clients", ts.UniqueClients},
	}
	for i, r := range summaryRows {
		if err := f.SetSheetRow(summarySheet, cell("A", i+1), &r); err != nil {
			s.logger.Error("写入汇总行失败", zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
	}
	f.SetCellStyle(summarySheet, "A1", cell("A", len(summaryRows)), headerStyle)
	f.SetColWidth(summarySheet, "A", "A", 20)
	f.SetColWidth(summarySheet, "B", "B", 14)

	// Employees
	header := []interface{}{"Employee ID", "Name", "Email", "Check-ins", "Clients visited", "Total hours", "Avg distance (km)"}
	if err := f.SetSheetRow(employeesSheet, "A1", &header); err != nil {
		s.logger.Error("写入表头失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetCellStyle(employeesSheet, "A1", cell(colName(len(header)-1), 1), headerStyle)
	f.SetColWidth(employeesSheet, "B", "C", 24)
	f.SetColWidth(employeesSheet, "D", "G", 16)

	for i, e := range report.EmployeeBreakdown {
		var avg interface{} = "-"
		if e.AvgDistanceKm != nil {
			avg = *e.AvgDistanceKm
		}
		row := []interface{}{e.EmployeeID, e.EmployeeName, e.EmployeeEmail, e.Checkins, e.ClientsVisited, e.TotalHours, avg}
		if err := f.SetSheetRow(employeesSheet, cell("A", i+2), &row); err != nil {
			s.logger.Error("写入员工明细失败", zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("daily-summary_%s.xlsx", report.Date)
	if employeeID != nil {
		filename = fmt.Sprintf("daily-summary_%s_employee-%d.xlsx", report.Date, *employeeID)
	}
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
