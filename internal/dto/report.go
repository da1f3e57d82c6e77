package dto

// ── 报表模块 DTO ──

// DailySummaryRequest 日报查询参数
// 两个字段都按原始字符串接收，格式校验在 service 层完成
type DailySummaryRequest struct {
	Date       string `form:"date"`
	EmployeeID string `form:"employee_id"`
}

// DailySummaryResponse 团队日报
type DailySummaryResponse struct {
	Date              string              `json:"date"`
	TeamSummary       TeamSummary         `json:"team_summary"`
	EmployeeBreakdown []EmployeeBreakdown `json:"employee_breakdown"`
}

// TeamSummary 团队汇总
type TeamSummary struct {
	TotalCheckins   int64   `json:"total_checkins"`
	TotalHours      float64 `json:"total_hours"`
	EmployeesActive int64   `json:"employees_active"`
	UniqueClients   int64   `json:"unique_clients"`
}

// EmployeeBreakdown 单个员工当日明细
type EmployeeBreakdown struct {
	EmployeeID     int64    `json:"employee_id"`
	EmployeeName   string   `json:"employee_name"`
	EmployeeEmail  string   `json:"employee_email"`
	Checkins       int64    `json:"checkins"`
	ClientsVisited int64    `json:"clients_visited"`
	TotalHours     float64  `json:"total_hours"`
	AvgDistanceKm  *float64 `json:"avg_distance_km"` // 无距离数据时为 null
}
