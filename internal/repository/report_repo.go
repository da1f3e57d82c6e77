package repository

import (
	"context"

	"github.com/TheBadshahKid/unolo-field-force-tracker/internal/model"
	"github.com/TheBadshahKid/unolo-field-force-tracker/pkg/database"
)

// ReportRepository 日报聚合查询接口
//
// 团队范围由 users.manager_id = managerID 连接条件限定：
// 不属于该经理的 employeeID 只会得到空结果，不会报错。
type ReportRepository interface {
	EmployeeBreakdown(ctx context.Context, managerID int64, date string, employeeID *int64) ([]model.EmployeeDayStat, error)
	UniqueClients(ctx context.Context, managerID int64, date string, employeeID *int64) (int64, error)
}

type reportRepo struct {
	db database.Executor
}

// NewReportRepo 创建 ReportRepository 实例
func NewReportRepo(db database.Executor) ReportRepository {
	return &reportRepo{db: db}
}

const employeeBreakdownSQL = `SELECT
	u.id AS employee_id,
	u.name AS employee_name,
	u.email AS employee_email,
	COUNT(ch.id) AS checkins,
	COUNT(DISTINCT ch.client_id) AS clients_visited,
	SUM(
		CASE
			WHEN ch.checkout_time IS NOT NULL
			THEN (julianday(ch.checkout_time) - julianday(ch.checkin_time)) * 24
			ELSE 0
		END
	) AS total_hours,
	AVG(ch.distance_from_client) AS avg_distance
FROM users u
LEFT JOIN checkins ch ON u.id = ch.employee_id
	AND DATE(ch.checkin_time) = ?
WHERE u.manager_id = ?`

const uniqueClientsSQL = `SELECT COUNT(DISTINCT ch.client_id) AS unique_clients
FROM checkins ch
INNER JOIN users u ON ch.employee_id = u.id
WHERE u.manager_id = ? AND DATE(ch.checkin_time) = ?`

// EmployeeBreakdown 每名团队成员一行；当天无签到的成员各项为零
func (r *reportRepo) EmployeeBreakdown(ctx context.Context, managerID int64, date string, employeeID *int64) ([]model.EmployeeDayStat, error) {
	query := employeeBreakdownSQL
	args := []any{date, managerID}
	if employeeID != nil {
		query += " AND u.id = ?"
		args = append(args, *employeeID)
	}
	query += "\nGROUP BY u.id, u.name, u.email\nORDER BY u.name"

	res, err := r.db.Execute(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	stats := make([]model.EmployeeDayStat, 0, len(res.Rows))
	for _, row := range res.Rows {
		stats = append(stats, model.EmployeeDayStat{
			EmployeeID:     int64Of(row["employee_id"]),
			EmployeeName:   stringOf(row["employee_name"]),
			EmployeeEmail:  stringOf(row["employee_email"]),
			Checkins:       int64Of(row["checkins"]),
			ClientsVisited: int64Of(row["clients_visited"]),
			// 无签到时 SUM 为 NULL，按 0 处理
			TotalHours:  float64Of(row["total_hours"]),
			AvgDistance: nullFloat64(row["avg_distance"]),
		})
	}
	return stats, nil
}

// UniqueClients 团队当天访问过的不同客户数（跨员工去重）
func (r *reportRepo) UniqueClients(ctx context.Context, managerID int64, date string, employeeID *int64) (int64, error) {
	query := uniqueClientsSQL
	args := []any{managerID, date}
	if employeeID != nil {
		query += " AND ch.employee_id = ?"
		args = append(args, *employeeID)
	}

	res, err := r.db.Execute(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	row := res.First()
	if row == nil {
		return 0, nil
	}
	return int64Of(row["unique_clients"]), nil
}
