package repository

import (
	"context"
	"time"

	"github.com/TheBadshahKid/unolo-field-force-tracker/internal/model"
	"github.com/TheBadshahKid/unolo-field-force-tracker/pkg/database"
	apperrors "github.com/TheBadshahKid/unolo-field-force-tracker/pkg/errors"
)

// CheckinRepository 签到记录数据访问接口
type CheckinRepository interface {
	Create(ctx context.Context, c *model.Checkin) (bool, error)
	GetActive(ctx context.Context, employeeID int64) (*model.Checkin, error)
	Checkout(ctx context.Context, id int64, at time.Time) (bool, error)
	ListByEmployee(ctx context.Context, employeeID int64, startDate, endDate string) ([]model.Checkin, error)
}

type checkinRepo struct {
	db database.Executor
}

// NewCheckinRepo 创建 CheckinRepository 实例
func NewCheckinRepo(db database.Executor) CheckinRepository {
	return &checkinRepo{db: db}
}

const checkinSelect = `SELECT ch.id, ch.employee_id, ch.client_id, ch.checkin_time, ch.checkout_time,
	ch.latitude, ch.longitude, ch.distance_from_client, ch.notes, ch.status,
	c.name AS client_name, c.address AS client_address
FROM checkins ch
LEFT JOIN clients c ON c.id = ch.client_id`

// Create 在员工没有进行中签到时插入一条 checked_in 记录并回填 ID。
// 检查与插入是同一条语句；已有进行中签到时返回 false。
func (r *checkinRepo) Create(ctx context.Context, c *model.Checkin) (bool, error) {
	if c.Status == "" {
		c.Status = model.CheckinStatusCheckedIn
	}
	res, err := r.db.Execute(ctx,
		`INSERT INTO checkins (employee_id, client_id, checkin_time, latitude, longitude, notes, status)
		SELECT ?, ?, ?, ?, ?, ?, ?
		WHERE NOT EXISTS (SELECT 1 FROM checkins WHERE employee_id = ? AND status = ?)`,
		c.EmployeeID, c.ClientID, c.CheckinTime.UTC().Format(TimeLayout),
		nullable(c.Latitude), nullable(c.Longitude), c.Notes, c.Status,
		c.EmployeeID, model.CheckinStatusCheckedIn)
	if err != nil {
		return false, err
	}
	if res.Write.AffectedRows == 0 {
		return false, nil
	}
	c.ID = res.Write.InsertID
	return true, nil
}

// GetActive 员工当前未签退的记录（最近一条）
func (r *checkinRepo) GetActive(ctx context.Context, employeeID int64) (*model.Checkin, error) {
	res, err := r.db.Execute(ctx,
		checkinSelect+"\nWHERE ch.employee_id = ? AND ch.status = ?\nORDER BY ch.checkin_time DESC LIMIT 1",
		employeeID, model.CheckinStatusCheckedIn)
	if err != nil {
		return nil, err
	}
	row := res.First()
	if row == nil {
		return nil, apperrors.ErrRecordNotFound
	}
	return toCheckin(row), nil
}

// Checkout 单条语句同时设置签退时间与状态；记录不存在或已签退时返回 false
func (r *checkinRepo) Checkout(ctx context.Context, id int64, at time.Time) (bool, error) {
	res, err := r.db.Execute(ctx,
		"UPDATE checkins SET checkout_time = ?, status = ? WHERE id = ? AND status = ?",
		at.UTC().Format(TimeLayout), model.CheckinStatusCheckedOut, id, model.CheckinStatusCheckedIn)
	if err != nil {
		return false, err
	}
	return res.Write.AffectedRows > 0, nil
}

// ListByEmployee 按签到日期闭区间查询，空字符串表示不限
func (r *checkinRepo) ListByEmployee(ctx context.Context, employeeID int64, startDate, endDate string) ([]model.Checkin, error) {
	query := checkinSelect + "\nWHERE ch.employee_id = ?"
	args := []any{employeeID}
	if startDate != "" {
		query += " AND DATE(ch.checkin_time) >= ?"
		args = append(args, startDate)
	}
	if endDate != "" {
		query += " AND DATE(ch.checkin_time) <= ?"
		args = append(args, endDate)
	}
	query += "\nORDER BY ch.checkin_time DESC"

	res, err := r.db.Execute(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	checkins := make([]model.Checkin, 0, len(res.Rows))
	for _, row := range res.Rows {
		checkins = append(checkins, *toCheckin(row))
	}
	return checkins, nil
}

func toCheckin(row database.Row) *model.Checkin {
	return &model.Checkin{
		ID:                 int64Of(row["id"]),
		EmployeeID:         int64Of(row["employee_id"]),
		ClientID:           int64Of(row["client_id"]),
		CheckinTime:        timeOf(row["checkin_time"]),
		CheckoutTime:       nullTime(row["checkout_time"]),
		Latitude:           nullFloat64(row["latitude"]),
		Longitude:          nullFloat64(row["longitude"]),
		DistanceFromClient: nullFloat64(row["distance_from_client"]),
		Notes:              stringOf(row["notes"]),
		Status:             stringOf(row["status"]),
		ClientName:         stringOf(row["client_name"]),
		ClientAddress:      stringOf(row["client_address"]),
	}
}
