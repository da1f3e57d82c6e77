package model

import "time"

// 签到状态
const (
	CheckinStatusCheckedIn  = "checked_in"
	CheckinStatusCheckedOut = "checked_out"
)

// Checkin 签到记录表 — 对应 checkins
//
// 创建时为 checked_in 且 CheckoutTime 为空；签退时二者在同一条语句中一并设置，
// 之后不再变化。checked_out ⟺ CheckoutTime 非空。
type Checkin struct {
	ID                 int64      `gorm:"primaryKey;autoIncrement"      json:"id"`
	EmployeeID         int64      `gorm:"not null"                      json:"employee_id"`
	ClientID           int64      `gorm:"not null"                      json:"client_id"`
	CheckinTime        time.Time  `json:"checkin_time"`
	CheckoutTime       *time.Time `json:"checkout_time"`
	Latitude           *float64   `json:"latitude"`
	Longitude          *float64   `json:"longitude"`
	DistanceFromClient *float64   `json:"distance_from_client"` // 暂无写入路径，始终可空
	Notes              string     `json:"notes"`
	Status             string     `gorm:"not null;default:'checked_in'" json:"status"`

	// 关联查询填充
	ClientName    string `gorm:"-" json:"client_name,omitempty"`
	ClientAddress string `gorm:"-" json:"client_address,omitempty"`
}

// TableName 指定表名
func (Checkin) TableName() string { return "checkins" }

// CheckedOut 是否已签退
func (c *Checkin) CheckedOut() bool { return c.CheckoutTime != nil }
