package model

// Client 客户站点表 — 对应 clients
type Client struct {
	ID        int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string   `gorm:"not null"                 json:"name"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	CreatedModel
}

// TableName 指定表名
func (Client) TableName() string { return "clients" }

// EmployeeClient 员工-客户分配表 — 对应 employee_clients
// 同一 (employee_id, client_id) 可重复出现，重新分配即新增一行
type EmployeeClient struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	EmployeeID   int64  `gorm:"not null"                 json:"employee_id"`
	ClientID     int64  `gorm:"not null"                 json:"client_id"`
	AssignedDate string `gorm:"type:date;not null"       json:"assigned_date"` // YYYY-MM-DD
}

// TableName 指定表名
func (EmployeeClient) TableName() string { return "employee_clients" }
