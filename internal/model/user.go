package model

// 用户角色
const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
)

// User 用户表 — 对应 users
// 员工的 ManagerID 指向其直属经理；经理为 nil
type User struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"    json:"id"`
	Name      string `gorm:"not null"                    json:"name"`
	Email     string `gorm:"uniqueIndex;not null"        json:"email"`
	Password  string `gorm:"column:password;not null"    json:"-"`
	Role      string `gorm:"not null;default:'employee'" json:"role"`
	ManagerID *int64 `json:"manager_id,omitempty"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// IsManager 是否经理角色
func (u *User) IsManager() bool { return u.Role == RoleManager }
