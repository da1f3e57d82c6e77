// Package seed 写入演示数据：一名经理、三名员工、五个客户站点及 2024-01-15/16 的签到记录。
package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/TheBadshahKid/unolo-field-force-tracker/internal/model"
	"github.com/TheBadshahKid/unolo-field-force-tracker/pkg/database"
)

// DefaultPassword 演示账号的统一密码
const DefaultPassword = "password123"

// ErrAlreadySeeded 库中已有用户且未要求重置
var ErrAlreadySeeded = errors.New("数据库已有数据，如需重建请使用 reset")

// Fixtures 一次写入的全部演示数据（显式 ID，便于引用）
type Fixtures struct {
	Users       []model.User
	Clients     []model.Client
	Assignments []model.EmployeeClient
	Checkins    []model.Checkin
}

// HashPassword bcrypt 哈希
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("密码哈希失败: %w", err)
	}
	return string(hash), nil
}

// Default 标准演示数据，所有账号共用 passwordHash
func Default(passwordHash string) *Fixtures {
	managerID := int64(1)

	return &Fixtures{
		Users: []model.User{
			{ID: 1, Name: "Amit Sharma", Email: "manager@unolo.com", Password: passwordHash, Role: model.RoleManager},
			{ID: 2, Name: "Rahul Kumar", Email: "rahul@unolo.com", Password: passwordHash, Role: model.RoleEmployee, ManagerID: &managerID},
			{ID: 3, Name: "Priya Singh", Email: "priya@unolo.com", Password: passwordHash, Role: model.RoleEmployee, ManagerID: &managerID},
			{ID: 4, Name: "Vikram Patel", Email: "vikram@unolo.com", Password: passwordHash, Role: model.RoleEmployee, ManagerID: &managerID},
		},
		Clients: []model.Client{
			{ID: 1, Name: "ABC Corp", Address: "Cyber City, Gurugram", Latitude: ptr(28.4946), Longitude: ptr(77.0887)},
			{ID: 2, Name: "XYZ Ltd", Address: "Sector 44, Gurugram", Latitude: ptr(28.4595), Longitude: ptr(77.0266)},
			{ID: 3, Name: "Tech Solutions", Address: "DLF Phase 3, Gurugram", Latitude: ptr(28.4947), Longitude: ptr(77.0952)},
			{ID: 4, Name: "Global Services", Address: "Udyog Vihar, Gurugram", Latitude: ptr(28.5011), Longitude: ptr(77.0838)},
			{ID: 5, Name: "Innovate Inc", Address: "Sector 18, Noida", Latitude: ptr(28.5707), Longitude: ptr(77.3219)},
		},
		Assignments: []model.EmployeeClient{
			{EmployeeID: 2, ClientID: 1, AssignedDate: "2024-01-01"},
			{EmployeeID: 2, ClientID: 2, AssignedDate: "2024-01-01"},
			{EmployeeID: 2, ClientID: 3, AssignedDate: "2024-01-15"},
			{EmployeeID: 3, ClientID: 2, AssignedDate: "2024-01-01"},
			{EmployeeID: 3, ClientID: 4, AssignedDate: "2024-01-01"},
			{EmployeeID: 4, ClientID: 1, AssignedDate: "2024-01-10"},
			{EmployeeID: 4, ClientID: 5, AssignedDate: "2024-01-10"},
		},
		Checkins: []model.Checkin{
			visit(2, 1, "2024-01-15 09:15:00", "2024-01-15 11:30:00", 28.4946, 77.0887, "Regular visit"),
			visit(2, 2, "2024-01-15 12:00:00", "2024-01-15 14:00:00", 28.4595, 77.0266, "Product demo"),
			visit(2, 3, "2024-01-15 15:00:00", "2024-01-15 17:30:00", 28.4947, 77.0952, "Follow up meeting"),
			visit(3, 2, "2024-01-15 09:30:00", "2024-01-15 12:00:00", 28.4595, 77.0266, "Contract discussion"),
			visit(3, 4, "2024-01-15 13:00:00", "2024-01-15 16:00:00", 28.5011, 77.0838, "New requirements"),
			visit(2, 1, "2024-01-16 09:00:00", "", 28.4950, 77.0890, "Morning visit"),
		},
	}
}

// Run 在一次网关维护周期内写入 f；reset 为 true 时先清空四张业务表
func Run(ctx context.Context, gw *database.Gateway, f *Fixtures, reset bool, logger *zap.Logger) error {
	err := gw.Transform(ctx, func(mem *sql.DB) error {
		db, err := gorm.Open(&sqlite.Dialector{Conn: mem}, &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return err
		}

		return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if reset {
				for _, table := range []string{"checkins", "employee_clients", "clients", "users"} {
					if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
						return err
					}
				}
				if err := tx.Exec("DELETE FROM sqlite_sequence").Error; err != nil {
					return err
				}
			} else {
				var count int64
				if err := tx.Model(&model.User{}).Count(&count).Error; err != nil {
					return err
				}
				if count > 0 {
					return ErrAlreadySeeded
				}
			}

			if len(f.Users) > 0 {
				if err := tx.Create(&f.Users).Error; err != nil {
					return fmt.Errorf("写入用户失败: %w", err)
				}
			}
			if len(f.Clients) > 0 {
				if err := tx.Create(&f.Clients).Error; err != nil {
					return fmt.Errorf("写入客户失败: %w", err)
				}
			}
			if len(f.Assignments) > 0 {
				if err := tx.Create(&f.Assignments).Error; err != nil {
					return fmt.Errorf("写入分配关系失败: %w", err)
				}
			}
			if len(f.Checkins) > 0 {
				if err := tx.Create(&f.Checkins).Error; err != nil {
					return fmt.Errorf("写入签到记录失败: %w", err)
				}
			}
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, ErrAlreadySeeded) {
			return ErrAlreadySeeded
		}
		return err
	}

	logger.Info("演示数据已写入",
		zap.Int("users", len(f.Users)),
		zap.Int("clients", len(f.Clients)),
		zap.Int("assignments", len(f.Assignments)),
		zap.Int("checkins", len(f.Checkins)),
		zap.Bool("reset", reset),
	)
	return nil
}

func visit(employeeID, clientID int64, in, out string, lat, lng float64, notes string) model.Checkin {
	c := model.Checkin{
		EmployeeID:  employeeID,
		ClientID:    clientID,
		CheckinTime: mustTime(in),
		Latitude:    ptr(lat),
		Longitude:   ptr(lng),
		Notes:       notes,
		Status:      model.CheckinStatusCheckedIn,
	}
	if out != "" {
		t := mustTime(out)
		c.CheckoutTime = &t
		c.Status = model.CheckinStatusCheckedOut
	}
	return c
}

func mustTime(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr(f float64) *float64 { return &f }
