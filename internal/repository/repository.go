package repository

import "github.com/TheBadshahKid/unolo-field-force-tracker/pkg/database"

// Repository 所有 Repository 的聚合入口
// 每个方法只发出单条语句，经由 database.Executor 走网关的读/写路径
type Repository struct {
	User    UserRepository
	Client  ClientRepository
	Checkin CheckinRepository
	Report  ReportRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db database.Executor) *Repository {
	return &Repository{
		User:    NewUserRepo(db),
		Client:  NewClientRepo(db),
		Checkin: NewCheckinRepo(db),
		Report:  NewReportRepo(db),
	}
}
