package repository

import (
	"context"

	"github.com/TheBadshahKid/unolo-field-force-tracker/internal/model"
	"github.com/TheBadshahKid/unolo-field-force-tracker/pkg/database"
	apperrors "github.com/TheBadshahKid/unolo-field-force-tracker/pkg/errors"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ListByManager(ctx context.Context, managerID int64) ([]model.User, error)
}

// userRepo UserRepository 的网关实现
type userRepo struct {
	db database.Executor
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(db database.Executor) UserRepository {
	return &userRepo{db: db}
}

const userColumns = "id, name, email, password, role, manager_id, created_at, updated_at"

func (r *userRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	res, err := r.db.Execute(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	row := res.First()
	if row == nil {
		return nil, apperrors.ErrRecordNotFound
	}
	return toUser(row), nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	res, err := r.db.Execute(ctx, "SELECT "+userColumns+" FROM users WHERE email = ?", email)
	if err != nil {
		return nil, err
	}
	row := res.First()
	if row == nil {
		return nil, apperrors.ErrRecordNotFound
	}
	return toUser(row), nil
}

func (r *userRepo) ListByManager(ctx context.Context, managerID int64) ([]model.User, error) {
	res, err := r.db.Execute(ctx,
		"SELECT "+userColumns+" FROM users WHERE manager_id = ? ORDER BY name", managerID)
	if err != nil {
		return nil, err
	}

	users := make([]model.User, 0, len(res.Rows))
	for _, row := range res.Rows {
		users = append(users, *toUser(row))
	}
	return users, nil
}

func toUser(row database.Row) *model.User {
	u := &model.User{
		ID:        int64Of(row["id"]),
		Name:      stringOf(row["name"]),
		Email:     stringOf(row["email"]),
		Password:  stringOf(row["password"]),
		Role:      stringOf(row["role"]),
		ManagerID: nullInt64(row["manager_id"]),
	}
	u.CreatedAt = timeOf(row["created_at"])
	u.UpdatedAt = timeOf(row["updated_at"])
	return u
}
