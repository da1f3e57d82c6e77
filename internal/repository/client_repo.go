package repository

import (
	"context"

	"github.com/TheBadshahKid/unolo-field-force-tracker/internal/model"
	"github.com/TheBadshahKid/unolo-field-force-tracker/pkg/database"
	apperrors "github.com/TheBadshahKid/unolo-field-force-tracker/pkg/errors"
)

// ClientRepository 客户站点数据访问接口
type ClientRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Client, error)
	ListAssigned(ctx context.Context, employeeID int64) ([]model.Client, error)
	IsAssigned(ctx context.Context, employeeID, clientID int64) (bool, error)
}

type clientRepo struct {
	db database.Executor
}

// NewClientRepo 创建 ClientRepository 实例
func NewClientRepo(db database.Executor) ClientRepository {
	return &clientRepo{db: db}
}

func (r *clientRepo) GetByID(ctx context.Context, id int64) (*model.Client, error) {
	res, err := r.db.Execute(ctx,
		"SELECT id, name, address, latitude, longitude, created_at FROM clients WHERE id = ?", id)
	if err != nil {
		return nil, err
	}
	row := res.First()
	if row == nil {
		return nil, apperrors.ErrRecordNotFound
	}
	return toClient(row), nil
}

// ListAssigned 员工被分配的客户（重复分配只返回一次）
func (r *clientRepo) ListAssigned(ctx context.Context, employeeID int64) ([]model.Client, error) {
	res, err := r.db.Execute(ctx, `SELECT DISTINCT c.id, c.name, c.address, c.latitude, c.longitude, c.created_at
		FROM clients c
		INNER JOIN employee_clients ec ON ec.client_id = c.id
		WHERE ec.employee_id = ?
		ORDER BY c.name`, employeeID)
	if err != nil {
		return nil, err
	}

	clients := make([]model.Client, 0, len(res.Rows))
	for _, row := range res.Rows {
		clients = append(clients, *toClient(row))
	}
	return clients, nil
}

func (r *clientRepo) IsAssigned(ctx context.Context, employeeID, clientID int64) (bool, error) {
	res, err := r.db.Execute(ctx,
		"SELECT COUNT(*) AS n FROM employee_clients WHERE employee_id = ? AND client_id = ?",
		employeeID, clientID)
	if err != nil {
		return false, err
	}
	return int64Of(res.First()["n"]) > 0, nil
}

func toClient(row database.Row) *model.Client {
	return &model.Client{
		ID:           int64Of(row["id"]),
		Name:         stringOf(row["name"]),
		Address:      stringOf(row["address"]),
		Latitude:     nullFloat64(row["latitude"]),
		Longitude:    nullFloat64(row["longitude"]),
		CreatedModel: model.CreatedModel{CreatedAt: timeOf(row["created_at"])},
	}
}
