package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/TheBadshahKid/unolo-field-force-tracker/internal/dto"
	"github.com/TheBadshahKid/unolo-field-force-tracker/internal/model"
	"github.com/TheBadshahKid/unolo-field-force-tracker/internal/repository"
	apperrors "github.com/TheBadshahKid/unolo-field-force-tracker/pkg/errors"
)

// ── 签到模块业务错误 ──

var (
	ErrClientNotAssigned = errors.New("客户未分配给该员工")
	ErrAlreadyCheckedIn  = errors.New("已有未签退的签到")
	ErrNoActiveCheckin   = errors.New("没有进行中的签到")
)

// CheckinService 员工签到业务接口
type CheckinService interface {
	ListClients(ctx context.Context, employeeID int64) ([]dto.ClientResponse, error)
	CheckIn(ctx context.Context, employeeID int64, req *dto.CreateCheckinRequest) (*dto.CheckinResponse, error)
	CheckOut(ctx context.Context, employeeID int64) (*dto.CheckinResponse, error)
	// Active 进行中的签到；没有时返回 nil, nil
	Active(ctx context.Context, employeeID int64) (*dto.CheckinResponse, error)
	History(ctx context.Context, employeeID int64, req *dto.CheckinHistoryRequest) ([]dto.CheckinResponse, error)
}

type checkinService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewCheckinService 创建 CheckinService 实例
func NewCheckinService(repo *repository.Repository, logger *zap.Logger) CheckinService {
	return &checkinService{repo: repo, logger: logger, now: time.Now}
}

func (s *checkinService) ListClients(ctx context.Context, employeeID int64) ([]dto.ClientResponse, error) {
	clients, err := s.repo.Client.ListAssigned(ctx, employeeID)
	if err != nil {
		s.logger.Error("查询分配客户失败", zap.Int64("employee_id", employeeID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		result = append(result, dto.ClientResponse{
			ID:        c.ID,
			Name:      c.Name,
			Address:   c.Address,
			Latitude:  c.Latitude,
			Longitude: c.Longitude,
		})
	}
	return result, nil
}

// CheckIn 校验分配关系后新建记录；进行中签到的检查由插入语句自身完成，
// 同一员工并发签到时只有一条能写入。
func (s *checkinService) CheckIn(ctx context.Context, employeeID int64, req *dto.CreateCheckinRequest) (*dto.CheckinResponse, error) {
	// 1. 分配关系
	assigned, err := s.repo.Client.IsAssigned(ctx, employeeID, req.ClientID)
	if err != nil {
		s.logger.Error("查询分配关系失败", zap.Error(err))
		return nil, err
	}
	if !assigned {
		return nil, ErrClientNotAssigned
	}

	// 2. 新建（已有进行中签到时不写入）
	c := &model.Checkin{
		EmployeeID:  employeeID,
		ClientID:    req.ClientID,
		CheckinTime: s.now().UTC().Truncate(time.Second),
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Notes:       req.Notes,
		Status:      model.CheckinStatusCheckedIn,
	}
	created, err := s.repo.Checkin.Create(ctx, c)
	if err != nil {
		s.logger.Error("创建签到失败", zap.Int64("employee_id", employeeID), zap.Error(err))
		return nil, err
	}
	if !created {
		return nil, ErrAlreadyCheckedIn
	}

	s.logger.Info("员工签到",
		zap.Int64("employee_id", employeeID),
		zap.Int64("client_id", req.ClientID),
		zap.Int64("checkin_id", c.ID),
	)

	if client, err := s.repo.Client.GetByID(ctx, req.ClientID); err == nil {
		c.ClientName = client.Name
		c.ClientAddress = client.Address
	}
	resp := toCheckinResponse(c)
	return &resp, nil
}

func (s *checkinService) CheckOut(ctx context.Context, employeeID int64) (*dto.CheckinResponse, error) {
	active, err := s.repo.Checkin.GetActive(ctx, employeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrRecordNotFound) {
			return nil, ErrNoActiveCheckin
		}
		s.logger.Error("查询进行中签到失败", zap.Error(err))
		return nil, err
	}

	at := s.now().UTC().Truncate(time.Second)
	ok, err := s.repo.Checkin.Checkout(ctx, active.ID, at)
	if err != nil {
		s.logger.Error("签退失败", zap.Int64("checkin_id", active.ID), zap.Error(err))
		return nil, err
	}
	if !ok {
		// 并发签退已先完成
		return nil, ErrNoActiveCheckin
	}

	active.CheckoutTime = &at
	active.Status = model.CheckinStatusCheckedOut
	resp := toCheckinResponse(active)
	return &resp, nil
}

func (s *checkinService) Active(ctx context.Context, employeeID int64) (*dto.CheckinResponse, error) {
	active, err := s.repo.Checkin.GetActive(ctx, employeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrRecordNotFound) {
			return nil, nil
		}
		s.logger.Error("查询进行中签到失败", zap.Error(err))
		return nil, err
	}
	resp := toCheckinResponse(active)
	return &resp, nil
}

func (s *checkinService) History(ctx context.Context, employeeID int64, req *dto.CheckinHistoryRequest) ([]dto.CheckinResponse, error) {
	if req.StartDate != "" {
		if err := ValidateDate(req.StartDate); err != nil {
			return nil, apperrors.NewValidation("start_date", "Invalid start_date format. Use YYYY-MM-DD format")
		}
	}
	if req.EndDate != "" {
		if err := ValidateDate(req.EndDate); err != nil {
			return nil, apperrors.NewValidation("end_date", "Invalid end_date format. Use YYYY-MM-DD format")
		}
	}
	if req.StartDate != "" && req.EndDate != "" && req.StartDate > req.EndDate {
		return nil, apperrors.NewValidation("start_date", "start_date must not be after end_date")
	}

	checkins, err := s.repo.Checkin.ListByEmployee(ctx, employeeID, req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Error("查询签到历史失败", zap.Int64("employee_id", employeeID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.CheckinResponse, 0, len(checkins))
	for i := range checkins {
		result = append(result, toCheckinResponse(&checkins[i]))
	}
	return result, nil
}

func toCheckinResponse(c *model.Checkin) dto.CheckinResponse {
	resp := dto.CheckinResponse{
		ID:                 c.ID,
		EmployeeID:         c.EmployeeID,
		ClientID:           c.ClientID,
		ClientName:         c.ClientName,
		ClientAddress:      c.ClientAddress,
		CheckinTime:        c.CheckinTime.UTC().Format(repository.TimeLayout),
		Latitude:           c.Latitude,
		Longitude:          c.Longitude,
		DistanceFromClient: c.DistanceFromClient,
		Notes:              c.Notes,
		Status:             c.Status,
	}
	if c.CheckoutTime != nil {
		out := c.CheckoutTime.UTC().Format(repository.TimeLayout)
		resp.CheckoutTime = &out
	}
	return resp
}
