package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/TheBadshahKid/unolo-field-force-tracker/internal/model"
	"github.com/TheBadshahKid/unolo-field-force-tracker/internal/repository"
	apperrors "github.com/TheBadshahKid/unolo-field-force-tracker/pkg/errors"
)

var errMockStorage = errors.New("mock storage failure")

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[int64]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*model.User)}
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrRecordNotFound
}

func (m *mockUserRepo) ListByManager(_ context.Context, managerID int64) ([]model.User, error) {
	result := []model.User{}
	for _, u := range m.users {
		if u.ManagerID != nil && *u.ManagerID == managerID {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ── Mock ClientRepository ──

type mockClientRepo struct {
	clients     map[int64]*model.Client
	assignments map[int64][]int64 // employee_id → client_ids
	err         error
}

func newMockClientRepo() *mockClientRepo {
	return &mockClientRepo{
		clients:     make(map[int64]*model.Client),
		assignments: make(map[int64][]int64),
	}
}

func (m *mockClientRepo) assign(employeeID int64, c *model.Client) {
	m.clients[c.ID] = c
	m.assignments[employeeID] = append(m.assignments[employeeID], c.ID)
}

func (m *mockClientRepo) GetByID(_ context.Context, id int64) (*model.Client, error) {
	if c, ok := m.clients[id]; ok {
		return c, nil
	}
	return nil, apperrors.ErrRecordNotFound
}

func (m *mockClientRepo) ListAssigned(_ context.Context, employeeID int64) ([]model.Client, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := []model.Client{}
	for _, id := range m.assignments[employeeID] {
		result = append(result, *m.clients[id])
	}
	return result, nil
}

func (m *mockClientRepo) IsAssigned(_ context.Context, employeeID, clientID int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, id := range m.assignments[employeeID] {
		if id == clientID {
			return true, nil
		}
	}
	return false, nil
}

// ── Mock CheckinRepository ──

type mockCheckinRepo struct {
	checkins []*model.Checkin
	nextID   int64
	// 置为 true 时 Checkout 报告未命中（模拟并发签退）
	loseCheckout bool
}

func newMockCheckinRepo() *mockCheckinRepo {
	return &mockCheckinRepo{nextID: 1}
}

func (m *mockCheckinRepo) Create(_ context.Context, c *model.Checkin) (bool, error) {
	for _, existing := range m.checkins {
		if existing.EmployeeID == c.EmployeeID && existing.Status == model.CheckinStatusCheckedIn {
			return false, nil
		}
	}
	c.ID = m.nextID
	m.nextID++
	cp := *c
	m.checkins = append(m.checkins, &cp)
	return true, nil
}

func (m *mockCheckinRepo) GetActive(_ context.Context, employeeID int64) (*model.Checkin, error) {
	for i := len(m.checkins) - 1; i >= 0; i-- {
		c := m.checkins[i]
		if c.EmployeeID == employeeID && c.Status == model.CheckinStatusCheckedIn {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperrors.ErrRecordNotFound
}

func (m *mockCheckinRepo) Checkout(_ context.Context, id int64, at time.Time) (bool, error) {
	if m.loseCheckout {
		return false, nil
	}
	for _, c := range m.checkins {
		if c.ID == id && c.Status == model.CheckinStatusCheckedIn {
			c.CheckoutTime = &at
			c.Status = model.CheckinStatusCheckedOut
			return true, nil
		}
	}
	return false, nil
}

func (m *mockCheckinRepo) ListByEmployee(_ context.Context, employeeID int64, startDate, endDate string) ([]model.Checkin, error) {
	result := []model.Checkin{}
	for i := len(m.checkins) - 1; i >= 0; i-- {
		c := m.checkins[i]
		day := c.CheckinTime.UTC().Format(repository.DateLayout)
		if c.EmployeeID != employeeID {
			continue
		}
		if startDate != "" && day < startDate {
			continue
		}
		if endDate != "" && day > endDate {
			continue
		}
		result = append(result, *c)
	}
	return result, nil
}

// ── Mock ReportRepository ──

type mockReportRepo struct {
	stats         []model.EmployeeDayStat
	uniqueClients int64
	breakdownErr  error
	uniqueErr     error

	calls int
}

func (m *mockReportRepo) EmployeeBreakdown(_ context.Context, _ int64, _ string, _ *int64) ([]model.EmployeeDayStat, error) {
	m.calls++
	if m.breakdownErr != nil {
		return nil, m.breakdownErr
	}
	return m.stats, nil
}

func (m *mockReportRepo) UniqueClients(_ context.Context, _ int64, _ string, _ *int64) (int64, error) {
	m.calls++
	if m.uniqueErr != nil {
		return 0, m.uniqueErr
	}
	return m.uniqueClients, nil
}

// ── Mock TokenBlacklist ──

type mockBlacklist struct {
	entries map[string]time.Duration
}

func newMockBlacklist() *mockBlacklist {
	return &mockBlacklist{entries: make(map[string]time.Duration)}
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.entries[jti] = ttl
	return nil
}

func (m *mockBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	_, ok := m.entries[jti]
	return ok, nil
}

// newMockRepository 组装全部 mock
func newMockRepository() (*repository.Repository, *mockUserRepo, *mockClientRepo, *mockCheckinRepo, *mockReportRepo) {
	users := newMockUserRepo()
	clients := newMockClientRepo()
	checkins := newMockCheckinRepo()
	reports := &mockReportRepo{}
	return &repository.Repository{
		User:    users,
		Client:  clients,
		Checkin: checkins,
		Report:  reports,
	}, users, clients, checkins, reports
}
