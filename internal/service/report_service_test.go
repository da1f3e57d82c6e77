package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/TheBadshahKid/unolo-field-force-tracker/config"
	"github.com/TheBadshahKid/unolo-field-force-tracker/internal/model"
	"github.com/TheBadshahKid/unolo-field-force-tracker/internal/repository"
	"github.com/TheBadshahKid/unolo-field-force-tracker/internal/seed"
	"github.com/TheBadshahKid/unolo-field-force-tracker/pkg/database"
	apperrors "github.com/TheBadshahKid/unolo-field-force-tracker/pkg/errors"
)

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }

// ── ValidateDate / ParseEmployeeID ──

func TestValidateDate(t *testing.T) {
	tests := []struct {
		date  string
		valid bool
	}{
		{"2024-01-15", true},
		{"2024-13-45", true}, // 只校验字面格式
		{"", false},
		{"2024-1-15", false},
		{"2024/01/15", false},
		{"15-01-2024", false},
		{"2024-01-15T00:00:00", false},
		{" 2024-01-15", false},
		{"abcd-ef-gh", false},
	}
	for _, tt := range tests {
		err := ValidateDate(tt.date)
		if tt.valid {
			assert.NoError(t, err, tt.date)
		} else {
			assert.True(t, apperrors.IsValidation(err), "%q 应返回 ValidationError", tt.date)
		}
	}
}

func TestParseEmployeeID(t *testing.T) {
	id, err := ParseEmployeeID("")
	assert.NoError(t, err)
	assert.Nil(t, id)

	id, err = ParseEmployeeID("3")
	require.NoError(t, err)
	assert.Equal(t, int64(3), *id)

	for _, raw := range []string{"abc", "2.5", "-1", "0"} {
		_, err := ParseEmployeeID(raw)
		assert.True(t, apperrors.IsValidation(err), raw)
	}
}

// ── DailySummary（mock 仓储）──

func setupTestReportService(stats []model.EmployeeDayStat, unique int64) (ReportService, *mockReportRepo) {
	repo, _, _, _, reports := newMockRepository()
	reports.stats = stats
	reports.uniqueClients = unique
	return NewReportService(repo, zap.NewNop()), reports
}

func TestDailySummary_InvalidDateIssuesNoQuery(t *testing.T) {
	svc, reports := setupTestReportService(nil, 0)

	_, err := svc.DailySummary(context.Background(), 1, "2024/01/15", nil)
	assert.True(t, apperrors.IsValidation(err))
	assert.Zero(t, reports.calls, "校验失败时不应发出查询")
}

func TestDailySummary_FoldsTeamSummary(t *testing.T) {
	svc, _ := setupTestReportService([]model.EmployeeDayStat{
		{EmployeeID: 3, EmployeeName: "Priya Singh", Checkins: 2, ClientsVisited: 2, TotalHours: 5.5},
		{EmployeeID: 2, EmployeeName: "Rahul Kumar", Checkins: 3, ClientsVisited: 3, TotalHours: 6.749999999, AvgDistance: f64(0.123456)},
		{EmployeeID: 4, EmployeeName: "Vikram Patel"},
	}, 4)

	resp, err := svc.DailySummary(context.Background(), 1, "2024-01-15", nil)
	require.NoError(t, err)

	assert.Equal(t, "2024-01-15", resp.Date)
	assert.Equal(t, int64(5), resp.TeamSummary.TotalCheckins)
	assert.Equal(t, 12.25, resp.TeamSummary.TotalHours)
	assert.Equal(t, int64(2), resp.TeamSummary.EmployeesActive)
	assert.Equal(t, int64(4), resp.TeamSummary.UniqueClients)

	require.Len(t, resp.EmployeeBreakdown, 3)
	assert.Equal(t, 6.75, resp.EmployeeBreakdown[1].TotalHours)
	require.NotNil(t, resp.EmployeeBreakdown[1].AvgDistanceKm)
	assert.Equal(t, 0.12, *resp.EmployeeBreakdown[1].AvgDistanceKm)
	assert.Nil(t, resp.EmployeeBreakdown[2].AvgDistanceKm, "无距离数据时保持 null")
}

func TestDailySummary_RoundsOnlyAtOutput(t *testing.T) {
	// 逐人先舍入再求和得 0.00；全精度求和后舍入得 0.01
	stats := make([]model.EmployeeDayStat, 3)
	for i := range stats {
		stats[i] = model.EmployeeDayStat{EmployeeID: int64(i + 1), Checkins: 1, TotalHours: 0.004}
	}
	svc, _ := setupTestReportService(stats, 1)

	resp, err := svc.DailySummary(context.Background(), 1, "2024-01-15", nil)
	require.NoError(t, err)
	assert.Equal(t, 0.01, resp.TeamSummary.TotalHours)
	for _, e := range resp.EmployeeBreakdown {
		assert.Equal(t, 0.0, e.TotalHours)
	}
}

func TestDailySummary_ZeroDistanceStaysZero(t *testing.T) {
	svc, _ := setupTestReportService([]model.EmployeeDayStat{
		{EmployeeID: 2, Checkins: 1, AvgDistance: f64(0)},
	}, 1)

	resp, err := svc.DailySummary(context.Background(), 1, "2024-01-15", nil)
	require.NoError(t, err)
	require.NotNil(t, resp.EmployeeBreakdown[0].AvgDistanceKm)
	assert.Equal(t, 0.0, *resp.EmployeeBreakdown[0].AvgDistanceKm)
}

func TestDailySummary_EmptyTeam(t *testing.T) {
	svc, _ := setupTestReportService(nil, 0)

	resp, err := svc.DailySummary(context.Background(), 9, "2024-01-15", nil)
	require.NoError(t, err)
	assert.NotNil(t, resp.EmployeeBreakdown)
	assert.Empty(t, resp.EmployeeBreakdown)
	assert.Zero(t, resp.TeamSummary.TotalCheckins)
	assert.Zero(t, resp.TeamSummary.TotalHours)
	assert.Zero(t, resp.TeamSummary.EmployeesActive)
	assert.Zero(t, resp.TeamSummary.UniqueClients)
}

func TestDailySummary_StorageErrorPropagates(t *testing.T) {
	svc, reports := setupTestReportService(nil, 0)
	reports.breakdownErr = &apperrors.StorageError{Op: "load", Err: errMockStorage}

	_, err := svc.DailySummary(context.Background(), 1, "2024-01-15", nil)
	assert.True(t, apperrors.IsStorage(err))

	reports.breakdownErr = nil
	reports.uniqueErr = &apperrors.StorageError{Op: "execute", Err: errMockStorage}
	_, err = svc.DailySummary(context.Background(), 1, "2024-01-15", nil)
	assert.True(t, apperrors.IsStorage(err))
}

// ── DailySummary（真实网关 + 演示数据）──

func newSeededReportService(t *testing.T) ReportService {
	t.Helper()
	ctx := context.Background()
	gw, err := database.NewGateway(&config.DatabaseConfig{
		Path:            filepath.Join(t.TempDir(), "report.sqlite"),
		SerializeWrites: true,
	}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(ctx, gw, zap.NewNop()))
	require.NoError(t, seed.Run(ctx, gw, seed.Default("hash"), false, zap.NewNop()))
	return NewReportService(repository.NewRepository(gw), zap.NewNop())
}

func TestDailySummary_SeededTeam(t *testing.T) {
	svc := newSeededReportService(t)

	resp, err := svc.DailySummary(context.Background(), 1, "2024-01-15", nil)
	require.NoError(t, err)

	assert.Equal(t, int64(5), resp.TeamSummary.TotalCheckins)
	assert.Equal(t, 12.25, resp.TeamSummary.TotalHours)
	assert.Equal(t, int64(2), resp.TeamSummary.EmployeesActive)
	assert.Equal(t, int64(4), resp.TeamSummary.UniqueClients)

	byID := map[int64]int{}
	for i, e := range resp.EmployeeBreakdown {
		byID[e.EmployeeID] = i
	}
	require.Len(t, byID, 3)

	rahul := resp.EmployeeBreakdown[byID[2]]
	assert.Equal(t, int64(3), rahul.Checkins)
	assert.Equal(t, int64(3), rahul.ClientsVisited)
	assert.Equal(t, 6.75, rahul.TotalHours)

	vikram := resp.EmployeeBreakdown[byID[4]]
	assert.Zero(t, vikram.Checkins)
	assert.Zero(t, vikram.ClientsVisited)
	assert.Zero(t, vikram.TotalHours)
	assert.Nil(t, vikram.AvgDistanceKm)
}

func TestDailySummary_SeededEmployeeFilter(t *testing.T) {
	svc := newSeededReportService(t)

	resp, err := svc.DailySummary(context.Background(), 1, "2024-01-15", i64(3))
	require.NoError(t, err)
	require.Len(t, resp.EmployeeBreakdown, 1)
	assert.Equal(t, "Priya Singh", resp.EmployeeBreakdown[0].EmployeeName)
	assert.Equal(t, 5.5, resp.TeamSummary.TotalHours)
	assert.Equal(t, int64(2), resp.TeamSummary.UniqueClients)

	// 非本团队成员：静默返回空结果
	resp, err = svc.DailySummary(context.Background(), 1, "2024-01-15", i64(1))
	require.NoError(t, err)
	assert.Empty(t, resp.EmployeeBreakdown)
	assert.Zero(t, resp.TeamSummary.TotalCheckins)
	assert.Zero(t, resp.TeamSummary.UniqueClients)
}
