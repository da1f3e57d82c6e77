package seed

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/TheBadshahKid/unolo-field-force-tracker/config"
	"github.com/TheBadshahKid/unolo-field-force-tracker/pkg/database"
)

func newMigratedGateway(t *testing.T) *database.Gateway {
	t.Helper()
	gw, err := database.NewGateway(&config.DatabaseConfig{
		Path:            filepath.Join(t.TempDir(), "seed.sqlite"),
		SerializeWrites: true,
	}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(context.Background(), gw, zap.NewNop()))
	return gw
}

func count(t *testing.T, gw *database.Gateway, table string) int64 {
	t.Helper()
	res, err := gw.Execute(context.Background(), "SELECT COUNT(*) AS n FROM "+table)
	require.NoError(t, err)
	return res.First()["n"].(int64)
}

func TestRun_WritesDefaultFixtures(t *testing.T) {
	gw := newMigratedGateway(t)
	hash, err := HashPassword(DefaultPassword, bcrypt.MinCost)
	require.NoError(t, err)

	require.NoError(t, Run(context.Background(), gw, Default(hash), false, zap.NewNop()))

	assert.Equal(t, int64(4), count(t, gw, "users"))
	assert.Equal(t, int64(5), count(t, gw, "clients"))
	assert.Equal(t, int64(7), count(t, gw, "employee_clients"))
	assert.Equal(t, int64(6), count(t, gw, "checkins"))

	res, err := gw.Execute(context.Background(),
		"SELECT password, manager_id FROM users WHERE email = ?", "rahul@unolo.com")
	require.NoError(t, err)
	row := res.First()
	require.NotNil(t, row)
	assert.Equal(t, int64(1), row["manager_id"])
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(row["password"].(string)), []byte(DefaultPassword)))

	res, err = gw.Execute(context.Background(),
		"SELECT COUNT(*) AS n FROM checkins WHERE status = 'checked_in' AND checkout_time IS NULL")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.First()["n"], "仅 2024-01-16 的记录未签退")
}

func TestRun_RefusesSecondSeedWithoutReset(t *testing.T) {
	gw := newMigratedGateway(t)
	f := Default("x")

	require.NoError(t, Run(context.Background(), gw, f, false, zap.NewNop()))
	err := Run(context.Background(), gw, Default("x"), false, zap.NewNop())
	assert.ErrorIs(t, err, ErrAlreadySeeded)
	assert.Equal(t, int64(4), count(t, gw, "users"))
}

func TestRun_ResetRebuildsData(t *testing.T) {
	gw := newMigratedGateway(t)
	require.NoError(t, Run(context.Background(), gw, Default("x"), false, zap.NewNop()))

	_, err := gw.Execute(context.Background(),
		"INSERT INTO checkins (employee_id, client_id, status) VALUES (4, 5, 'checked_in')")
	require.NoError(t, err)
	assert.Equal(t, int64(7), count(t, gw, "checkins"))

	require.NoError(t, Run(context.Background(), gw, Default("x"), true, zap.NewNop()))
	assert.Equal(t, int64(6), count(t, gw, "checkins"))

	res, err := gw.Execute(context.Background(), "SELECT MIN(id) AS lo FROM employee_clients")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.First()["lo"], "重置后自增序列从 1 开始")
}
