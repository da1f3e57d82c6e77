package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations 执行数据库迁移
// 迁移在一次 Transform 周期内作用于内存镜像，成功后整体落盘
func RunMigrations(ctx context.Context, g *Gateway, logger *zap.Logger) error {
	return g.Transform(ctx, func(db *sql.DB) error {
		source, err := iofs.New(migrationsFS, "migrations")
		if err != nil {
			return fmt.Errorf("加载迁移文件失败: %w", err)
		}

		driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
		if err != nil {
			return fmt.Errorf("创建迁移驱动失败: %w", err)
		}

		// 不调用 m.Close()：它会关闭 db，而 Transform 还要用 db 序列化镜像
		m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
		if err != nil {
			return fmt.Errorf("初始化迁移实例失败: %w", err)
		}

		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("执行迁移失败: %w", err)
		}

		version, dirty, _ := m.Version()
		if dirty {
			logger.Warn("数据库迁移处于 dirty 状态", zap.Uint("version", version))
		} else {
			logger.Info("数据库迁移完成", zap.Uint("version", version))
		}

		return nil
	})
}
