package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/TheBadshahKid/unolo-field-force-tracker/config"
	apperrors "github.com/TheBadshahKid/unolo-field-force-tracker/pkg/errors"
)

// Row 单行查询结果：列名 → 值（int64 / float64 / string / []byte / time.Time / nil）
type Row map[string]any

// WriteResult 写操作结果
type WriteResult struct {
	InsertID     int64 `json:"insertId"`
	AffectedRows int64 `json:"affectedRows"`
	Changes      int64 `json:"changes"`
}

// Result Execute 的返回信封：读路径填充 Columns/Rows，写路径填充 Write
type Result struct {
	Columns []string
	Rows    []Row
	Write   *WriteResult
}

// First 返回首行，无结果时返回 nil
func (r *Result) First() Row {
	if r == nil || len(r.Rows) == 0 {
		return nil
	}
	return r.Rows[0]
}

// Executor 单语句查询接口，Repository 层只依赖它
type Executor interface {
	Execute(ctx context.Context, query string, args ...any) (*Result, error)
}

// Gateway 基于单文件 SQLite 镜像的持久化网关
//
// 引擎没有可长期持有的文件句柄：每次调用都把磁盘镜像整体加载进私有内存库，
// 执行一条语句；写操作再把整个内存库序列化后覆盖回磁盘（临时文件 + rename）。
//
// 写路径是 "读整镜像 → 修改 → 写整镜像"。两个未串行化的写操作并发时，后落盘者
// 会用不含前者修改的旧镜像覆盖文件（丢失更新）。SerializeWrites=true 时所有写
// 操作经由 writeMu 串行；读操作不加锁，各自读取独立快照。
// 同一镜像文件在一个进程内只能由一个 Gateway 持有。
type Gateway struct {
	path      string
	serialize bool
	writeMu   sync.Mutex
	logger    *zap.Logger

	beforeSave func() // 测试钩子：镜像落盘前调用
}

// NewGateway 创建镜像网关，确保镜像所在目录存在
func NewGateway(cfg *config.DatabaseConfig, logger *zap.Logger) (*Gateway, error) {
	path := filepath.Clean(cfg.Path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("创建数据目录失败: %w", err)
	}

	logger.Info("数据库镜像网关就绪",
		zap.String("path", path),
		zap.Bool("serialize_writes", cfg.SerializeWrites),
	)

	return &Gateway{
		path:      path,
		serialize: cfg.SerializeWrites,
		logger:    logger,
	}, nil
}

// Path 镜像文件路径
func (g *Gateway) Path() string { return g.path }

// IsRead 按语句前缀（忽略大小写与首尾空白）判断是否为读操作
func IsRead(query string) bool {
	return strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), "SELECT")
}

// Execute 执行单条语句。以 SELECT 开头的走读路径，其余一律走写路径。
// 参数按 ? 占位符顺序绑定，数量由调用方保证。
// 一旦开始，加载/执行/落盘周期不受调用方取消影响。
func (g *Gateway) Execute(ctx context.Context, query string, args ...any) (*Result, error) {
	ctx = context.WithoutCancel(ctx)
	if IsRead(query) {
		return g.read(ctx, query, args)
	}
	return g.write(ctx, query, args)
}

// Transform 在一次完整的 加载 → fn → 落盘 周期内把内存镜像交给 fn。
// 仅用于迁移与初始化数据；fn 返回错误时不落盘。fn 不得关闭 db。
func (g *Gateway) Transform(ctx context.Context, fn func(db *sql.DB) error) error {
	ctx = context.WithoutCancel(ctx)

	unlock := g.lockWriter()
	defer unlock()

	mem, err := g.loadImage(ctx)
	if err != nil {
		return g.fail("load", "", err)
	}
	defer mem.Close()

	if err := fn(mem); err != nil {
		return g.fail("transform", "", err)
	}

	return g.saveImage(ctx, mem)
}

// ── 读路径 ──

func (g *Gateway) read(ctx context.Context, query string, args []any) (*Result, error) {
	mem, err := g.loadImage(ctx)
	if err != nil {
		return nil, g.fail("load", query, err)
	}
	// 内存镜像随连接关闭丢弃，读路径不落盘
	defer mem.Close()

	rows, err := mem.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, g.fail("execute", query, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, g.fail("execute", query, err)
	}

	out := make([]Row, 0)
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, g.fail("execute", query, err)
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			row[col] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, g.fail("execute", query, err)
	}

	return &Result{Columns: cols, Rows: out}, nil
}

// ── 写路径 ──

func (g *Gateway) write(ctx context.Context, query string, args []any) (*Result, error) {
	unlock := g.lockWriter()
	defer unlock()

	mem, err := g.loadImage(ctx)
	if err != nil {
		return nil, g.fail("load", query, err)
	}
	defer mem.Close()

	if _, err := mem.ExecContext(ctx, query, args...); err != nil {
		return nil, g.fail("execute", query, err)
	}

	// 内存库只有一个连接，两条内省查询作用于刚执行完语句的同一句柄
	var changes, lastID int64
	if err := mem.QueryRowContext(ctx, "SELECT changes()").Scan(&changes); err != nil {
		return nil, g.fail("introspect", query, err)
	}
	if err := mem.QueryRowContext(ctx, "SELECT last_insert_rowid()").Scan(&lastID); err != nil {
		return nil, g.fail("introspect", query, err)
	}

	if err := g.saveImage(ctx, mem); err != nil {
		return nil, err
	}

	return &Result{Write: &WriteResult{
		InsertID:     lastID,
		AffectedRows: changes,
		Changes:      changes,
	}}, nil
}

func (g *Gateway) lockWriter() func() {
	if !g.serialize {
		return func() {}
	}
	g.writeMu.Lock()
	return g.writeMu.Unlock
}

// fail 记录引擎错误并包装为 StorageError 返回
func (g *Gateway) fail(op, query string, err error) error {
	g.logger.Error("数据库操作失败",
		zap.String("op", op),
		zap.String("sql", compactSQL(query)),
		zap.Error(err),
	)
	return &apperrors.StorageError{Op: op, Err: err}
}

func compactSQL(query string) string {
	return strings.Join(strings.Fields(query), " ")
}
