package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
)

const driverName = "sqlite3"

// loadImage 打开私有的单连接内存库，并用 SQLite 在线备份接口把磁盘镜像整体拷入。
// 镜像文件不存在时返回空库。
func (g *Gateway) loadImage(ctx context.Context) (*sql.DB, error) {
	mem, err := sql.Open(driverName, ":memory:")
	if err != nil {
		return nil, err
	}
	// 每个新连接都是一个全新的内存库，必须固定为单连接
	mem.SetMaxOpenConns(1)
	mem.SetMaxIdleConns(1)
	mem.SetConnMaxLifetime(0)

	if _, err := os.Stat(g.path); err == nil {
		if err := restoreFromFile(ctx, mem, g.path); err != nil {
			mem.Close()
			return nil, err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		mem.Close()
		return nil, err
	}

	if _, err := mem.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		mem.Close()
		return nil, err
	}

	return mem, nil
}

func restoreFromFile(ctx context.Context, dst *sql.DB, path string) error {
	dsn, err := readOnlyURI(path)
	if err != nil {
		return err
	}
	src, err := sql.Open(driverName, dsn)
	if err != nil {
		return err
	}
	defer src.Close()

	srcConn, err := src.Conn(ctx)
	if err != nil {
		return err
	}
	defer srcConn.Close()

	dstConn, err := dst.Conn(ctx)
	if err != nil {
		return err
	}
	defer dstConn.Close()

	return srcConn.Raw(func(srcDriver any) error {
		return dstConn.Raw(func(dstDriver any) error {
			from, ok := srcDriver.(*sqlite3.SQLiteConn)
			if !ok {
				return fmt.Errorf("意外的驱动连接类型 %T", srcDriver)
			}
			to, ok := dstDriver.(*sqlite3.SQLiteConn)
			if !ok {
				return fmt.Errorf("意外的驱动连接类型 %T", dstDriver)
			}

			backup, err := to.Backup("main", from, "main")
			if err != nil {
				return err
			}
			done, err := backup.Step(-1)
			if err != nil {
				backup.Finish()
				return err
			}
			if !done {
				backup.Finish()
				return errors.New("镜像拷贝未完成")
			}
			return backup.Finish()
		})
	})
}

// readOnlyURI 构造只读打开镜像的 SQLite URI；路径中的 ?、#、% 等字符按 URI 规则转义
func readOnlyURI(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: "mode=ro"}
	return u.String(), nil
}

// saveImage 把内存库整体序列化为字节，写入同目录临时文件后 rename 覆盖镜像
func (g *Gateway) saveImage(ctx context.Context, mem *sql.DB) error {
	data, err := serialize(ctx, mem)
	if err != nil {
		return g.fail("serialize", "", err)
	}

	if g.beforeSave != nil {
		g.beforeSave()
	}

	if err := writeFileAtomic(g.path, data); err != nil {
		return g.fail("save", "", err)
	}
	return nil
}

func serialize(ctx context.Context, db *sql.DB) ([]byte, error) {
	conn, err := db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	var data []byte
	err = conn.Raw(func(driverConn any) error {
		c, ok := driverConn.(*sqlite3.SQLiteConn)
		if !ok {
			return fmt.Errorf("意外的驱动连接类型 %T", driverConn)
		}
		b, err := c.Serialize("main")
		if err != nil {
			return err
		}
		data = b
		return nil
	})
	return data, err
}

func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp-" + uuid.NewString()

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
