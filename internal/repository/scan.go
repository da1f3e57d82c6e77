package repository

import (
	"strconv"
	"time"
)

// ── database.Row 取值辅助 ──
//
// SQLite 驱动按列声明类型返回值：INTEGER → int64，REAL → float64，
// DATETIME/DATE → time.Time，表达式列的 TEXT → string，NULL → nil。

// TimeLayout 写入时间列时使用的文本格式
const TimeLayout = "2006-01-02 15:04:05"

// DateLayout 日期参数格式
const DateLayout = "2006-01-02"

func int64Of(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case bool:
		if n {
			return 1
		}
		return 0
	case []byte:
		i, _ := strconv.ParseInt(string(n), 10, 64)
		return i
	case string:
		i, _ := strconv.ParseInt(n, 10, 64)
		return i
	}
	return 0
}

func nullInt64(v any) *int64 {
	if v == nil {
		return nil
	}
	n := int64Of(v)
	return &n
}

func float64Of(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case []byte:
		f, _ := strconv.ParseFloat(string(n), 64)
		return f
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	}
	return 0
}

func nullFloat64(v any) *float64 {
	if v == nil {
		return nil
	}
	f := float64Of(v)
	return &f
}

func stringOf(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case time.Time:
		return s.UTC().Format(TimeLayout)
	case nil:
		return ""
	}
	return ""
}

var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	TimeLayout,
	DateLayout,
}

func timeOf(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case string, []byte:
		s := stringOf(t)
		for _, layout := range timeLayouts {
			if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return parsed.UTC()
			}
		}
	}
	return time.Time{}
}

func nullTime(v any) *time.Time {
	if v == nil {
		return nil
	}
	t := timeOf(v)
	return &t
}

// nullable 把可空指针转换为驱动参数（nil 指针 → NULL）
func nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
