package errors

import (
	"errors"
	"fmt"
)

// ErrRecordNotFound 查询结果为空（仅用于按主键/唯一键取单条记录的场景）
var ErrRecordNotFound = errors.New("记录不存在")

// ValidationError 输入格式错误或缺少必填字段，对应 HTTP 400，不重试
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidation 创建 ValidationError
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation 判断错误链中是否包含 ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StorageError 存储引擎在加载、绑定、执行或序列化阶段的失败，对应 HTTP 500。
// 不做自动重试：重试会扩大整镜像覆盖写的丢失更新窗口。
type StorageError struct {
	Op  string // load | execute | introspect | serialize | save | transform
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("存储失败 (%s): %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsStorage 判断错误链中是否包含 StorageError
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
